// Copyright 2018 The CUE Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ast_test

import (
	"testing"

	"github.com/heimskr/mead/ast"
	"github.com/heimskr/mead/token"
)

func tok(k token.Kind, lex string) token.Token {
	return token.Token{Kind: k, Lexeme: lex}
}

func TestReparentMovesBetweenParents(t *testing.T) {
	a := ast.New(ast.Block, tok(token.LBrace, "{"))
	b := ast.New(ast.Block, tok(token.LBrace, "{"))
	child := ast.New(ast.Identifier, tok(token.Identifier, "x"))

	a.Add(child)
	if len(a.Children()) != 1 {
		t.Fatalf("a should have 1 child")
	}

	b.Reparent(child)
	if len(a.Children()) != 0 {
		t.Errorf("a should have lost its child after reparenting")
	}
	if len(b.Children()) != 1 || b.Child(0) != child {
		t.Errorf("b should have gained the child")
	}
	if child.Parent() != b {
		t.Errorf("child.Parent() should be b")
	}
}

func TestWalkVisitsAllDescendants(t *testing.T) {
	root := ast.New(ast.Binary, tok(token.Plus, "+"))
	lhs := ast.New(ast.Identifier, tok(token.Identifier, "x"))
	rhs := ast.New(ast.Identifier, tok(token.Identifier, "y"))
	root.Add(lhs, rhs)

	var seen []ast.Kind
	ast.Walk(root, func(n *ast.Node) { seen = append(seen, n.Kind) })
	if len(seen) != 3 {
		t.Fatalf("Walk visited %d nodes, want 3", len(seen))
	}
}

func TestRenderBinary(t *testing.T) {
	root := ast.New(ast.Binary, tok(token.Plus, "+"))
	lhs := ast.New(ast.Identifier, tok(token.Identifier, "x"))
	rhs := ast.New(ast.Number, tok(token.IntegerLiteral, "1"))
	root.Add(lhs, rhs)

	if got, want := ast.Render(root), "x + 1"; got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}
