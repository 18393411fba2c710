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

package parser

import (
	"testing"

	"github.com/heimskr/mead/ast"
	"github.com/heimskr/mead/scanner"
	"github.com/heimskr/mead/scope"
	"github.com/heimskr/mead/token"
	"github.com/heimskr/mead/types"
)

func newTestNamespace() *scope.Namespace {
	ns := scope.NewNamespace()
	for name, typ := range types.DefaultTable() {
		ns.InsertType(name, typ)
	}
	return ns
}

// lex fully tokenizes src, failing the test if the scanner rejects any
// of it.
func lex(t *testing.T, src string) []token.Token {
	t.Helper()
	toks, ok := scanner.NewLexer().Lex(src)
	if !ok {
		t.Fatalf("Lex(%q) failed to tokenize the full input", src)
	}
	return toks
}

func TestVariableDefinitionWithHexLiteral(t *testing.T) {
	p := New(lex(t, "foo: u8 = 0x42;"), newTestNamespace())
	nodes, errTok, ok := p.Parse()
	if !ok {
		t.Fatalf("Parse() failed at %v; trace:\n%v", errTok, p.Trace())
	}
	if len(nodes) != 1 || nodes[0].Kind != ast.VariableDefinition {
		t.Fatalf("Parse() = %v, want a single VariableDefinition", nodes)
	}
	decl, value := nodes[0].Child(0), nodes[0].Child(1)
	if decl.Kind != ast.VariableDeclaration || decl.Tok.Lexeme != "foo" {
		t.Errorf("decl = %v, want VariableDeclaration(foo)", decl)
	}
	if value.Kind != ast.Number || value.Tok.Lexeme != "0x42" {
		t.Errorf("value = %v, want Number(0x42)", value)
	}
}

func TestFunctionDefinitionWithUnaryMinusReturn(t *testing.T) {
	p := New(lex(t, "fn main() -> i32 { return -42; }"), newTestNamespace())
	nodes, errTok, ok := p.Parse()
	if !ok {
		t.Fatalf("Parse() failed at %v; trace:\n%v", errTok, p.Trace())
	}
	if len(nodes) != 1 || nodes[0].Kind != ast.FunctionDefinition {
		t.Fatalf("Parse() = %v, want a single FunctionDefinition", nodes)
	}
	proto, block := nodes[0].Child(0), nodes[0].Child(1)
	if proto.Kind != ast.FunctionPrototype || proto.Child(0).Tok.Lexeme != "main" {
		t.Fatalf("proto = %v, want FunctionPrototype(main)", proto)
	}
	if block.Kind != ast.Block || len(block.Children()) != 1 {
		t.Fatalf("block = %v, want a single-statement Block", block)
	}
	ret := block.Child(0)
	if ret.Kind != ast.ReturnStatement {
		t.Fatalf("ret = %v, want ReturnStatement", ret)
	}
	neg := ret.Child(0)
	if neg.Kind != ast.UnaryMinus || neg.Child(0).Tok.Lexeme != "42" {
		t.Errorf("ret operand = %v, want UnaryMinus(42)", neg)
	}
}

// TestBinaryLeftAssociativity exercises the worked "1 + 2 * 3 - 4 / 5"
// scenario: * and / bind tighter than + and -, and the two remaining
// additive operators associate left, so the tree is
// Binary(-, Binary(+, 1, Binary(*, 2, 3)), Binary(/, 4, 5)).
func TestBinaryLeftAssociativity(t *testing.T) {
	ns := newTestNamespace()
	p := New(lex(t, "1 + 2 * 3 - 4 / 5"), ns)
	expr, ok := p.ParseExpression(true)
	if !ok {
		t.Fatalf("ParseExpression() failed; trace:\n%v", p.Trace())
	}
	top := expr
	if top.Kind != ast.Binary || top.Tok.Kind != token.Minus {
		t.Fatalf("top = %v, want Binary(-)", top)
	}
	lhs, rhs := top.Child(0), top.Child(1)
	if lhs.Kind != ast.Binary || lhs.Tok.Kind != token.Plus {
		t.Fatalf("lhs = %v, want Binary(+)", lhs)
	}
	if rhs.Kind != ast.Binary || rhs.Tok.Kind != token.Slash {
		t.Fatalf("rhs = %v, want Binary(/)", rhs)
	}
	mul := lhs.Child(1)
	if mul.Kind != ast.Binary || mul.Tok.Kind != token.Star {
		t.Fatalf("lhs.Child(1) = %v, want Binary(*)", mul)
	}
}

// TestTypeQualifierOrdering exercises spec.md 9's worked example: the
// qualifiers on "i32 const*& const" attach to the TypeExpr node in
// source order, left to right.
func TestTypeQualifierOrdering(t *testing.T) {
	p := New(lex(t, "foo: i32 const*& const = 40 + 2;"), newTestNamespace())
	nodes, errTok, ok := p.Parse()
	if !ok {
		t.Fatalf("Parse() failed at %v; trace:\n%v", errTok, p.Trace())
	}
	decl := nodes[0].Child(0)
	typ := decl.Child(0)
	if typ.Kind != ast.TypeExpr || typ.Tok.Lexeme != "i32" {
		t.Fatalf("type base = %v, want TypeExpr(i32)", typ)
	}
	wantQualifiers := []token.Kind{token.Const, token.Star, token.Amp, token.Const}
	gotQualifiers := typ.Children()
	if len(gotQualifiers) != len(wantQualifiers) {
		t.Fatalf("qualifiers = %v, want %v", gotQualifiers, wantQualifiers)
	}
	for i, q := range wantQualifiers {
		if gotQualifiers[i].Tok.Kind != q {
			t.Errorf("qualifier[%d] = %v, want %v", i, gotQualifiers[i].Tok.Kind, q)
		}
	}
}

// TestStringSubscript exercises the "hello"[42] worked example as an
// expression statement.
func TestStringSubscript(t *testing.T) {
	p := New(lex(t, `fn f() { "hello"[42]; }`), newTestNamespace())
	nodes, errTok, ok := p.Parse()
	if !ok {
		t.Fatalf("Parse() failed at %v; trace:\n%v", errTok, p.Trace())
	}
	block := nodes[0].Child(1)
	stmt := block.Child(0)
	if stmt.Kind != ast.ExpressionStatement {
		t.Fatalf("stmt = %v, want ExpressionStatement", stmt)
	}
	sub := stmt.Child(0)
	if sub.Kind != ast.Subscript || sub.Child(0).Kind != ast.String || sub.Child(1).Tok.Lexeme != "42" {
		t.Errorf("sub = %v, want Subscript(String, Number(42))", sub)
	}
}

// TestIfExpressionArgumentCommaAllowed exercises the commaAllowed
// threading scenario: the outer constructor call's argument commas
// must not be swallowed by the if-expression's block statements, each
// of which is itself a comma expression.
func TestIfExpressionArgumentCommaAllowed(t *testing.T) {
	p := New(lex(t, "fn f() { void(1, if 2 { 3,4,5; } else { 6,7,8; }, 9); }"), newTestNamespace())
	nodes, errTok, ok := p.Parse()
	if !ok {
		t.Fatalf("Parse() failed at %v; trace:\n%v", errTok, p.Trace())
	}
	block := nodes[0].Child(1)
	exprStmt := block.Child(0)
	call := exprStmt.Child(0)
	if call.Kind != ast.ConstructorCall || len(call.Children()) != 4 {
		t.Fatalf("call = %v (len=%d), want ConstructorCall with 3 args", call, len(call.Children()))
	}
	args := call.Children()[1:]
	if args[0].Tok.Lexeme != "1" || args[2].Tok.Lexeme != "9" {
		t.Errorf("args[0], args[2] = %v, %v, want 1 and 9", args[0], args[2])
	}
	cond := args[1]
	if cond.Kind != ast.ConditionalExpression {
		t.Fatalf("args[1] = %v, want ConditionalExpression", cond)
	}
	then := cond.Child(1)
	thenStmt := then.Child(0)
	if thenStmt.Kind != ast.ExpressionStatement || thenStmt.Child(0).Kind != ast.Comma {
		t.Fatalf("then branch = %v, want ExpressionStatement(Comma)", thenStmt)
	}
	if len(thenStmt.Child(0).Children()) != 3 {
		t.Errorf("then comma has %d items, want 3", len(thenStmt.Child(0).Children()))
	}
}

// TestTypeQualifierRejectsMalformedAmp exercises the invariant that
// only one "&" is allowed and no "*" or "&" may follow it (only
// "const" may, as in "i32 const*& const"): a second "&", or a "*"
// after one, must fail to parse rather than being silently accepted.
func TestTypeQualifierRejectsMalformedAmp(t *testing.T) {
	for _, src := range []string{
		"x: i32 & & = 5;",
		"x: i32 & * = 5;",
		"x: i32 & const * = 5;",
	} {
		p := New(lex(t, src), newTestNamespace())
		if _, _, ok := p.Parse(); ok {
			t.Errorf("Parse(%q) succeeded, want rejection of the malformed qualifier sequence", src)
		}
	}
}

func TestParseReportsFirstUnparsedToken(t *testing.T) {
	p := New(lex(t, "fn broken( {"), newTestNamespace())
	_, errTok, ok := p.Parse()
	if ok {
		t.Fatalf("Parse() should fail on malformed input")
	}
	if !errTok.IsValid() {
		t.Errorf("Parse() should report the offending token")
	}
}
