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

package ast

import (
	"fmt"
	"strconv"

	"github.com/heimskr/mead/errors"
	"github.com/heimskr/mead/scope"
	"github.com/heimskr/mead/token"
	"github.com/heimskr/mead/types"
)

// NewTypeExpr builds a base type-expression leaf: tok.Kind is
// token.IntegerType, token.Void, or token.Identifier (for a possibly
// "::"-qualified class name, joined into a single Lexeme by the
// parser).
func NewTypeExpr(tok token.Token) *Node {
	return &Node{Kind: TypeExpr, Tok: tok}
}

// Qualify wraps base under a single qualifier (Const, Star, or Amp),
// applied after every qualifier already on base. Grammar: Type :=
// BaseType {"*" | "&" | "const"}*, so qualifiers accumulate as ordered
// children of a flat TypeExpr node representing the whole declared
// type, applied left to right by ToType.
func (n *Node) Qualify(qualifier token.Token) *Node {
	return n.Add(&Node{Kind: TypeExpr, Tok: qualifier})
}

// ToType resolves a TypeExpr node into a concrete types.Type, looking
// up class names through ns. Qualifiers recorded as n's children are
// applied in order: "const" sets the const flag on the type
// constructed so far, "*" wraps it in a pointer, "&" wraps it in an
// l-value reference (spec.md's example 4, "i32 const*& const", is an
// l-value reference, itself const, to a pointer to a const i32).
func (n *Node) ToType(ns *scope.Namespace) (*types.Type, error) {
	if n == nil || n.Kind != TypeExpr {
		return nil, errors.NewPosf(token.NoPos, "not a type expression")
	}
	base, err := baseType(n, ns)
	if err != nil {
		return nil, err
	}
	acc := base
	sawAmp := false
	for _, q := range n.Children() {
		if sawAmp && q.Tok.Kind != token.Const {
			return nil, errors.NewPosf(q.Tok.Pos, "only one & is allowed, and only const may follow it; found %s after &", q.Tok.Kind)
		}
		switch q.Tok.Kind {
		case token.Const:
			acc = acc.SetConst(true)
		case token.Star:
			acc = types.NewPointer(acc)
		case token.Amp:
			acc = types.NewLReference(acc)
			sawAmp = true
		default:
			return nil, errors.NewPosf(q.Tok.Pos, "invalid type qualifier %s", q.Tok.Kind)
		}
	}
	return acc, nil
}

func baseType(n *Node, ns *scope.Namespace) (*types.Type, error) {
	switch n.Tok.Kind {
	case token.Void:
		return types.NewVoid(), nil
	case token.IntegerType:
		signed := n.Tok.Lexeme[0] == 'i'
		bits, err := strconv.Atoi(n.Tok.Lexeme[1:])
		if err != nil {
			return nil, errors.NewPosf(n.Tok.Pos, "malformed integer type %q", n.Tok.Lexeme)
		}
		return types.NewInt(bits, signed), nil
	case token.Identifier:
		if t, ok := ns.LookupType(n.Tok.Lexeme); ok {
			return t, nil
		}
		return nil, errors.NewPosf(n.Tok.Pos, "unknown type name %q", n.Tok.Lexeme)
	}
	return nil, errors.NewPosf(n.Tok.Pos, "invalid base type token %s", n.Tok.Kind)
}

func renderType(n *Node) string {
	if n == nil || n.Kind != TypeExpr {
		return ""
	}
	s := n.Tok.Lexeme
	for _, q := range n.Children() {
		switch q.Tok.Kind {
		case token.Const:
			s += " const"
		case token.Star:
			s += "*"
		case token.Amp:
			s += "&"
		}
	}
	return s
}

// String renders a TypeExpr for diagnostics.
func (n *Node) String() string {
	if n.Kind == TypeExpr {
		return renderType(n)
	}
	return fmt.Sprintf("%s(%s)", n.Kind, n.Tok.Lexeme)
}
