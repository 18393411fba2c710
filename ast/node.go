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

// Package ast defines Mead's abstract syntax tree. Every production
// builds the same Node type, tagged by Kind and anchored at the Token
// that introduces it; specialized node variants add no extra fields, so
// there is one Go struct rather than one per production. This mirrors
// original_source's single ASTNode class (NodeType tag, weak parent,
// ordered children, templated add/make) rather than cue/ast's
// one-struct-per-production style; see DESIGN.md.
package ast

import "github.com/heimskr/mead/token"

// Kind discriminates what a Node represents.
type Kind int

const (
	Invalid Kind = iota

	// Expressions.
	Identifier
	Number
	String
	Binary
	FunctionCall
	ConstructorCall
	Cast
	Sizeof
	Subscript
	AccessMember
	Deref
	GetAddress
	UnaryPlus
	UnaryMinus
	LogicalNot
	BitwiseNot
	PrefixInc
	PrefixDec
	PostfixInc
	PostfixDec
	SingleNew
	ArrayNew
	Delete
	Assign
	CompoundAssign
	ConditionalExpression
	Comma

	// Statements.
	Block
	ExpressionStatement
	VariableDeclaration
	VariableDefinition
	IfStatement
	ReturnStatement
	EmptyStatement

	// Top level.
	FunctionPrototype
	FunctionDeclaration
	FunctionDefinition

	// Type expressions (see typeexpr.go): a base leaf (Tok.Kind one of
	// IntegerType/Void/Identifier) wrapped by zero or more qualifier
	// nodes (Tok.Kind one of Const/Star/Amp) recorded as ordered
	// children, applied left to right by ToType.
	TypeExpr
)

var kindNames = map[Kind]string{
	Invalid:                "Invalid",
	Identifier:             "Identifier",
	Number:                 "Number",
	String:                 "String",
	Binary:                 "Binary",
	FunctionCall:           "FunctionCall",
	ConstructorCall:        "ConstructorCall",
	Cast:                   "Cast",
	Sizeof:                 "Sizeof",
	Subscript:              "Subscript",
	AccessMember:           "AccessMember",
	Deref:                  "Deref",
	GetAddress:             "GetAddress",
	UnaryPlus:              "UnaryPlus",
	UnaryMinus:             "UnaryMinus",
	LogicalNot:             "LogicalNot",
	BitwiseNot:             "BitwiseNot",
	PrefixInc:              "PrefixInc",
	PrefixDec:              "PrefixDec",
	PostfixInc:             "PostfixInc",
	PostfixDec:             "PostfixDec",
	SingleNew:              "SingleNew",
	ArrayNew:               "ArrayNew",
	Delete:                 "Delete",
	Assign:                 "Assign",
	CompoundAssign:         "CompoundAssign",
	ConditionalExpression:  "ConditionalExpression",
	Comma:                  "Comma",
	Block:                  "Block",
	ExpressionStatement:    "ExpressionStatement",
	VariableDeclaration:    "VariableDeclaration",
	VariableDefinition:     "VariableDefinition",
	IfStatement:            "IfStatement",
	ReturnStatement:        "ReturnStatement",
	EmptyStatement:         "EmptyStatement",
	FunctionPrototype:      "FunctionPrototype",
	FunctionDeclaration:    "FunctionDeclaration",
	FunctionDefinition:     "FunctionDefinition",
	TypeExpr:               "TypeExpr",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Unknown"
}

// Node is the single AST node type for every Mead production. Tok
// anchors the node at the token that introduces it (used for both
// diagnostics and, for leaf nodes, the literal payload); children are
// ordered and kind-specific meaning is documented per Kind in expr.go,
// stmt.go and typeexpr.go.
type Node struct {
	Kind Kind
	Tok  token.Token

	parent   *Node
	children []*Node
}

// New returns a childless Node of the given kind, anchored at tok.
func New(kind Kind, tok token.Token) *Node {
	return &Node{Kind: kind, Tok: tok}
}

// Parent returns n's parent, or nil if n is a root.
func (n *Node) Parent() *Node { return n.parent }

// Children returns n's children in order. The returned slice must not
// be mutated by the caller; use Add/Reparent instead.
func (n *Node) Children() []*Node { return n.children }

// Child returns n's i'th child, or nil if i is out of range.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// Pos returns the source position n is anchored at.
func (n *Node) Pos() token.Position { return n.Tok.Pos }

// Reparent detaches child from its current parent (if any) and appends
// it to n's children, returning n. Mirrors original_source's
// ASTNode::reparent, which the C++ add<>()/make<>() helpers call under
// the hood.
func (n *Node) Reparent(child *Node) *Node {
	if child == nil {
		return n
	}
	if child.parent != nil {
		child.parent.removeChild(child)
	}
	child.parent = n
	n.children = append(n.children, child)
	return n
}

// Add reparents each of children under n in order and returns n, so
// construction reads as a flat list: ast.New(...).Add(a, b, c).
func (n *Node) Add(children ...*Node) *Node {
	for _, c := range children {
		n.Reparent(c)
	}
	return n
}

func (n *Node) removeChild(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			return
		}
	}
}

// Walk visits n and every descendant, depth-first pre-order, calling
// visit on each. Mirrors the shape of cue/ast/walk.go's Visitor, scaled
// down to Mead's single Node type.
func Walk(n *Node, visit func(*Node)) {
	if n == nil {
		return
	}
	visit(n)
	for _, c := range n.children {
		Walk(c, visit)
	}
}
