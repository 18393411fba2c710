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
	"github.com/heimskr/mead/ast"
	"github.com/heimskr/mead/token"
)

// takeBlock parses "{" Statement* "}".
func (p *Parser) takeBlock() (*ast.Node, bool) {
	return p.attempt("Block", func() (*ast.Node, bool) {
		lbrace, ok := p.expect(token.LBrace)
		if !ok {
			return nil, false
		}
		block := ast.New(ast.Block, lbrace)
		for !p.at(token.RBrace) {
			if p.at(token.EOF) {
				return nil, false
			}
			stmt, ok := p.takeStatement()
			if !ok {
				return nil, false
			}
			block.Add(stmt)
		}
		p.advance() // "}"
		return block, true
	})
}

// takeStatement parses one Statement: ";", a nested Block, "if",
// "return", a TypedVar declaration/definition, or a bare expression
// statement. An Identifier immediately followed by ":" is a TypedVar;
// that is decided with a two-token lookahead rather than a speculative
// parse, since the grammar is LL(2) at this point.
func (p *Parser) takeStatement() (*ast.Node, bool) {
	switch p.peek().Kind {
	case token.Semicolon:
		tok := p.advance()
		return ast.New(ast.EmptyStatement, tok), true
	case token.LBrace:
		return p.takeBlock()
	case token.If:
		return p.takeIfStatement()
	case token.Return:
		return p.takeReturnStatement()
	case token.Identifier:
		if p.peekAt(1).Kind == token.Colon {
			return p.takeVariableDeclOrDef()
		}
	}
	return p.takeExpressionStatement()
}

func (p *Parser) takeExpressionStatement() (*ast.Node, bool) {
	return p.attempt("ExpressionStatement", func() (*ast.Node, bool) {
		expr, ok := p.e16(true)
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.Semicolon); !ok {
			return nil, false
		}
		return ast.New(ast.ExpressionStatement, expr.Tok).Add(expr), true
	})
}

// ifShape parses the "if" Expression Block ("else" Block)? production
// shared by IfStatement and the E15 if-expression: both wrap the same
// (cond, then[, else]) shape, differing only in the Kind of node built
// around it.
func (p *Parser) ifShape() (ifTok token.Token, cond, then, els *ast.Node, ok bool) {
	ifTok, ok = p.expect(token.If)
	if !ok {
		return
	}
	cond, ok = p.e16(true)
	if !ok {
		return
	}
	then, ok = p.takeBlock()
	if !ok {
		return
	}
	if _, hasElse := p.expect(token.Else); hasElse {
		els, ok = p.takeBlock()
		if !ok {
			return
		}
	}
	ok = true
	return
}

func (p *Parser) takeIfStatement() (*ast.Node, bool) {
	return p.attempt("IfStatement", func() (*ast.Node, bool) {
		ifTok, cond, then, els, ok := p.ifShape()
		if !ok {
			return nil, false
		}
		node := ast.New(ast.IfStatement, ifTok).Add(cond, then)
		if els != nil {
			node.Add(els)
		}
		return node, true
	})
}

func (p *Parser) takeReturnStatement() (*ast.Node, bool) {
	return p.attempt("ReturnStatement", func() (*ast.Node, bool) {
		retTok, ok := p.expect(token.Return)
		if !ok {
			return nil, false
		}
		expr, ok := p.e16(true)
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.Semicolon); !ok {
			return nil, false
		}
		return ast.New(ast.ReturnStatement, retTok).Add(expr), true
	})
}
