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

// takeFunctionDeclOrDef parses FunctionDecl | FunctionDef: a
// FunctionPrototype followed by either a ";" (a forward declaration) or
// a Block (a definition).
func (p *Parser) takeFunctionDeclOrDef() (*ast.Node, bool) {
	return p.attempt("FunctionDeclOrDef", func() (*ast.Node, bool) {
		proto, ok := p.takeFunctionPrototype()
		if !ok {
			return nil, false
		}
		if semi, ok := p.expect(token.Semicolon); ok {
			return ast.New(ast.FunctionDeclaration, semi).Add(proto), true
		}
		block, ok := p.takeBlock()
		if !ok {
			return nil, false
		}
		return ast.New(ast.FunctionDefinition, proto.Tok).Add(proto, block), true
	})
}

// takeFunctionPrototype parses:
//
//	"fn" Identifier "(" (TypedVar ("," TypedVar)*)? ")" ("->" Type)?
//
// An omitted "-> Type" defaults to void, matching spec.md 4.5.
func (p *Parser) takeFunctionPrototype() (*ast.Node, bool) {
	return p.attempt("FunctionPrototype", func() (*ast.Node, bool) {
		fnTok, ok := p.expect(token.Fn)
		if !ok {
			return nil, false
		}
		nameTok, ok := p.expect(token.Identifier)
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.LParen); !ok {
			return nil, false
		}
		var params []*ast.Node
		if !p.at(token.RParen) {
			for {
				param, ok := p.takeTypedVar()
				if !ok {
					return nil, false
				}
				params = append(params, param)
				if _, ok := p.expect(token.Comma); ok {
					continue
				}
				break
			}
		}
		if _, ok := p.expect(token.RParen); !ok {
			return nil, false
		}
		var retType *ast.Node
		if _, ok := p.expect(token.Arrow); ok {
			retType, ok = p.takeType(true)
			if !ok {
				return nil, false
			}
		} else {
			retType = ast.NewTypeExpr(token.Token{Kind: token.Void, Lexeme: "void", Pos: fnTok.Pos})
		}
		proto := ast.New(ast.FunctionPrototype, fnTok)
		proto.Add(ast.New(ast.Identifier, nameTok), retType)
		proto.Add(params...)
		return proto, true
	})
}

// takeTypedVar parses Identifier ":" Type, the shape shared by function
// parameters and the declaration half of a top-level or statement-level
// variable.
func (p *Parser) takeTypedVar() (*ast.Node, bool) {
	return p.attempt("TypedVar", func() (*ast.Node, bool) {
		nameTok, ok := p.expect(token.Identifier)
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.Colon); !ok {
			return nil, false
		}
		typ, ok := p.takeType(true)
		if !ok {
			return nil, false
		}
		return ast.New(ast.VariableDeclaration, nameTok).Add(typ), true
	})
}

// takeVariableDeclOrDef parses VariableDecl | VariableDef: a TypedVar
// followed by either a ";" or "= Expression ;". Used both at top level
// and (via takeStatement) inside a Block, so the node kinds are the
// same in either position.
func (p *Parser) takeVariableDeclOrDef() (*ast.Node, bool) {
	return p.attempt("VariableDeclOrDef", func() (*ast.Node, bool) {
		decl, ok := p.takeTypedVar()
		if !ok {
			return nil, false
		}
		if eq, ok := p.expect(token.Assign); ok {
			value, ok := p.e16(true)
			if !ok {
				return nil, false
			}
			if _, ok := p.expect(token.Semicolon); !ok {
				return nil, false
			}
			return ast.New(ast.VariableDefinition, eq).Add(decl, value), true
		}
		if _, ok := p.expect(token.Semicolon); !ok {
			return nil, false
		}
		return decl, true
	})
}
