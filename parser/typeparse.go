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

// takeType parses Type := BaseType {"*" | "&" | "const"}* (when
// withQualifiers is true) or bare BaseType otherwise. withQualifiers is
// false only when takeType is used purely to probe whether the
// upcoming tokens name a type at all (constructor-call disambiguation),
// where trailing qualifiers aren't meaningful yet.
func (p *Parser) takeType(withQualifiers bool) (*ast.Node, bool) {
	return p.attempt("Type", func() (*ast.Node, bool) {
		base, ok := p.takeBaseType()
		if !ok {
			return nil, false
		}
		if !withQualifiers {
			return base, true
		}
		sawAmp := false
		for {
			switch p.peek().Kind {
			case token.Amp:
				if sawAmp {
					return nil, false
				}
				sawAmp = true
				base.Qualify(p.advance())
			case token.Const:
				base.Qualify(p.advance())
			case token.Star:
				if sawAmp {
					return nil, false
				}
				base.Qualify(p.advance())
			default:
				return base, true
			}
		}
	})
}

// takeBaseType parses BaseType := "void" | IntegerType | QualifiedName.
// A QualifiedName is accepted only if it resolves to a known type in
// p.ns at parse time — this is what lets the parser tell a type name
// apart from a same-shaped value identifier without any special
// grammar marker (spec.md 4.5, "Identifiers vs types").
func (p *Parser) takeBaseType() (*ast.Node, bool) {
	switch p.peek().Kind {
	case token.Void, token.IntegerType:
		return ast.NewTypeExpr(p.advance()), true
	case token.Identifier:
		mark := p.pos
		first := p.advance()
		name := first.Lexeme
		for p.at(token.ColonColon) {
			p.advance()
			seg, ok := p.expect(token.Identifier)
			if !ok {
				p.pos = mark
				return nil, false
			}
			name += "::" + seg.Lexeme
		}
		if _, ok := p.ns.LookupType(name); !ok {
			p.pos = mark
			return nil, false
		}
		joined := first
		joined.Lexeme = name
		return ast.NewTypeExpr(joined), true
	}
	return nil, false
}
