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

// This file implements Mead's 16-level expression grammar as a chain of
// paired Eₖ functions, one per precedence level, from e16 (comma, the
// loosest) down to e0 (primary, the tightest). Each eK for a binary
// level is left-associative and built the same way: parse one eK-1,
// then loop consuming a same-level operator and another eK-1. This is
// an iterative rendering of the grammar's Pₖ "operator-or-nothing"
// production rather than a literal tail-recursive one, since Mead's
// binary operators are all left-associative and a loop says the same
// thing more plainly in Go; see DESIGN.md.
//
// commaAllowed is threaded as an explicit parameter through every level
// rather than held as mutable parser state (spec.md 9): it is false
// while parsing one item of a call/constructor/new argument list (so a
// "," there ends the current argument) and true everywhere else,
// including inside the parentheses/brackets that delimit an argument's
// own sub-expression.
package parser

import (
	"github.com/heimskr/mead/ast"
	"github.com/heimskr/mead/token"
)

// e16 parses Expression := e15 ("," e15)*. A run of comma-separated
// expressions folds into a single Comma node only when commaAllowed
// permits the top-level comma from being consumed here at all;
// otherwise e16 behaves exactly like e15.
func (p *Parser) e16(commaAllowed bool) (*ast.Node, bool) {
	first, ok := p.e15(commaAllowed)
	if !ok {
		return nil, false
	}
	if !commaAllowed || !p.at(token.Comma) {
		return first, true
	}
	commaTok := p.peek()
	items := []*ast.Node{first}
	for p.at(token.Comma) {
		p.advance()
		next, ok := p.e15(commaAllowed)
		if !ok {
			return nil, false
		}
		items = append(items, next)
	}
	return ast.New(ast.Comma, commaTok).Add(items...), true
}

var compoundAssignOps = map[token.Kind]bool{
	token.PlusEq: true, token.MinusEq: true, token.StarEq: true,
	token.SlashEq: true, token.PercentEq: true, token.ShlEq: true,
	token.ShrEq: true, token.AmpEq: true, token.CaretEq: true,
	token.PipeEq: true, token.AmpAmpEq: true, token.PipePipeEq: true,
}

// e15 parses the right-associative assignment level, plus the
// if-expression (ConditionalExpression), which shares this level since
// both read as "the value this whole expression position holds".
func (p *Parser) e15(commaAllowed bool) (*ast.Node, bool) {
	if p.at(token.If) {
		return p.takeConditionalExpression()
	}
	lhs, ok := p.e14(commaAllowed)
	if !ok {
		return nil, false
	}
	op := p.peek()
	switch {
	case op.Kind == token.Assign:
		p.advance()
		rhs, ok := p.e15(commaAllowed) // right-assoc: recurse at the same level
		if !ok {
			return nil, false
		}
		return ast.New(ast.Assign, op).Add(lhs, rhs), true
	case compoundAssignOps[op.Kind]:
		p.advance()
		rhs, ok := p.e15(commaAllowed)
		if !ok {
			return nil, false
		}
		return ast.New(ast.CompoundAssign, op).Add(lhs, rhs), true
	}
	return lhs, true
}

func (p *Parser) takeConditionalExpression() (*ast.Node, bool) {
	return p.attempt("ConditionalExpression", func() (*ast.Node, bool) {
		ifTok, cond, then, els, ok := p.ifShape()
		if !ok {
			return nil, false
		}
		node := ast.New(ast.ConditionalExpression, ifTok).Add(cond, then)
		if els != nil {
			node.Add(els)
		}
		return node, true
	})
}

// binaryLevel parses a single left-associative binary precedence level:
// one application of next, then zero or more (op next) pairs, folding
// left.
func (p *Parser) binaryLevel(next func(bool) (*ast.Node, bool), ops map[token.Kind]bool, commaAllowed bool) (*ast.Node, bool) {
	lhs, ok := next(commaAllowed)
	if !ok {
		return nil, false
	}
	for ops[p.peek().Kind] {
		op := p.advance()
		rhs, ok := next(commaAllowed)
		if !ok {
			return nil, false
		}
		lhs = ast.New(ast.Binary, op).Add(lhs, rhs)
	}
	return lhs, true
}

var (
	level14Ops = map[token.Kind]bool{token.PipePipe: true}
	level13Ops = map[token.Kind]bool{token.AmpAmp: true}
	level12Ops = map[token.Kind]bool{token.Pipe: true}
	level11Ops = map[token.Kind]bool{token.Caret: true}
	level10Ops = map[token.Kind]bool{token.Amp: true}
	level9Ops  = map[token.Kind]bool{token.EqEq: true, token.NotEq: true}
	level8Ops  = map[token.Kind]bool{token.LAngle: true, token.Le: true, token.RAngle: true, token.Ge: true}
	level7Ops  = map[token.Kind]bool{token.Spaceship: true}
	level6Ops  = map[token.Kind]bool{token.Shl: true, token.Shr: true}
	level5Ops  = map[token.Kind]bool{token.Plus: true, token.Minus: true}
	level4Ops  = map[token.Kind]bool{token.Star: true, token.Slash: true, token.Percent: true}
)

func (p *Parser) e14(c bool) (*ast.Node, bool) { return p.binaryLevel(p.e13, level14Ops, c) }
func (p *Parser) e13(c bool) (*ast.Node, bool) { return p.binaryLevel(p.e12, level13Ops, c) }
func (p *Parser) e12(c bool) (*ast.Node, bool) { return p.binaryLevel(p.e11, level12Ops, c) }
func (p *Parser) e11(c bool) (*ast.Node, bool) { return p.binaryLevel(p.e10, level11Ops, c) }
func (p *Parser) e10(c bool) (*ast.Node, bool) { return p.binaryLevel(p.e9, level10Ops, c) }
func (p *Parser) e9(c bool) (*ast.Node, bool)  { return p.binaryLevel(p.e8, level9Ops, c) }
func (p *Parser) e8(c bool) (*ast.Node, bool)  { return p.binaryLevel(p.e7, level8Ops, c) }
func (p *Parser) e7(c bool) (*ast.Node, bool)  { return p.binaryLevel(p.e6, level7Ops, c) }
func (p *Parser) e6(c bool) (*ast.Node, bool)  { return p.binaryLevel(p.e5, level6Ops, c) }
func (p *Parser) e5(c bool) (*ast.Node, bool)  { return p.binaryLevel(p.e4, level5Ops, c) }
func (p *Parser) e4(c bool) (*ast.Node, bool)  { return p.binaryLevel(p.e3, level4Ops, c) }

// e3 parses the unary/prefix level: ++, --, +, -, !, ~, cast<T>(e),
// sizeof(e), new, delete, falling through to e2 (postfix) when none of
// those apply.
func (p *Parser) e3(commaAllowed bool) (*ast.Node, bool) {
	switch p.peek().Kind {
	case token.PlusPlus:
		return p.prefixUnary(ast.PrefixInc, commaAllowed)
	case token.MinusMinus:
		return p.prefixUnary(ast.PrefixDec, commaAllowed)
	case token.Plus:
		return p.prefixUnary(ast.UnaryPlus, commaAllowed)
	case token.Minus:
		return p.prefixUnary(ast.UnaryMinus, commaAllowed)
	case token.Bang:
		return p.prefixUnary(ast.LogicalNot, commaAllowed)
	case token.Tilde:
		return p.prefixUnary(ast.BitwiseNot, commaAllowed)
	case token.Cast:
		return p.takeCast()
	case token.Sizeof:
		return p.takeSizeof()
	case token.New:
		return p.takeNew()
	case token.Delete:
		return p.prefixUnary(ast.Delete, commaAllowed)
	}
	return p.e2(commaAllowed)
}

func (p *Parser) prefixUnary(kind ast.Kind, commaAllowed bool) (*ast.Node, bool) {
	op := p.advance()
	operand, ok := p.e3(commaAllowed)
	if !ok {
		return nil, false
	}
	return ast.New(kind, op).Add(operand), true
}

// takeCast parses "cast" "<" Type ">" "(" Expression ")".
func (p *Parser) takeCast() (*ast.Node, bool) {
	return p.attempt("Cast", func() (*ast.Node, bool) {
		castTok, ok := p.expect(token.Cast)
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.LAngle); !ok {
			return nil, false
		}
		typ, ok := p.takeType(true)
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.RAngle); !ok {
			return nil, false
		}
		if _, ok := p.expect(token.LParen); !ok {
			return nil, false
		}
		expr, ok := p.e16(true)
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.RParen); !ok {
			return nil, false
		}
		return ast.New(ast.Cast, castTok).Add(typ, expr), true
	})
}

// takeSizeof parses "sizeof" "(" Expression ")".
func (p *Parser) takeSizeof() (*ast.Node, bool) {
	return p.attempt("Sizeof", func() (*ast.Node, bool) {
		sizeofTok, ok := p.expect(token.Sizeof)
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.LParen); !ok {
			return nil, false
		}
		expr, ok := p.e16(true)
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.RParen); !ok {
			return nil, false
		}
		return ast.New(ast.Sizeof, sizeofTok).Add(expr), true
	})
}

// takeNew parses "new" Type ("[" Expression "]" | "(" ArgList ")"?).
// The bracketed form builds ArrayNew; the parenthesized (or bare) form
// builds SingleNew.
func (p *Parser) takeNew() (*ast.Node, bool) {
	return p.attempt("New", func() (*ast.Node, bool) {
		newTok, ok := p.expect(token.New)
		if !ok {
			return nil, false
		}
		typ, ok := p.takeType(true)
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.LBracket); ok {
			size, ok := p.e16(true)
			if !ok {
				return nil, false
			}
			if _, ok := p.expect(token.RBracket); !ok {
				return nil, false
			}
			return ast.New(ast.ArrayNew, newTok).Add(typ, size), true
		}
		node := ast.New(ast.SingleNew, newTok).Add(typ)
		if _, ok := p.expect(token.LParen); ok {
			args, ok := p.takeArgList()
			if !ok {
				return nil, false
			}
			node.Add(args...)
			if _, ok := p.expect(token.RParen); !ok {
				return nil, false
			}
		}
		return node, true
	})
}

// takeArgList parses a comma-separated argument list up to (but not
// including) the closing delimiter, which the caller consumes. Each
// argument is parsed with commaAllowed=false, since here "," separates
// arguments rather than building a Comma expression (spec.md 8's
// if-expression-as-argument worked example depends on exactly this).
func (p *Parser) takeArgList() ([]*ast.Node, bool) {
	if p.at(token.RParen) {
		return nil, true
	}
	var args []*ast.Node
	for {
		arg, ok := p.e15(false)
		if !ok {
			return nil, false
		}
		args = append(args, arg)
		if _, ok := p.expect(token.Comma); ok {
			continue
		}
		break
	}
	return args, true
}

// e2 parses the postfix level: first trying a ConstructorCall (a Type
// immediately followed by "("), then falling back to an e1 base with a
// chain of postfix operators applied to it. A ConstructorCall's
// leading nonterminal is itself a Type, so the parser disambiguates it
// from an ordinary function call purely by whether the upcoming
// identifier resolves in the type namespace (spec.md 4.5, "Identifiers
// vs types").
func (p *Parser) e2(commaAllowed bool) (*ast.Node, bool) {
	if node, ok := p.tryConstructorCall(); ok {
		return p.postfixChain(node, commaAllowed)
	}
	base, ok := p.e1(commaAllowed)
	if !ok {
		return nil, false
	}
	return p.postfixChain(base, commaAllowed)
}

func (p *Parser) tryConstructorCall() (*ast.Node, bool) {
	return p.attempt("ConstructorCall", func() (*ast.Node, bool) {
		typ, ok := p.takeType(false)
		if !ok {
			return nil, false
		}
		lparen, ok := p.expect(token.LParen)
		if !ok {
			return nil, false
		}
		args, ok := p.takeArgList()
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.RParen); !ok {
			return nil, false
		}
		node := ast.New(ast.ConstructorCall, lparen).Add(typ)
		node.Add(args...)
		return node, true
	})
}

func (p *Parser) postfixChain(base *ast.Node, commaAllowed bool) (*ast.Node, bool) {
	for {
		switch p.peek().Kind {
		case token.LParen:
			lparen := p.advance()
			args, ok := p.takeArgList()
			if !ok {
				return nil, false
			}
			if _, ok := p.expect(token.RParen); !ok {
				return nil, false
			}
			call := ast.New(ast.FunctionCall, lparen).Add(base)
			call.Add(args...)
			base = call
		case token.LBracket:
			lbracket := p.advance()
			idx, ok := p.e16(true)
			if !ok {
				return nil, false
			}
			if _, ok := p.expect(token.RBracket); !ok {
				return nil, false
			}
			base = ast.New(ast.Subscript, lbracket).Add(base, idx)
		case token.Period:
			p.advance()
			member, ok := p.expect(token.Identifier)
			if !ok {
				return nil, false
			}
			base = ast.New(ast.AccessMember, member).Add(base)
		case token.PeriodStar:
			op := p.advance()
			base = ast.New(ast.Deref, op).Add(base)
		case token.PeriodAmp:
			op := p.advance()
			base = ast.New(ast.GetAddress, op).Add(base)
		case token.PlusPlus:
			op := p.advance()
			base = ast.New(ast.PostfixInc, op).Add(base)
		case token.MinusMinus:
			op := p.advance()
			base = ast.New(ast.PostfixDec, op).Add(base)
		default:
			return base, true
		}
	}
}

// e1 parses the "::" scope-resolution level, folding a chain of
// Identifier "::" Identifier into a single qualified Identifier node
// (mirroring how the type grammar joins a QualifiedName into one
// Lexeme).
func (p *Parser) e1(commaAllowed bool) (*ast.Node, bool) {
	base, ok := p.e0(commaAllowed)
	if !ok {
		return nil, false
	}
	for base.Kind == ast.Identifier && p.at(token.ColonColon) {
		p.advance()
		seg, ok := p.expect(token.Identifier)
		if !ok {
			return nil, false
		}
		joined := base.Tok
		joined.Lexeme += "::" + seg.Lexeme
		base = ast.New(ast.Identifier, joined)
	}
	return base, true
}

// e0 parses a primary expression: a parenthesized expression, an
// identifier, a number literal, or a string literal.
func (p *Parser) e0(commaAllowed bool) (*ast.Node, bool) {
	switch p.peek().Kind {
	case token.LParen:
		p.advance()
		inner, ok := p.e16(true)
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.RParen); !ok {
			return nil, false
		}
		return inner, true
	case token.Identifier:
		return ast.New(ast.Identifier, p.advance()), true
	case token.IntegerLiteral, token.FloatLiteral, token.CharLiteral:
		return ast.New(ast.Number, p.advance()), true
	case token.StringLiteral:
		return ast.New(ast.String, p.advance()), true
	}
	return nil, false
}
