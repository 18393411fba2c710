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

// Package parser implements Mead's recursive-descent, operator-precedence
// parser: a flat token slice in, a forest of top-level ast.Node values
// out. Grounded on cue/parser/parser.go for the one-token-lookahead
// cursor shape (next/p.tok/p.lit, an always-advance scanner run up
// front rather than fed lazily) and on original_source/src/Parser.cpp
// for the grammar itself, the Saver-style backtracking (here, a plain
// saved token index restored on failure) and the takeXxx naming
// convention (see DESIGN.md).
package parser

import (
	"github.com/heimskr/mead/ast"
	"github.com/heimskr/mead/scope"
	"github.com/heimskr/mead/token"
)

// Parser parses a fixed slice of tokens produced by the scanner, in the
// context of a namespace it consults to decide whether an identifier
// names a type (needed to disambiguate ConstructorCall from
// FunctionCall, and to parse BaseType at all).
type Parser struct {
	toks []token.Token
	pos  int
	ns   *scope.Namespace

	tr trace
}

// New returns a Parser over toks (normally ending with a token.EOF
// token, as scanner.Lexer.Lex produces; reading past the end of toks
// also yields EOF), resolving type names through ns.
func New(toks []token.Token, ns *scope.Namespace) *Parser {
	return &Parser{toks: toks, ns: ns}
}

func (p *Parser) peek() token.Token {
	if p.pos >= len(p.toks) {
		return token.Token{Kind: token.EOF}
	}
	return p.toks[p.pos]
}

// peekAt looks offset tokens ahead of the cursor without consuming
// anything, used for the two-token lookahead that distinguishes a
// TypedVar statement ("x: i32") from an expression statement starting
// with the same identifier.
func (p *Parser) peekAt(offset int) token.Token {
	idx := p.pos + offset
	if idx < 0 || idx >= len(p.toks) {
		return token.Token{Kind: token.EOF}
	}
	return p.toks[idx]
}

func (p *Parser) at(k token.Kind) bool { return p.peek().Kind == k }

func (p *Parser) advance() token.Token {
	t := p.peek()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

// expect consumes the next token if it matches k, reporting whether it
// did. It never itself restores the cursor; callers that need to
// backtrack on failure do so through attempt or their own saved mark.
func (p *Parser) expect(k token.Kind) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	return token.Token{}, false
}

// Parse consumes every top-level item in the token stream, stopping at
// the first one that fails to parse. It returns the nodes parsed so
// far, the token the failure occurred at (the zero Token on full
// success), and whether parsing reached EOF cleanly. This mirrors
// original_source's Parser::parse, which likewise returns everything
// parsed up to the first failure rather than discarding it, so partial
// programs can still be reported on.
func (p *Parser) Parse() ([]*ast.Node, token.Token, bool) {
	var nodes []*ast.Node
	for !p.at(token.EOF) {
		if p.at(token.Semicolon) {
			p.advance()
			continue
		}
		node, ok := p.takeTopItem()
		if !ok {
			return nodes, p.peek(), false
		}
		nodes = append(nodes, node)
	}
	return nodes, token.Token{}, true
}

// ParseExpression parses a single expression honoring commaAllowed,
// without requiring a surrounding statement or declaration. Exposed for
// contexts that evaluate one expression at a time, such as a REPL
// front end built on top of this package.
func (p *Parser) ParseExpression(commaAllowed bool) (*ast.Node, bool) {
	return p.e16(commaAllowed)
}

// takeTopItem parses one Program item: a function (prototype,
// declaration or definition) or a top-level variable (declaration or
// definition). The "fn" keyword unambiguously selects the function
// branch; everything else must be a TypedVar.
func (p *Parser) takeTopItem() (*ast.Node, bool) {
	if p.at(token.Fn) {
		return p.takeFunctionDeclOrDef()
	}
	return p.takeVariableDeclOrDef()
}
