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

// Package scanner implements a maximal-munch tokenizer for Mead source
// text: a fixed, prioritized rule set is tried against the remaining input
// on every step, the longest match wins, and ties are broken by the
// ordinal of the candidate's token.Kind (lower wins). This is the Go
// rendering of original_source's LexerRule/RegexLexerRule/LiteralLexerRule
// hierarchy (see DESIGN.md).
package scanner

import (
	"regexp"
	"sort"

	"github.com/heimskr/mead/errors"
	"github.com/heimskr/mead/token"
)

// rule is one entry in the scanner's prioritized rule table.
type rule interface {
	kind() token.Kind
	// attempt returns the matched prefix of input and whether it matched.
	attempt(input string) (match string, ok bool)
}

// regexRule matches one of the regex-flavored terminal classes: floating
// literal, integer literal, string literal, char literal, the integer-type
// family, and identifiers. Patterns are always anchored at the start of
// the remaining input, mirroring RE2::PartialMatch against a "^..." pattern
// in the original C++ lexer.
type regexRule struct {
	k token.Kind
	re *regexp.Regexp
}

func (r regexRule) kind() token.Kind { return r.k }

func (r regexRule) attempt(input string) (string, bool) {
	loc := r.re.FindStringIndex(input)
	if loc == nil || loc[0] != 0 {
		return "", false
	}
	return input[loc[0]:loc[1]], true
}

// literalRule matches a single fixed string: a keyword or a punctuation
// sequence.
type literalRule struct {
	k    token.Kind
	text string
}

func (r literalRule) kind() token.Kind { return r.k }

func (r literalRule) attempt(input string) (string, bool) {
	if len(input) >= len(r.text) && input[:len(r.text)] == r.text {
		return r.text, true
	}
	return "", false
}

var (
	floatPattern   = regexp.MustCompile(`^\d[\d']*\.\d+([eE][+-]?\d+)?`)
	integerPattern = regexp.MustCompile(`^((0[xX][0-9a-fA-F][0-9a-fA-F']*)|([1-9][0-9']*)|(0[0-7']*))`)
	stringPattern  = regexp.MustCompile(`^"(\\[\\0abefnrt"]|[^\\"])*"`)
	charPattern    = regexp.MustCompile(`^'(\\(x[0-9a-fA-F]{2}|[\\0abefnrt'])|[^\\'])'`)
	integerTypePattern = regexp.MustCompile(`^[iu](8|16|32|64)\b`)
	identifierPattern  = regexp.MustCompile(`^[\p{L}_][\p{L}\p{N}_]*`)
)

// punctuation lists every fixed operator/punctuation sequence, longest
// sequences sharing a prefix listed in no particular order since pure
// length always disambiguates them (e.g. "<=>" beats "<=" beats "<").
var punctuation = []literalRule{
	{token.ColonColon, "::"},
	{token.Colon, ":"},
	{token.Semicolon, ";"},
	{token.Comma, ","},
	{token.PeriodStar, ".*"},
	{token.PeriodAmp, ".&"},
	{token.Period, "."},
	{token.Arrow, "->"},

	{token.LParen, "("},
	{token.RParen, ")"},
	{token.LBrace, "{"},
	{token.RBrace, "}"},
	{token.LBracket, "["},
	{token.RBracket, "]"},

	{token.Spaceship, "<=>"},
	{token.ShlEq, "<<="},
	{token.ShrEq, ">>="},
	{token.Shl, "<<"},
	{token.Shr, ">>"},
	{token.Le, "<="},
	{token.Ge, ">="},
	{token.LAngle, "<"},
	{token.RAngle, ">"},

	{token.AmpAmpEq, "&&="},
	{token.PipePipeEq, "||="},
	{token.AmpAmp, "&&"},
	{token.PipePipe, "||"},
	{token.AmpEq, "&="},
	{token.CaretEq, "^="},
	{token.PipeEq, "|="},
	{token.Amp, "&"},
	{token.Pipe, "|"},
	{token.Caret, "^"},

	{token.PlusPlus, "++"},
	{token.MinusMinus, "--"},
	{token.PlusEq, "+="},
	{token.MinusEq, "-="},
	{token.StarEq, "*="},
	{token.SlashEq, "/="},
	{token.PercentEq, "%="},
	{token.Plus, "+"},
	{token.Minus, "-"},
	{token.Star, "*"},
	{token.Slash, "/"},
	{token.Percent, "%"},

	{token.EqEq, "=="},
	{token.NotEq, "!="},
	{token.Assign, "="},
	{token.Bang, "!"},
	{token.Tilde, "~"},
}

// Lexer tokenizes Mead source text one token at a time via Next, or in
// full via Lex. It holds no state beyond the current source position, so
// it may be reused across calls to Lex.
type Lexer struct {
	loc token.Position
	// Err, if set, receives lexical errors (illegal character sequences)
	// with the position of the first unmatched byte.
	Err errors.Handler
}

// NewLexer returns a Lexer positioned at line 1, column 1.
func NewLexer() *Lexer {
	return &Lexer{loc: token.Position{Line: 1, Column: 1}}
}

func (l *Lexer) rules() []rule {
	rules := []rule{
		regexRule{token.FloatLiteral, floatPattern},
		regexRule{token.IntegerLiteral, integerPattern},
		regexRule{token.StringLiteral, stringPattern},
		regexRule{token.CharLiteral, charPattern},
		regexRule{token.IntegerType, integerTypePattern},
	}
	for text, k := range token.Keywords() {
		rules = append(rules, literalRule{k, text})
	}
	rules = append(rules, regexRule{token.Identifier, identifierPattern})
	for _, p := range punctuation {
		rules = append(rules, p)
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i].kind() < rules[j].kind() })
	return rules
}

// Lex consumes the entire input, emitting a token stream terminated by an
// EOF token. It returns false if any non-whitespace suffix could not be
// matched by any rule; in that case the returned tokens are everything
// lexed up to that point (no EOF is appended).
func (l *Lexer) Lex(text string) ([]token.Token, bool) {
	var tokens []token.Token
	l.loc = token.Position{Line: 1, Column: 1}
	remaining := text
	for {
		remaining = l.advanceWhitespace(remaining)
		if remaining == "" {
			break
		}
		tok, ok := l.Next(&remaining)
		if !ok {
			return tokens, false
		}
		tokens = append(tokens, tok)
	}
	tokens = append(tokens, token.Token{Kind: token.EOF, Pos: l.loc})
	return tokens, true
}

// Next attempts to lex exactly one token from the front of *text,
// advancing *text and the lexer's internal position past it. It returns
// false (without consuming anything) if no rule matches.
func (l *Lexer) Next(text *string) (token.Token, bool) {
	input := *text
	if input == "" {
		return token.Token{}, false
	}

	rules := l.rules()

	var bestMatch string
	var bestKind token.Kind = token.Invalid
	found := false
	for _, r := range rules {
		match, ok := r.attempt(input)
		if !ok || match == "" {
			continue
		}
		if !found || len(match) > len(bestMatch) {
			bestMatch, bestKind, found = match, r.kind(), true
		}
		// rules are already sorted by ascending Kind ordinal, so the
		// first rule seen with the longest length wins any tie.
	}

	if !found {
		if l.Err != nil {
			l.Err(l.loc, "unrecognized token starting with %q", []interface{}{string(firstRune(input))})
		}
		return token.Token{}, false
	}

	startPos := l.loc
	l.advance(bestMatch)
	*text = input[len(bestMatch):]
	return token.Token{Kind: bestKind, Lexeme: bestMatch, Pos: startPos}, true
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}

// advance moves the lexer's position past consumed, character by
// character, resetting the column on every newline.
func (l *Lexer) advance(consumed string) {
	for _, ch := range consumed {
		l.loc = l.loc.Advance(ch)
	}
}

// advanceWhitespace skips leading whitespace in input, advancing the
// lexer's position, and returns the remainder.
func (l *Lexer) advanceWhitespace(input string) string {
	i := 0
	for i < len(input) {
		ch := rune(input[i])
		if ch != ' ' && ch != '\t' && ch != '\n' && ch != '\r' && ch != '\v' && ch != '\f' {
			break
		}
		l.loc = l.loc.Advance(ch)
		i++
	}
	return input[i:]
}
