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

package scanner_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/heimskr/mead/scanner"
	"github.com/heimskr/mead/token"
)

type elt struct {
	kind token.Kind
	lit  string
}

func kindsAndLits(toks []token.Token) []elt {
	out := make([]elt, len(toks))
	for i, t := range toks {
		out[i] = elt{t.Kind, t.Lexeme}
	}
	return out
}

func TestLexBasics(t *testing.T) {
	src := `u8 foo = 0x42;`
	l := scanner.NewLexer()
	toks, ok := l.Lex(src)
	if !ok {
		t.Fatalf("Lex(%q) failed", src)
	}
	want := []elt{
		{token.IntegerType, "u8"},
		{token.Identifier, "foo"},
		{token.Assign, "="},
		{token.IntegerLiteral, "0x42"},
		{token.Semicolon, ";"},
		{token.EOF, ""},
	}
	if diff := cmp.Diff(want, kindsAndLits(toks)); diff != "" {
		t.Errorf("Lex(%q) mismatch (-want +got):\n%s", src, diff)
	}
}

func TestLexKeywordsWinOverIdentifier(t *testing.T) {
	for _, kw := range []string{"fn", "const", "new", "delete", "sizeof", "if", "else", "return", "void", "cast"} {
		l := scanner.NewLexer()
		toks, ok := l.Lex(kw)
		if !ok || len(toks) != 2 {
			t.Fatalf("Lex(%q) = %v, %v", kw, toks, ok)
		}
		if toks[0].Kind == token.Identifier {
			t.Errorf("Lex(%q) tokenized as Identifier, want a keyword Kind", kw)
		}
		if toks[0].Lexeme != kw {
			t.Errorf("Lex(%q).Lexeme = %q", kw, toks[0].Lexeme)
		}
	}
}

func TestLexLongestMatch(t *testing.T) {
	src := "<<="
	l := scanner.NewLexer()
	toks, ok := l.Lex(src)
	if !ok {
		t.Fatalf("Lex(%q) failed", src)
	}
	if len(toks) != 2 || toks[0].Kind != token.ShlEq {
		t.Fatalf("Lex(%q) = %+v, want single ShlEq token", src, toks)
	}
}

func TestLexEmptyInput(t *testing.T) {
	l := scanner.NewLexer()
	toks, ok := l.Lex("")
	if !ok {
		t.Fatalf("Lex(\"\") failed")
	}
	if len(toks) != 1 || toks[0].Kind != token.EOF {
		t.Fatalf("Lex(\"\") = %+v, want just EOF", toks)
	}
}

func TestLexLineColumnTracking(t *testing.T) {
	src := "a\nbb"
	l := scanner.NewLexer()
	toks, ok := l.Lex(src)
	if !ok {
		t.Fatalf("Lex(%q) failed", src)
	}
	if toks[0].Pos != (token.Position{Line: 1, Column: 1}) {
		t.Errorf("toks[0].Pos = %v", toks[0].Pos)
	}
	if toks[1].Pos != (token.Position{Line: 2, Column: 1}) {
		t.Errorf("toks[1].Pos = %v", toks[1].Pos)
	}
}

func TestLexIllegalCharacterFails(t *testing.T) {
	src := "foo $ bar"
	l := scanner.NewLexer()
	var gotPos token.Position
	l.Err = func(pos token.Position, msg string, args []interface{}) {
		gotPos = pos
	}
	toks, ok := l.Lex(src)
	if ok {
		t.Fatalf("Lex(%q) succeeded, want failure", src)
	}
	if len(toks) != 1 || toks[0].Kind != token.Identifier {
		t.Fatalf("Lex(%q) = %+v", src, toks)
	}
	if gotPos.Column != 5 {
		t.Errorf("error position column = %d, want 5", gotPos.Column)
	}
}

func TestLexStringAndCharLiterals(t *testing.T) {
	src := `"hello\n" 'a' '\x41'`
	l := scanner.NewLexer()
	toks, ok := l.Lex(src)
	if !ok {
		t.Fatalf("Lex(%q) failed", src)
	}
	want := []elt{
		{token.StringLiteral, `"hello\n"`},
		{token.CharLiteral, `'a'`},
		{token.CharLiteral, `'\x41'`},
		{token.EOF, ""},
	}
	if diff := cmp.Diff(want, kindsAndLits(toks)); diff != "" {
		t.Errorf("Lex(%q) mismatch (-want +got):\n%s", src, diff)
	}
}

func TestLexFloatVsIntVsPeriod(t *testing.T) {
	src := "1.5 42 foo.bar"
	l := scanner.NewLexer()
	toks, ok := l.Lex(src)
	if !ok {
		t.Fatalf("Lex(%q) failed", src)
	}
	want := []elt{
		{token.FloatLiteral, "1.5"},
		{token.IntegerLiteral, "42"},
		{token.Identifier, "foo"},
		{token.Period, "."},
		{token.Identifier, "bar"},
		{token.EOF, ""},
	}
	if diff := cmp.Diff(want, kindsAndLits(toks)); diff != "" {
		t.Errorf("Lex(%q) mismatch (-want +got):\n%s", src, diff)
	}
}
