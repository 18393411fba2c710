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

package compiler_test

import (
	"strings"
	"testing"

	"github.com/heimskr/mead/compiler"
	"github.com/heimskr/mead/parser"
	"github.com/heimskr/mead/scanner"
	"github.com/heimskr/mead/scope"
	"github.com/heimskr/mead/types"
)

func compileSource(t *testing.T, src string) (string, error) {
	t.Helper()
	toks, ok := scanner.NewLexer().Lex(src)
	if !ok {
		t.Fatalf("Lex(%q) failed", src)
	}
	ns := scope.NewNamespace()
	for name, typ := range types.DefaultTable() {
		ns.InsertType(name, typ)
	}
	nodes, errTok, ok := parser.New(toks, ns).Parse()
	if !ok {
		t.Fatalf("Parse(%q) failed at %v", src, errTok)
	}
	return compiler.New(ns).Compile(nodes)
}

func TestCompileFunctionEmitsReturn(t *testing.T) {
	out, err := compileSource(t, "fn main() -> i32 { return -42; }")
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if !strings.Contains(out, "fn main {") || !strings.Contains(out, "return -42;") {
		t.Errorf("Compile() = %q, missing expected lines", out)
	}
}

func TestCompileFunctionParametersAreVisibleInBody(t *testing.T) {
	out, err := compileSource(t, "fn add(a: i32, b: i32) -> i32 { return a + b; }")
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if !strings.Contains(out, "return a + b;") {
		t.Errorf("Compile() = %q, want parameters usable in the body", out)
	}
}

func TestCompileRejectsUndeclaredIdentifier(t *testing.T) {
	if _, err := compileSource(t, "fn f() { return missing; }"); err == nil {
		t.Fatalf("Compile() should fail referencing an undeclared identifier")
	}
}

func TestCompileGlobalVariableDefinition(t *testing.T) {
	out, err := compileSource(t, "count: i32 = 3 + 4;")
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if !strings.Contains(out, "count: i32 = 3 + 4") {
		t.Errorf("Compile() = %q, want the rendered global definition", out)
	}
}

func TestCompileRejectsNarrowingInitializer(t *testing.T) {
	// 70000 needs i32; initializing an i8 with it should fail conversion.
	if _, err := compileSource(t, "x: i8 = 70000;"); err == nil {
		t.Fatalf("Compile() should reject a narrowing initializer")
	}
}
