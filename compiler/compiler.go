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

package compiler

import (
	"strings"

	"github.com/heimskr/mead/ast"
	"github.com/heimskr/mead/errors"
	"github.com/heimskr/mead/scope"
	"github.com/heimskr/mead/types"
)

// Compiler walks a program's top-level declarations, dispatching each
// into compileGlobalVariable or compileFunction and aggregating the
// rendered output. It stops at the first error, mirroring
// original_source's CompilerResult (a std::expected carrying at most
// one CompilerError).
type Compiler struct {
	ns        *scope.Namespace
	Functions []*Function
}

// New returns a Compiler resolving types and functions through ns.
func New(ns *scope.Namespace) *Compiler {
	return &Compiler{ns: ns}
}

// Compile processes every top-level node in program order and returns
// the aggregated rendered text on success.
func (c *Compiler) Compile(nodes []*ast.Node) (string, error) {
	sc := scope.NewRootScope(c.ns)
	var out strings.Builder
	for _, n := range nodes {
		switch n.Kind {
		case ast.VariableDeclaration, ast.VariableDefinition:
			if err := c.compileGlobalVariable(sc, n, &out); err != nil {
				return "", err
			}
		case ast.FunctionDeclaration, ast.FunctionDefinition:
			if err := c.compileFunction(sc, n, &out); err != nil {
				return "", err
			}
		default:
			return "", errors.NewPosf(n.Pos(), "unexpected top-level node %s", n.Kind)
		}
	}
	return out.String(), nil
}

// linesEmitter is the plain ast.Emitter used for declarations that
// aren't part of a Function's basic-block graph (top-level globals).
type linesEmitter struct{ lines []string }

func (e *linesEmitter) Emit(line string) { e.lines = append(e.lines, line) }

func (c *Compiler) compileGlobalVariable(sc *scope.Scope, n *ast.Node, out *strings.Builder) error {
	emitter := &linesEmitter{}
	if err := n.Compile(sc, emitter); err != nil {
		return err
	}
	for _, line := range emitter.lines {
		out.WriteString(line)
		out.WriteByte('\n')
	}
	return nil
}

// functionPrototype returns n's FunctionPrototype child regardless of
// whether n is a FunctionDeclaration or a FunctionDefinition.
func functionPrototype(n *ast.Node) *ast.Node { return n.Child(0) }

func (c *Compiler) compileFunction(sc *scope.Scope, n *ast.Node, out *strings.Builder) error {
	proto := functionPrototype(n)
	name := proto.Child(0).Tok.Lexeme
	retType, err := proto.Child(1).ToType(c.ns)
	if err != nil {
		return err
	}
	var argTypes []*types.Type
	for _, param := range proto.Children()[2:] {
		t, err := param.Child(0).ToType(c.ns)
		if err != nil {
			return err
		}
		argTypes = append(argTypes, t)
	}

	c.ns.InsertFunction(&scope.FunctionSignature{Name: name, ReturnType: retType, Params: argTypes})
	fn := NewFunction(name, retType, argTypes)
	c.Functions = append(c.Functions, fn)

	if n.Kind == ast.FunctionDeclaration {
		return nil
	}

	block := fn.NewBlock()
	if err := n.Compile(sc, block); err != nil {
		return err
	}
	for _, line := range block.Lines() {
		out.WriteString(line)
		out.WriteByte('\n')
	}
	return nil
}
