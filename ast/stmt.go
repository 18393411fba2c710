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

package ast

import (
	"fmt"

	"github.com/heimskr/mead/errors"
	"github.com/heimskr/mead/scope"
)

// Emitter is the only surface Compile needs from the downstream
// compiler/IR layer: one line of generated text per emitted
// instruction. Mirrors original_source's Compiler.h, whose
// CompilerResult is itself a plain string, so code generation beyond
// this file is genuinely out of scope (spec.md's Non-goals exclude
// "concrete machine-code generation"); the core depends on the IR layer
// only through this interface, never the reverse.
type Emitter interface {
	Emit(line string)
}

// Compile walks the statement (or top-level declaration) rooted at n,
// type-checking expressions against sc and emitting one line of
// pseudo-instruction text per side effect via out. It returns the first
// error encountered, matching spec.md 7's fail-fast diagnostic model.
func (n *Node) Compile(sc *scope.Scope, out Emitter) error {
	switch n.Kind {
	case Block:
		inner := sc.Child()
		for _, c := range n.Children() {
			if err := c.Compile(inner, out); err != nil {
				return err
			}
		}
		return nil

	case ExpressionStatement:
		expr := n.Child(0)
		if _, err := expr.TypeOf(sc); err != nil {
			return err
		}
		out.Emit(Render(expr) + ";")
		return nil

	case VariableDeclaration:
		typ, err := n.Child(0).ToType(sc.Namespace)
		if err != nil {
			return err
		}
		if !sc.InsertVariable(n.Tok.Lexeme, &scope.Variable{Name: n.Tok.Lexeme, Type: typ}) {
			return errors.NewPosf(n.Tok.Pos, "redeclaration of %q in this scope", n.Tok.Lexeme)
		}
		out.Emit(fmt.Sprintf("declare %s: %s", n.Tok.Lexeme, typ))
		return nil

	case VariableDefinition:
		decl, value := n.Child(0), n.Child(1)
		typ, err := decl.Child(0).ToType(sc.Namespace)
		if err != nil {
			return err
		}
		valueType, err := value.TypeOf(sc)
		if err != nil {
			return err
		}
		if !valueType.IsConvertibleTo(typ) {
			return errors.NewPosf(n.Tok.Pos, "cannot initialize %s with value of type %s", typ, valueType)
		}
		if !sc.InsertVariable(decl.Tok.Lexeme, &scope.Variable{Name: decl.Tok.Lexeme, Type: typ}) {
			return errors.NewPosf(n.Tok.Pos, "redeclaration of %q in this scope", decl.Tok.Lexeme)
		}
		out.Emit(fmt.Sprintf("%s: %s = %s", decl.Tok.Lexeme, typ, Render(value)))
		return nil

	case IfStatement:
		cond := n.Child(0)
		if _, err := cond.TypeOf(sc); err != nil {
			return err
		}
		out.Emit("if " + Render(cond) + " {")
		if err := n.Child(1).Compile(sc, out); err != nil {
			return err
		}
		if len(n.Children()) == 3 {
			out.Emit("} else {")
			if err := n.Child(2).Compile(sc, out); err != nil {
				return err
			}
		}
		out.Emit("}")
		return nil

	case ReturnStatement:
		expr := n.Child(0)
		if _, err := expr.TypeOf(sc); err != nil {
			return err
		}
		out.Emit("return " + Render(expr) + ";")
		return nil

	case EmptyStatement:
		return nil

	case FunctionPrototype:
		return nil

	case FunctionDeclaration:
		return n.Child(0).Compile(sc, out)

	case FunctionDefinition:
		proto := n.Child(0)
		fnScope := sc.Child()
		for _, param := range proto.Children()[2:] {
			paramType, err := param.Child(0).ToType(sc.Namespace)
			if err != nil {
				return err
			}
			if !fnScope.InsertVariable(param.Tok.Lexeme, &scope.Variable{Name: param.Tok.Lexeme, Type: paramType}) {
				return errors.NewPosf(param.Tok.Pos, "redeclaration of parameter %q", param.Tok.Lexeme)
			}
		}
		out.Emit("fn " + proto.Child(0).Tok.Lexeme + " {")
		if err := n.Child(1).Compile(fnScope, out); err != nil {
			return err
		}
		out.Emit("}")
		return nil
	}
	return errors.NewPosf(n.Tok.Pos, "%s cannot be compiled as a statement", n.Kind)
}
