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

// Package compiler dispatches a parsed program's top-level declarations
// into Functions and global variables, driving ast.Node.Compile and
// aggregating its emitted text. Grounded on original_source's Compiler
// (compile/compileGlobalVariable/compileFunction), Function (name,
// return type, argument types) and BasicBlock (a block's in/out edges
// plus its emitted instruction list); see DESIGN.md.
package compiler

import "github.com/heimskr/mead/types"

// Function is a compiled function's signature plus the basic blocks
// emitted for its body (empty for a declaration-only prototype).
// Grounded on original_source/include/mead/Function.h.
type Function struct {
	Name          string
	ReturnType    *types.Type
	ArgumentTypes []*types.Type
	Blocks        []*BasicBlock
}

// NewFunction returns a Function with no blocks yet.
func NewFunction(name string, returnType *types.Type, argumentTypes []*types.Type) *Function {
	return &Function{Name: name, ReturnType: returnType, ArgumentTypes: argumentTypes}
}

// NewBlock appends and returns a fresh BasicBlock belonging to f.
func (f *Function) NewBlock() *BasicBlock {
	b := newBasicBlock(f)
	f.Blocks = append(f.Blocks, b)
	return b
}
