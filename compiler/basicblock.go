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

// BasicBlock is one straight-line run of emitted instructions within a
// Function, with bidirectional edges to the blocks that can precede or
// follow it. Grounded on original_source/include/mead/BasicBlock.h
// (Function* parent, a WeakSet in/out pair, a std::list of
// LLVMInstruction); Mead's front end stops at textual emission rather
// than real instruction selection (spec.md's Non-goals exclude
// "concrete machine-code generation"), so "instructions" here are the
// same rendered text lines ast.Node.Compile produces via Emit, not an
// LLVMInstruction hierarchy.
type BasicBlock struct {
	parent *Function
	in     map[*BasicBlock]struct{}
	out    map[*BasicBlock]struct{}
	lines  []string
}

func newBasicBlock(parent *Function) *BasicBlock {
	return &BasicBlock{
		parent: parent,
		in:     map[*BasicBlock]struct{}{},
		out:    map[*BasicBlock]struct{}{},
	}
}

// Emit implements ast.Emitter: Node.Compile calls this once per
// emitted pseudo-instruction line.
func (b *BasicBlock) Emit(line string) {
	b.lines = append(b.lines, line)
}

// ConnectTo records a directed edge from b to other, updating both
// sides' in/out sets. Mirrors BasicBlock::connectTo.
func (b *BasicBlock) ConnectTo(other *BasicBlock) {
	b.out[other] = struct{}{}
	other.in[b] = struct{}{}
}

// Disconnect removes any edge between b and other in either direction.
// Mirrors BasicBlock::disconnect ("Removes this block from the in/out
// sets of the other and vice versa").
func (b *BasicBlock) Disconnect(other *BasicBlock) {
	delete(b.out, other)
	delete(b.in, other)
	delete(other.out, b)
	delete(other.in, b)
}

// Lines returns the block's emitted text, in emission order.
func (b *BasicBlock) Lines() []string { return append([]string(nil), b.lines...) }
