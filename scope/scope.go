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

package scope

import "github.com/heimskr/mead/types"

// Variable is a single lexically-scoped binding: its name and declared
// type (constness, if any, is carried by the type's const flag).
type Variable struct {
	Name string
	Type *types.Type
}

// Scope is a node in the lexical scope tree: a block's variables plus a
// link to its enclosing scope. The Namespace a Scope resolves types and
// functions through is carried alongside it rather than duplicated per
// Scope, matching original_source's Scope holding a weak Program
// pointer for that purpose.
type Scope struct {
	Parent    *Scope
	Namespace *Namespace
	Depth     int

	variables map[string]*Variable
}

// NewRootScope returns a depth-0 scope with no parent, resolving types
// and functions through ns.
func NewRootScope(ns *Namespace) *Scope {
	return &Scope{Namespace: ns, variables: map[string]*Variable{}}
}

// Child returns a new scope nested one level inside s, inheriting its
// Namespace.
func (s *Scope) Child() *Scope {
	return &Scope{
		Parent:    s,
		Namespace: s.Namespace,
		Depth:     s.Depth + 1,
		variables: map[string]*Variable{},
	}
}

// InsertVariable binds name to v in s's own table. It fails (returns
// false) if name is already bound in this exact scope — shadowing an
// outer scope's variable is allowed, redeclaring within the same block
// is not.
func (s *Scope) InsertVariable(name string, v *Variable) bool {
	if _, exists := s.variables[name]; exists {
		return false
	}
	s.variables[name] = v
	return true
}

// Variable looks up name in s, then each enclosing scope in turn,
// returning the nearest binding.
func (s *Scope) Variable(name string) (*Variable, bool) {
	for cur := s; cur != nil; cur = cur.Parent {
		if v, ok := cur.variables[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// OwnVariable looks up name only in s's own table, not its ancestors.
func (s *Scope) OwnVariable(name string) (*Variable, bool) {
	v, ok := s.variables[name]
	return v, ok
}
