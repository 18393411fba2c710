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

// Package scope holds the two compile-time lookup trees the semantic
// core consults: Namespace (qualified names: types, functions and
// sub-namespaces) and Scope (lexical: variables). Grounded on
// original_source's Namespace.h/Namespace.cpp and Scope.h/Scope.cpp.
package scope

import "github.com/heimskr/mead/types"

// Namespace is a node in the compile-time namespace tree. The global
// namespace has an empty Name and a nil Parent.
type Namespace struct {
	Name   string
	Parent *Namespace

	children  map[string]*Namespace
	typeTable map[string]*types.Type
	functions map[string][]*FunctionSignature
}

// FunctionSignature records one overload of a declared function, enough
// to support overload resolution later.
type FunctionSignature struct {
	Name       string
	ReturnType *types.Type
	Params     []*types.Type
}

// NewNamespace returns a freshly initialized root (global) namespace.
func NewNamespace() *Namespace {
	return &Namespace{
		children:  map[string]*Namespace{},
		typeTable: map[string]*types.Type{},
		functions: map[string][]*FunctionSignature{},
	}
}

// FullName returns the "::"-joined path from the root to n, e.g.
// "foo::bar". The global namespace's FullName is "".
func (n *Namespace) FullName() string {
	if n.Parent == nil {
		return n.Name
	}
	parent := n.Parent.FullName()
	if parent == "" {
		return n.Name
	}
	return parent + "::" + n.Name
}

// Child looks up an immediate sub-namespace by name, returning nil if
// absent.
func (n *Namespace) Child(name string) *Namespace {
	return n.children[name]
}

// ChildOrCreate returns the immediate sub-namespace named name, creating
// it (empty) if it does not yet exist.
func (n *Namespace) ChildOrCreate(name string) *Namespace {
	if c, ok := n.children[name]; ok {
		return c
	}
	c := &Namespace{
		Name:      name,
		Parent:    n,
		children:  map[string]*Namespace{},
		typeTable: map[string]*types.Type{},
		functions: map[string][]*FunctionSignature{},
	}
	n.children[name] = c
	return c
}

// Resolve walks a "::"-separated qualified name (e.g. "foo::bar") down
// from n, returning the namespace it names. An empty leading segment
// ("::foo") is not supported; qualified names are always resolved
// relative to the namespace they're looked up from, per spec.md's
// Namespace model.
func (n *Namespace) Resolve(path []string) *Namespace {
	cur := n
	for _, seg := range path {
		cur = cur.Child(seg)
		if cur == nil {
			return nil
		}
	}
	return cur
}

// InsertType adds a named type to n's type table. It fails (returns
// false, idempotently) if the name is already bound.
func (n *Namespace) InsertType(name string, t *types.Type) bool {
	if _, exists := n.typeTable[name]; exists {
		return false
	}
	n.typeTable[name] = t
	return true
}

// Type looks up a type by unqualified name in n's own table (not its
// ancestors or descendants).
func (n *Namespace) Type(name string) (*types.Type, bool) {
	t, ok := n.typeTable[name]
	return t, ok
}

// LookupType resolves name by searching n, then each ancestor in turn,
// matching the lexical-scoping convention used for unqualified type
// names in spec.md's Type grammar.
func (n *Namespace) LookupType(name string) (*types.Type, bool) {
	for cur := n; cur != nil; cur = cur.Parent {
		if t, ok := cur.typeTable[name]; ok {
			return t, true
		}
	}
	return nil, false
}

// InsertFunction records a function overload under name. Unlike types
// and sub-namespaces, functions are never idempotent-failing: Mead
// allows overloading, so every call appends a new signature. Callers
// that need to reject exact-signature redeclaration should check
// Functions(name) themselves.
func (n *Namespace) InsertFunction(sig *FunctionSignature) {
	n.functions[sig.Name] = append(n.functions[sig.Name], sig)
}

// Functions returns every overload recorded under name in n's own
// table.
func (n *Namespace) Functions(name string) []*FunctionSignature {
	return n.functions[name]
}
