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

// Package types implements Mead's type model: the variant set of Int,
// Void, Pointer, LReference and Class types, each carrying a const flag,
// plus the equivalence and convertibility rules the semantic core queries
// while type-checking. Grounded on original_source's Type.h/Type.cpp and
// TypeDB.cpp (see DESIGN.md).
package types

import "fmt"

// Kind discriminates the type variants.
type Kind int

const (
	Invalid Kind = iota
	Int
	Void
	Pointer
	LReference
	Class
)

// Type is a single Mead type. Only the fields relevant to its Kind are
// meaningful; see the Kind-specific accessors below.
type Type struct {
	kind Kind

	// Int
	bitWidth int
	signed   bool

	// Pointer, LReference
	sub *Type

	// Class
	name      string
	namespace string
	fields    map[string]*Type

	constFlag bool
}

// NewInt returns an integer type of the given bit width and signedness.
func NewInt(bitWidth int, signed bool) *Type {
	return &Type{kind: Int, bitWidth: bitWidth, signed: signed}
}

// NewVoid returns the void type.
func NewVoid() *Type { return &Type{kind: Void} }

// NewPointer returns a pointer type to sub.
func NewPointer(sub *Type) *Type { return &Type{kind: Pointer, sub: sub} }

// NewLReference returns an l-value reference type to sub. Per spec.md,
// references to references collapse: NewLReference never wraps another
// LReference, it wraps that reference's subtype instead.
func NewLReference(sub *Type) *Type {
	if sub != nil && sub.kind == LReference {
		sub = sub.sub
	}
	return &Type{kind: LReference, sub: sub}
}

// NewClass returns a named class type belonging to namespace (its fully
// qualified namespace name, "" for the global namespace).
func NewClass(name, namespace string) *Type {
	return &Type{kind: Class, name: name, namespace: namespace, fields: map[string]*Type{}}
}

func (t *Type) Kind() Kind { return t.kind }

// IsConst reports whether t is const-qualified.
func (t *Type) IsConst() bool { return t.constFlag }

// SetConst returns a copy of t with its const flag set to v.
func (t *Type) SetConst(v bool) *Type {
	c := t.Copy()
	c.constFlag = v
	return c
}

// Copy returns a shallow copy of t (sub/fields are shared, not deep
// copied; the type graph is otherwise immutable once built).
func (t *Type) Copy() *Type {
	c := *t
	return &c
}

func (t *Type) BitWidth() int  { return t.bitWidth }
func (t *Type) Signed() bool   { return t.signed }
func (t *Type) Sub() *Type     { return t.sub }
func (t *Type) Name() string   { return t.name }
func (t *Type) Namespace() string { return t.namespace }

// Fields returns the Class type's member table, keyed by field name. It
// is nil for non-Class types.
func (t *Type) Fields() map[string]*Type { return t.fields }

// AddField inserts a field into a Class type's table. It fails (returns
// false) if the field already exists, matching the idempotent-failing
// insert semantics used throughout Namespace and Scope.
func (t *Type) AddField(name string, typ *Type) bool {
	if t.kind != Class {
		return false
	}
	if _, exists := t.fields[name]; exists {
		return false
	}
	t.fields[name] = typ
	return true
}

// Dereference returns an l-value reference to the pointee of a Pointer
// type (dereferencing a pointer yields an addressable l-value), or nil
// if t is not a Pointer.
func (t *Type) Dereference() *Type {
	if t.kind != Pointer {
		return nil
	}
	return NewLReference(t.sub)
}

// UnwrapLReference returns the referent of an LReference type, or t
// itself if t is not an LReference.
func (t *Type) UnwrapLReference() *Type {
	if t.kind != LReference {
		return t
	}
	return t.sub
}

// IsExactlyEquivalent reports whether t and other denote the same type.
// If ignoreConst is true, const qualification is not compared.
func (t *Type) IsExactlyEquivalent(other *Type, ignoreConst bool) bool {
	if t == nil || other == nil {
		return t == other
	}
	if !ignoreConst && t.constFlag != other.constFlag {
		return false
	}
	if t.kind != other.kind {
		return false
	}
	switch t.kind {
	case Int:
		return t.bitWidth == other.bitWidth && t.signed == other.signed
	case Void:
		return true
	case Pointer:
		return t.sub.IsExactlyEquivalent(other.sub, ignoreConst)
	case LReference:
		return t.sub.IsExactlyEquivalent(other.sub, ignoreConst)
	case Class:
		return t.name == other.name && t.namespace == other.namespace
	case Invalid:
		return true
	}
	return false
}

// IsConvertibleTo reports whether a value of type t can convert to
// other: implicit widening between integer types of the same signedness
// (narrower -> wider, never narrowing), any integer to a wider-or-equal
// integer of the same sign, identical types, and pointer-to-const-T
// accepting pointer-to-T (never the reverse). Grounded on
// original_source/src/node/Binary.cpp's common-type algorithm.
func (t *Type) IsConvertibleTo(other *Type) bool {
	if t == nil || other == nil {
		return false
	}
	switch t.kind {
	case Int:
		if other.kind != Int {
			return false
		}
		if t.signed != other.signed {
			return false
		}
		return t.bitWidth <= other.bitWidth
	case Pointer, LReference:
		if other.kind != t.kind {
			return false
		}
		if !other.sub.constFlag && t.sub.constFlag {
			return false
		}
		return t.sub.IsExactlyEquivalent(other.sub, true)
	}
	return t.IsExactlyEquivalent(other, true)
}

// String renders the canonical textual form of t, e.g. "i32", "u8 const*",
// "foo::Bar&".
func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	var s string
	switch t.kind {
	case Invalid:
		s = "<invalid>"
	case Void:
		s = "void"
	case Int:
		prefix := "i"
		if !t.signed {
			prefix = "u"
		}
		s = fmt.Sprintf("%s%d", prefix, t.bitWidth)
	case Pointer:
		s = t.sub.String() + "*"
	case LReference:
		s = t.sub.String() + "&"
	case Class:
		if t.namespace != "" {
			s = t.namespace + "::" + t.name
		} else {
			s = t.name
		}
	default:
		s = "?"
	}
	if t.constFlag && t.kind != Invalid {
		s += " const"
	}
	return s
}

// DefaultTable returns the built-in primitive type table: void plus the
// i8/u8/i16/u16/i32/u32/i64/u64 family, matching original_source's
// TypeDB default population.
func DefaultTable() map[string]*Type {
	table := map[string]*Type{
		"void": NewVoid(),
	}
	for _, bits := range []int{8, 16, 32, 64} {
		table[fmt.Sprintf("i%d", bits)] = NewInt(bits, true)
		table[fmt.Sprintf("u%d", bits)] = NewInt(bits, false)
	}
	return table
}
