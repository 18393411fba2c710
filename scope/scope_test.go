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

package scope_test

import (
	"testing"

	"github.com/heimskr/mead/scope"
	"github.com/heimskr/mead/types"
)

func TestNamespaceFullName(t *testing.T) {
	root := scope.NewNamespace()
	foo := root.ChildOrCreate("foo")
	bar := foo.ChildOrCreate("bar")
	if got, want := bar.FullName(), "foo::bar"; got != want {
		t.Errorf("FullName() = %q, want %q", got, want)
	}
}

func TestNamespaceChildOrCreateIdempotent(t *testing.T) {
	root := scope.NewNamespace()
	a := root.ChildOrCreate("a")
	b := root.ChildOrCreate("a")
	if a != b {
		t.Errorf("ChildOrCreate should return the same namespace on repeat calls")
	}
}

func TestNamespaceInsertTypeIdempotentFailing(t *testing.T) {
	root := scope.NewNamespace()
	if !root.InsertType("Point", types.NewClass("Point", "")) {
		t.Fatalf("first InsertType should succeed")
	}
	if root.InsertType("Point", types.NewClass("Point", "")) {
		t.Errorf("second InsertType with same name should fail")
	}
}

func TestNamespaceLookupTypeWalksAncestors(t *testing.T) {
	root := scope.NewNamespace()
	root.InsertType("i32", types.NewInt(32, true))
	child := root.ChildOrCreate("foo")
	if _, ok := child.LookupType("i32"); !ok {
		t.Errorf("LookupType should find types bound in an ancestor namespace")
	}
}

func TestScopeShadowing(t *testing.T) {
	root := scope.NewRootScope(scope.NewNamespace())
	root.InsertVariable("x", &scope.Variable{Name: "x", Type: types.NewInt(32, true)})

	child := root.Child()
	if !child.InsertVariable("x", &scope.Variable{Name: "x", Type: types.NewInt(8, true)}) {
		t.Fatalf("shadowing an outer variable should succeed")
	}
	v, ok := child.Variable("x")
	if !ok || v.Type.BitWidth() != 8 {
		t.Errorf("Variable(x) should resolve to the inner shadowing binding")
	}
}

func TestScopeInsertVariableIdempotentFailing(t *testing.T) {
	s := scope.NewRootScope(scope.NewNamespace())
	if !s.InsertVariable("x", &scope.Variable{Name: "x"}) {
		t.Fatalf("first InsertVariable should succeed")
	}
	if s.InsertVariable("x", &scope.Variable{Name: "x"}) {
		t.Errorf("second InsertVariable with same name in same scope should fail")
	}
}

func TestScopeVariableNotFound(t *testing.T) {
	s := scope.NewRootScope(scope.NewNamespace())
	if _, ok := s.Variable("missing"); ok {
		t.Errorf("Variable(missing) should report not found")
	}
}
