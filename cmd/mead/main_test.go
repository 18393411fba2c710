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

package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRunSuccessExitsZero(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(nil, strings.NewReader("fn main() -> i32 { return 0; }"), &stdout, &stderr)
	if code != exitSuccess {
		t.Fatalf("run() = %d, want %d; stderr=%q", code, exitSuccess, stderr.String())
	}
	if !strings.Contains(stdout.String(), "fn main {") {
		t.Errorf("stdout = %q, missing compiled output", stdout.String())
	}
}

func TestRunLexFailureExitsOne(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(nil, strings.NewReader("$$$"), &stdout, &stderr)
	if code != exitLexFailure {
		t.Fatalf("run() = %d, want %d", code, exitLexFailure)
	}
}

func TestRunParseFailureExitsTwo(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(nil, strings.NewReader("fn broken("), &stdout, &stderr)
	if code != exitParseFailure {
		t.Fatalf("run() = %d, want %d", code, exitParseFailure)
	}
}

func TestRunCompileFailureExitsThree(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(nil, strings.NewReader("fn f() { return missing; }"), &stdout, &stderr)
	if code != exitCompileFailure {
		t.Fatalf("run() = %d, want %d", code, exitCompileFailure)
	}
}
