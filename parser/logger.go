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

package parser

import (
	"strings"

	"github.com/heimskr/mead/ast"
)

// trace accumulates an indented breadcrumb for every named "take"
// production the parser attempts, including ones that backtrack out,
// giving a complete record of attempted derivations (spec.md 4.6). This
// is the buffered alternative to cue/parser's always-print p.trace: the
// lines are held in memory and only surfaced on request via Trace(),
// rather than written to stderr as they happen.
type trace struct {
	depth int
	lines []string
}

func (t *trace) start(name string) int {
	d := t.depth
	t.lines = append(t.lines, strings.Repeat("  ", d)+"Start: "+name)
	t.depth++
	return d
}

func (t *trace) end(name string, depth int, ok bool) {
	t.depth = depth
	status := "Success"
	if !ok {
		status = "Failure"
	}
	t.lines = append(t.lines, strings.Repeat("  ", depth)+status+": "+name)
}

// Trace returns the accumulated derivation log, oldest first.
func (p *Parser) Trace() []string { return append([]string(nil), p.tr.lines...) }

// attempt runs fn under a traced, backtracking attempt named name: if fn
// fails, the token position is restored before attempt returns, so a
// failed named production never leaves partial consumption behind for
// its caller to clean up.
func (p *Parser) attempt(name string, fn func() (*ast.Node, bool)) (*ast.Node, bool) {
	d := p.tr.start(name)
	mark := p.pos
	node, ok := fn()
	if !ok {
		p.pos = mark
		p.tr.end(name, d, false)
		return nil, false
	}
	p.tr.end(name, d, true)
	return node, true
}
