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

// Package errors defines the shared error taxonomy for the Mead lexer,
// parser and semantic core: a positioned Error interface and a List that
// accumulates and sorts them.
package errors

import (
	"fmt"
	"sort"
	"strings"

	"github.com/heimskr/mead/token"
)

// Error is the common error type produced by the lexer, parser and
// semantic queries. It always carries the position of the offending
// token, per spec.md 7's error taxonomy (LexError/ParseError/
// ResolutionError/TypeError all reduce to this shape).
type Error interface {
	error
	Position() token.Position
	Msg() (format string, args []interface{})
}

// Message implements the error interface and keeps the format string and
// arguments available separately for callers that want to re-render.
type Message struct {
	format string
	args   []interface{}
}

// Newf creates a Message for human consumption.
func Newf(format string, args ...interface{}) Message {
	return Message{format: format, args: args}
}

func (m Message) Error() string { return fmt.Sprintf(m.format, m.args...) }

// Msg returns the unformatted message and its arguments.
func (m Message) Msg() (string, []interface{}) { return m.format, m.args }

// posError is the concrete Error held in a List.
type posError struct {
	pos token.Position
	Message
}

func (e *posError) Position() token.Position { return e.pos }

// NewPosf builds a positioned Error.
func NewPosf(pos token.Position, format string, args ...interface{}) Error {
	return &posError{pos: pos, Message: Newf(format, args...)}
}

// Handler matches the callback shape the scanner invokes on lexical
// errors, mirroring cue/errors.Handler.
type Handler func(pos token.Position, msg string, args []interface{})

// List accumulates Errors in encounter order and can sort/render them.
// It implements the error interface so it can be returned wherever a
// single error is expected.
type List []Error

// AddNewf appends a new positioned error to the list.
func (l *List) AddNewf(pos token.Position, format string, args ...interface{}) {
	*l = append(*l, &posError{pos: pos, Message: Newf(format, args...)})
}

// Add appends an existing Error.
func (l *List) Add(err Error) { *l = append(*l, err) }

// Len reports the number of accumulated errors.
func (l List) Len() int { return len(l) }

// Reset empties the list.
func (l *List) Reset() { *l = (*l)[:0] }

// Sort orders the list by position, preserving relative order of errors
// at the same position.
func (l List) Sort() {
	sort.SliceStable(l, func(i, j int) bool {
		pi, pj := l[i].Position(), l[j].Position()
		if pi.Line != pj.Line {
			return pi.Line < pj.Line
		}
		return pi.Column < pj.Column
	})
}

// Err returns l as an error, or nil if l is empty.
func (l List) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

func (l List) Error() string {
	switch len(l) {
	case 0:
		return ""
	case 1:
		return l[0].Error()
	}
	var b strings.Builder
	for i, e := range l {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s: %s", e.Position(), e.Error())
	}
	return b.String()
}
