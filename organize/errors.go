// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package organize

import (
	"fmt"
	"sort"
	"strings"
)

// A Position is a location in a source text.
// Line and Column are 1-based; Column counts bytes.
type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

func position(src string, offset int) Position {
	if offset > len(src) {
		offset = len(src)
	}
	line := 1 + strings.Count(src[:offset], "\n")
	return Position{Offset: offset, Line: line, Column: offset - lineStart(src, offset) + 1}
}

// An Error is a problem at a particular source position.
type Error struct {
	Pos Position
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

type errorKey struct {
	offset int
	msg    string
}

// ErrorList is a set of Errors. It is also an error itself. The zero value is
// an empty list, ready to use.
type ErrorList struct {
	errs []*Error
	set  map[errorKey]bool
}

// Add adds an error to l. An *ErrorList is merged entry by entry; any other
// error that is not an *Error is recorded without position. Add suppresses
// duplicate errors (same offset and message).
func (l *ErrorList) Add(err error) {
	var e *Error
	switch err := err.(type) {
	case nil:
		return
	case *ErrorList:
		for _, e := range err.errs {
			l.Add(e)
		}
		return
	case *Error:
		e = err
	default:
		e = &Error{Pos: Position{Offset: -1}, Msg: err.Error()}
	}

	k := errorKey{e.Pos.Offset, e.Msg}
	if !l.set[k] {
		if l.set == nil {
			l.set = make(map[errorKey]bool)
		}
		l.errs = append(l.errs, e)
		l.set[k] = true
	}
}

// Len returns the number of errors in l.
func (l *ErrorList) Len() int {
	return len(l.errs)
}

// Error sorts the errors by position and returns them "\n" separated.
// The result does not end in "\n".
func (l *ErrorList) Error() string {
	if len(l.errs) == 0 {
		return "no errors"
	}
	sort.SliceStable(l.errs, func(i, j int) bool {
		return l.errs[i].Pos.Offset < l.errs[j].Pos.Offset
	})

	// A single broken literal tends to cascade into brace errors;
	// collapse messages that repeat many times.
	count := make(map[string]int)
	for _, e := range l.errs {
		count[e.Msg]++
	}
	buf := new(strings.Builder)
	for _, e := range l.errs {
		msg := e.Msg
		switch {
		case count[msg] > 3:
			n := count[msg]
			count[msg] = -1
			msg += fmt.Sprintf(" [× %d]", n)
		case count[msg] < 0:
			continue
		}
		if buf.Len() > 0 {
			buf.WriteByte('\n')
		}
		if e.Pos.Offset >= 0 {
			fmt.Fprintf(buf, "%s: %s", e.Pos, msg)
		} else {
			buf.WriteString(msg)
		}
	}
	return buf.String()
}

// Err returns an error equivalent to this error list.
// If the list is empty, Err returns nil.
func (l *ErrorList) Err() error {
	if len(l.errs) == 0 {
		return nil
	}
	return l
}
