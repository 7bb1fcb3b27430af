// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package diff implements a Diff function that compares two inputs
// line by line and reports the result in unified diff format.
package diff

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// context is the number of unchanged lines shown around each change.
const context = 3

// An op is one line of the line-level edit script.
type op struct {
	kind     byte // ' ', '-', or '+'
	text     string
	old, new int // 0-based line numbers in old and new at this op
}

// Diff returns a unified diff of old and new, or nil if they are equal.
func Diff(oldName string, old []byte, newName string, new []byte) ([]byte, error) {
	if bytes.Equal(old, new) {
		return nil, nil
	}
	ops := lineOps(string(old), string(new))

	// Group changes into hunks, merging hunks whose context would overlap.
	var hunks [][2]int
	for i, o := range ops {
		if o.kind == ' ' {
			continue
		}
		lo, hi := max(i-context, 0), min(i+context+1, len(ops))
		if n := len(hunks); n > 0 && lo <= hunks[n-1][1] {
			hunks[n-1][1] = hi
		} else {
			hunks = append(hunks, [2]int{lo, hi})
		}
	}
	if len(hunks) == 0 {
		return nil, nil
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "diff %s %s\n--- %s\n+++ %s\n", oldName, newName, oldName, newName)
	for _, h := range hunks {
		list := ops[h[0]:h[1]]
		var nold, nnew int
		for _, o := range list {
			if o.kind != '+' {
				nold++
			}
			if o.kind != '-' {
				nnew++
			}
		}
		fmt.Fprintf(&buf, "@@ -%s +%s @@\n", span(list[0].old, nold), span(list[0].new, nnew))
		for _, o := range list {
			buf.WriteByte(o.kind)
			buf.WriteString(o.text)
			if !strings.HasSuffix(o.text, "\n") {
				buf.WriteString("\n\\ No newline at end of file\n")
			}
		}
	}
	return buf.Bytes(), nil
}

// lineOps computes the line-level edit script turning old into new.
func lineOps(old, new string) []op {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0
	a, b, lines := dmp.DiffLinesToChars(old, new)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var ops []op
	nold, nnew := 0, 0
	for _, d := range diffs {
		kind := byte(' ')
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			kind = '-'
		case diffmatchpatch.DiffInsert:
			kind = '+'
		}
		for _, text := range strings.SplitAfter(d.Text, "\n") {
			if text == "" {
				continue
			}
			ops = append(ops, op{kind, text, nold, nnew})
			if kind != '+' {
				nold++
			}
			if kind != '-' {
				nnew++
			}
		}
	}
	return ops
}

// span formats a hunk range the way diff -u does: an empty range is
// named by the line before it, and a count of one is omitted.
func span(start, count int) string {
	switch count {
	case 0:
		return fmt.Sprintf("%d,0", start)
	case 1:
		return fmt.Sprint(start + 1)
	}
	return fmt.Sprintf("%d,%d", start+1, count)
}
