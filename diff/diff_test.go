// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package diff

import (
	"fmt"
	"strings"
	"testing"
)

const (
	oldName = "a/b/c"
	newName = "d/e/f"
	oldText = "abc\ndef\nghi\n"
	newText = "ABC\ndef\nGHI\n"
	want    = "diff a/b/c d/e/f\n--- a/b/c\n+++ d/e/f\n@@ -1,3 +1,3 @@\n-abc\n+ABC\n def\n-ghi\n+GHI\n"
)

func TestDiff(t *testing.T) {
	out, err := Diff(oldName, []byte(oldText), newName, []byte(newText))
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != want {
		t.Errorf("Diff: have:\n%s", out)
		t.Errorf("Diff: want:\n%s", want)
	}
}

func TestDiffEqual(t *testing.T) {
	out, err := Diff(oldName, []byte(oldText), newName, []byte(oldText))
	if err != nil || out != nil {
		t.Errorf("Diff of equal inputs = %q, %v, want nil, nil", out, err)
	}
}

func TestDiffHunks(t *testing.T) {
	var old, new strings.Builder
	for i := 1; i <= 20; i++ {
		fmt.Fprintf(&old, "%d\n", i)
		switch i {
		case 2:
			new.WriteString("two\n")
		case 18:
			new.WriteString("eighteen\n")
		default:
			fmt.Fprintf(&new, "%d\n", i)
		}
	}
	want := "diff x x\n--- x\n+++ x\n" +
		"@@ -1,5 +1,5 @@\n 1\n-2\n+two\n 3\n 4\n 5\n" +
		"@@ -15,6 +15,6 @@\n 15\n 16\n 17\n-18\n+eighteen\n 19\n 20\n"
	out, err := Diff("x", []byte(old.String()), "x", []byte(new.String()))
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != want {
		t.Errorf("Diff: have:\n%s", out)
		t.Errorf("Diff: want:\n%s", want)
	}
}

func TestDiffNoNewline(t *testing.T) {
	want := "diff x y\n--- x\n+++ y\n@@ -1 +1 @@\n-a\n\\ No newline at end of file\n+b\n\\ No newline at end of file\n"
	out, err := Diff("x", []byte("a"), "y", []byte("b"))
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != want {
		t.Errorf("Diff: have:\n%s", out)
		t.Errorf("Diff: want:\n%s", want)
	}
}
