// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/tools/txtar"
)

// TestRun runs the command over each testdata/*.txt archive.
// The archive comment holds the command-line arguments.
// Files named stdout and stderr hold the expected output,
// files under want/ hold the expected tree contents after the run,
// and files under gone/ name paths that must not exist.
// Every other file is written to a fresh directory before the run.
func TestRun(t *testing.T) {
	files, err := filepath.Glob("testdata/*.txt")
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Fatal("no test cases")
	}

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			t.Log(file)
			ar, err := txtar.ParseFile(file)
			if err != nil {
				t.Fatal(err)
			}
			dir := t.TempDir()
			var wantStdout, wantStderr txtar.File
			var want, gone []txtar.File
			for _, file := range ar.Files {
				switch {
				case file.Name == "stdout":
					wantStdout = file
					continue
				case file.Name == "stderr":
					wantStderr = file
					continue
				case strings.HasPrefix(file.Name, "want/"):
					want = append(want, file)
					continue
				case strings.HasPrefix(file.Name, "gone/"):
					gone = append(gone, file)
					continue
				}
				targ := filepath.Join(dir, file.Name)
				if err := os.MkdirAll(filepath.Dir(targ), 0777); err != nil {
					t.Fatal(err)
				}
				if err := os.WriteFile(targ, file.Data, 0666); err != nil {
					t.Fatal(err)
				}
			}
			t.Chdir(dir)
			t.Setenv("CSORG_STYLE", "")
			t.Setenv("CSORG_WORKERS", "")

			var stdout, stderr bytes.Buffer
			a := newTestApp(&stdout, &stderr)
			cmd := a.command()
			cmd.SetArgs(strings.Fields(string(ar.Comment)))
			if err := cmd.Execute(); err != nil {
				fmt.Fprintf(&stderr, "ERROR: %v\n", err)
			}

			cmp := func(name string, have, want []byte) {
				have = trimSpace(have)
				want = trimSpace(want)
				if !bytes.Equal(have, want) {
					t.Errorf("%s:\n%s", name, have)
					t.Errorf("want:\n%s", want)
				}
			}
			cmp("stderr", stderr.Bytes(), wantStderr.Data)
			cmp("stdout", stdout.Bytes(), wantStdout.Data)
			for _, file := range want {
				name := strings.TrimPrefix(file.Name, "want/")
				data, err := os.ReadFile(filepath.Join(dir, name))
				if err != nil {
					t.Error(err)
					continue
				}
				cmp(name, data, file.Data)
			}
			for _, file := range gone {
				name := strings.TrimPrefix(file.Name, "gone/")
				if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
					t.Errorf("%s exists, want it absent", name)
				}
			}
		})
	}
}

// newTestApp returns an app with quiet logging and a fixed clock.
func newTestApp(stdout, stderr *bytes.Buffer) *app {
	a := newApp(stdout, stderr)
	a.newLogger = func(bool) (*zap.Logger, error) { return zap.NewNop(), nil }
	a.now = func() time.Time { return time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC) }
	return a
}

func trimSpace(data []byte) []byte {
	lines := bytes.Split(data, []byte("\n"))
	for i, line := range lines {
		lines[i] = bytes.TrimRight(line, " ")
	}
	return bytes.Join(lines, []byte("\n"))
}
