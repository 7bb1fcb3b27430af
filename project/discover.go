// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package project finds, organizes, backs up, and reports on
// the C# files of a project tree.
package project

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/xerrors"
)

// skipPatterns are path substrings of build output, editor caches,
// backups, and generated code.
var skipPatterns = []string{
	"/.godot/",
	"/temp/",
	"/obj/",
	"/bin/",
	"/backup",
	"/Backup",
	"AssemblyInfo.cs",
	".g.cs",
	".Designer.cs",
}

// A Filter decides which files are worth organizing.
type Filter struct {
	Exclude []string // extra path substrings to skip
	MinSize int      // files with less trimmed content are skipped
}

// SkipDir reports whether the walk should not descend into the directory name.
func (f *Filter) SkipDir(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".." ||
		strings.Contains(strings.ToLower(name), "backup")
}

// SkipPath reports whether the file at rel, a path relative to the
// project root, is excluded.
func (f *Filter) SkipPath(rel string) bool {
	if !strings.HasSuffix(rel, ".cs") {
		return true
	}
	p := "/" + filepath.ToSlash(rel)
	for _, pat := range skipPatterns {
		if strings.Contains(p, pat) {
			return true
		}
	}
	for _, pat := range f.Exclude {
		if pat != "" && strings.Contains(p, pat) {
			return true
		}
	}
	return false
}

// TooSmall reports whether data has too little content to organize.
func (f *Filter) TooSmall(data []byte) bool {
	return len(strings.TrimSpace(string(data))) < f.MinSize
}

// Discover returns the candidate .cs files under root, in lexical order.
// If root is a file, Discover returns it alone, without filtering.
func Discover(root string, f Filter) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, xerrors.Errorf("discover: %w", err)
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && f.SkipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if !f.SkipPath(rel) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, xerrors.Errorf("discover %s: %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}
