// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package project

import (
	"context"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/xerrors"

	"github.com/csorg/csorg/diff"
	"github.com/csorg/csorg/organize"
	"github.com/csorg/csorg/syntaxcheck"
)

// A Mode says what the Runner does with each file.
type Mode int

const (
	Apply    Mode = iota // rewrite files that need organizing
	Check                // report status only
	DiffOnly             // compute diffs, write nothing
)

// A FileResult is the outcome for one file.
type FileResult struct {
	Path    string
	Reason  organize.Reason
	Changed bool   // the file was (or, in DiffOnly mode, would be) rewritten
	Skipped bool   // filtered out by size; Reason is meaningless
	Diff    []byte // in DiffOnly mode, the unified diff of the change
	Err     error  // a file system failure, or why the text is malformed
}

// A Runner organizes files.
type Runner struct {
	Options organize.Options
	Mode    Mode
	Workers int
	Filter  Filter

	Backup *Backup              // if nil, files are rewritten without a copy
	Syntax *syntaxcheck.Checker // if non-nil, rewrites must not add parse errors

	Log *zap.Logger
}

// Run processes the files in parallel and returns their results in
// the order of paths. A failure on one file does not stop the others;
// Run returns an error only if ctx is canceled.
func (r *Runner) Run(ctx context.Context, paths []string) ([]FileResult, error) {
	results := make([]FileResult, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(r.Workers, 1))
	for i, path := range paths {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = r.File(ctx, path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, ctx.Err()
}

// File processes a single file.
func (r *Runner) File(ctx context.Context, path string) FileResult {
	res := FileResult{Path: path}
	log := r.Log.With(zap.String("file", path))

	info, err := os.Stat(path)
	if err != nil {
		res.Err = xerrors.Errorf("stat: %w", err)
		return res
	}
	data, err := os.ReadFile(path)
	if err != nil {
		res.Err = xerrors.Errorf("read: %w", err)
		return res
	}
	if r.Filter.TooSmall(data) {
		res.Skipped = true
		log.Debug("skipped small file", zap.Int("bytes", len(data)))
		return res
	}
	src := string(data)

	if r.Mode == Check {
		st := organize.Check(src, r.Options)
		res.Reason, res.Err = st.Reason, st.Err
		log.Debug("checked", zap.Stringer("reason", st.Reason))
		return res
	}

	out := organize.Source(src, r.Options)
	res.Reason, res.Err = out.Reason, out.Err
	if !out.Changed {
		log.Debug("unchanged", zap.Stringer("reason", out.Reason), zap.Error(out.Err))
		return res
	}
	if r.Syntax != nil {
		if err := r.Syntax.Compare(ctx, data, []byte(out.Text)); err != nil {
			res.Reason, res.Err = organize.Malformed, err
			log.Warn("rewrite refused", zap.Error(err))
			return res
		}
	}

	if r.Mode == DiffOnly {
		d, err := diff.Diff(path, data, path, []byte(out.Text))
		if err != nil {
			res.Err = xerrors.Errorf("diff: %w", err)
			return res
		}
		res.Changed, res.Diff = true, d
		return res
	}

	if r.Backup != nil {
		if err := r.Backup.Save(path, data, info.Mode()); err != nil {
			res.Err = err
			return res
		}
	}
	if err := writeFile(path, []byte(out.Text), info.Mode()); err != nil {
		res.Err = err
		return res
	}
	res.Changed = true
	log.Info("organized")
	return res
}

// writeFile replaces the file at path by writing a temporary file
// next to it and renaming it into place.
func writeFile(path string, data []byte, mode os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".csorg")
	if err != nil {
		return xerrors.Errorf("write: %w", err)
	}
	_, err = tmp.Write(data)
	if err1 := tmp.Close(); err == nil {
		err = err1
	}
	if err == nil {
		err = os.Chmod(tmp.Name(), mode.Perm())
	}
	if err == nil {
		err = os.Rename(tmp.Name(), path)
	}
	if err != nil {
		os.Remove(tmp.Name())
		return xerrors.Errorf("write: %w", err)
	}
	return nil
}
