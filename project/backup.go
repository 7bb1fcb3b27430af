// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/mod/sumdb/dirhash"
	"golang.org/x/xerrors"
)

// A Backup copies files about to be rewritten into a directory next to
// the project root, so that build tools scanning the project never see
// the copies. The directory is created on the first Save.
type Backup struct {
	Root  string // project root; saved files keep their paths relative to it
	Dir   string
	RunID uuid.UUID
	Time  time.Time

	log *zap.Logger

	mu    sync.Mutex
	files int
	saved map[string]bool // backup paths written so far
}

// NewBackup returns a Backup for root. The backup directory is
// <parent of root>/csorg_backups_<timestamp>.
func NewBackup(root string, now time.Time, log *zap.Logger) (*Backup, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, xerrors.Errorf("backup: %w", err)
	}
	return &Backup{
		Root:  abs,
		Dir:   filepath.Join(filepath.Dir(abs), "csorg_backups_"+now.Format("20060102_150405")),
		RunID: uuid.New(),
		Time:  now,
		log:   log,
	}, nil
}

// Save stores data as the backup of the file at path.
// Only the first Save of a path in a run is kept, so that the backup
// holds the file as it was before csorg first changed it.
func (b *Backup) Save(path string, data []byte, mode os.FileMode) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return xerrors.Errorf("backup %s: %w", path, err)
	}
	rel, err := filepath.Rel(b.Root, abs)
	if err != nil || strings.HasPrefix(rel, "..") {
		rel = filepath.Base(abs)
	}
	dst := filepath.Join(b.Dir, rel)

	b.mu.Lock()
	if b.saved[dst] {
		b.mu.Unlock()
		b.log.Debug("already backed up", zap.String("file", path))
		return nil
	}
	if b.saved == nil {
		b.saved = make(map[string]bool)
	}
	b.saved[dst] = true
	b.mu.Unlock()

	if err := b.write(dst, data, mode); err != nil {
		b.mu.Lock()
		delete(b.saved, dst)
		b.mu.Unlock()
		return xerrors.Errorf("backup %s: %w", path, err)
	}

	b.mu.Lock()
	b.files++
	b.mu.Unlock()
	b.log.Debug("backed up", zap.String("file", path), zap.String("to", dst))
	return nil
}

func (b *Backup) write(dst string, data []byte, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0777); err != nil {
		return err
	}
	return os.WriteFile(dst, data, mode.Perm())
}

// Files returns the number of files saved so far.
func (b *Backup) Files() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.files
}

// Close writes the MANIFEST recording the run and a hash of the saved
// files. It does nothing if no file was saved.
func (b *Backup) Close() error {
	n := b.Files()
	if n == 0 {
		return nil
	}
	sum, err := dirhash.HashDir(b.Dir, "", dirhash.Hash1)
	if err != nil {
		return xerrors.Errorf("backup manifest: %w", err)
	}
	manifest := fmt.Sprintf("run %s\ntime %s\nroot %s\nfiles %d\nhash %s\n",
		b.RunID, b.Time.Format(time.RFC3339), b.Root, n, sum)
	if err := os.WriteFile(filepath.Join(b.Dir, "MANIFEST"), []byte(manifest), 0666); err != nil {
		return xerrors.Errorf("backup manifest: %w", err)
	}
	b.log.Info("backup complete", zap.String("dir", b.Dir), zap.Int("files", n), zap.String("hash", sum))
	return nil
}
