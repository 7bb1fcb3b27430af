// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package project

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/csorg/csorg/organize"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const messy = `public partial class Enemy : Node2D
{
    public void Attack()
    {
        GD.Print("attack");
    }

    private int _health = 100;
}
`

const tidy = `public partial class Enemy : Node2D
{
    // Fields
    private int _health = 100;

    // Public Methods
    public void Attack()
    {
        GD.Print("attack");
    }
}
`

// writeTree creates the files in dir, keyed by slash-separated relative path.
func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, data := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0777))
		require.NoError(t, os.WriteFile(path, []byte(data), 0666))
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestFilter(t *testing.T) {
	f := Filter{Exclude: []string{"/addons/"}}
	paths := []struct {
		rel  string
		skip bool
	}{
		{"Player.cs", false},
		{"Scripts/Enemy.cs", false},
		{"obj/Debug/Gen.cs", true},
		{"bin/X.cs", true},
		{".godot/mono/Y.cs", true},
		{"Properties/AssemblyInfo.cs", true},
		{"Scripts/Enemy.g.cs", true},
		{"Forms/Main.Designer.cs", true},
		{"addons/plugin/Plugin.cs", true},
		{"backup_old/Player.cs", true},
		{"README.md", true},
	}
	for _, p := range paths {
		assert.Equal(t, p.skip, f.SkipPath(filepath.FromSlash(p.rel)), "SkipPath(%q)", p.rel)
	}

	dirs := []struct {
		name string
		skip bool
	}{
		{"Scripts", false},
		{".godot", true},
		{".git", true},
		{"OldBackups", true},
		{"backup", true},
		{".", false},
	}
	for _, d := range dirs {
		assert.Equal(t, d.skip, f.SkipDir(d.name), "SkipDir(%q)", d.name)
	}

	f.MinSize = 100
	assert.True(t, f.TooSmall([]byte("  class C { }  \n")))
	assert.False(t, f.TooSmall([]byte(messy)))
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"Player.cs":                  messy,
		"Scripts/Enemy.cs":           messy,
		"Scripts/Enemy.g.cs":         messy,
		"obj/Debug/Gen.cs":           messy,
		".godot/mono/Y.cs":           messy,
		"Backups/Player.cs":          messy,
		"Properties/AssemblyInfo.cs": messy,
		"addons/plugin/Plugin.cs":    messy,
		"README.md":                  "hello",
	})

	files, err := Discover(root, Filter{Exclude: []string{"/addons/"}})
	require.NoError(t, err)
	var rel []string
	for _, f := range files {
		r, err := filepath.Rel(root, f)
		require.NoError(t, err)
		rel = append(rel, filepath.ToSlash(r))
	}
	if diff := cmp.Diff([]string{"Player.cs", "Scripts/Enemy.cs"}, rel); diff != "" {
		t.Errorf("Discover mismatch (-want +got):\n%s", diff)
	}

	one := filepath.Join(root, "Scripts/Enemy.g.cs")
	files, err = Discover(one, Filter{})
	require.NoError(t, err)
	assert.Equal(t, []string{one}, files, "an explicit file is not filtered")

	_, err = Discover(filepath.Join(root, "missing"), Filter{})
	assert.Error(t, err)
}

func TestRunApply(t *testing.T) {
	root := filepath.Join(t.TempDir(), "game")
	writeTree(t, root, map[string]string{
		"Enemy.cs":        messy,
		"Scripts/Tidy.cs": tidy,
	})
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	backup, err := NewBackup(root, now, zap.NewNop())
	require.NoError(t, err)

	r := &Runner{Workers: 2, Filter: Filter{MinSize: 100}, Backup: backup, Log: zap.NewNop()}
	paths := []string{filepath.Join(root, "Enemy.cs"), filepath.Join(root, "Scripts", "Tidy.cs")}
	results, err := r.Run(context.Background(), paths)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, organize.Organized, results[0].Reason)
	assert.True(t, results[0].Changed)
	assert.Equal(t, organize.AlreadyOrganized, results[1].Reason)
	assert.False(t, results[1].Changed)
	assert.Equal(t, tidy, readFile(t, paths[0]))

	require.NoError(t, backup.Close())
	dir := filepath.Join(filepath.Dir(root), "csorg_backups_20261018_120000")
	assert.Equal(t, dir, backup.Dir)
	assert.Equal(t, messy, readFile(t, filepath.Join(dir, "Enemy.cs")))
	assert.NoFileExists(t, filepath.Join(dir, "Scripts", "Tidy.cs"), "unchanged files are not backed up")

	manifest := readFile(t, filepath.Join(dir, "MANIFEST"))
	assert.Contains(t, manifest, "run "+backup.RunID.String()+"\n")
	assert.Contains(t, manifest, "files 1\n")
	assert.Contains(t, manifest, "hash h1:")

	s := Summarize(results)
	assert.Equal(t, Summary{Organized: 1, AlreadyOrganized: 1}, s)
	assert.True(t, s.Clean())
}

func TestBackupKeepsFirstCopy(t *testing.T) {
	root := filepath.Join(t.TempDir(), "game")
	writeTree(t, root, map[string]string{"Enemy.cs": messy})
	backup, err := NewBackup(root, time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC), zap.NewNop())
	require.NoError(t, err)

	// Watch mode saves the same file once per change.
	path := filepath.Join(root, "Enemy.cs")
	require.NoError(t, backup.Save(path, []byte(messy), 0644))
	require.NoError(t, backup.Save(path, []byte(tidy), 0644))
	require.NoError(t, backup.Close())

	assert.Equal(t, messy, readFile(t, filepath.Join(backup.Dir, "Enemy.cs")))
	assert.Equal(t, 1, backup.Files())
	assert.Contains(t, readFile(t, filepath.Join(backup.Dir, "MANIFEST")), "files 1\n")
}

func TestRunCheck(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"Enemy.cs": messy, "Tidy.cs": tidy})
	r := &Runner{Mode: Check, Workers: 4, Log: zap.NewNop()}
	results, err := r.Run(context.Background(), []string{filepath.Join(root, "Enemy.cs"), filepath.Join(root, "Tidy.cs")})
	require.NoError(t, err)

	assert.Equal(t, organize.NeedsOrganization, results[0].Reason)
	assert.Equal(t, organize.AlreadyOrganized, results[1].Reason)
	assert.Equal(t, messy, readFile(t, filepath.Join(root, "Enemy.cs")), "check mode writes nothing")

	s := Summarize(results)
	assert.Equal(t, 1, s.NeedsOrganization)
	assert.False(t, s.Clean())
}

func TestRunDiffOnly(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"Enemy.cs": messy})
	path := filepath.Join(root, "Enemy.cs")
	r := &Runner{Mode: DiffOnly, Log: zap.NewNop()}
	res := r.File(context.Background(), path)

	require.NoError(t, res.Err)
	assert.True(t, res.Changed)
	assert.Contains(t, string(res.Diff), "+    // Fields\n")
	assert.Contains(t, string(res.Diff), "--- "+path+"\n")
	assert.Equal(t, messy, readFile(t, path))
}

func TestRunProblems(t *testing.T) {
	root := t.TempDir()
	broken := strings.Replace(messy, `GD.Print("attack");`, `GD.Print("attack);`, 1)
	writeTree(t, root, map[string]string{
		"Broken.cs": broken,
		"Small.cs":  "class C { int x; }\n",
	})
	r := &Runner{Filter: Filter{MinSize: 100}, Log: zap.NewNop()}
	results, err := r.Run(context.Background(), []string{
		filepath.Join(root, "Broken.cs"),
		filepath.Join(root, "Small.cs"),
		filepath.Join(root, "Missing.cs"),
	})
	require.NoError(t, err)

	assert.Equal(t, organize.Malformed, results[0].Reason)
	assert.Error(t, results[0].Err)
	assert.Equal(t, broken, readFile(t, filepath.Join(root, "Broken.cs")))
	assert.True(t, results[1].Skipped)
	assert.ErrorIs(t, results[2].Err, fs.ErrNotExist)

	assert.Equal(t, Summary{Malformed: 1, Skipped: 1, Failed: 1}, Summarize(results))
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := &Runner{Log: zap.NewNop()}
	_, err := r.Run(ctx, []string{"a.cs", "b.cs"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	rep := NewReport(&buf, "/game")
	results := []FileResult{
		{Path: "/game/A.cs", Reason: organize.AlreadyOrganized},
		{Path: "/game/sub/B.cs", Reason: organize.NeedsOrganization},
		{Path: "/game/C.cs", Reason: organize.Malformed, Err: &organize.Error{Msg: "cannot reorder members around #if"}},
		{Path: "/game/D.cs", Skipped: true},
		{Path: "/game/E.cs", Reason: organize.Organized, Changed: true},
	}
	for _, res := range results {
		rep.File(res)
	}
	rep.Summary(Summarize(results))

	out := buf.String()
	assert.Contains(t, out, "✓ A.cs")
	assert.Contains(t, out, "? sub/B.cs")
	assert.Contains(t, out, "! C.cs: 0:0: cannot reorder members around #if")
	assert.Contains(t, out, "✓ E.cs (organized)")
	assert.NotContains(t, out, "D.cs")
	assert.Contains(t, out, "relevant files:         4")
	assert.Contains(t, out, "skipped:                1")
}

func TestWatcher(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "Scripts"), 0777))

	r := &Runner{Filter: Filter{MinSize: 100}, Log: zap.NewNop()}
	done := make(chan FileResult, 10)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w, err := NewWatcher(root, r.Filter, 20*time.Millisecond, zap.NewNop(), func(ctx context.Context, path string) {
		done <- r.File(ctx, path)
	})
	require.NoError(t, err)
	require.NoError(t, w.Start(ctx))
	defer w.Stop()

	path := filepath.Join(root, "Scripts", "Enemy.cs")
	require.NoError(t, os.WriteFile(path, []byte(messy), 0666))

	select {
	case res := <-done:
		assert.Equal(t, path, res.Path)
		assert.Equal(t, organize.Organized, res.Reason)
	case <-time.After(10 * time.Second):
		t.Fatal("no event handled")
	}
	assert.Equal(t, tidy, readFile(t, path))
}
