// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csorg/csorg/organize"
)

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), FileName))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	require.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	data := `style: regions
comment_gap: 1
lenient_markers: true
workers: 2
backup: false
exclude:
  - /addons/
watch:
  debounce: 1s
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0666))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "regions", cfg.Style)
	assert.Equal(t, 2, cfg.Workers)
	assert.False(t, cfg.Backup)
	assert.Equal(t, 100, cfg.MinSize, "unset keys keep their defaults")
	assert.Equal(t, []string{"/addons/"}, cfg.Exclude)
	assert.Equal(t, time.Second, cfg.GetDebounce())

	opts, err := cfg.Options()
	require.NoError(t, err)
	assert.Equal(t, organize.Options{Style: organize.RegionBlocks, CommentGap: 1, LenientMarkers: true}, opts)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("style: [\n"), 0666))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Run("CSORG_STYLE", func(t *testing.T) {
		t.Setenv("CSORG_STYLE", "regions")
		cfg := DefaultConfig()
		require.NoError(t, cfg.applyEnvOverrides())
		assert.Equal(t, "regions", cfg.Style)
	})

	t.Run("CSORG_WORKERS", func(t *testing.T) {
		t.Setenv("CSORG_WORKERS", "7")
		cfg := DefaultConfig()
		require.NoError(t, cfg.applyEnvOverrides())
		assert.Equal(t, 7, cfg.Workers)
	})

	t.Run("CSORG_WORKERS not a number", func(t *testing.T) {
		t.Setenv("CSORG_WORKERS", "many")
		cfg := DefaultConfig()
		assert.Error(t, cfg.applyEnvOverrides())
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		err    string
	}{
		{"style", func(c *Config) { c.Style = "tabs" }, `unknown marker style "tabs"`},
		{"comment gap", func(c *Config) { c.CommentGap = -1 }, "invalid comment_gap -1: must not be negative"},
		{"workers", func(c *Config) { c.Workers = 0 }, "invalid workers 0: must be at least 1"},
		{"min size", func(c *Config) { c.MinSize = -5 }, "invalid min_size -5: must not be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			assert.EqualError(t, cfg.Validate(), tt.err)
		})
	}

	cfg := DefaultConfig()
	cfg.Watch.Debounce = "soon"
	assert.Error(t, cfg.Validate())
}
