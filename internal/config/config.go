// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads the .csorg.yaml settings file.
package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/csorg/csorg/organize"
)

// FileName is the settings file looked up in the project root.
const FileName = ".csorg.yaml"

// Config holds the csorg settings.
type Config struct {
	// Style is the section marker style: comments or regions.
	Style string `yaml:"style"`

	// CommentGap is the number of blank lines allowed between a comment
	// and the member it documents.
	CommentGap int `yaml:"comment_gap"`

	// LenientMarkers accepts decorated marker comments such as
	// "// ---- Fields ----".
	LenientMarkers bool `yaml:"lenient_markers"`

	Workers     int  `yaml:"workers"`
	Backup      bool `yaml:"backup"`
	CheckSyntax bool `yaml:"check_syntax"`

	// Exclude lists extra path substrings to skip during discovery.
	Exclude []string `yaml:"exclude"`

	// MinSize is the size in bytes below which a file is not worth organizing.
	MinSize int `yaml:"min_size"`

	Watch WatchConfig `yaml:"watch"`
}

// WatchConfig configures watch mode.
type WatchConfig struct {
	Debounce string `yaml:"debounce"`
}

// DefaultConfig returns the settings used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Style:   "comments",
		Workers: runtime.NumCPU(),
		Backup:  true,
		MinSize: 100,
		Watch: WatchConfig{
			Debounce: "300ms",
		},
	}
}

// Load loads configuration from a YAML file.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() error {
	if style := os.Getenv("CSORG_STYLE"); style != "" {
		c.Style = style
	}
	if w := os.Getenv("CSORG_WORKERS"); w != "" {
		n, err := strconv.Atoi(w)
		if err != nil {
			return fmt.Errorf("invalid CSORG_WORKERS %q: %w", w, err)
		}
		c.Workers = n
	}
	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if _, err := organize.ParseStyle(c.Style); err != nil {
		return err
	}
	if c.CommentGap < 0 {
		return fmt.Errorf("invalid comment_gap %d: must not be negative", c.CommentGap)
	}
	if c.Workers < 1 {
		return fmt.Errorf("invalid workers %d: must be at least 1", c.Workers)
	}
	if c.MinSize < 0 {
		return fmt.Errorf("invalid min_size %d: must not be negative", c.MinSize)
	}
	if _, err := time.ParseDuration(c.Watch.Debounce); err != nil {
		return fmt.Errorf("invalid watch.debounce %q: %w", c.Watch.Debounce, err)
	}
	return nil
}

// Options returns the engine options for the configuration.
func (c *Config) Options() (organize.Options, error) {
	style, err := organize.ParseStyle(c.Style)
	if err != nil {
		return organize.Options{}, err
	}
	return organize.Options{
		Style:          style,
		CommentGap:     c.CommentGap,
		LenientMarkers: c.LenientMarkers,
	}, nil
}

// GetDebounce returns the watch debounce delay as a duration.
func (c *Config) GetDebounce() time.Duration {
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil {
		return 300 * time.Millisecond
	}
	return d
}
