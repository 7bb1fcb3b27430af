// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/csorg/csorg/internal/config"
	"github.com/csorg/csorg/organize"
	"github.com/csorg/csorg/project"
	"github.com/csorg/csorg/syntaxcheck"
)

func main() {
	log.SetPrefix("csorg: ")
	log.SetFlags(0)

	a := newApp(os.Stdout, os.Stderr)
	if err := a.command().Execute(); err != nil {
		var usage *errUsage
		if errors.As(err, &usage) {
			log.Print(err)
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

// An app is one invocation of the command.
type app struct {
	stdout io.Writer
	stderr io.Writer

	log       *zap.Logger
	newLogger func(verbose bool) (*zap.Logger, error)
	now       func() time.Time

	configPath  string
	regions     bool
	showDiff    bool
	workers     int
	noBackup    bool
	verbose     bool
	lenient     bool
	checkSyntax bool
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		stdout:    stdout,
		stderr:    stderr,
		log:       zap.NewNop(),
		newLogger: productionLogger,
		now:       time.Now,
	}
}

func productionLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

func (a *app) command() *cobra.Command {
	root := &cobra.Command{
		Use:   "csorg [flags] [path...]",
		Short: "Reorder C# class members into canonical sections",
		Long: `Csorg groups the members of each C# class into fields, properties,
virtual properties, constants, enums, signals, and public, protected,
and private methods, each introduced by a section marker.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := a.newLogger(a.verbose)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.log = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.log.Sync()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := project.Apply
			if a.showDiff {
				mode = project.DiffOnly
			}
			return a.organize(cmd, args, mode)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "settings file (default <path>/"+config.FileName+")")
	pf.BoolVar(&a.regions, "regions", false, "write #region blocks instead of // comments")
	pf.IntVar(&a.workers, "workers", 0, "number of files to process in parallel")
	pf.BoolVar(&a.noBackup, "no-backup", false, "do not copy files before rewriting them")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "log every file")
	pf.BoolVar(&a.lenient, "lenient-markers", false, "accept decorated marker comments")
	pf.BoolVar(&a.checkSyntax, "check-syntax", false, "refuse rewrites that add C# parse errors")
	root.Flags().BoolVar(&a.showDiff, "diff", false, "show diff instead of writing files")

	root.AddCommand(&cobra.Command{
		Use:   "scan [path...]",
		Short: "Report which files need organizing",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.organize(cmd, args, project.Check)
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "watch [path]",
		Short: "Organize files as they are saved",
		Args:  cobra.MaximumNArgs(1),
		RunE:  a.watch,
	})
	return root
}

// rootOf returns the project root for a path argument:
// the directory itself, or the directory holding a file.
func rootOf(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return path, nil
	}
	return filepath.Dir(path), nil
}

// settings loads the configuration for root and applies the flags.
func (a *app) settings(cmd *cobra.Command, root string) (*config.Config, organize.Options, error) {
	path := a.configPath
	if path == "" {
		path = filepath.Join(root, config.FileName)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, organize.Options{}, newErrUsage("%v", err)
	}
	flags := cmd.Flags()
	if a.regions {
		cfg.Style = organize.RegionBlocks.String()
	}
	if flags.Changed("workers") {
		cfg.Workers = a.workers
	}
	if a.noBackup {
		cfg.Backup = false
	}
	if a.lenient {
		cfg.LenientMarkers = true
	}
	if a.checkSyntax {
		cfg.CheckSyntax = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, organize.Options{}, newErrUsage("%s: %v", path, err)
	}
	opts, err := cfg.Options()
	if err != nil {
		return nil, organize.Options{}, newErrUsage("%s: %v", path, err)
	}
	return cfg, opts, nil
}

// runner returns a Runner for the settings. The caller must call
// the returned function when done with it.
func (a *app) runner(cfg *config.Config, opts organize.Options, mode project.Mode) (*project.Runner, func()) {
	r := &project.Runner{
		Options: opts,
		Mode:    mode,
		Workers: cfg.Workers,
		Filter:  project.Filter{Exclude: cfg.Exclude, MinSize: cfg.MinSize},
		Log:     a.log,
	}
	if cfg.CheckSyntax {
		r.Syntax = syntaxcheck.New()
		return r, r.Syntax.Close
	}
	return r, func() {}
}

// organize runs mode over the files under each path in args.
func (a *app) organize(cmd *cobra.Command, args []string, mode project.Mode) error {
	if len(args) == 0 {
		args = []string{"."}
	}
	first, err := rootOf(args[0])
	if err != nil {
		return newErrUsage("%v", err)
	}
	cfg, opts, err := a.settings(cmd, first)
	if err != nil {
		return err
	}
	r, done := a.runner(cfg, opts, mode)
	defer done()

	ctx := cmd.Context()
	var all []project.FileResult
	for _, arg := range args {
		root, err := rootOf(arg)
		if err != nil {
			return newErrUsage("%v", err)
		}
		files, err := project.Discover(arg, r.Filter)
		if err != nil {
			return err
		}
		a.log.Debug("discovered", zap.String("path", arg), zap.Int("files", len(files)))

		r.Backup = nil
		if mode == project.Apply && cfg.Backup {
			r.Backup, err = project.NewBackup(root, a.now(), a.log)
			if err != nil {
				return err
			}
		}
		results, err := r.Run(ctx, files)
		if r.Backup != nil {
			if berr := r.Backup.Close(); err == nil {
				err = berr
			}
		}
		if err != nil {
			return err
		}
		a.report(root, mode, results)
		all = append(all, results...)
	}

	s := project.Summarize(all)
	switch mode {
	case project.DiffOnly:
		return nil
	case project.Check:
		project.NewReport(a.stdout, ".").Summary(s)
		if !s.Clean() {
			return &errNotOrganized{s.NeedsOrganization + s.Malformed + s.Failed}
		}
	default:
		project.NewReport(a.stdout, ".").Summary(s)
	}
	return nil
}

// report prints the results for one root.
// Scan lists every file; organizing lists only changes and problems.
func (a *app) report(root string, mode project.Mode, results []project.FileResult) {
	out := project.NewReport(a.stdout, root)
	errs := project.NewReport(a.stderr, root)
	for _, res := range results {
		switch {
		case mode == project.DiffOnly && res.Err != nil:
			errs.File(res)
		case mode == project.DiffOnly:
			a.stdout.Write(res.Diff)
		case mode == project.Check || res.Changed || res.Err != nil:
			out.File(res)
		}
	}
}

// watch organizes files under the root as they change, until interrupted.
func (a *app) watch(cmd *cobra.Command, args []string) error {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}
	root, err := rootOf(path)
	if err != nil {
		return newErrUsage("%v", err)
	}
	cfg, opts, err := a.settings(cmd, root)
	if err != nil {
		return err
	}
	r, done := a.runner(cfg, opts, project.Apply)
	defer done()
	if cfg.Backup {
		r.Backup, err = project.NewBackup(root, a.now(), a.log)
		if err != nil {
			return err
		}
		defer func() {
			if err := r.Backup.Close(); err != nil {
				a.log.Error("backup", zap.Error(err))
			}
		}()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := project.NewReport(a.stdout, root)
	w, err := project.NewWatcher(root, r.Filter, cfg.GetDebounce(), a.log, func(ctx context.Context, path string) {
		if res := r.File(ctx, path); res.Changed || res.Err != nil {
			out.File(res)
		}
	})
	if err != nil {
		return err
	}
	if err := w.Start(ctx); err != nil {
		w.Stop()
		return err
	}
	fmt.Fprintf(a.stderr, "watching %s (interrupt to stop)\n", root)
	<-ctx.Done()
	w.Stop()
	return nil
}
