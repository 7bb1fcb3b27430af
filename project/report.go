// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package project

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"

	"github.com/csorg/csorg/organize"
)

// A Report prints file results for people. Styling is dropped
// automatically when the writer is not a terminal.
type Report struct {
	w    io.Writer
	root string

	ok    lipgloss.Style
	needs lipgloss.Style
	bad   lipgloss.Style
	title lipgloss.Style
}

// NewReport returns a Report writing to w, naming files relative to root.
func NewReport(w io.Writer, root string) *Report {
	r := lipgloss.NewRenderer(w)
	return &Report{
		w:     w,
		root:  root,
		ok:    r.NewStyle().Foreground(lipgloss.Color("2")),
		needs: r.NewStyle().Foreground(lipgloss.Color("3")),
		bad:   r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		title: r.NewStyle().Bold(true),
	}
}

func (r *Report) name(path string) string {
	if rel, err := filepath.Rel(r.root, path); err == nil {
		return filepath.ToSlash(rel)
	}
	return path
}

// File prints one result line: ✓ for a file that is organized or
// has nothing to organize, ? for one that needs organizing, and
// ! for one that could not be handled. Skipped files print nothing.
func (r *Report) File(res FileResult) {
	name := r.name(res.Path)
	switch {
	case res.Skipped:
	case res.Err != nil:
		fmt.Fprintln(r.w, r.bad.Render(fmt.Sprintf("! %s: %v", name, res.Err)))
	case res.Reason == organize.NeedsOrganization:
		fmt.Fprintln(r.w, r.needs.Render("? "+name))
	case res.Reason == organize.Organized:
		fmt.Fprintln(r.w, r.ok.Render("✓ "+name+" (organized)"))
	default:
		fmt.Fprintln(r.w, r.ok.Render("✓ "+name))
	}
}

// Summary prints the totals.
func (r *Report) Summary(s Summary) {
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, r.title.Render("Results:"))
	fmt.Fprintf(r.w, "  relevant files:         %d\n", s.Relevant())
	if s.Organized > 0 {
		fmt.Fprintf(r.w, "  organized:              %d\n", s.Organized)
	}
	fmt.Fprintf(r.w, "  already organized:      %d\n", s.AlreadyOrganized)
	if s.NoOrganizableContent+s.NotApplicable > 0 {
		fmt.Fprintf(r.w, "  nothing to organize:    %d\n", s.NoOrganizableContent+s.NotApplicable)
	}
	if s.NeedsOrganization > 0 {
		fmt.Fprintln(r.w, r.needs.Render(fmt.Sprintf("  need organization:      %d", s.NeedsOrganization)))
	}
	if s.Malformed+s.Failed > 0 {
		fmt.Fprintln(r.w, r.bad.Render(fmt.Sprintf("  could not verify:       %d", s.Malformed+s.Failed)))
	}
	if s.Skipped > 0 {
		fmt.Fprintf(r.w, "  skipped:                %d\n", s.Skipped)
	}
}
