// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package organize reorders the members of a C# class body into
// canonical sections.
//
// The first class, struct, or record declared in a source file is split
// into members, each member is classified, and the body is rewritten so
// that members of the same category are contiguous and the categories
// appear in a fixed order:
//
//	Fields
//	Properties
//	Virtual Properties
//	Constants
//	Enums
//	Signals
//	Public Methods
//	Protected Methods
//	Private Methods
//
// Each section is introduced by a marker, either a "// Fields" line comment
// or a "#region Fields" ... "#endregion" block. The comments above a member
// move with it; stale markers are dropped and regenerated.
// Members keep their original relative order within a section,
// and no code or comment text is ever added or lost.
//
// The package works on text alone and does no I/O.
package organize

import "fmt"

// A Style selects how section markers are written.
type Style int

const (
	LineComments Style = iota // "// Fields"
	RegionBlocks              // "#region Fields" ... "#endregion"
)

func (s Style) String() string {
	switch s {
	case LineComments:
		return "comments"
	case RegionBlocks:
		return "regions"
	}
	return fmt.Sprintf("Style(%d)", int(s))
}

// ParseStyle returns the style named by s, as printed by Style.String.
func ParseStyle(s string) (Style, error) {
	switch s {
	case "comments", "":
		return LineComments, nil
	case "regions":
		return RegionBlocks, nil
	}
	return 0, fmt.Errorf("unknown marker style %q", s)
}

// Options control organizing.
// The zero value writes line comment markers and attaches only comments
// directly above a member.
type Options struct {
	Style Style

	// CommentGap is the number of blank lines allowed between a comment
	// and the member below it for the comment to still move with it.
	CommentGap int

	// LenientMarkers treats any line comment containing a category name
	// as a section marker. Otherwise the comment must be exactly the name.
	LenientMarkers bool
}

// A Reason says why Source did or did not change a text.
type Reason int

const (
	AlreadyOrganized     Reason = iota // the body is already canonical
	NoOrganizableContent               // nothing in the body calls for a section
	Organized                          // the body was rewritten
	NotApplicable                      // the file declares no class, struct, or record
	Malformed                          // the text could not be analyzed safely
	NeedsOrganization                  // reported by Check in place of Organized
)

var reasonNames = [...]string{
	AlreadyOrganized:     "already organized",
	NoOrganizableContent: "no organizable content",
	Organized:            "organized",
	NotApplicable:        "not applicable",
	Malformed:            "malformed",
	NeedsOrganization:    "needs organization",
}

func (r Reason) String() string {
	if 0 <= r && int(r) < len(reasonNames) {
		return reasonNames[r]
	}
	return fmt.Sprintf("Reason(%d)", int(r))
}

// A Result is the outcome of organizing one source text.
type Result struct {
	Changed bool
	Text    string // the new text, or the input if unchanged
	Reason  Reason
	Err     error // for Malformed, what was wrong
}

// A Status reports whether a text is organized without changing it.
type Status struct {
	Organized bool
	Reason    Reason
	Err       error
}

// Source organizes the first class body in src.
// It never returns text that differs from src in anything but the order of
// members, the section markers, and the white space between members.
func Source(src string, opts Options) Result {
	res := Result{Text: src}
	b, reason, err := load(src, opts)
	if b == nil {
		res.Reason, res.Err = reason, err
		return res
	}
	if IsOrganized(b, opts) {
		res.Reason = AlreadyOrganized
		return res
	}
	out := Render(b, opts)
	if out == src {
		res.Reason = AlreadyOrganized
		return res
	}
	if err := verify(src, out, opts); err != nil {
		res.Reason, res.Err = Malformed, err
		return res
	}
	return Result{Changed: true, Text: out, Reason: Organized}
}

// Check reports whether src is organized, using the same analysis as Source.
// A text that Source would rewrite has reason NeedsOrganization.
func Check(src string, opts Options) Status {
	r := Source(src, opts)
	st := Status{Reason: r.Reason, Err: r.Err}
	switch r.Reason {
	case Organized:
		st.Reason = NeedsOrganization
	case Malformed:
	default:
		st.Organized = true
	}
	return st
}

// load scans src and builds its classified class body.
// If there is nothing to organize, load returns a nil body and the reason.
func load(src string, opts Options) (*ClassBody, Reason, error) {
	toks, err := Scan(src)
	if err != nil {
		return nil, Malformed, err
	}
	b, ok := Locate(src, toks)
	if !ok {
		return nil, NotApplicable, nil
	}
	if b.Static {
		return nil, NoOrganizableContent, nil
	}
	b.Members = Segment(b)
	if err := Attach(b, opts); err != nil {
		return nil, Malformed, err
	}
	for _, m := range b.Members {
		m.Category = Classify(m.Tokens(b))
	}
	if !b.organizable() {
		return nil, NoOrganizableContent, nil
	}
	return b, 0, nil
}
