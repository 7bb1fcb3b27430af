// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package project

import "github.com/csorg/csorg/organize"

// A Summary counts file results by outcome.
type Summary struct {
	Organized            int
	AlreadyOrganized     int
	NoOrganizableContent int
	NotApplicable        int
	NeedsOrganization    int
	Malformed            int
	Failed               int
	Skipped              int
}

// Summarize counts the results.
func Summarize(results []FileResult) Summary {
	var s Summary
	for _, r := range results {
		switch {
		case r.Skipped:
			s.Skipped++
		case r.Reason == organize.Malformed:
			s.Malformed++
		case r.Err != nil:
			s.Failed++
		case r.Reason == organize.Organized:
			s.Organized++
		case r.Reason == organize.AlreadyOrganized:
			s.AlreadyOrganized++
		case r.Reason == organize.NoOrganizableContent:
			s.NoOrganizableContent++
		case r.Reason == organize.NotApplicable:
			s.NotApplicable++
		case r.Reason == organize.NeedsOrganization:
			s.NeedsOrganization++
		}
	}
	return s
}

// Relevant returns the number of files that were examined and not skipped.
func (s Summary) Relevant() int {
	return s.Organized + s.AlreadyOrganized + s.NoOrganizableContent + s.NotApplicable +
		s.NeedsOrganization + s.Malformed + s.Failed
}

// Clean reports whether no file needs organizing or could not be handled.
func (s Summary) Clean() bool {
	return s.NeedsOrganization == 0 && s.Malformed == 0 && s.Failed == 0
}
