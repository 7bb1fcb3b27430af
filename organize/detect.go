// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package organize

// organizable reports whether any member calls for a section.
func (b *ClassBody) organizable() bool {
	for _, m := range b.Members {
		if m.Category.organizable() {
			return true
		}
	}
	return false
}

// sections returns the category each member is sorted under.
// An Other member goes with the next classified member, just before it.
// Other members after the last classified one go to the last section,
// where rendering leaves them at the end of the body.
func sections(members []*Member) []Category {
	last := Other
	for _, m := range members {
		if m.Category != Other && (last == Other || m.Category > last) {
			last = m.Category
		}
	}
	cats := make([]Category, len(members))
	next := last
	for i := len(members) - 1; i >= 0; i-- {
		if members[i].Category != Other {
			next = members[i].Category
		}
		cats[i] = next
	}
	return cats
}

// IsOrganized reports whether the body is already in canonical form:
// each category's members are contiguous, the runs are in canonical order,
// each run is introduced by exactly the marker Render would write for the
// style, and no stale marker appears anywhere else.
// A body with nothing to organize is vacuously organized.
func IsOrganized(b *ClassBody, opts Options) bool {
	if !b.organizable() {
		return true
	}
	cats := sections(b.Members)
	for i, m := range b.Members {
		if i > 0 && cats[i] == cats[i-1] {
			if len(m.Marks) > 0 {
				return false
			}
			continue
		}
		if i > 0 && cats[i] < cats[i-1] {
			return false
		}
		if !marksMatch(m.Marks, expectedMarks(opts.Style, cats[i], i > 0)) {
			return false
		}
	}
	var tail []Marker
	if opts.Style == RegionBlocks {
		tail = []Marker{{Tok: Token{Kind: RegionClose}, Category: Other}}
	}
	return marksMatch(b.TailMarks, tail)
}

// expectedMarks returns the markers that introduce a run of category c.
func expectedMarks(style Style, c Category, afterRun bool) []Marker {
	if style == LineComments {
		return []Marker{{Tok: Token{Kind: LineComment}, Category: c}}
	}
	var marks []Marker
	if afterRun {
		marks = append(marks, Marker{Tok: Token{Kind: RegionClose}, Category: Other})
	}
	return append(marks, Marker{Tok: Token{Kind: RegionOpen}, Category: c})
}

func marksMatch(have, want []Marker) bool {
	if len(have) != len(want) {
		return false
	}
	for i := range have {
		if have[i].Tok.Kind != want[i].Tok.Kind || have[i].Category != want[i].Category {
			return false
		}
	}
	return true
}
