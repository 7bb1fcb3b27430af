// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package organize

import "strings"

// A Marker is an existing section marker: a line comment or #region naming
// a category, or the #endregion closing such a region.
type Marker struct {
	Tok      Token
	Category Category // Other for an #endregion
}

// Close reports whether m is an #endregion.
func (m Marker) Close() bool {
	return m.Tok.Kind == RegionClose
}

// Attach distributes the comments, region lines, and section markers
// between members. Walking back from each member, comments separated by no
// more than opts.CommentGap blank lines become its Leading text; earlier
// ones become Detached. Section markers are set aside in Marks. Comments
// after the last member go to the body's Tail.
//
// Any other #region or #endregion line is kept like a comment and travels
// with the member that follows it, except that the #endregion of a region
// holding a single member stays with that member as Trailing text.
//
// Attach fails if a conditional compilation directive appears between
// members, since reordering could move members across it.
func Attach(b *ClassBody, opts Options) error {
	type region struct {
		canonical bool // a section marker
		at        int  // index of the member the #region line precedes
	}
	var regions []region
	lo := b.Open + 1
	for i := 0; i <= len(b.Members); i++ {
		hi := b.Close
		if i < len(b.Members) {
			hi = b.Members[i].First
		}
		var kept []Token
		var marks []Marker
		for _, t := range b.Toks[lo:hi] {
			switch t.Kind {
			case Directive:
				return &Error{Pos: position(b.Src, t.Start), Msg: "cannot reorder members around " + strings.Fields(t.Text)[0]}
			case RegionOpen:
				c, ok := regionCategory(t.Text)
				regions = append(regions, region{ok, i})
				if ok {
					marks = append(marks, Marker{t, c})
					continue
				}
			case RegionClose:
				n := len(regions)
				if n == 0 {
					break // closes a region opened before the body
				}
				r := regions[n-1]
				regions = regions[:n-1]
				if r.canonical {
					marks = append(marks, Marker{t, Other})
					continue
				}
				if r.at == i-1 {
					prev := b.Members[i-1]
					prev.Trailing = append(prev.Trailing, t)
					continue
				}
			case LineComment:
				if c, ok := commentCategory(t.Text, opts.LenientMarkers); ok {
					marks = append(marks, Marker{t, c})
					continue
				}
			}
			kept = append(kept, t)
		}

		if i == len(b.Members) {
			b.Tail, b.TailMarks = kept, marks
			break
		}
		m := b.Members[i]
		m.Marks = marks
		m.Detached, m.Leading = split(b, kept, m.Start, opts.CommentGap)
		lo = m.Last + 1
	}
	return nil
}

// split divides the comments before a declaration starting at offset
// start into the run attached to it and the detached remainder.
// Markers removed from between two comments break the run.
func split(b *ClassBody, kept []Token, start, gap int) (detached, leading []Token) {
	cut := len(kept)
	next := start
	for cut > 0 {
		t := kept[cut-1]
		between := b.Src[t.End:next]
		if strings.TrimSpace(between) != "" || blankLines(between) > gap {
			break
		}
		cut--
		next = t.Start
	}
	return kept[:cut], kept[cut:]
}

// blankLines returns the number of empty lines in the white space s.
func blankLines(s string) int {
	n := strings.Count(s, "\n") - 1
	if n < 0 {
		return 0
	}
	return n
}

// markerKeys lists the names matching each category, singular and plural,
// ordered so that longer names that contain shorter ones are tried first.
var markerKeys = []struct {
	cat  Category
	keys []string
}{
	{VirtualProperty, []string{"virtual properties", "virtual property"}},
	{PublicMethod, []string{"public methods", "public method"}},
	{ProtectedMethod, []string{"protected methods", "protected method"}},
	{PrivateMethod, []string{"private methods", "private method"}},
	{Property, []string{"properties", "property"}},
	{Constant, []string{"constants", "constant"}},
	{Enum, []string{"enums", "enum"}},
	{Signal, []string{"signals", "signal"}},
	{Field, []string{"fields", "field"}},
}

// normalize lowercases s and collapses runs of white space.
func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// matchCategory finds the category named by label, either exactly
// or, if substring is set, anywhere within it.
func matchCategory(label string, substring bool) (Category, bool) {
	label = normalize(label)
	if label == "" {
		return 0, false
	}
	for _, mk := range markerKeys {
		for _, k := range mk.keys {
			if label == k || substring && strings.Contains(label, k) {
				return mk.cat, true
			}
		}
	}
	return 0, false
}

// commentCategory reports whether the line comment text is a section marker.
func commentCategory(text string, lenient bool) (Category, bool) {
	return matchCategory(strings.TrimPrefix(text, "//"), lenient)
}

// regionCategory reports whether the #region line text is a section marker.
func regionCategory(text string) (Category, bool) {
	label := strings.TrimLeft(strings.TrimPrefix(strings.TrimSpace(text), "#"), " \t")
	label = strings.TrimPrefix(label, "region")
	return matchCategory(label, true)
}
