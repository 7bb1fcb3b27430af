// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package organize

import (
	"sort"
	"strings"

	"github.com/csorg/csorg/edit"
)

// Render returns the full source text with the body rewritten in canonical
// order: for each non-empty category, a section marker in the given style
// followed by its members in original order, one blank line between members
// and between sections. Existing markers are dropped and regenerated.
// Text outside the body is unchanged.
func Render(b *ClassBody, opts Options) string {
	cats := sections(b.Members)
	order := make([]int, len(b.Members))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return cats[order[i]] < cats[order[j]]
	})

	r := &renderer{b: b, indent: b.indent(), nl: b.newline()}
	r.write(r.nl)
	for i := 0; i < len(order); {
		c := cats[order[i]]
		j := i
		for j < len(order) && cats[order[j]] == c {
			j++
		}
		// #endregion lines leading the run close regions
		// opened in the run before it.
		closes, rest := splitCloses(b.Members[order[i]].pieces())
		r.lines(closes)
		if i > 0 {
			r.endSection(opts.Style)
			r.write(r.nl)
		}
		if opts.Style == RegionBlocks {
			r.write(r.indent, "#region ", c.String(), r.nl)
		} else {
			r.write(r.indent, "// ", c.String(), r.nl)
		}
		for k := i; k < j; k++ {
			m := b.Members[order[k]]
			pieces := m.pieces()
			if k == i {
				pieces = rest
			} else {
				r.write(r.nl)
			}
			r.member(m, pieces)
			r.write(r.nl)
		}
		i = j
	}
	closes, tail := splitCloses(b.Tail)
	r.lines(closes)
	if len(order) > 0 {
		r.endSection(opts.Style)
	}
	if len(tail) > 0 {
		r.write(r.nl, r.indent)
		r.pieces(tail, tail[len(tail)-1].End)
		r.write(r.nl)
	}
	r.write(b.closeIndent())

	buf := edit.NewBuffer([]byte(b.Src))
	buf.Replace(b.Toks[b.Open].End, b.Toks[b.Close].Start, r.w.String())
	return buf.String()
}

type renderer struct {
	b      *ClassBody
	w      strings.Builder
	indent string
	nl     string
}

func (r *renderer) write(list ...string) {
	for _, s := range list {
		r.w.WriteString(s)
	}
}

// member writes the comments and the declaration of m, starting at the indent.
func (r *renderer) member(m *Member, pieces []Token) {
	r.write(r.indent)
	r.pieces(pieces, m.Start)
	r.write(m.Text)
	for _, t := range m.Trailing {
		r.write(r.nl, r.indent, t.Text)
	}
}

// endSection closes a section in region style.
func (r *renderer) endSection(style Style) {
	if style == RegionBlocks {
		r.write(r.indent, "#endregion", r.nl)
	}
}

// lines writes each token on a line of its own.
func (r *renderer) lines(toks []Token) {
	for _, t := range toks {
		r.write(r.indent, t.Text, r.nl)
	}
}

// pieces returns the comments and region lines that precede m's declaration.
func (m *Member) pieces() []Token {
	var list []Token
	list = append(list, m.Detached...)
	return append(list, m.Leading...)
}

// splitCloses splits the #endregion lines off the front of toks.
func splitCloses(toks []Token) (closes, rest []Token) {
	i := 0
	for i < len(toks) && toks[i].Kind == RegionClose {
		i++
	}
	return toks[:i], toks[i:]
}

// pieces writes the comment tokens, each followed by the normalized
// space up to the next one, or up to end for the last.
func (r *renderer) pieces(toks []Token, end int) {
	for i, t := range toks {
		r.write(t.Text)
		next := end
		if i+1 < len(toks) {
			next = toks[i+1].Start
		}
		r.write(r.gap(r.b.Src[t.End:next]))
	}
}

// gap normalizes the text between two pieces: same-line space is kept,
// line breaks are re-indented, and blank lines collapse to one.
// Anything else in between was a dropped marker.
func (r *renderer) gap(s string) string {
	if strings.TrimSpace(s) != "" {
		return r.nl + r.indent
	}
	switch strings.Count(s, "\n") {
	case 0:
		return s
	case 1:
		return r.nl + r.indent
	}
	return r.nl + r.nl + r.indent
}

// indent returns the indentation for members: that of the first member
// starting its own line, or else that of the line holding the open brace.
func (b *ClassBody) indent() string {
	for _, m := range b.Members {
		if atLineStart(b.Src, m.Start) {
			return b.Src[lineStart(b.Src, m.Start):m.Start]
		}
	}
	return leadingBlanks(b.Src, b.Toks[b.Open].Start)
}

// closeIndent returns the text to put before the closing brace.
func (b *ClassBody) closeIndent() string {
	close := b.Toks[b.Close].Start
	if atLineStart(b.Src, close) {
		return b.Src[lineStart(b.Src, close):close]
	}
	return leadingBlanks(b.Src, b.Toks[b.Open].Start)
}

func (b *ClassBody) newline() string {
	if strings.Contains(b.Src, "\r\n") {
		return "\r\n"
	}
	return "\n"
}

// leadingBlanks returns the indentation of the line containing offset i.
func leadingBlanks(src string, i int) string {
	start := lineStart(src, i)
	end := start
	for end < len(src) && (src[end] == ' ' || src[end] == '\t') {
		end++
	}
	return src[start:end]
}
