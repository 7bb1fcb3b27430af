// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package organize

import "strings"

// A Member is one declaration in a type body together with the text
// that travels with it when the body is reordered.
type Member struct {
	Index int // position among its siblings in the original body

	First, Last int // indexes in the body's Toks of the first and last token
	Start, End  int // byte offsets of Text in the source

	// Text is the declaration, its owned block or initializer, and any
	// comment that follows on the same line as its last token.
	Text string

	// Header is the declaration text before its body, initializer,
	// or terminator.
	Header string

	// Leading holds the comments directly above the declaration.
	// Detached holds the comments above those, separated by blank lines.
	Leading  []Token
	Detached []Token

	// Trailing holds the #endregion lines closing a region that
	// holds only this member.
	Trailing []Token

	// Marks holds the section markers found between the previous
	// member and this one.
	Marks []Marker

	Category Category
}

// Tokens returns the tokens of m's Text.
func (m *Member) Tokens(b *ClassBody) []Token {
	return b.Toks[m.First : m.Last+1]
}

// Segment splits the body into members. A member starts at the first
// non-comment token after the previous member and ends at a ; at body
// level, or at the brace closing a block the declaration owns (method body,
// accessor list, enum or nested type body). Braces inside an initializer or
// expression body do not end the member.
func Segment(b *ClassBody) []*Member {
	var members []*Member
	toks := b.Toks
	for i := b.Open + 1; i < b.Close; {
		if toks[i].Kind.trivia() {
			i++
			continue
		}
		last := b.memberEnd(i)
		last = b.trailingComments(last)
		m := &Member{
			Index: len(members),
			First: i,
			Last:  last,
			Start: toks[i].Start,
			End:   toks[last].End,
		}
		m.Text = b.Src[m.Start:m.End]
		m.Header = b.header(i, last)
		members = append(members, m)
		i = last + 1
	}
	return members
}

// memberEnd returns the index of the last token of the member starting at toks[i].
func (b *ClassBody) memberEnd(i int) int {
	toks := b.Toks
	level := toks[b.Open].Depth
	paren, bracket := 0, 0
	assigned := false
	last := i
	for j := i; j < b.Close; j++ {
		t := toks[j]
		if t.Kind.trivia() {
			continue
		}
		last = j
		if t.Kind != Code {
			continue
		}
		switch {
		case t.Text == "(":
			paren++
		case t.Text == ")":
			if paren > 0 {
				paren--
			}
		case t.Text == "[":
			bracket++
		case t.Text == "]":
			if bracket > 0 {
				bracket--
			}
		case t.Depth != level || paren > 0 || bracket > 0:
			// nested
		case t.Text == ";":
			return j
		case isAssign(t.Text):
			assigned = true
		case t.Text == "}" && !assigned:
			// The member's own block closed. A property initializer or
			// a redundant semicolon may follow.
			k := b.nextCode(j + 1)
			if k < 0 {
				return j
			}
			switch {
			case toks[k].Text == ";":
				return k
			case isAssign(toks[k].Text):
				assigned = true
				j = k
				last = k
				continue
			}
			return j
		}
	}
	return last
}

// nextCode returns the index of the next non-comment token at or after i
// inside the body, or -1.
func (b *ClassBody) nextCode(i int) int {
	for ; i < b.Close; i++ {
		if !b.Toks[i].Kind.trivia() {
			return i
		}
	}
	return -1
}

// trailingComments extends the member ending at toks[last] over comments
// that start on the same line.
func (b *ClassBody) trailingComments(last int) int {
	toks := b.Toks
	for last+1 < b.Close {
		t := toks[last+1]
		if t.Kind != LineComment && t.Kind != BlockComment {
			break
		}
		if strings.Contains(b.Src[toks[last].End:t.Start], "\n") {
			break
		}
		last++
	}
	return last
}

// header returns the text of the member's declaration up to its first
// body-level brace, assignment, or semicolon.
func (b *ClassBody) header(first, last int) string {
	toks := b.Toks
	level := toks[b.Open].Depth
	paren, bracket := 0, 0
	end := toks[last].End
	for j := first; j <= last; j++ {
		t := toks[j]
		if t.Kind != Code {
			continue
		}
		switch t.Text {
		case "(":
			paren++
		case ")":
			paren--
		case "[":
			bracket++
		case "]":
			bracket--
		}
		if paren != 0 || bracket != 0 || j == first {
			continue
		}
		if (t.Text == "{" && t.Depth == level+1) || (t.Depth == level && (t.Text == ";" || isAssign(t.Text))) {
			end = t.Start
			break
		}
	}
	return strings.Join(strings.Fields(b.Src[toks[first].Start:end]), " ")
}
