// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package organize

// A ClassBody is the brace-delimited body of the type declaration being
// organized, split into members. It is built fresh for each source text.
type ClassBody struct {
	Src  string
	Toks []Token

	Name   string
	Kind   string // class, struct, or record
	Static bool

	Open  int // index in Toks of the opening brace
	Close int // index in Toks of the matching closing brace

	Members []*Member

	// Tail holds the comments after the last member,
	// and TailMarks the section markers among them.
	Tail      []Token
	TailMarks []Marker
}

// Locate finds the body of the first class, struct, or record declared
// at namespace level in toks. Interfaces, enums, and other declarations are
// skipped. A static class is returned only if no other candidate exists.
// Locate reports false if there is no candidate at all.
func Locate(src string, toks []Token) (*ClassBody, bool) {
	var static *ClassBody
	for i := 0; i < len(toks); {
		t := toks[i]
		if t.Kind.trivia() || t.Text == "}" || t.Text == ";" {
			i++
			continue
		}
		h := readHeader(toks, i)
		if h.end >= len(toks) {
			break
		}
		if toks[h.end].Text != "{" {
			i = h.end + 1
			continue
		}
		if h.keyword == "namespace" {
			i = h.end + 1
			continue
		}
		close := matchBrace(toks, h.end)
		if close < 0 {
			break
		}
		switch h.keyword {
		case "class", "struct", "record":
			b := &ClassBody{
				Src:    src,
				Toks:   toks,
				Name:   h.name,
				Kind:   h.keyword,
				Static: h.static,
				Open:   h.end,
				Close:  close,
			}
			if !b.Static {
				return b, true
			}
			if static == nil {
				static = b
			}
		}
		i = close + 1
	}
	if static != nil {
		return static, true
	}
	return nil, false
}

type header struct {
	keyword string
	name    string
	static  bool
	end     int // index of the terminating { or ;, or len(toks)
}

// readHeader reads a namespace-level declaration header starting at toks[i].
// The keyword is the first type or namespace keyword outside brackets,
// so the class in "interface I<T> where T : class" is not mistaken for one.
func readHeader(toks []Token, i int) header {
	var h header
	paren, bracket := 0, 0
	for ; i < len(toks); i++ {
		t := toks[i]
		if t.Kind.trivia() {
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
		if paren > 0 || bracket > 0 {
			continue
		}
		switch {
		case t.Text == "{" || t.Text == ";":
			h.end = i
			return h
		case t.Text == "}":
			// Stray close; let the caller resume after it.
			h.end = i
			return h
		case h.keyword == "" && t.Text == "static":
			h.static = true
		case h.keyword == "" && (typeKeywords[t.Text] || t.Text == "namespace"):
			h.keyword = t.Text
			if t.Text == "record" && i+1 < len(toks) && (toks[i+1].Text == "struct" || toks[i+1].Text == "class") {
				i++
			}
			if i+1 < len(toks) && isIdent(toks[i+1].Text) {
				h.name = toks[i+1].Text
			}
		}
	}
	h.end = len(toks)
	return h
}

// matchBrace returns the index of the brace closing toks[open],
// or -1 if there is none.
func matchBrace(toks []Token, open int) int {
	want := toks[open].Depth - 1
	for i := open + 1; i < len(toks); i++ {
		if toks[i].Kind == Code && toks[i].Text == "}" && toks[i].Depth == want {
			return i
		}
	}
	return -1
}
