// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package organize

import "strings"

// A Kind is the structural kind of a Token.
type Kind int

const (
	Code Kind = iota
	LineComment
	BlockComment
	DocComment
	RegionOpen
	RegionClose
	StringLiteral
	CharLiteral
	Directive // any preprocessor line other than #region/#endregion
)

var kindNames = [...]string{
	Code:          "Code",
	LineComment:   "LineComment",
	BlockComment:  "BlockComment",
	DocComment:    "DocComment",
	RegionOpen:    "RegionOpen",
	RegionClose:   "RegionClose",
	StringLiteral: "StringLiteral",
	CharLiteral:   "CharLiteral",
	Directive:     "Directive",
}

func (k Kind) String() string {
	if 0 <= k && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// trivia reports whether tokens of kind k carry no declaration text.
func (k Kind) trivia() bool {
	switch k {
	case LineComment, BlockComment, DocComment, RegionOpen, RegionClose, Directive:
		return true
	}
	return false
}

// A Token is one structural token of a source file.
// The bytes between consecutive tokens are always white space.
type Token struct {
	Kind  Kind
	Text  string
	Start int // byte offset of the first byte
	End   int // byte offset just past the last byte
	Depth int // brace depth after the token
}

// Scan splits src into tokens.
//
// Only unquoted, uncommented braces change the depth. Scan never fails:
// an unterminated literal or comment becomes a single token running to the
// end of src, and the problem, along with any brace imbalance, is reported
// in the returned error (an *ErrorList).
func Scan(src string) ([]Token, error) {
	s := &scanner{src: src}
	s.run()
	return s.toks, s.errs.Err()
}

type scanner struct {
	src   string
	pos   int
	depth int
	toks  []Token
	errs  ErrorList
}

func (s *scanner) emit(kind Kind, start, end int) {
	s.toks = append(s.toks, Token{Kind: kind, Text: s.src[start:end], Start: start, End: end, Depth: s.depth})
}

func (s *scanner) errorAt(offset int, msg string) {
	s.errs.Add(&Error{Pos: position(s.src, offset), Msg: msg})
}

func (s *scanner) run() {
	src := s.src
	for s.pos < len(src) {
		start := s.pos
		c := src[start]
		switch {
		case isSpace(c):
			s.pos++

		case c == '/' && strings.HasPrefix(src[start:], "//"):
			end := lineEnd(src, start)
			kind := LineComment
			if strings.HasPrefix(src[start:], "///") && !strings.HasPrefix(src[start:], "////") {
				kind = DocComment
			}
			s.emit(kind, start, end)
			s.pos = end

		case c == '/' && strings.HasPrefix(src[start:], "/*"):
			kind := BlockComment
			if strings.HasPrefix(src[start:], "/**") && !strings.HasPrefix(src[start:], "/**/") {
				kind = DocComment
			}
			end := strings.Index(src[start+2:], "*/")
			if end < 0 {
				s.errorAt(start, "comment not terminated")
				end = len(src)
			} else {
				end += start + 2 + len("*/")
			}
			s.emit(kind, start, end)
			s.pos = end

		case c == '#' && atLineStart(src, start):
			end := lineEnd(src, start)
			s.emit(directiveKind(src[start:end]), start, end)
			s.pos = end

		case c == '"' || (c == '@' || c == '$') && startsString(src, start):
			end, ok := stringEnd(src, start)
			if !ok {
				s.errorAt(start, "string literal not terminated")
			}
			s.emit(StringLiteral, start, end)
			s.pos = end

		case c == '\'':
			end, ok := charEnd(src, start)
			if !ok {
				s.errorAt(start, "rune literal not terminated")
			}
			s.emit(CharLiteral, start, end)
			s.pos = end

		case c == '{':
			s.depth++
			s.pos++
			s.emit(Code, start, s.pos)

		case c == '}':
			if s.depth == 0 {
				s.errorAt(start, "unexpected }")
			} else {
				s.depth--
			}
			s.pos++
			s.emit(Code, start, s.pos)

		case isWord(c):
			end := start
			for end < len(src) && isWord(src[end]) {
				end++
			}
			s.emit(Code, start, end)
			s.pos = end

		case isOp(c):
			end := start
			for end < len(src) && isOp(src[end]) {
				// Stop before a comment that follows an operator.
				if src[end] == '/' && end+1 < len(src) && (src[end+1] == '/' || src[end+1] == '*') {
					break
				}
				end++
			}
			if end == start {
				end++
			}
			s.emit(Code, start, end)
			s.pos = end

		default:
			// ( ) [ ] ; , and anything else stand alone.
			s.pos++
			s.emit(Code, start, s.pos)
		}
	}
	if s.depth > 0 {
		s.errorAt(len(src), "missing }")
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

func isWord(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9' ||
		c == '_' || c == '.' || c == '@' || c >= 0x80
}

func isOp(c byte) bool {
	return strings.IndexByte("=<>!+-*/%&|^?~:", c) >= 0
}

// lineEnd returns the offset of the end of the line containing i,
// excluding the newline and any carriage return before it.
func lineEnd(src string, i int) int {
	end := strings.IndexByte(src[i:], '\n')
	if end < 0 {
		return len(src)
	}
	end += i
	if end > i && src[end-1] == '\r' {
		end--
	}
	return end
}

// lineStart returns the offset of the first byte of the line containing i.
func lineStart(src string, i int) int {
	return strings.LastIndexByte(src[:i], '\n') + 1
}

// atLineStart reports whether only blanks precede offset i on its line.
func atLineStart(src string, i int) bool {
	return strings.TrimLeft(src[lineStart(src, i):i], " \t") == ""
}

func directiveKind(line string) Kind {
	name := strings.TrimLeft(line[1:], " \t")
	switch {
	case hasWordPrefix(name, "endregion"):
		return RegionClose
	case hasWordPrefix(name, "region"):
		return RegionOpen
	}
	return Directive
}

func hasWordPrefix(s, word string) bool {
	return strings.HasPrefix(s, word) && (len(s) == len(word) || !isWord(s[len(word)]))
}

// startsString reports whether a string literal begins at i,
// allowing for a run of @ and $ prefixes.
func startsString(src string, i int) bool {
	j := i
	for j < len(src) && j-i < 3 && (src[j] == '@' || src[j] == '$') {
		j++
	}
	return j < len(src) && src[j] == '"'
}

// stringEnd returns the offset just past the string literal starting at i.
// It understands regular, verbatim (@), interpolated ($), and raw (""") forms.
// If the literal is not terminated, stringEnd returns len(src), false.
func stringEnd(src string, i int) (int, bool) {
	verbatim, interpolated := false, false
	for ; i < len(src) && src[i] != '"'; i++ {
		if src[i] == '@' {
			verbatim = true
		} else {
			interpolated = true
		}
	}
	quotes := 0
	for i+quotes < len(src) && src[i+quotes] == '"' {
		quotes++
	}
	if verbatim {
		// "" is an escaped quote inside a verbatim string; there are no raw forms.
		quotes = 1
	}
	if quotes >= 3 {
		// Raw string: ends at the next run of at least as many quotes.
		for j := i + quotes; j < len(src); {
			if src[j] != '"' {
				j++
				continue
			}
			n := 0
			for j+n < len(src) && src[j+n] == '"' {
				n++
			}
			if n >= quotes {
				return j + n, true
			}
			j += n
		}
		return len(src), false
	}
	if quotes == 2 {
		return i + 2, true
	}

	for j := i + 1; j < len(src); {
		switch c := src[j]; {
		case c == '"':
			if verbatim && j+1 < len(src) && src[j+1] == '"' {
				j += 2
				continue
			}
			return j + 1, true
		case c == '\\' && !verbatim:
			j += 2
			continue
		case c == '{' && interpolated:
			if j+1 < len(src) && src[j+1] == '{' {
				j += 2
				continue
			}
			end, ok := holeEnd(src, j+1)
			if !ok {
				return len(src), false
			}
			j = end
			continue
		case c == '\n' && !verbatim:
			return len(src), false
		}
		j++
	}
	return len(src), false
}

// holeEnd returns the offset just past the } closing the interpolation
// hole whose expression starts at i.
func holeEnd(src string, i int) (int, bool) {
	nest := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == '"' || (c == '@' || c == '$') && startsString(src, i):
			end, ok := stringEnd(src, i)
			if !ok {
				return len(src), false
			}
			i = end
			continue
		case c == '\'':
			end, ok := charEnd(src, i)
			if !ok {
				return len(src), false
			}
			i = end
			continue
		case c == '(' || c == '[' || c == '{':
			nest++
		case c == ')' || c == ']':
			nest--
		case c == '}':
			if nest == 0 {
				return i + 1, true
			}
			nest--
		}
		i++
	}
	return len(src), false
}

// charEnd returns the offset just past the character literal starting at i.
func charEnd(src string, i int) (int, bool) {
	for j := i + 1; j < len(src); j++ {
		switch src[j] {
		case '\\':
			j++
		case '\'':
			return j + 1, true
		case '\n':
			return len(src), false
		}
	}
	return len(src), false
}
