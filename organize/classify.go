// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package organize

import "strings"

// A Category is the section a member is sorted into.
// The numeric order of the constants is the canonical section order.
type Category int

const (
	Field Category = iota
	Property
	VirtualProperty
	Constant
	Enum
	Signal
	PublicMethod
	ProtectedMethod
	PrivateMethod
	Other
)

var categoryLabels = [...]string{
	Field:           "Fields",
	Property:        "Properties",
	VirtualProperty: "Virtual Properties",
	Constant:        "Constants",
	Enum:            "Enums",
	Signal:          "Signals",
	PublicMethod:    "Public Methods",
	ProtectedMethod: "Protected Methods",
	PrivateMethod:   "Private Methods",
	Other:           "Other",
}

// String returns the section label, as used in section markers.
func (c Category) String() string {
	if 0 <= c && int(c) < len(categoryLabels) {
		return categoryLabels[c]
	}
	return "Category(?)"
}

// Rank returns the position of c in the canonical order.
func (c Category) Rank() int {
	return int(c)
}

// organizable reports whether members of category c call for sections.
// Enums alone, like unclassified members, do not.
func (c Category) organizable() bool {
	return c != Enum && c != Other
}

var modifiers = map[string]bool{
	"public": true, "private": true, "protected": true, "internal": true,
	"static": true, "readonly": true, "const": true, "volatile": true,
	"virtual": true, "override": true, "abstract": true, "sealed": true,
	"new": true, "extern": true, "unsafe": true, "async": true,
	"partial": true, "required": true, "event": true, "fixed": true,
	"file": true,
}

var typeKeywords = map[string]bool{
	"class": true, "struct": true, "interface": true, "record": true,
	"enum": true, "delegate": true,
}

var accessorKeywords = map[string]bool{
	"get": true, "set": true, "init": true,
}

// A decl is the shape of a member declaration, read from its tokens.
type decl struct {
	attrs     map[string]bool
	mods      map[string]bool
	keyword   string // class, struct, interface, record, enum, delegate
	operator  bool
	indexer   bool
	params    bool // has a parameter list
	accessors bool // { get; set; } block
	arrow     bool // expression body with =>
	term      string
}

func (d *decl) property() bool {
	return !d.params && (d.accessors || d.arrow)
}

// rules are tried in order; the first match decides the category.
var rules = []struct {
	cat   Category
	match func(*decl) bool
}{
	{Enum, func(d *decl) bool { return d.keyword == "enum" }},
	{Signal, func(d *decl) bool { return d.keyword == "delegate" && d.attrs["Signal"] }},
	// Nested types, operators and indexers have no section of their own.
	// A plain delegate falls through to the method rules.
	{Other, func(d *decl) bool { return d.keyword != "" && d.keyword != "delegate" || d.operator || d.indexer }},
	{Constant, func(d *decl) bool { return d.mods["const"] }},
	{VirtualProperty, func(d *decl) bool { return d.property() && (d.mods["virtual"] || d.mods["override"]) }},
	{Property, (*decl).property},
	{PublicMethod, func(d *decl) bool { return d.method() && d.mods["public"] }},
	{ProtectedMethod, func(d *decl) bool { return d.method() && d.mods["protected"] }},
	{PrivateMethod, (*decl).method},
	{Field, func(d *decl) bool {
		return !d.params && (d.term == ";" || d.term == "=" || d.mods["event"] && d.term == "{")
	}},
}

func (d *decl) method() bool {
	return d.params && (d.term == "{" || d.term == ";" || d.term == "=>")
}

// Classify returns the category of the member declared by toks.
// Comment tokens among toks are ignored.
func Classify(toks []Token) Category {
	d := parseDecl(toks)
	if d == nil {
		return Other
	}
	for _, r := range rules {
		if r.match(d) {
			return r.cat
		}
	}
	return Other
}

func parseDecl(toks []Token) *decl {
	var code []Token
	for _, t := range toks {
		if !t.Kind.trivia() {
			code = append(code, t)
		}
	}
	if len(code) == 0 || code[0].Text == "{" || code[0].Text == "}" || code[0].Text == ";" {
		return nil
	}
	d := &decl{attrs: make(map[string]bool), mods: make(map[string]bool)}

	i := 0
	for i < len(code) && code[i].Text == "[" {
		i = d.attributes(code, i)
	}
	for i < len(code) && modifiers[code[i].Text] {
		d.mods[code[i].Text] = true
		i++
	}
	if i < len(code) && typeKeywords[code[i].Text] {
		d.keyword = code[i].Text
	}

	paren, bracket := 0, 0
	prev := ""
Header:
	for ; i < len(code); i++ {
		t := code[i].Text
		top := paren == 0 && bracket == 0
		switch {
		case t == "(":
			if top && isName(prev) {
				d.params = true
			}
			paren++
		case t == ")":
			paren--
		case t == "[":
			if top && prev == "this" {
				d.indexer = true
			}
			bracket++
		case t == "]":
			bracket--
		case !top:
			// inside a parameter list or attribute
		case t == "operator":
			d.operator = true
		case t == "{":
			d.term = t
			d.accessors = accessorBlock(code[i+1:])
			break Header
		case t == ";":
			d.term = t
			break Header
		case isAssign(t):
			if strings.HasPrefix(t, "=>") {
				d.arrow = true
				d.term = "=>"
			} else {
				d.term = "="
			}
			break Header
		}
		prev = t
	}
	return d
}

// attributes records the names in the attribute section starting at code[i],
// which is "[", and returns the index just past its closing "]".
func (d *decl) attributes(code []Token, i int) int {
	depth := 0
	expectName := true
	for ; i < len(code); i++ {
		t := code[i].Text
		switch t {
		case "[", "(":
			depth++
			if t == "[" && depth == 1 {
				expectName = true
			}
			continue
		case "]", ")":
			depth--
			if depth == 0 {
				return i + 1
			}
			continue
		case ",":
			if depth == 1 {
				expectName = true
			}
			continue
		}
		if depth == 1 && expectName && isIdent(t) {
			if i+1 < len(code) && code[i+1].Text == ":" {
				continue // target specifier, as in [field: Export]
			}
			d.attrs[attributeName(t)] = true
			expectName = false
		}
	}
	return i
}

// attributeName reduces Godot.SignalAttribute to Signal.
func attributeName(s string) string {
	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		s = s[i+1:]
	}
	if s != "Attribute" {
		s = strings.TrimSuffix(s, "Attribute")
	}
	return s
}

// accessorBlock reports whether code, which follows an opening brace,
// starts like a property accessor list.
func accessorBlock(code []Token) bool {
	i := 0
	for i < len(code) && code[i].Text == "[" {
		var d decl
		i = d.attributes(code, i)
	}
	for i < len(code) && modifiers[code[i].Text] {
		i++
	}
	return i < len(code) && accessorKeywords[code[i].Text]
}

// isName reports whether s can end the name of a method,
// as in M or M<T>.
func isName(s string) bool {
	if s == "" {
		return false
	}
	if strings.Trim(s, ">") == "" {
		return true
	}
	return isIdent(s) && !modifiers[s] && !typeKeywords[s]
}

func isIdent(s string) bool {
	if s == "" || '0' <= s[0] && s[0] <= '9' {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isWord(s[i]) {
			return false
		}
	}
	return true
}

// isAssign reports whether the operator token t starts with = or =>
// rather than ==.
func isAssign(t string) bool {
	return strings.HasPrefix(t, "=") && !strings.HasPrefix(t, "==")
}
