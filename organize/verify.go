// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package organize

import (
	"fmt"
	"sort"
	"strings"
)

// verify checks that out holds exactly the code and comments of src,
// ignoring white space, order, and section markers, that moving
// #region lines around did not break their nesting, and that out
// is itself organized.
func verify(src, out string, opts Options) error {
	oldToks, err := Scan(src)
	if err != nil {
		return err
	}
	newToks, err := Scan(out)
	if err != nil {
		return fmt.Errorf("rewritten text does not scan: %v", err)
	}
	old, new := content(oldToks, opts), content(newToks, opts)
	for i := 0; i < len(old) || i < len(new); i++ {
		switch {
		case i >= len(new):
			return fmt.Errorf("rewrite would drop %q", old[i])
		case i >= len(old):
			return fmt.Errorf("rewrite would add %q", new[i])
		case old[i] < new[i]:
			return fmt.Errorf("rewrite would drop %q", old[i])
		case old[i] > new[i]:
			return fmt.Errorf("rewrite would add %q", new[i])
		}
	}
	if _, bad := unmatchedRegion(oldToks); !bad {
		if t, bad := unmatchedRegion(newToks); bad {
			return fmt.Errorf("rewrite would leave %s unmatched", strings.TrimSpace(t.Text))
		}
	}
	b, _, err := load(out, opts)
	if err != nil {
		return fmt.Errorf("rewritten text: %v", err)
	}
	if b == nil || !IsOrganized(b, opts) && Render(b, opts) != out {
		return fmt.Errorf("rewritten text would change again")
	}
	return nil
}

// content returns the sorted texts of the non-marker tokens.
func content(toks []Token, opts Options) []string {
	var list []string
	for _, t := range toks {
		if !isMarker(t, opts) {
			list = append(list, t.Text)
		}
	}
	sort.Strings(list)
	return list
}

func isMarker(t Token, opts Options) bool {
	var ok bool
	switch t.Kind {
	case LineComment:
		_, ok = commentCategory(t.Text, opts.LenientMarkers)
	case RegionOpen:
		_, ok = regionCategory(t.Text)
	case RegionClose:
		ok = true
	}
	return ok
}

// unmatchedRegion returns the first #endregion with no open #region,
// or else the innermost #region left open at the end.
func unmatchedRegion(toks []Token) (Token, bool) {
	var open []Token
	for _, t := range toks {
		switch t.Kind {
		case RegionOpen:
			open = append(open, t)
		case RegionClose:
			if len(open) == 0 {
				return t, true
			}
			open = open[:len(open)-1]
		}
	}
	if len(open) > 0 {
		return open[len(open)-1], true
	}
	return Token{}, false
}
