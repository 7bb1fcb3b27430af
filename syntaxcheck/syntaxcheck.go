// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package syntaxcheck parses C# source with tree-sitter
// to confirm that a rewritten file is still well formed.
package syntaxcheck

import (
	"context"
	"fmt"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/csharp"
)

// A Problem is a syntax error found by the parser.
type Problem struct {
	Line, Column int  // 1-based
	Missing      bool // the parser inserted a missing token
	Kind         string
}

func (p Problem) String() string {
	if p.Missing {
		return fmt.Sprintf("%d:%d: missing %s", p.Line, p.Column, p.Kind)
	}
	return fmt.Sprintf("%d:%d: syntax error", p.Line, p.Column)
}

// A Checker parses C# source. It is safe for concurrent use;
// parses are serialized.
type Checker struct {
	mu     sync.Mutex
	parser *sitter.Parser
}

// New returns a Checker for C#.
func New() *Checker {
	parser := sitter.NewParser()
	parser.SetLanguage(csharp.GetLanguage())
	return &Checker{parser: parser}
}

// Close releases the parser.
func (c *Checker) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.parser.Close()
}

// Problems returns the syntax errors in src, in source order.
func (c *Checker) Problems(ctx context.Context, src []byte) ([]Problem, error) {
	c.mu.Lock()
	tree, err := c.parser.ParseCtx(ctx, nil, src)
	c.mu.Unlock()
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.RootNode()
	if !root.HasError() {
		return nil, nil
	}
	var list []Problem
	walk(root, &list)
	return list, nil
}

func walk(n *sitter.Node, list *[]Problem) {
	switch {
	case n.IsMissing():
		*list = append(*list, problem(n, true))
		return
	case n.Type() == "ERROR":
		*list = append(*list, problem(n, false))
		return
	case !n.HasError():
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		walk(n.Child(i), list)
	}
}

func problem(n *sitter.Node, missing bool) Problem {
	pt := n.StartPoint()
	return Problem{Line: int(pt.Row) + 1, Column: int(pt.Column) + 1, Missing: missing, Kind: n.Type()}
}

// Compare reports an error if new has more syntax errors than old.
// Files that already fail to parse may still be rewritten,
// as long as the rewrite makes nothing worse.
func (c *Checker) Compare(ctx context.Context, old, new []byte) error {
	before, err := c.Problems(ctx, old)
	if err != nil {
		return err
	}
	after, err := c.Problems(ctx, new)
	if err != nil {
		return err
	}
	if len(after) > len(before) {
		extra := added(before, after)
		return fmt.Errorf("rewrite introduces syntax error at %v (%d errors before, %d after)", extra[0], len(before), len(after))
	}
	return nil
}

// added returns the problems in after that have no counterpart in before.
// Rewriting moves lines, so problems are matched by kind, not position.
func added(before, after []Problem) []Problem {
	type key struct {
		missing bool
		kind    string
	}
	seen := make(map[key]int)
	for _, p := range before {
		seen[key{p.Missing, p.Kind}]++
	}
	var list []Problem
	for _, p := range after {
		k := key{p.Missing, p.Kind}
		if seen[k] > 0 {
			seen[k]--
			continue
		}
		list = append(list, p)
	}
	return list
}
