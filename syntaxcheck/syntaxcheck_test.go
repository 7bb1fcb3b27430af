// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntaxcheck

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const good = `using Godot;

public partial class Player : Node2D
{
    // Fields
    private int _health = 100;

    // Public Methods
    public override void _Ready()
    {
        GD.Print(_health);
    }
}
`

const bad = `public class Player
{
    public void Broken(
    {
    }
}
`

func TestProblems(t *testing.T) {
	c := New()
	defer c.Close()
	ctx := context.Background()

	list, err := c.Problems(ctx, []byte(good))
	require.NoError(t, err)
	assert.Empty(t, list)

	list, err = c.Problems(ctx, []byte(bad))
	require.NoError(t, err)
	assert.NotEmpty(t, list)
	for _, p := range list {
		assert.GreaterOrEqual(t, p.Line, 1)
		assert.GreaterOrEqual(t, p.Column, 1)
	}
}

func TestCompare(t *testing.T) {
	c := New()
	defer c.Close()
	ctx := context.Background()

	assert.NoError(t, c.Compare(ctx, []byte(good), []byte(good)))
	assert.NoError(t, c.Compare(ctx, []byte(bad), []byte(bad)))
	err := c.Compare(ctx, []byte(good), []byte(bad))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "(0 errors before, ")
}

func TestAdded(t *testing.T) {
	before := []Problem{
		{Line: 3, Column: 5, Kind: "ERROR"},
	}
	after := []Problem{
		{Line: 2, Column: 1, Missing: true, Kind: ";"},
		{Line: 9, Column: 5, Kind: "ERROR"},
	}
	want := []Problem{{Line: 2, Column: 1, Missing: true, Kind: ";"}}
	assert.Equal(t, want, added(before, after))
	assert.Empty(t, added(after, after))
	assert.Empty(t, added(before, after[1:]), "a moved error is not new")
}
