// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Csorg reorders the members of C# classes into canonical sections.
//
// Usage:
//
//	csorg [-diff] [flags] [path ...]
//	csorg scan [flags] [path ...]
//	csorg watch [flags] [path]
//
// Csorg organizes the first class, struct, or record in each .cs file
// found under the given paths (default "."). Members are grouped, in order,
// into fields, properties, virtual properties, constants, enums, signals,
// and public, protected, and private methods. Each group is introduced by
// a marker comment:
//
//	// Fields
//	private int _health = 100;
//
//	// Public Methods
//	public override void _Ready()
//	{
//	}
//
// The -regions flag writes #region Fields ... #endregion blocks instead.
// Comments above a member, including documentation comments, move with it.
// Members keep their relative order within a group, and nothing but
// markers and the blank lines between members is ever added or removed.
//
// By default, csorg writes changes back to the disk, first copying each
// file it changes into a csorg_backups_<time> directory next to the
// project root. The -diff flag causes csorg to print a diff of the
// intended changes instead.
//
// Files are left alone if they declare only interfaces or enums, if
// their class is static, or if reordering would not be safe: when a
// string, character literal, or comment is not terminated, when braces
// do not balance, when a member is enclosed by #if, or when moving the
// lines of a #region that is not a group marker would break its nesting.
// Such a #region line moves with the member after it, and its #endregion
// stays with the member it closes. Build output (bin, obj, .godot), backups,
// generated files (*.g.cs, *.Designer.cs, AssemblyInfo.cs), and files
// with under 100 bytes of content are skipped.
//
// # Scan
//
// The scan command reports whether each file is organized without
// changing it:
//
//	✓ Player.cs
//	? Enemy.cs
//	! Broken.cs: 12:5: cannot reorder members around #if
//
// It exits with status 1 if any file needs organizing or could not be
// checked.
//
// # Watch
//
// The watch command organizes files as they are saved, until interrupted.
//
// # Configuration
//
// Settings are read from .csorg.yaml in the first path's directory, or
// from the file named by -config:
//
//	style: regions        # or comments
//	comment_gap: 1        # blank lines allowed between a comment and its member
//	lenient_markers: true # accept decorated markers like "// ---- Fields ----"
//	workers: 8
//	backup: true
//	check_syntax: true    # refuse rewrites that add C# parse errors
//	min_size: 100
//	exclude:
//	  - /addons/
//	watch:
//	  debounce: 300ms
//
// The environment variables CSORG_STYLE and CSORG_WORKERS override the
// file, and command-line flags override both.
package main
