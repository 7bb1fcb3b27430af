// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import "fmt"

// errUsage indicates a bad command line or configuration. Usage errors are
// independent of the files being organized.
type errUsage struct {
	err string
}

func newErrUsage(f string, args ...interface{}) *errUsage {
	return &errUsage{fmt.Sprintf(f, args...)}
}

func (e *errUsage) Error() string {
	return "usage: " + e.err
}

// errNotOrganized indicates that scan found files that need organizing
// or could not be checked.
type errNotOrganized struct {
	n int
}

func (e *errNotOrganized) Error() string {
	if e.n == 1 {
		return "1 file not organized"
	}
	return fmt.Sprintf("%d files not organized", e.n)
}
