// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rerr implements the small error-construction helper used across
// the simulator, in the style of gosl/chk.Err: a one-line Sprintf-shaped
// constructor for configuration and runtime errors.
package rerr

import "fmt"

// Newf builds an error from a format string and arguments, mirroring
// chk.Err's "return chk.Err(...)" idiom used throughout gofem.
func Newf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

// Wrap annotates err with a message prefix, keeping the original error
// accessible via errors.Unwrap/errors.Is.
func Wrap(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}
