// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package deflate is a collection of utilities for the raw DEFLATE format.
//
// The codec itself lives in the flate sub-package. This package only
// describes the error values shared by the repository.
package deflate

import "github.com/dsnet/deflate/internal/errors"

// The Error interface identifies all compression related errors.
type Error interface {
	error
	CompressError()

	// IsInvalid reports whether the API was misused (e.g., a bad level).
	IsInvalid() bool

	// IsDeprecated reports the use of a deprecated and unsupported feature.
	IsDeprecated() bool

	// IsCorrupted reports whether the input stream was corrupted.
	IsCorrupted() bool
}

var _ Error = errors.Error{}
