// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package flate implements the DEFLATE compressed data format,
// described in RFC 1951.
//
// The encoder and decoder operate on complete in-memory buffers and produce
// raw DEFLATE streams without any header or trailer. Wrapping the stream in a
// container format (and verifying its checksums) is left to the caller.
//
// Encode and Decode may be called concurrently. All tables shared between
// calls are constructed during package initialization and never modified.
package flate

import (
	"fmt"

	"github.com/dsnet/deflate/internal/errors"
)

const (
	maxHistSize = 1 << 15
	endBlockSym = 256

	minMatchLen = 3
	maxMatchLen = 258

	maxStoredSize = 1<<16 - 1

	maxInt = int(^uint(0) >> 1)
)

const (
	NoCompression      = 0
	BestSpeed          = 1
	DefaultCompression = -1
	BestCompression    = 9

	defaultLevel = 6
)

func errorf(c int, f string, a ...interface{}) error {
	return errors.Error{Code: c, Pkg: "flate", Msg: fmt.Sprintf(f, a...)}
}

func panicf(c int, f string, a ...interface{}) {
	errors.Panic(errorf(c, f, a...))
}

// Errors reported by Decode. They are comparable with == and all of them
// report true for IsCorrupted.
var (
	// ErrReservedBlock reports a block with the reserved block type of 3.
	ErrReservedBlock error = errors.Error{Code: errors.Corrupted, Pkg: "flate", Msg: "reserved block type"}

	// ErrInvalidTable reports a prefix table that is over-subscribed,
	// incomplete, or otherwise malformed. It is also reported when a decoded
	// symbol has no valid meaning in its alphabet.
	ErrInvalidTable error = errors.Error{Code: errors.Corrupted, Pkg: "flate", Msg: "invalid prefix table"}

	// ErrDistanceTooFar reports a match that refers to data before the start
	// of the output.
	ErrDistanceTooFar error = errors.Error{Code: errors.Corrupted, Pkg: "flate", Msg: "distance too far back"}

	// ErrTruncated reports that the input ended before the final block did.
	ErrTruncated error = errors.Error{Code: errors.Corrupted, Pkg: "flate", Msg: "truncated input"}

	// ErrLengthMismatch reports a stored block whose length does not match
	// the one's complement copy that follows it.
	ErrLengthMismatch error = errors.Error{Code: errors.Corrupted, Pkg: "flate", Msg: "stored block length mismatch"}
)

// EncoderConfig configures Encode. A nil config is the same as a config with
// Level set to DefaultCompression.
type EncoderConfig struct {
	// Level is NoCompression, DefaultCompression, or a value in
	// BestSpeed..BestCompression. NoCompression only emits stored blocks.
	Level int

	// PrefixSize and SuffixSize reserve zeroed bytes before and after the
	// stream so that a container can fill in its header and trailer
	// without another copy.
	PrefixSize int
	SuffixSize int

	_ struct{} // Blank field to prevent unkeyed struct literals
}

// DecoderConfig configures Decode. A nil config uses the defaults.
type DecoderConfig struct {
	// OutputSize is the expected size of the decompressed data.
	// If accurate, the output buffer never needs to grow.
	OutputSize int

	_ struct{} // Blank field to prevent unkeyed struct literals
}

// level holds the match finder parameters for a compression level.
type level struct {
	nice  int // Accept a match of at least this length immediately
	chain int // Maximum number of chain candidates to examine
	shift uint
}

var levels = [BestCompression + 1]level{
	{0, 0, 0}, // Stored blocks only
	{8, 4, 0},
	{16, 8, 1},
	{16, 16, 1},
	{16, 32, 2},
	{32, 32, 2},
	{128, 128, 3},
	{128, 256, 3},
	{258, 1024, 4},
	{258, 4096, 4},
}
