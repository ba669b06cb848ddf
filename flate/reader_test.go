// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package flate

import (
	"bytes"
	"testing"

	"github.com/dsnet/deflate/internal/errors"
	"github.com/dsnet/deflate/internal/testutil"
)

func TestDecoder(t *testing.T) {
	// To verify any of these inputs as valid or invalid DEFLATE streams
	// according to the C zlib library, you can use the Python wrapper library:
	//	>>> hex_string = "010100feff11"
	//	>>> import zlib
	//	>>> zlib.decompress(hex_string.decode("hex"), -15) # Negative means raw DEFLATE
	//	'\x11'
	db := testutil.MustDecodeBitGen
	dh := testutil.MustDecodeHex

	var vectors = []struct {
		desc   string // Description of the test
		input  []byte // Test input string
		output []byte // Expected output string
		inIdx  int64  // Expected input offset after decoding
		err    error  // Expected error
	}{{
		desc:  "empty string (truncated)",
		inIdx: 0,
		err:   ErrTruncated,
	}, {
		desc:  "reserved block",
		input: db("< 1 11"),
		inIdx: 1,
		err:   ErrReservedBlock,
	}, {
		desc:  "raw block, truncated after block header",
		input: db("< 0 00 0*5"),
		inIdx: 1,
		err:   ErrTruncated,
	}, {
		desc:  "raw block, truncated in size field",
		input: db("< 0 00 0*5 < H8:0c"),
		inIdx: 2,
		err:   ErrTruncated,
	}, {
		desc: "raw block, truncated in raw data",
		input: db(`
			< 1 00 0*5          # Last, raw block, padding
			< H16:000c H16:fff3 # RawSize: 12
			X:68656c6c6f        # Raw data
		`),
		inIdx: 10,
		err:   ErrTruncated,
	}, {
		desc: "raw block, length mismatch",
		input: db(`
			< 1 00 0*5          # Last, raw block, padding
			< H16:0005 H16:fff0 # RawSize: 5, bad complement
			X:68656c6c6f        # Raw data
		`),
		inIdx: 5,
		err:   ErrLengthMismatch,
	}, {
		desc: "raw block",
		input: db(`
			< 1 00 0*5          # Last, raw block, padding
			< H16:0005 H16:fffa # RawSize: 5
			X:68656c6c6f        # Raw data
		`),
		output: dh("68656c6c6f"),
		inIdx:  10,
	}, {
		desc: "empty raw block",
		input: db(`
			< 1 00 0*5          # Last, raw block, padding
			< H16:0000 H16:ffff # RawSize: 0
		`),
		inIdx: 5,
	}, {
		desc: "raw block, trailing data ignored",
		input: db(`
			< 1 00 0*5          # Last, raw block, padding
			< H16:0001 H16:fffe # RawSize: 1
			X:7a X:deadbeef     # Raw data, trailing junk
		`),
		output: dh("7a"),
		inIdx:  6,
	}, {
		desc: "non-last raw block, missing final block",
		input: db(`
			< 0 00 0*5          # Non-last, raw block, padding
			< H16:0001 H16:fffe # RawSize: 1
			X:7a                # Raw data
		`),
		output: dh("7a"),
		inIdx:  6,
		err:    ErrTruncated,
	}, {
		desc: "raw block followed by empty fixed block",
		input: db(`
			< 0 00 0*5          # Non-last, raw block, padding
			< H16:0001 H16:fffe # RawSize: 1
			X:7a                # Raw data

			< 1 01    # Last, fixed block
			> 0000000 # EOB marker
		`),
		output: dh("7a"),
		inIdx:  8,
	}, {
		desc:  "empty fixed block",
		input: dh("0300"),
		inIdx: 2,
	}, {
		desc: "fixed block, literals and a match",
		input: db(`
			< 1 01          # Last, fixed block
			> 10010001      # Literal: 'a'
			> 0000001 00000 # Length: 3, Distance: 1
			> 0000000       # EOB marker
		`),
		output: []byte("aaaa"),
		inIdx:  4,
	}, {
		desc: "fixed block, longest match",
		input: db(`
			< 1 01          # Last, fixed block
			> 00110000      # Literal: 0x00
			> 11000101 00000 # Length: 258, Distance: 1
			> 0000000       # EOB marker
		`),
		output: make([]byte, 259),
		inIdx:  4,
	}, {
		desc: "fixed block, truncated before EOB",
		input: db(`
			< 1 01     # Last, fixed block
			> 10010001 # Literal: 'a'
		`),
		output: []byte("a"),
		inIdx:  2,
		err:    ErrTruncated,
	}, {
		desc: "fixed block, distance too far",
		input: db(`
			< 1 01          # Last, fixed block
			> 10010001      # Literal: 'a'
			> 0000001 00001 # Length: 3, Distance: 2
		`),
		output: []byte("a"),
		inIdx:  3,
		err:    ErrDistanceTooFar,
	}, {
		desc: "fixed block, match at start of output",
		input: db(`
			< 1 01          # Last, fixed block
			> 0000001 00000 # Length: 3, Distance: 1
		`),
		inIdx: 2,
		err:   ErrDistanceTooFar,
	}, {
		desc: "fixed block, reserved literal symbol 286",
		input: db(`
			< 1 01     # Last, fixed block
			> 11000110 # Symbol: 286
		`),
		inIdx: 2,
		err:   ErrInvalidTable,
	}, {
		desc: "fixed block, reserved distance symbol 30",
		input: db(`
			< 1 01          # Last, fixed block
			> 10010001      # Literal: 'a'
			> 0000001 11110 # Length: 3, Distance symbol: 30
		`),
		output: []byte("a"),
		inIdx:  3,
		err:    ErrInvalidTable,
	}, {
		desc:  "dynamic block, truncated in header",
		input: db("< 1 10 < D5:1"),
		inIdx: 1,
		err:   ErrTruncated,
	}, {
		desc:  "dynamic block, too many literal symbols",
		input: db("< 1 10 < D5:30 D5:0 D4:0"),
		inIdx: 3,
		err:   ErrInvalidTable,
	}, {
		desc:  "dynamic block, too many distance symbols",
		input: db("< 1 10 < D5:0 D5:30 D4:0"),
		inIdx: 3,
		err:   ErrInvalidTable,
	}, {
		desc: "over-subscribed HCLenTree",
		input: db(`
			< 1 10                  # Last, dynamic block
			< D5:0 D5:0 D4:0        # HLit: 257, HDist: 1, HCLen: 4
			< D3:1 D3:1 D3:1 D3:0   # HCLens: {16:1, 17:1, 18:1}
		`),
		inIdx: 4,
		err:   ErrInvalidTable,
	}, {
		desc: "incomplete HCLenTree",
		input: db(`
			< 1 10                # Last, dynamic block
			< D5:0 D5:0 D4:0      # HLit: 257, HDist: 1, HCLen: 4
			< D3:1 D3:2 D3:0 D3:0 # HCLens: {16:1, 17:2}
		`),
		inIdx: 4,
		err:   ErrInvalidTable,
	}, {
		desc: "degenerate HCLenTree with a long code",
		input: db(`
			< 1 10                # Last, dynamic block
			< D5:0 D5:0 D4:0      # HLit: 257, HDist: 1, HCLen: 4
			< D3:0 D3:0 D3:0 D3:2 # HCLens: {0:2}
		`),
		inIdx: 4,
		err:   ErrInvalidTable,
	}, {
		desc: "empty HCLenTree",
		input: db(`
			< 1 10            # Last, dynamic block
			< D5:0 D5:0 D4:15 # HLit: 257, HDist: 1, HCLen: 19
			< 000*19          # HCLens: {}
			> 0*258           # Use invalid HCLen code 0
		`),
		inIdx: 10,
		err:   ErrInvalidTable,
	}, {
		desc: "repeat of previous length with nothing to repeat",
		input: db(`
			< 1 10                      # Last, dynamic block
			< D5:0 D5:0 D4:15           # HLit: 257, HDist: 1, HCLen: 19
			< 001 000*2 001 000*15      # HCLens: {0:1, 16:1}
			> 1                         # Repeat previous length
		`),
		inIdx: 10,
		err:   ErrInvalidTable,
	}, {
		desc: "missing end-of-block code",
		input: db(`
			< 1 10                     # Last, dynamic block
			< D5:0 D5:0 D4:15          # HLit: 257, HDist: 1, HCLen: 19
			< 000*3 001 000*13 001 000 # HCLens: {0:1, 1:1}
			> 1 0*257                  # HLits: {0:1}, HDists: {}
		`),
		inIdx: 42,
		err:   ErrInvalidTable,
	}, {
		desc: "over-subscribed HLitTree",
		input: db(`
			< 1 10                     # Last, dynamic block
			< D5:0 D5:0 D4:15          # HLit: 257, HDist: 1, HCLen: 19
			< 000*3 001 000*13 001 000 # HCLens: {0:1, 1:1}
			> 1 1 0*254 1 0            # HLits: {0:1, 1:1, 256:1}, HDists: {}
		`),
		inIdx: 42,
		err:   ErrInvalidTable,
	}, {
		desc: "incomplete HLitTree",
		input: db(`
			< 1 10                                 # Last, dynamic block
			< D5:0 D5:0 D4:15                      # HLit: 257, HDist: 1, HCLen: 19
			< 000*3 001 000*11 010 000 010 000     # HCLens: {0:1, 1:2, 2:2}
			> 10 0*255 11 0                        # HLits: {0:1, 256:2}, HDists: {}
		`),
		inIdx: 42,
		err:   ErrInvalidTable,
	}, {
		desc: "complete dynamic block",
		input: db(`
			< 1 10                             # Last, dynamic block
			< D5:1 D5:0 D4:15                  # HLit: 258, HDist: 1, HCLen: 19
			< 000*3 001 000*11 010 000 010 000 # HCLens: {0:1, 1:2, 2:2}
			> 0*97 10 0*158 11 11              # HLits: {97:1, 256:2, 257:2}
			> 10                               # HDists: {0:1}
			> 0 11 0 10                        # 'a', Length: 3, Distance: 1, EOB
		`),
		output: []byte("aaaa"),
		inIdx:  43,
	}, {
		desc: "degenerate HDistTree, use missing HDist code",
		input: db(`
			< 1 10                             # Last, dynamic block
			< D5:1 D5:0 D4:15                  # HLit: 258, HDist: 1, HCLen: 19
			< 000*3 001 000*11 010 000 010 000 # HCLens: {0:1, 1:2, 2:2}
			> 0*97 10 0*158 11 11              # HLits: {97:1, 256:2, 257:2}
			> 10                               # HDists: {0:1}
			> 0 11 1                           # 'a', Length: 3, invalid HDist code 1
		`),
		output: []byte("a"),
		inIdx:  43,
		err:    ErrInvalidTable,
	}}

	for i, v := range vectors {
		output, err := Decode(v.input, nil)
		if err != v.err {
			t.Errorf("test %d (%s), mismatching error:\ngot  %v\nwant %v", i, v.desc, err, v.err)
		}
		if !bytes.Equal(output, v.output) {
			t.Errorf("test %d (%s), mismatching output:\ngot  %x\nwant %x", i, v.desc, output, v.output)
		}

		d := NewDecoder(nil)
		d.Decode(v.input)
		if d.InputOffset != v.inIdx {
			t.Errorf("test %d (%s), mismatching input offset: got %d, want %d", i, v.desc, d.InputOffset, v.inIdx)
		}
		if d.OutputOffset != int64(len(v.output)) {
			t.Errorf("test %d (%s), mismatching output offset: got %d, want %d", i, v.desc, d.OutputOffset, len(v.output))
		}
		if err != nil && !errors.IsCorrupted(err) {
			t.Errorf("test %d (%s), IsCorrupted() = false, want true", i, v.desc)
		}
	}
}

func TestDecoderOutputSize(t *testing.T) {
	input := testutil.Text(1e5)
	comp, err := Encode(input, nil)
	if err != nil {
		t.Fatalf("unexpected Encode error: %v", err)
	}

	for _, n := range []int{0, 1, 100, len(input) - 1, len(input), 2 * len(input)} {
		output, err := Decode(comp, &DecoderConfig{OutputSize: n})
		if err != nil {
			t.Errorf("OutputSize: %d, unexpected Decode error: %v", n, err)
		}
		if !bytes.Equal(output, input) {
			t.Errorf("OutputSize: %d, output mismatch", n)
		}
		if cap(output) != len(output) {
			t.Errorf("OutputSize: %d, cap(output) = %d, want %d", n, cap(output), len(output))
		}
	}

	for _, n := range []int{-1, maxInt - maxMatchLen + 1, maxInt} {
		if _, err := Decode(comp, &DecoderConfig{OutputSize: n}); !errors.IsInvalid(err) {
			t.Errorf("OutputSize: %d, IsInvalid(%v) = false, want true", n, err)
		}
	}
}

// TestDecoderReuse tests that a Decoder reused for many streams produces the
// same results as fresh ones, and that InputOffset finds each stream's end.
func TestDecoderReuse(t *testing.T) {
	var streams, inputs [][]byte
	var all []byte
	for i, name := range testutil.CorpusNames() {
		input := testutil.Corpus[name](1000 * (i + 1))
		comp, err := Encode(input, &EncoderConfig{Level: i % (BestCompression + 1)})
		if err != nil {
			t.Fatalf("test %d, unexpected Encode error: %v", i, err)
		}
		inputs = append(inputs, input)
		streams = append(streams, comp)
		all = append(all, comp...)
	}

	d := NewDecoder(nil)
	for i := range streams {
		output, err := d.Decode(all)
		if err != nil {
			t.Errorf("test %d, unexpected Decode error: %v", i, err)
		}
		if !bytes.Equal(output, inputs[i]) {
			t.Errorf("test %d, output mismatch", i)
		}
		if d.InputOffset != int64(len(streams[i])) {
			t.Errorf("test %d, mismatching input offset: got %d, want %d", i, d.InputOffset, len(streams[i]))
		}
		if d.OutputOffset != int64(len(inputs[i])) {
			t.Errorf("test %d, mismatching output offset: got %d, want %d", i, d.OutputOffset, len(inputs[i]))
		}
		all = all[d.InputOffset:]
	}
}
