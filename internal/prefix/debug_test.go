// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build debug
// +build debug

package prefix

import (
	"fmt"
	"testing"
)

func TestDebugString(t *testing.T) {
	codes := PrefixCodes{{Sym: 0, Cnt: 5, Len: 1}, {Sym: 1, Cnt: 2, Len: 2}, {Sym: 2, Cnt: 2, Len: 2}}
	if err := GeneratePrefixes(codes); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	single := PrefixCodes{{Sym: 3, Len: 1}}
	if err := GeneratePrefixes(single); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var pd, pd1 Decoder
	var pe, pe1 Encoder
	pd.Init(codes)
	pe.Init(codes)
	pd1.Init(single)
	pe1.Init(single)

	var vectors = []struct {
		desc   string
		input  fmt.Stringer
		output string
	}{{
		desc:   "range codes",
		input:  MakeRangeCodes(3, []uint{0, 1}),
		output: "{\n\t0: [3, 4) len 0\n\t1: [4, 6) len 1\n}",
	}, {
		desc:   "prefix codes",
		input:  codes,
		output: "{\n\t0: 0   cnt: 5\n\t1: 10  cnt: 2\n\t2: 11  cnt: 2\n}",
	}, {
		desc:   "decoder",
		input:  pd,
		output: "{numBits: 2, numSyms: 3,\n\t0  -> 0\n\t10 -> 1\n\t11 -> 2\n}",
	}, {
		desc:   "decoder with unassigned slot",
		input:  pd1,
		output: "{numBits: 1, numSyms: 1,\n\t0 -> 3\n}",
	}, {
		desc:   "encoder",
		input:  pe,
		output: "{numSyms: 3,\n\t0: 0\n\t1: 10\n\t2: 11\n}",
	}, {
		desc:   "encoder with absent symbols",
		input:  pe1,
		output: "{numSyms: 4,\n\t3: 0\n}",
	}}

	for i, v := range vectors {
		if got := v.input.String(); got != v.output {
			t.Errorf("test %d (%s), mismatching string:\ngot  %q\nwant %q", i, v.desc, got, v.output)
		}
	}
}
