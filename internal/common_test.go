// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package internal

import "testing"

func TestReverse(t *testing.T) {
	var vectors = []struct {
		v, n, want uint
	}{
		{0x0, 1, 0x0},
		{0x1, 1, 0x1},
		{0x1, 2, 0x2},
		{0x6, 3, 0x3},
		{0x0c, 8, 0x30},
		{0x1, 15, 0x4000},
		{0x7fff, 15, 0x7fff},
		{0x1234, 15, 0x1624},
	}

	for i, v := range vectors {
		if got := ReverseUint16N(v.v, v.n); got != v.want {
			t.Errorf("test %d, ReverseUint16N(%#x, %d) = %#x, want %#x", i, v.v, v.n, got, v.want)
		}
		if got := ReverseUint32N(uint32(v.v), v.n); uint(got) != v.want {
			t.Errorf("test %d, ReverseUint32N(%#x, %d) = %#x, want %#x", i, v.v, v.n, got, v.want)
		}
		if got := ReverseUint64N(uint64(v.v), v.n); uint(got) != v.want {
			t.Errorf("test %d, ReverseUint64N(%#x, %d) = %#x, want %#x", i, v.v, v.n, got, v.want)
		}
	}

	for i := range ReverseLUT15 {
		if got := ReverseLUT15[ReverseLUT15[i]]; int(got) != i {
			t.Fatalf("ReverseLUT15 is not an involution at %#x: got %#x", i, got)
		}
	}
}
