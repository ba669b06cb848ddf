// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package flate

import (
	"testing"

	"github.com/dsnet/deflate/internal"
	"github.com/dsnet/deflate/internal/prefix"
	"github.com/dsnet/deflate/internal/testutil"
)

func TestReadBits(t *testing.T) {
	b := testutil.MustDecodeHex("a55aff00")
	var vectors = []struct {
		pos, nb uint
		want    uint32
	}{
		{0, 0, 0x0},
		{0, 4, 0x5},
		{4, 4, 0xa},
		{0, 16, 0x5aa5},
		{4, 12, 0x5aa},
		{12, 16, 0xff5},
		{24, 8, 0x00},
		{28, 16, 0x0}, // Past the end reads zeros
		{40, 16, 0x0},
	}
	for i, v := range vectors {
		if got := readBits(b, v.pos, v.nb); got != v.want {
			t.Errorf("test %d, readBits(%d, %d) = %#x, want %#x", i, v.pos, v.nb, got, v.want)
		}
	}
}

func TestBitRoundTrip(t *testing.T) {
	type field struct{ v, nb uint }
	r := testutil.NewRand(0)
	var fields []field
	var total uint
	for i := 0; i < 1000; i++ {
		nb := uint(r.Intn(17))
		fields = append(fields, field{uint(r.Int()) & (1<<nb - 1), nb})
		total += nb
	}

	var bw bitWriter
	bw.Grow(total)
	for _, f := range fields {
		bw.WriteBits(f.v, f.nb)
	}
	if bw.pos != total {
		t.Fatalf("mismatching write position: got %d, want %d", bw.pos, total)
	}

	var br bitReader
	br.Init(bw.buf[:(total+7)/8])
	for i, f := range fields {
		if got := br.ReadBits(f.nb); got != f.v {
			t.Errorf("field %d, ReadBits(%d) = %#x, want %#x", i, f.nb, got, f.v)
		}
	}
	if br.pos != total {
		t.Errorf("mismatching read position: got %d, want %d", br.pos, total)
	}
}

func TestBitWriterAligned(t *testing.T) {
	var bw bitWriter
	bw.Grow(3)
	bw.WriteBits(5, 3)
	bw.WritePads()
	data := []byte("hello")
	bw.Grow(8 * uint(len(data)))
	bw.WriteBytes(data)

	want := testutil.MustDecodeHex("0568656c6c6f")
	if got := bw.buf[:bw.pos/8]; string(got) != string(want) {
		t.Errorf("mismatching output:\ngot  %x\nwant %x", got, want)
	}
}

// TestFixedCodes tests the fixed codes against the values given in
// RFC section 3.2.6, written MSB-first as they appear in the RFC.
func TestFixedCodes(t *testing.T) {
	var vectors = []struct {
		sym  uint
		code string
	}{
		{0, "00110000"},
		{143, "10111111"},
		{144, "110010000"},
		{255, "111111111"},
		{256, "0000000"},
		{279, "0010111"},
		{280, "11000000"},
		{287, "11000111"},
	}
	for _, v := range vectors {
		in := testutil.MustDecodeBitGen("> " + v.code)
		if sym := readSym(in, &fixedLitDec); sym != v.sym {
			t.Errorf("fixed literal code %s: got symbol %d, want %d", v.code, sym, v.sym)
		}

		var bw bitWriter
		bw.Grow(16)
		bw.WriteSymbol(v.sym, &fixedLitEnc)
		if got := bw.buf[:(bw.pos+7)/8]; string(got) != string(in) || bw.pos != uint(len(v.code)) {
			t.Errorf("fixed literal symbol %d: got %x (%d bits), want %x (%d bits)", v.sym, got, bw.pos, in, len(v.code))
		}
	}

	for sym := uint(0); sym < 32; sym++ {
		if val, nb := fixedDistEnc.Encode(sym); nb != 5 || internal.ReverseUint16N(val, 5) != sym {
			t.Errorf("fixed distance symbol %d: got (%#x, %d)", sym, val, nb)
		}
	}
}

func readSym(b []byte, pd *prefix.Decoder) uint {
	var br bitReader
	br.Init(b)
	return br.ReadSymbol(pd)
}
