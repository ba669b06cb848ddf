// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package prefix

// Decoder is a single-level lookup table for decoding prefix codes.
//
// The table is keyed by the next NumBits bits of the stream (LSB-first).
// Every extension of a code shares the same entry, which is decoded as:
//
//	var length = table[bits] & countMask
//	var symbol = table[bits] >> countBits
//
// An entry with a length of zero is not reachable by any code.
type Decoder struct {
	table   []uint16 // Lookup table of size 1<<NumBits
	NumBits uint     // Bit-width of the table (the longest code)
	NumSyms uint     // Number of symbols
}

// Init initializes Decoder according to the codes provided.
// The codes must have their Len and Val fields set by GeneratePrefixes.
//
// An empty set of codes produces a table where every lookup fails.
func (pd *Decoder) Init(codes PrefixCodes) {
	var maxBits uint
	for _, c := range codes {
		if maxBits < uint(c.Len) {
			maxBits = uint(c.Len)
		}
	}
	pd.NumBits = maxBits
	pd.NumSyms = uint(len(codes))
	pd.table = allocUint16s(pd.table, 1<<maxBits)
	for i := range pd.table {
		pd.table[i] = 0
	}
	for _, c := range codes {
		chunk := uint16(c.Sym<<countBits | c.Len)
		for j := int(c.Val); j < len(pd.table); j += 1 << c.Len {
			pd.table[j] = chunk
		}
	}
}

// Decode looks up the code at the bottom of bits, which must hold at least
// NumBits valid bits. It returns the symbol and the length of its code.
// A length of zero means that no code matches.
func (pd *Decoder) Decode(bits uint) (sym, nb uint) {
	chunk := pd.table[bits&(1<<pd.NumBits-1)]
	return uint(chunk >> countBits), uint(chunk & countMask)
}
