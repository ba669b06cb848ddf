// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package prefix

// Encoder maps each symbol to its LSB-first code value and bit-length.
type Encoder struct {
	chunks  []uint32 // Val<<countBits | Len, indexed by symbol
	NumSyms uint     // Number of symbols
}

// Init initializes Encoder according to the codes provided.
// The codes must have their Len and Val fields set by GeneratePrefixes.
// Symbols absent from codes are assigned a zero length.
func (pe *Encoder) Init(codes PrefixCodes) {
	var numSyms uint
	for _, c := range codes {
		if numSyms <= uint(c.Sym) {
			numSyms = uint(c.Sym) + 1
		}
	}
	pe.NumSyms = numSyms
	pe.chunks = allocUint32s(pe.chunks, int(numSyms))
	for i := range pe.chunks {
		pe.chunks[i] = 0
	}
	for _, c := range codes {
		pe.chunks[c.Sym] = c.Val<<countBits | c.Len
	}
}

// Encode returns the LSB-first code value and bit-length for sym.
func (pe *Encoder) Encode(sym uint) (val, nb uint) {
	chunk := pe.chunks[sym]
	return uint(chunk >> countBits), uint(chunk & countMask)
}

// Len reports the bit-length of sym, which is zero if sym is unused.
func (pe *Encoder) Len(sym uint) uint {
	if sym >= uint(len(pe.chunks)) {
		return 0
	}
	return uint(pe.chunks[sym] & countMask)
}

// Length reports the total number of bits needed to encode each symbol i
// cnts[i] times.
func (pe *Encoder) Length(cnts []uint32) (nb uint) {
	for sym, n := range cnts {
		nb += uint(n) * pe.Len(uint(sym))
	}
	return nb
}
