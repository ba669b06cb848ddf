// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package flate

// token is either a literal byte or a (length, distance) match.
//
// Matches are stored already split into their symbols and extra bits
// (RFC section 3.2.5) since both the block cost estimate and the final
// emission consume them in that form.
type token struct {
	match     bool
	lit       uint8  // Literal byte, if not a match
	lenSym    uint8  // Length symbol minus 257, in 0..28
	lenExtra  uint8  // Extra bits for the length, at most 5 bits
	distSym   uint8  // Distance symbol, in 0..29
	distExtra uint16 // Extra bits for the distance, at most 13 bits
}

func literalToken(c byte) token {
	return token{lit: c}
}

func matchToken(length, dist int) token {
	ls := encLen.Encode(uint(length))
	ds := encDist.Encode(uint(dist))
	return token{
		match:     true,
		lenSym:    uint8(ls),
		lenExtra:  uint8(uint32(length) - lenRanges[ls].Base),
		distSym:   uint8(ds),
		distExtra: uint16(uint32(dist) - distRanges[ds].Base),
	}
}

func (t token) length() int {
	return int(lenRanges[t.lenSym].Base) + int(t.lenExtra)
}

func (t token) dist() int {
	return int(distRanges[t.distSym].Base) + int(t.distExtra)
}

// extraBits reports the number of extra bits written after the symbols.
func (t token) extraBits() uint {
	if !t.match {
		return 0
	}
	return uint(lenRanges[t.lenSym].Len + distRanges[t.distSym].Len)
}
