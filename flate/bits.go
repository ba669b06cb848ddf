// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package flate

import "encoding/binary"

// readBits16 returns the bits of b starting at bit offset pos, packed
// LSB-first. At least 16 (and usually 25) of the returned bits are valid.
// Bytes past the end of b read as zero.
func readBits16(b []byte, pos uint) uint32 {
	i := pos / 8
	var v uint32
	if i+4 <= uint(len(b)) {
		v = binary.LittleEndian.Uint32(b[i:])
	} else {
		for k := uint(0); k < 4 && i+k < uint(len(b)); k++ {
			v |= uint32(b[i+k]) << (8 * k)
		}
	}
	return v >> (pos % 8)
}

// readBits reads nb bits at bit offset pos, where nb <= 16.
func readBits(b []byte, pos, nb uint) uint32 {
	return readBits16(b, pos) & (1<<nb - 1)
}

// writeBits ORs v into b at bit offset pos. The value must be below 1<<9 and
// b must have room for 2 bytes at pos/8.
func writeBits(b []byte, pos uint, v uint32) {
	i := pos / 8
	v <<= pos % 8
	b[i] |= byte(v)
	b[i+1] |= byte(v >> 8)
}

// writeBits16 ORs v into b at bit offset pos. The value must be below 1<<17
// and b must have room for 3 bytes at pos/8.
func writeBits16(b []byte, pos uint, v uint32) {
	i := pos / 8
	v <<= pos % 8
	b[i] |= byte(v)
	b[i+1] |= byte(v >> 8)
	b[i+2] |= byte(v >> 16)
}
