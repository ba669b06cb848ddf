// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package flate

import "github.com/dsnet/deflate/internal/prefix"

// bitWriter packs bits LSB-first into a zeroed byte buffer.
//
// The write methods do not check bounds. Callers must call Grow with an upper
// bound on the bits they are about to write.
type bitWriter struct {
	buf []byte // Zeroed beyond the current position
	pos uint   // Bit offset of the next bit to write
}

// Grow ensures that nb more bits can be written. Every write touches up to
// 3 bytes, so a few bytes of slack are kept past the end.
func (bw *bitWriter) Grow(nb uint) {
	need := int((bw.pos+nb+7)/8) + 4
	if need <= len(bw.buf) {
		return
	}
	size := 2 * len(bw.buf)
	if size < need {
		size = need
	}
	buf := make([]byte, size)
	copy(buf, bw.buf)
	bw.buf = buf
}

// WriteBits writes the lower nb bits of v, where nb <= 16.
func (bw *bitWriter) WriteBits(v, nb uint) {
	if nb <= 9 {
		writeBits(bw.buf, bw.pos, uint32(v))
	} else {
		writeBits16(bw.buf, bw.pos, uint32(v))
	}
	bw.pos += nb
}

// WritePads writes 0-7 zero bits to achieve byte-alignment.
func (bw *bitWriter) WritePads() {
	bw.pos = (bw.pos + 7) &^ 7
}

// WriteBytes writes raw bytes. The writer must be byte-aligned.
func (bw *bitWriter) WriteBytes(b []byte) {
	bw.pos += 8 * uint(copy(bw.buf[bw.pos/8:], b))
}

// WriteSymbol writes the prefix code for sym using the provided prefix.Encoder.
func (bw *bitWriter) WriteSymbol(sym uint, pe *prefix.Encoder) {
	val, nb := pe.Encode(sym)
	writeBits16(bw.buf, bw.pos, uint32(val))
	bw.pos += nb
}

// WritePrefixCodes writes the header of a dynamic block according to
// RFC section 3.2.7, not including the 3-bit block header.
func (bw *bitWriter) WritePrefixCodes(numLitSyms, numDistSyms, numCLenSyms int, clens []clenToken, pe *prefix.Encoder) {
	bw.WriteBits(uint(numLitSyms-257), 5)
	bw.WriteBits(uint(numDistSyms-1), 5)
	bw.WriteBits(uint(numCLenSyms-4), 4)
	for _, sym := range clenLens[:numCLenSyms] {
		bw.WriteBits(pe.Len(sym), 3)
	}
	for _, c := range clens {
		bw.WriteSymbol(uint(c.sym), pe)
		if nb := clenExtraBits[c.sym]; nb > 0 {
			bw.WriteBits(uint(c.extra), nb)
		}
	}
}
