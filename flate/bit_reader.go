// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package flate

import (
	"github.com/dsnet/deflate/internal/errors"
	"github.com/dsnet/deflate/internal/prefix"
)

// bitReader reads a DEFLATE stream from a complete input buffer.
//
// Reads past the end of the buffer are detected by comparing the bit
// position against the buffer length after every read, so that the bit
// primitives never need to check bounds themselves.
type bitReader struct {
	buf []byte
	pos uint // Bit offset of the next unread bit
	end uint // Bit length of buf

	// Local copies to reduce memory allocations.
	clenTree prefix.Decoder
	codes    prefix.PrefixCodes
}

func (br *bitReader) Init(b []byte) {
	*br = bitReader{buf: b, end: 8 * uint(len(b)), clenTree: br.clenTree, codes: br.codes}
}

// Offset reports the number of input bytes consumed, counting a partially
// read byte as consumed.
func (br *bitReader) Offset() int64 {
	if br.pos >= br.end {
		return int64(len(br.buf))
	}
	return int64((br.pos + 7) / 8)
}

func (br *bitReader) checkEOF() {
	if br.pos > br.end {
		errors.Panic(ErrTruncated)
	}
}

// ReadBits reads nb bits in LSB order, where nb <= 16.
func (br *bitReader) ReadBits(nb uint) uint {
	val := readBits(br.buf, br.pos, nb)
	br.pos += nb
	br.checkEOF()
	return uint(val)
}

// ReadPads reads 0-7 bits to achieve byte-alignment.
func (br *bitReader) ReadPads() uint {
	nb := (8 - br.pos%8) % 8
	return br.ReadBits(nb)
}

// ReadBytes returns the next n bytes of the input, which must be byte-aligned.
// The returned slice aliases the input buffer.
func (br *bitReader) ReadBytes(n int) []byte {
	i := br.pos / 8
	br.pos += 8 * uint(n)
	br.checkEOF()
	return br.buf[i : i+uint(n)]
}

// ReadSymbol reads the next prefix symbol using the provided prefix.Decoder.
func (br *bitReader) ReadSymbol(pd *prefix.Decoder) uint {
	sym, nb := pd.Decode(uint(readBits16(br.buf, br.pos)))
	if nb == 0 {
		if br.pos+pd.NumBits > br.end {
			errors.Panic(ErrTruncated)
		}
		errors.Panic(ErrInvalidTable) // Slot not assigned to any code
	}
	br.pos += nb
	br.checkEOF()
	return sym
}

// ReadOffset reads an offset value using the provided RangeCodes indexed by
// the given symbol.
func (br *bitReader) ReadOffset(sym uint, rcs prefix.RangeCodes) uint {
	rc := rcs[sym]
	return uint(rc.Base) + br.ReadBits(uint(rc.Len))
}

// ReadPrefixCodes reads the literal and distance prefix codes according to
// RFC section 3.2.7.
func (br *bitReader) ReadPrefixCodes(hl, hd *prefix.Decoder) {
	numLitSyms := br.ReadBits(5) + 257
	numDistSyms := br.ReadBits(5) + 1
	numCLenSyms := br.ReadBits(4) + 4
	if numLitSyms > maxNumLitSyms || numDistSyms > maxNumDistSyms {
		errors.Panic(ErrInvalidTable)
	}

	// Read the code-lengths prefix table.
	var clens [maxNumCLenSyms]uint8
	for _, sym := range clenLens[:numCLenSyms] {
		clens[sym] = uint8(br.ReadBits(3))
	}
	br.initDecoder(&br.clenTree, clens[:])

	// Use code-lengths table to decode HLIT and HDIST prefix tables.
	var lens [maxNumLitSyms + maxNumDistSyms]uint8
	for sym, maxSyms := uint(0), numLitSyms+numDistSyms; sym < maxSyms; {
		clen := br.ReadSymbol(&br.clenTree)
		if clen < 16 {
			// Literal bit-length symbol used.
			lens[sym] = uint8(clen)
			sym++
			continue
		}

		// Repeater symbol used.
		var rep uint8
		var repCnt uint
		switch clen {
		case 16:
			if sym == 0 {
				errors.Panic(ErrInvalidTable) // Nothing to repeat
			}
			rep = lens[sym-1]
			repCnt = 3 + br.ReadBits(2)
		case 17:
			repCnt = 3 + br.ReadBits(3)
		case 18:
			repCnt = 11 + br.ReadBits(7)
		default:
			errors.Panic(ErrInvalidTable)
		}
		if sym+repCnt > maxSyms {
			errors.Panic(ErrInvalidTable) // Excessive number of code symbols
		}
		for symEnd := sym + repCnt; sym < symEnd; sym++ {
			lens[sym] = rep
		}
	}

	if lens[endBlockSym] == 0 {
		errors.Panic(ErrInvalidTable) // Block could never terminate
	}
	br.initDecoder(hl, lens[:numLitSyms])
	br.initDecoder(hd, lens[numLitSyms:numLitSyms+numDistSyms])
}

// initDecoder builds pd from a code-length array indexed by symbol.
// Unused symbols have a length of zero.
func (br *bitReader) initDecoder(pd *prefix.Decoder, lens []uint8) {
	codes := br.codes[:0]
	for sym, n := range lens {
		if n > 0 {
			codes = append(codes, prefix.PrefixCode{Sym: uint32(sym), Len: uint32(n)})
		}
	}
	if err := prefix.GeneratePrefixes(codes); err != nil {
		errors.Panic(ErrInvalidTable)
	}
	pd.Init(codes)
	br.codes = codes
}
