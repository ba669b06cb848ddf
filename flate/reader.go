// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package flate

import (
	"github.com/dsnet/deflate/internal/errors"
	"github.com/dsnet/deflate/internal/prefix"
)

// Decoder decompresses raw DEFLATE streams held entirely in memory.
//
// A Decoder may be reused for multiple streams, which allows it to reuse
// its internal tables, but it must not be used concurrently.
type Decoder struct {
	InputOffset  int64 // Number of input bytes consumed by the last Decode
	OutputOffset int64 // Number of bytes produced by the last Decode

	conf DecoderConfig

	rd   bitReader // Input source
	buf  []byte    // Output buffer; only buf[:pos] is valid
	pos  int       // Number of output bytes produced
	last bool      // Last block bit detected

	step func(*Decoder) // Single step of decompression work (can panic)

	litTree  *prefix.Decoder // Literal and length symbol prefix decoder
	distTree *prefix.Decoder // Backward distance symbol prefix decoder

	// Tables for dynamic blocks. The fixed tables are shared by all
	// decoders, so they must never be the target of Init.
	dynLitTree  prefix.Decoder
	dynDistTree prefix.Decoder
}

// NewDecoder returns a Decoder configured by conf, which may be nil.
func NewDecoder(conf *DecoderConfig) *Decoder {
	d := new(Decoder)
	if conf != nil {
		d.conf = *conf
	}
	return d
}

// Decode decompresses a raw DEFLATE stream, stopping after the final block.
// Any input after the final block is ignored; InputOffset reports where the
// stream ended.
//
// On error, the data decompressed so far is returned along with the error.
func (d *Decoder) Decode(input []byte) ([]byte, error) {
	if d.conf.OutputSize < 0 || d.conf.OutputSize > maxInt-maxMatchLen {
		return nil, errorf(errors.Invalid, "invalid output size: %d", d.conf.OutputSize)
	}

	// The symbol loop wants maxMatchLen bytes of headroom, so reserve that
	// on top of an exact size hint to avoid a needless final grow.
	size := d.conf.OutputSize + maxMatchLen
	if d.conf.OutputSize == 0 {
		size = 2 * len(input)
		if size < 64 {
			size = 64
		}
	}
	d.rd.Init(input)
	d.buf = make([]byte, size)
	d.pos = 0
	d.last = false
	d.step = (*Decoder).readBlockHeader

	err := d.run()
	out := d.buf[:d.pos:d.pos]
	d.InputOffset = d.rd.Offset()
	d.OutputOffset = int64(d.pos)
	d.buf = nil // Output belongs to the caller now
	return out, err
}

func (d *Decoder) run() (err error) {
	defer errors.Recover(&err)
	for d.step != nil {
		d.step(d)
	}
	return nil
}

// grow ensures that at least n more bytes may be written to the output.
// Previously written bytes are preserved.
func (d *Decoder) grow(n int) {
	if len(d.buf)-d.pos >= n {
		return
	}
	size := 2 * len(d.buf)
	if size < d.pos+n {
		size = d.pos + n
	}
	buf := make([]byte, size)
	copy(buf, d.buf[:d.pos])
	d.buf = buf
}

// readBlockHeader reads the block header according to RFC section 3.2.3.
func (d *Decoder) readBlockHeader() {
	if d.last {
		d.step = nil
		return
	}

	d.last = d.rd.ReadBits(1) == 1
	switch d.rd.ReadBits(2) {
	case 0:
		// Raw block (RFC section 3.2.4).
		d.step = (*Decoder).readRawData
	case 1:
		// Fixed prefix block (RFC section 3.2.6).
		d.litTree, d.distTree = &fixedLitDec, &fixedDistDec
		d.step = (*Decoder).readBlock
	case 2:
		// Dynamic prefix block (RFC section 3.2.7).
		d.rd.ReadPrefixCodes(&d.dynLitTree, &d.dynDistTree)
		d.litTree, d.distTree = &d.dynLitTree, &d.dynDistTree
		d.step = (*Decoder).readBlock
	default:
		// Reserved block (RFC section 3.2.3).
		errors.Panic(ErrReservedBlock)
	}
}

// readRawData reads raw data according to RFC section 3.2.4.
func (d *Decoder) readRawData() {
	d.rd.ReadPads()
	n := uint16(d.rd.ReadBits(16))
	nn := uint16(d.rd.ReadBits(16))
	if n^nn != 0xffff {
		errors.Panic(ErrLengthMismatch)
	}

	b := d.rd.ReadBytes(int(n))
	d.grow(len(b))
	d.pos += copy(d.buf[d.pos:], b)
	d.step = (*Decoder).readBlockHeader
}

// readBlock reads block commands according to RFC section 3.2.3
// until the end-of-block symbol.
func (d *Decoder) readBlock() {
	for {
		// A single command produces at most maxMatchLen bytes.
		if len(d.buf)-d.pos < maxMatchLen {
			d.grow(maxMatchLen)
		}

		// Read the literal symbol.
		litSym := d.rd.ReadSymbol(d.litTree)
		switch {
		case litSym < endBlockSym:
			d.buf[d.pos] = byte(litSym)
			d.pos++
			continue
		case litSym == endBlockSym:
			d.step = (*Decoder).readBlockHeader
			return
		case litSym >= maxNumLitSyms:
			errors.Panic(ErrInvalidTable) // Symbols 286 and 287 are reserved
		}

		// Decode the copy length and distance.
		cpyLen := int(d.rd.ReadOffset(litSym-257, lenRanges))
		distSym := d.rd.ReadSymbol(d.distTree)
		if distSym >= maxNumDistSyms {
			errors.Panic(ErrInvalidTable) // Symbols 30 and 31 are reserved
		}
		dist := int(d.rd.ReadOffset(distSym, distRanges))
		if dist > d.pos {
			errors.Panic(ErrDistanceTooFar)
		}

		// Perform a backwards copy according to RFC section 3.2.3.
		// Overlapping copies must proceed one byte at a time.
		src := d.pos - dist
		if dist >= cpyLen {
			copy(d.buf[d.pos:d.pos+cpyLen], d.buf[src:src+cpyLen])
		} else {
			for i := 0; i < cpyLen; i++ {
				d.buf[d.pos+i] = d.buf[src+i]
			}
		}
		d.pos += cpyLen
	}
}

// Decode decompresses a raw DEFLATE stream using a new Decoder.
// The conf may be nil.
func Decode(input []byte, conf *DecoderConfig) ([]byte, error) {
	return NewDecoder(conf).Decode(input)
}
