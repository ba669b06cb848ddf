// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package flate

import (
	"github.com/dsnet/deflate/internal/errors"
	"github.com/dsnet/deflate/internal/prefix"
)

const (
	// A block is closed once it holds more than maxBlockTokens tokens or
	// more than maxBlockUnits cost units, where a literal costs 1 unit and a
	// match costs 2. A block is never closed with minBlockTail or fewer
	// input bytes left, since such a short tail is cheaper to fold in.
	maxBlockTokens = 12288
	maxBlockUnits  = 24573
	minBlockTail   = 111
)

// blockType is the BTYPE field of a block header (RFC section 3.2.3).
type blockType uint

const (
	blockStored blockType = iota
	blockFixed
	blockDynamic
)

// Encode compresses input into a raw DEFLATE stream. The conf may be nil.
//
// The returned buffer holds conf.PrefixSize zero bytes, then the stream,
// then conf.SuffixSize zero bytes. An error is only returned for an invalid
// configuration.
func Encode(input []byte, conf *EncoderConfig) (out []byte, err error) {
	c := EncoderConfig{Level: DefaultCompression}
	if conf != nil {
		c = *conf
	}
	lvl := c.Level
	if lvl == DefaultCompression {
		lvl = defaultLevel
	}
	if lvl < NoCompression || lvl > BestCompression {
		return nil, errorf(errors.Invalid, "invalid compression level: %d", c.Level)
	}
	if c.PrefixSize < 0 || c.SuffixSize < 0 {
		return nil, errorf(errors.Invalid, "invalid reserved sizes: %d, %d", c.PrefixSize, c.SuffixSize)
	}

	defer errors.Recover(&err)
	var e encoder
	e.Init(lvl, c.PrefixSize, len(input))
	e.Encode(input)
	return e.Finish(c.SuffixSize), nil
}

type encoder struct {
	bw  bitWriter
	lvl int
	mf  *matcher

	toks     []token
	litCnts  [maxNumLitSyms]uint32
	distCnts [maxNumDistSyms]uint32

	// Scratch space for building dynamic blocks.
	codes    prefix.PrefixCodes
	lens     []uint8
	clens    []clenToken
	litEnc   prefix.Encoder
	distEnc  prefix.Encoder
	clenEnc  prefix.Encoder
	clenCnts [maxNumCLenSyms]uint32
}

func (e *encoder) Init(lvl, pre, n int) {
	*e = encoder{lvl: lvl}
	e.bw.buf = make([]byte, pre+n+n/16+64)
	e.bw.pos = 8 * uint(pre)
}

// Finish returns the stream with post zero bytes appended.
func (e *encoder) Finish(post int) []byte {
	e.bw.Grow(8 * uint(post))
	n := int((e.bw.pos+7)/8) + post
	return e.bw.buf[:n:n]
}

// Encode compresses all of in, terminating the stream with a final block.
func (e *encoder) Encode(in []byte) {
	if e.lvl == NoCompression || len(in) < 4 {
		e.writeStored(in, true)
		return
	}

	e.mf = newMatcher(e.lvl)
	e.toks = make([]token, 0, maxBlockTokens+1)
	var units, start, wait int
	for i := 0; i < len(in); i++ {
		cand := -1
		if i+1 < len(in) {
			cand = e.mf.Insert(in, i)
		}
		if i < wait {
			continue // Covered by the previous match
		}

		if (len(e.toks) > maxBlockTokens || units > maxBlockUnits) && len(in)-i > minBlockTail {
			e.writeBlock(in[start:i], false)
			start, units = i, 0
		}

		if length, dist := e.mf.Search(in, i, cand); length >= minMatchLen {
			t := matchToken(length, dist)
			e.toks = append(e.toks, t)
			e.litCnts[257+uint(t.lenSym)]++
			e.distCnts[t.distSym]++
			units += 2
			wait = i + length
		} else {
			e.toks = append(e.toks, literalToken(in[i]))
			e.litCnts[in[i]]++
			units++
		}
	}
	e.writeBlock(in[start:], true)
}

// writeBlock emits the accumulated tokens, which encode raw, as whichever
// block type is smallest. Ties prefer stored, then fixed.
func (e *encoder) writeBlock(raw []byte, last bool) {
	e.litCnts[endBlockSym]++

	var extra uint
	for sym, n := range e.litCnts[257:] {
		extra += uint(n) * uint(lenRanges[sym].Len)
	}
	for sym, n := range e.distCnts {
		extra += uint(n) * uint(distRanges[sym].Len)
	}

	numLitSyms, numDistSyms, numCLenSyms := e.buildDynamic()
	storedBits := e.storedBits(len(raw))
	fixedBits := 3 + fixedLitEnc.Length(e.litCnts[:]) + fixedDistEnc.Length(e.distCnts[:]) + extra
	dynamicBits := 3 + 5 + 5 + 4 + 3*uint(numCLenSyms) + e.clenBits() +
		e.litEnc.Length(e.litCnts[:]) + e.distEnc.Length(e.distCnts[:]) + extra

	btype := blockDynamic
	switch {
	case storedBits <= fixedBits && storedBits <= dynamicBits:
		btype = blockStored
	case fixedBits <= dynamicBits:
		btype = blockFixed
	}

	switch btype {
	case blockStored:
		e.writeStored(raw, last)
	case blockFixed:
		e.bw.Grow(fixedBits)
		e.writeHeader(last, blockFixed)
		e.writeTokens(&fixedLitEnc, &fixedDistEnc)
	case blockDynamic:
		e.bw.Grow(dynamicBits)
		e.writeHeader(last, blockDynamic)
		e.bw.WritePrefixCodes(numLitSyms, numDistSyms, numCLenSyms, e.clens, &e.clenEnc)
		e.writeTokens(&e.litEnc, &e.distEnc)
	}

	e.toks = e.toks[:0]
	e.litCnts = [maxNumLitSyms]uint32{}
	e.distCnts = [maxNumDistSyms]uint32{}
}

// buildDynamic builds the prefix codes for a dynamic block from the current
// symbol counts and run-length encodes their code lengths.
func (e *encoder) buildDynamic() (numLitSyms, numDistSyms, numCLenSyms int) {
	numLitSyms = e.buildCodes(e.litCnts[:], maxPrefixBits, &e.litEnc)
	if numLitSyms < 257 {
		numLitSyms = 257
	}
	numDistSyms = e.buildCodes(e.distCnts[:], maxPrefixBits, &e.distEnc)
	if numDistSyms < 1 {
		numDistSyms = 1 // Zero lengths for all distances when there are no matches
	}

	e.lens = e.lens[:0]
	for sym := 0; sym < numLitSyms; sym++ {
		e.lens = append(e.lens, uint8(e.litEnc.Len(uint(sym))))
	}
	for sym := 0; sym < numDistSyms; sym++ {
		e.lens = append(e.lens, uint8(e.distEnc.Len(uint(sym))))
	}
	e.clens = appendCLenTokens(e.clens[:0], e.lens)

	e.clenCnts = [maxNumCLenSyms]uint32{}
	for _, c := range e.clens {
		e.clenCnts[c.sym]++
	}
	e.buildCodes(e.clenCnts[:], maxCLenBits, &e.clenEnc)

	numCLenSyms = maxNumCLenSyms
	for numCLenSyms > 4 && e.clenEnc.Len(clenLens[numCLenSyms-1]) == 0 {
		numCLenSyms--
	}
	return numLitSyms, numDistSyms, numCLenSyms
}

// clenBits reports the size of the run-length encoded code lengths.
func (e *encoder) clenBits() uint {
	nb := e.clenEnc.Length(e.clenCnts[:])
	for sym, n := range e.clenCnts {
		nb += uint(n) * clenExtraBits[sym]
	}
	return nb
}

// buildCodes initializes pe with a length-limited prefix code for cnts and
// returns one more than the largest symbol used.
func (e *encoder) buildCodes(cnts []uint32, maxBits uint, pe *prefix.Encoder) int {
	codes := e.codes[:0]
	for sym, n := range cnts {
		if n > 0 {
			codes = append(codes, prefix.PrefixCode{Sym: uint32(sym), Cnt: n})
		}
	}
	codes.SortByCount()
	if err := prefix.GenerateLengths(codes, maxBits); err != nil {
		panicf(errors.Internal, "%v", err)
	}
	codes.SortBySymbol()
	if err := prefix.GeneratePrefixes(codes); err != nil {
		panicf(errors.Internal, "%v", err)
	}
	pe.Init(codes)
	e.codes = codes
	return int(pe.NumSyms)
}

// storedBits reports the size of n bytes written as stored blocks starting
// at the current position.
func (e *encoder) storedBits(n int) uint {
	pos := e.bw.pos
	for {
		cnt := n
		if cnt > maxStoredSize {
			cnt = maxStoredSize
		}
		pos = (pos+3+7)&^7 + 32 + 8*uint(cnt)
		if n -= cnt; n == 0 {
			break
		}
	}
	return pos - e.bw.pos
}

// writeStored writes raw as one or more stored blocks (RFC section 3.2.4).
// Only the last of them carries the final flag.
func (e *encoder) writeStored(raw []byte, last bool) {
	for {
		cnt := len(raw)
		if cnt > maxStoredSize {
			cnt = maxStoredSize
		}
		e.bw.Grow(3 + 7 + 32 + 8*uint(cnt))
		e.writeHeader(last && cnt == len(raw), blockStored)
		e.bw.WritePads()
		e.bw.WriteBits(uint(cnt), 16)
		e.bw.WriteBits(uint(^uint16(cnt)), 16)
		e.bw.WriteBytes(raw[:cnt])
		if raw = raw[cnt:]; len(raw) == 0 {
			break
		}
	}
}

func (e *encoder) writeHeader(last bool, btype blockType) {
	var final uint
	if last {
		final = 1
	}
	e.bw.WriteBits(final|uint(btype)<<1, 3)
}

// writeTokens writes the block body followed by the end-of-block symbol.
func (e *encoder) writeTokens(lit, dist *prefix.Encoder) {
	bw := &e.bw
	for _, t := range e.toks {
		if !t.match {
			bw.WriteSymbol(uint(t.lit), lit)
			continue
		}
		bw.WriteSymbol(257+uint(t.lenSym), lit)
		bw.WriteBits(uint(t.lenExtra), uint(lenRanges[t.lenSym].Len))
		bw.WriteSymbol(uint(t.distSym), dist)
		bw.WriteBits(uint(t.distExtra), uint(distRanges[t.distSym].Len))
	}
	bw.WriteSymbol(endBlockSym, lit)
}
