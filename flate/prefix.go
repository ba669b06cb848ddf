// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package flate

import "github.com/dsnet/deflate/internal/prefix"

const (
	maxPrefixBits = 15
	maxCLenBits   = 7

	maxNumCLenSyms = 19
	maxNumLitSyms  = 286
	maxNumDistSyms = 30
)

// RFC section 3.2.5.
var lenRanges = func() prefix.RangeCodes {
	return append(prefix.MakeRangeCodes(3, []uint{
		0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 2, 2, 2, 2, 3, 3, 3, 3, 4, 4, 4, 4, 5, 5, 5, 5,
	}), prefix.RangeCode{Base: 258, Len: 0})
}()
var distRanges = func() prefix.RangeCodes {
	return prefix.MakeRangeCodes(1, []uint{
		0, 0, 0, 0, 1, 1, 2, 2, 3, 3, 4, 4, 5, 5, 6, 6, 7, 7, 8, 8, 9, 9, 10, 10, 11, 11, 12, 12, 13, 13,
	})
}()

var encLen, encDist = func() (el, ed prefix.RangeEncoder) {
	el.Init(lenRanges)
	ed.Init(distRanges)
	return
}()

// RFC section 3.2.6.
var fixedLitEnc, fixedLitDec = func() (e prefix.Encoder, d prefix.Decoder) {
	var litCodes [288]prefix.PrefixCode
	for i := 0; i < 144; i++ {
		litCodes[i] = prefix.PrefixCode{Sym: uint32(i), Len: 8}
	}
	for i := 144; i < 256; i++ {
		litCodes[i] = prefix.PrefixCode{Sym: uint32(i), Len: 9}
	}
	for i := 256; i < 280; i++ {
		litCodes[i] = prefix.PrefixCode{Sym: uint32(i), Len: 7}
	}
	for i := 280; i < 288; i++ {
		litCodes[i] = prefix.PrefixCode{Sym: uint32(i), Len: 8}
	}
	if err := prefix.GeneratePrefixes(litCodes[:]); err != nil {
		panic(err)
	}
	e.Init(litCodes[:])
	d.Init(litCodes[:])
	return
}()

// The fixed distance code covers all 32 five-bit codes so that the tree is
// complete, even though symbols 30 and 31 never appear in a valid stream.
var fixedDistEnc, fixedDistDec = func() (e prefix.Encoder, d prefix.Decoder) {
	var distCodes [32]prefix.PrefixCode
	for i := 0; i < 32; i++ {
		distCodes[i] = prefix.PrefixCode{Sym: uint32(i), Len: 5}
	}
	if err := prefix.GeneratePrefixes(distCodes[:]); err != nil {
		panic(err)
	}
	e.Init(distCodes[:])
	d.Init(distCodes[:])
	return
}()

// RFC section 3.2.7.
// Prefix code lengths for code lengths alphabet.
var clenLens = [maxNumCLenSyms]uint{
	16, 17, 18, 0, 8, 7, 9, 6, 10, 5, 11, 4, 12, 3, 13, 2, 14, 1, 15,
}
