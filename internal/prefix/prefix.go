// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package prefix implements canonical prefix code construction along with the
// table-driven encoders and decoders built on top of them.
//
// Prefix code values are stored LSB-first since that is the order in which
// DEFLATE packs them into the bit stream.
package prefix

import (
	"fmt"
	"sort"

	"github.com/dsnet/deflate/internal"
	"github.com/dsnet/deflate/internal/errors"
)

func errorf(c int, f string, a ...interface{}) error {
	return errors.Error{Code: c, Pkg: "prefix", Msg: fmt.Sprintf(f, a...)}
}

const (
	countBits  = 4  // Number of bits to store the bit-width of the code
	symbolBits = 12 // Number of bits to store the symbol value

	countMask = (1 << countBits) - 1

	// MaxBits is the longest prefix code that this package can handle.
	MaxBits = 15
)

// PrefixCode is a representation of a prefix code, which is conceptually a
// mapping from some arbitrary symbol to some bit-string.
//
// The Sym and Cnt fields are typically provided by the user,
// while the Len and Val fields are generated by this package.
type PrefixCode struct {
	Sym uint32 // The symbol being mapped
	Cnt uint32 // The number times this symbol is used
	Len uint32 // Bit-length of the prefix code
	Val uint32 // Value of the prefix code (must be in 0..(1<<Len)-1)
}
type PrefixCodes []PrefixCode

type prefixCodesBySymbol []PrefixCode

func (c prefixCodesBySymbol) Len() int           { return len(c) }
func (c prefixCodesBySymbol) Less(i, j int) bool { return c[i].Sym < c[j].Sym }
func (c prefixCodesBySymbol) Swap(i, j int)      { c[i], c[j] = c[j], c[i] }

type prefixCodesByCount []PrefixCode

func (c prefixCodesByCount) Len() int { return len(c) }
func (c prefixCodesByCount) Less(i, j int) bool {
	return c[i].Cnt < c[j].Cnt || (c[i].Cnt == c[j].Cnt && c[i].Sym < c[j].Sym)
}
func (c prefixCodesByCount) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

func (pc PrefixCodes) SortBySymbol() { sort.Sort(prefixCodesBySymbol(pc)) }
func (pc PrefixCodes) SortByCount()  { sort.Sort(prefixCodesByCount(pc)) }

// Length computes the total bit-length using the Len and Cnt fields.
func (pc PrefixCodes) Length() (nb uint) {
	for _, c := range pc {
		nb += uint(c.Len) * uint(c.Cnt)
	}
	return nb
}

// checkLengths reports whether the codes form a complete prefix tree.
// A lone code of length one is accepted as the degenerate tree.
func (pc PrefixCodes) checkLengths() bool {
	if len(pc) == 1 {
		return pc[0].Len == 1
	}
	var sum uint
	for _, c := range pc {
		if c.Len == 0 || c.Len > MaxBits {
			return false
		}
		sum += 1 << (MaxBits - c.Len)
	}
	return len(pc) == 0 || sum == 1<<MaxBits
}

// checkPrefixes reports whether all codes have non-overlapping prefixes.
func (pc PrefixCodes) checkPrefixes() bool {
	for i, c1 := range pc {
		for j, c2 := range pc {
			mask := uint32(1)<<c1.Len - 1
			if i != j && c1.Len <= c2.Len && c1.Val&mask == c2.Val&mask {
				return false
			}
		}
	}
	return true
}

// checkCanonical reports whether all codes are canonical.
// That is, they have the following properties:
//
//	1. All codes of a given bit-length are consecutive values.
//	2. Shorter codes lexicographically precede longer codes.
//
// The codes must have unique symbols and be sorted by the symbol.
func (pc PrefixCodes) checkCanonical() bool {
	if len(pc) == 0 {
		return true
	}
	cs := append(PrefixCodes(nil), pc...)
	sort.SliceStable(cs, func(i, j int) bool { return cs[i].Len < cs[j].Len })

	var next uint32
	last := cs[0].Len
	for _, c := range cs {
		next <<= c.Len - last
		if internal.ReverseUint32N(c.Val, uint(c.Len)) != next {
			return false
		}
		next++
		last = c.Len
	}
	return true
}

// GenerateLengths assigns non-zero bit-lengths to all codes. Codes with high
// frequency counts will be assigned shorter codes to reduce bit entropy.
// This function is used primarily by compressors.
//
// The input codes must have the Cnt field populated and be sorted by count.
// Even if a code has a count of 0, a non-zero bit-length will be assigned.
//
// The result will have the Len field populated. The algorithm used guarantees
// that Len <= maxBits and that it is a complete prefix tree. A lone code is
// given a length of one. The resulting codes will remain sorted by count.
func GenerateLengths(codes PrefixCodes, maxBits uint) error {
	if len(codes) <= 1 {
		if len(codes) == 1 {
			codes[0].Len = 1
		}
		return nil
	}
	if maxBits > MaxBits || uint(len(codes)) > 1<<maxBits {
		return errorf(errors.Invalid, "cannot fit %d symbols within %d bits", len(codes), maxBits)
	}
	for i := 1; i < len(codes); i++ {
		if codes[i-1].Cnt > codes[i].Cnt {
			return errorf(errors.Invalid, "non-monotonically increasing symbol counts")
		}
	}

	// Build the merge tree as an arena of nodes. The leaves occupy the first
	// len(codes) slots in count order and internal nodes are appended as they
	// are created, so both halves are sorted and can be merged in linear time.
	// Every node records only its parent, which always sits at a higher index.
	type node struct {
		cnt    uint64
		parent int
	}
	n := len(codes)
	nodes := make([]node, n, 2*n-1)
	for i, c := range codes {
		nodes[i].cnt = uint64(c.Cnt)
	}
	leaf, inner := 0, n
	pop := func() int {
		if leaf < n && (inner >= len(nodes) || nodes[leaf].cnt <= nodes[inner].cnt) {
			leaf++
			return leaf - 1
		}
		inner++
		return inner - 1
	}
	for len(nodes) < cap(nodes) {
		a, b := pop(), pop()
		nodes[a].parent = len(nodes)
		nodes[b].parent = len(nodes)
		nodes = append(nodes, node{cnt: nodes[a].cnt + nodes[b].cnt})
	}

	// Walk from the root down; parents are always visited before children.
	depths := make([]uint, len(nodes))
	for i := len(nodes) - 2; i >= 0; i-- {
		depths[i] = depths[nodes[i].parent] + 1
	}

	// Histogram the leaf depths, clamping any that exceed maxBits.
	var blCnts [MaxBits + 1]uint
	var sum uint // Kraft sum in units of 2^-maxBits
	for _, d := range depths[:n] {
		if d > maxBits {
			d = maxBits
		}
		blCnts[d]++
		sum += 1 << (maxBits - d)
	}

	// Clamping over-subscribes the tree. Push leaves deeper until the Kraft
	// sum is exactly one again. Each step reduces the excess without ever
	// overshooting it.
	if sum > 1<<maxBits {
		for excess := sum - 1<<maxBits; excess > 0; {
			b := maxBits - 1
			for blCnts[b] == 0 {
				b--
			}
			if blCnts[maxBits] == 0 || b == maxBits-1 {
				blCnts[b]--
				blCnts[b+1]++
				excess -= 1 << (maxBits - b - 1)
			} else {
				blCnts[b]--
				blCnts[b+1] += 2
				blCnts[maxBits]--
				excess--
			}
		}
	}

	// Hand out the lengths with the longest going to the least frequent.
	var i int
	for nb := maxBits; nb > 0; nb-- {
		for k := blCnts[nb]; k > 0; k-- {
			codes[i].Len = uint32(nb)
			i++
		}
	}
	if internal.Debug && !codes.checkLengths() {
		panic("incomplete prefix tree generated")
	}
	return nil
}

// GeneratePrefixes assigns a prefix value to all codes according to the
// bit-lengths. This function is used by both compressors and decompressors.
//
// The input codes must have the Sym and Len fields populated and be
// sorted by symbol. The bit-lengths of each code must be properly allocated,
// such that it forms a complete tree. The only exception is a lone code of
// length one, which leaves the other half of the tree unassigned.
//
// The result will have the Val field populated and will produce a canonical
// prefix tree. The resulting codes will remain sorted by symbol.
func GeneratePrefixes(codes PrefixCodes) error {
	if len(codes) <= 1 {
		if len(codes) == 1 {
			if codes[0].Len != 1 {
				return errorf(errors.Corrupted, "degenerate prefix tree with one node")
			}
			codes[0].Val = 0
		}
		return nil
	}

	// Compute basic statistics on the symbols.
	var bitCnts [MaxBits + 1]uint
	minBits, maxBits := uint32(MaxBits), uint32(0)
	for i, c := range codes {
		if i > 0 && c.Sym <= codes[i-1].Sym {
			return errorf(errors.Corrupted, "non-unique or non-monotonically increasing symbols")
		}
		if c.Len == 0 || c.Len > MaxBits {
			return errorf(errors.Corrupted, "invalid prefix bit-length: %d", c.Len)
		}
		if minBits > c.Len {
			minBits = c.Len
		}
		if maxBits < c.Len {
			maxBits = c.Len
		}
		bitCnts[c.Len]++
	}
	if codes[len(codes)-1].Sym >= 1<<symbolBits {
		return errorf(errors.Invalid, "alphabet cardinality too large")
	}

	// Compute the next code for a symbol of a given bit length.
	var nextCodes [MaxBits + 1]uint
	var code uint
	for i := minBits; i <= maxBits; i++ {
		code <<= 1
		nextCodes[i] = code
		code += bitCnts[i]
	}
	if code != 1<<maxBits {
		return errorf(errors.Corrupted, "degenerate prefix tree") // Under or over subscribed
	}

	// Assign the codes in symbol order.
	for i, c := range codes {
		codes[i].Val = uint32(internal.ReverseUint16N(nextCodes[c.Len], uint(c.Len)))
		nextCodes[c.Len]++
	}

	if internal.Debug && !codes.checkPrefixes() {
		panic("overlapping prefixes detected")
	}
	if internal.Debug && !codes.checkCanonical() {
		panic("non-canonical prefixes detected")
	}
	return nil
}

func allocUint16s(s []uint16, n int) []uint16 {
	if cap(s) >= n {
		return s[:n]
	}
	return make([]uint16, n, n*3/2)
}

func allocUint32s(s []uint32, n int) []uint32 {
	if cap(s) >= n {
		return s[:n]
	}
	return make([]uint32, n, n*3/2)
}
