// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build debug
// +build debug

package prefix

import (
	"fmt"
	"strings"

	"github.com/dsnet/deflate/internal"
)

// The String methods below render one table entry per line, with codes
// written MSB-first as RFC 1951 prints them.

func codeString(val, n uint32) string {
	if n == 0 {
		return ""
	}
	return fmt.Sprintf("%0*b", int(n), internal.ReverseUint16N(uint(val), uint(n)))
}

func numWidth(n uint32) int { return len(fmt.Sprint(n)) }

func (rcs RangeCodes) String() string {
	var sb strings.Builder
	w := numWidth(uint32(len(rcs)))
	sb.WriteString("{\n")
	for i, rc := range rcs {
		fmt.Fprintf(&sb, "\t%*d: [%d, %d) len %d\n", w, i, rc.Base, rc.End(), rc.Len)
	}
	sb.WriteString("}")
	return sb.String()
}

func (pc PrefixCodes) String() string {
	var maxSym, maxLen uint32
	for _, c := range pc {
		if maxSym < c.Sym {
			maxSym = c.Sym
		}
		if maxLen < c.Len {
			maxLen = c.Len
		}
	}

	var sb strings.Builder
	sb.WriteString("{\n")
	for _, c := range pc {
		fmt.Fprintf(&sb, "\t%*d: %-*s  cnt: %d\n", numWidth(maxSym), c.Sym, int(maxLen), codeString(c.Val, c.Len), c.Cnt)
	}
	sb.WriteString("}")
	return sb.String()
}

func (pd Decoder) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "{numBits: %d, numSyms: %d,\n", pd.NumBits, pd.NumSyms)
	for i, chunk := range pd.table {
		n := uint32(chunk & countMask)
		if n == 0 || i >= 1<<n {
			continue // Unassigned, or a repeat of a shorter code
		}
		fmt.Fprintf(&sb, "\t%-*s -> %d\n", int(pd.NumBits), codeString(uint32(i), n), chunk>>countBits)
	}
	sb.WriteString("}")
	return sb.String()
}

func (pe Encoder) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "{numSyms: %d,\n", pe.NumSyms)
	w := numWidth(uint32(len(pe.chunks)) - 1)
	for sym, chunk := range pe.chunks {
		if n := chunk & countMask; n > 0 {
			fmt.Fprintf(&sb, "\t%*d: %s\n", w, sym, codeString(chunk>>countBits, n))
		}
	}
	sb.WriteString("}")
	return sb.String()
}
