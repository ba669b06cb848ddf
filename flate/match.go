// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package flate

const (
	histMask = maxHistSize - 1

	// maxMatchDist is one less than the window size so that the prev slot of
	// any candidate in range is never the one just overwritten.
	maxMatchDist = maxHistSize - 1
)

// matcher is an LZ77 match finder using hash chains keyed by the first two
// bytes at each position.
//
// Both tables store a position plus one, such that zero means no entry.
type matcher struct {
	head [1 << 16]uint32     // Most recent position for each 2-byte prefix
	prev [maxHistSize]uint32 // Prior position with the same prefix, by pos&histMask

	level
}

func newMatcher(lvl int) *matcher {
	return &matcher{level: levels[lvl]}
}

// Insert records position i, which must have two bytes available, and
// returns the previous position with the same prefix (or -1).
func (m *matcher) Insert(in []byte, i int) int {
	key := uint16(in[i]) | uint16(in[i+1])<<8
	cand := int(m.head[key]) - 1
	m.prev[i&histMask] = m.head[key]
	m.head[key] = uint32(i + 1)
	return cand
}

// Search finds the longest match for in[i:] by walking back through the
// chain starting at cand, which must be the value Insert returned for i.
// It returns a zero length if no match of at least minMatchLen exists.
//
// Whenever a longer match is found, the walk continues from the chain of the
// position within the matched span that has the largest hop back to its
// own predecessor.
func (m *matcher) Search(in []byte, i, cand int) (length, dist int) {
	maxLen := len(in) - i
	if maxLen > maxMatchLen {
		maxLen = maxMatchLen
	}
	maxDist := i
	if maxDist > maxMatchDist {
		maxDist = maxMatchDist
	}
	if cand < 0 || maxLen < minMatchLen {
		return 0, 0
	}

	bestLen := minMatchLen - 1
	off := 0 // Offset into the match span that the chain walk follows
	chain := m.chain
	for d := i - cand; d <= maxDist && chain > 0; chain-- {
		// Quick check on the byte that would make this the best match.
		if in[i+bestLen] == in[i+bestLen-d] {
			n := 0
			for n < maxLen && in[i+n] == in[i+n-d] {
				n++
			}
			if n > bestLen {
				bestLen, dist = n, d
				if n >= m.nice || n >= maxLen {
					break
				}

				span := n - 2
				if span > d {
					span = d
				}
				var maxHop int
				off = 0
				for j := 0; j < span; j++ {
					p := i - d + j
					pp := int(m.prev[p&histMask]) - 1
					if hop := p - pp; pp >= 0 && hop > maxHop {
						maxHop, off = hop, j
					}
				}
			} else if n < 2 {
				chain >>= m.shift
			}
		}

		// Step back along the chain of the position being followed.
		p := i - d + off
		pp := int(m.prev[p&histMask]) - 1
		if pp < 0 {
			break
		}
		d += p - pp
	}
	if dist == 0 {
		return 0, 0
	}
	return bestLen, dist
}
