// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package flate

// clenToken is a symbol of the code-lengths alphabet (RFC section 3.2.7).
// Symbols 0..15 are literal lengths. Symbols 16, 17, and 18 are repeaters
// whose repeat count is carried in extra.
type clenToken struct {
	sym   uint8
	extra uint8
}

var clenExtraBits = [maxNumCLenSyms]uint{16: 2, 17: 3, 18: 7}

// appendCLenTokens run-length encodes lens and appends the result to dst.
// Runs may cross from the literal lengths into the distance lengths.
func appendCLenTokens(dst []clenToken, lens []uint8) []clenToken {
	for i := 0; i < len(lens); {
		n := lens[i]
		run := 1
		for i+run < len(lens) && lens[i+run] == n {
			run++
		}
		i += run

		if n == 0 {
			for run >= 11 {
				cnt := run
				if cnt > 138 {
					cnt = 138
				}
				if rem := run - cnt; rem > 0 && rem < 3 {
					cnt -= 3 - rem // Leave enough behind for a repeater
				}
				dst = append(dst, clenToken{18, uint8(cnt - 11)})
				run -= cnt
			}
			if run >= 3 {
				dst = append(dst, clenToken{17, uint8(run - 3)})
				run = 0
			}
			for ; run > 0; run-- {
				dst = append(dst, clenToken{0, 0})
			}
			continue
		}

		// Repeater 16 copies the previous length, so emit it literally first.
		dst = append(dst, clenToken{n, 0})
		run--
		for run >= 3 {
			cnt := run
			if cnt > 6 {
				cnt = 6
			}
			if rem := run - cnt; rem > 0 && rem < 3 {
				cnt -= 3 - rem
			}
			dst = append(dst, clenToken{16, uint8(cnt - 3)})
			run -= cnt
		}
		for ; run > 0; run-- {
			dst = append(dst, clenToken{n, 0})
		}
	}
	return dst
}
