// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package testutil

import (
	"encoding/binary"
	"sort"
)

// Corpus is a set of deterministic data generators keyed by name.
// Each generator returns exactly n bytes and always produces the same output
// for the same n.
var Corpus = map[string]func(n int) []byte{
	"zeros":   Zeros,
	"random":  Random,
	"digits":  Digits,
	"text":    Text,
	"binary":  Binary,
	"repeats": Repeats,
}

// CorpusNames returns the names in Corpus in sorted order.
func CorpusNames() []string {
	var names []string
	for name := range Corpus {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Zeros returns n zero bytes.
func Zeros(n int) []byte { return make([]byte, n) }

// Random returns n bytes of incompressible data.
func Random(n int) []byte { return NewRand(0).Bytes(n) }

// Digits returns n ASCII decimal digits. The data has no long range structure,
// so it mostly exercises prefix coding.
func Digits(n int) []byte {
	r := NewRand(1)
	b := make([]byte, n)
	for i := range b {
		b[i] = '0' + byte(r.Intn(10))
	}
	return b
}

var words = []string{
	"the", "of", "and", "to", "a", "in", "that", "it", "was", "he", "i", "his",
	"you", "with", "for", "had", "on", "but", "as", "is", "at", "not", "they",
	"river", "raft", "steamboat", "night", "widow", "judge", "island", "town",
	"considerable", "reckon", "somewheres", "warn't", "mississippi", "pilot",
}

// Text returns n bytes of English-like prose. Word choice is skewed towards
// the front of the word list so that both matching and prefix coding help.
func Text(n int) []byte {
	r := NewRand(2)
	b := make([]byte, 0, n+16)
	for len(b) < n {
		i := r.Intn(len(words))
		i = r.Intn(i + 1)
		b = append(b, words[i]...)
		switch p := r.Percent(); {
		case p < 8:
			b = append(b, ". "...)
		case p < 12:
			b = append(b, ",\n"...)
		default:
			b = append(b, ' ')
		}
	}
	return b[:n]
}

// Binary returns n bytes of fixed-size records with slowly varying fields,
// similar to what a table of machine-readable structs would look like.
func Binary(n int) []byte {
	r := NewRand(3)
	b := make([]byte, 0, n+16)
	var rec [16]byte
	var seq, val uint32
	for len(b) < n {
		seq++
		val += uint32(r.Intn(64))
		binary.LittleEndian.PutUint32(rec[0:], seq)
		binary.LittleEndian.PutUint32(rec[4:], val)
		binary.LittleEndian.PutUint32(rec[8:], uint32(r.Intn(4)))
		binary.LittleEndian.PutUint32(rec[12:], 0xdeadbeef)
		b = append(b, rec[:]...)
	}
	return b[:n]
}

// Repeats returns n bytes that heavily favor LZ77 based compression since
// a large bulk of the data is a copy from some distance ago. Since the source
// data is mostly random, prefix encoding does not benefit as much.
func Repeats(n int) []byte {
	var b []byte
	r := NewRand(4)

	randLen := func() (l int) {
		switch p := r.Percent(); {
		case p < 15: // 4..8
			l = 4 + r.Intn(4)
		case p < 30: // 8..16
			l = 8 + r.Intn(8)
		case p < 45: // 16..32
			l = 16 + r.Intn(16)
		case p < 60: // 32..64
			l = 32 + r.Intn(32)
		case p < 75: // 64..128
			l = 64 + r.Intn(64)
		case p < 90: // 128..256
			l = 128 + r.Intn(128)
		default: // 256..512
			l = 256 + r.Intn(256)
		}
		return l
	}

	randDist := func() (d int) {
		for d == 0 || d > len(b) {
			nb := uint(r.Intn(15)) // Distance class 1<<nb..2<<nb
			d = 1<<nb + r.Intn(1<<nb)
		}
		return d
	}

	writeRand := func(l int) {
		b = append(b, r.Bytes(l)...)
	}

	writeCopy := func(d, l int) {
		for i := 0; i < l; i++ {
			b = append(b, b[len(b)-d])
		}
	}

	writeRand(randLen())
	for len(b) < n {
		switch p := r.Percent(); {
		case p < 10:
			// Generate random new data.
			writeRand(randLen())
		case p < 90 && len(b) > 1024:
			// Write a long distance copy.
			d, l := randDist(), randLen()
			for d <= l {
				d, l = randDist(), randLen()
			}
			writeCopy(d, l)
		default:
			// Write a possibly short distance copy.
			writeCopy(randDist(), randLen())
		}
	}
	return b[:n]
}
