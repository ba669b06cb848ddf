// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package internal is a collection of common compression algorithms.
//
// For performance reasons, these packages lack strong error checking and
// require that the caller to ensure that strict invariants are kept.
package internal

var (
	// ReverseLUT returns the input key with its bits reversed.
	ReverseLUT [256]byte

	// ReverseLUT15 returns the lower 15 bits of the input key reversed.
	// DEFLATE prefix codes are never longer than 15 bits.
	ReverseLUT15 [1 << 15]uint16
)

func init() {
	for i := range ReverseLUT {
		b := uint8(i)
		b = (b&0xaa)>>1 | (b&0x55)<<1
		b = (b&0xcc)>>2 | (b&0x33)<<2
		b = (b&0xf0)>>4 | (b&0x0f)<<4
		ReverseLUT[i] = b
	}
	for i := range ReverseLUT15 {
		v := uint16(ReverseLUT[byte(i)])<<8 | uint16(ReverseLUT[byte(i>>8)])
		ReverseLUT15[i] = v >> 1
	}
}

// ReverseUint16N reverses the lower n bits of v, where n <= 15.
func ReverseUint16N(v uint, n uint) uint {
	return uint(ReverseLUT15[v&(1<<15-1)]) >> (15 - n)
}

// ReverseUint32 reverses all bits of v.
func ReverseUint32(v uint32) (x uint32) {
	x |= uint32(ReverseLUT[byte(v>>0)]) << 24
	x |= uint32(ReverseLUT[byte(v>>8)]) << 16
	x |= uint32(ReverseLUT[byte(v>>16)]) << 8
	x |= uint32(ReverseLUT[byte(v>>24)]) << 0
	return x
}

// ReverseUint32N reverses the lower n bits of v.
func ReverseUint32N(v uint32, n uint) (x uint32) {
	return uint32(ReverseUint32(uint32(v << (32 - n))))
}

// ReverseUint64 reverses all bits of v.
func ReverseUint64(v uint64) (x uint64) {
	x |= uint64(ReverseUint32(uint32(v>>0))) << 32
	x |= uint64(ReverseUint32(uint32(v>>32))) << 0
	return x
}

// ReverseUint64N reverses the lower n bits of v.
func ReverseUint64N(v uint64, n uint) (x uint64) {
	if n == 0 {
		return 0
	}
	return ReverseUint64(v << (64 - n))
}
