// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build gofuzz
// +build gofuzz

package flate

import (
	"bytes"
	sflate "compress/flate"
	"io/ioutil"

	dflate "github.com/dsnet/deflate/flate"
	kflate "github.com/klauspost/compress/flate"
)

func Fuzz(data []byte) int {
	data, ok := testDecoders(data)
	for lvl := dflate.NoCompression; lvl <= dflate.BestCompression; lvl++ {
		testEncoder(data, lvl)
	}
	if ok {
		return 1 // Favor valid inputs
	}
	return 0
}

// testDecoders tests that the input can be handled by both this decoder and
// the standard library. This test does not panic if both decoders run into
// an error, since it means that they both agree that the input is bad.
func testDecoders(data []byte) ([]byte, bool) {
	d := dflate.NewDecoder(nil)
	gb, gerr := d.Decode(data)
	sb, serr := ioutil.ReadAll(sflate.NewReader(bytes.NewReader(data)))

	switch {
	case gerr == nil && serr == nil:
		if !bytes.Equal(gb, sb) {
			panic("mismatching bytes")
		}
		if d.InputOffset > int64(len(data)) {
			panic("input offset past the end")
		}
		return gb, true
	case gerr != nil && serr == nil:
		panic(gerr)
	case gerr == nil && serr != nil:
		panic(serr)
	default:
		return data, false
	}
}

// testEncoder encodes the input data and checks that this decoder and both
// reference decoders can properly decompress the output.
func testEncoder(data []byte, lvl int) {
	comp, err := dflate.Encode(data, &dflate.EncoderConfig{Level: lvl})
	if err != nil {
		panic(err)
	}

	output, err := dflate.Decode(comp, &dflate.DecoderConfig{OutputSize: len(data)})
	if err != nil {
		panic(err)
	}
	if !bytes.Equal(output, data) {
		panic("mismatching bytes")
	}

	output, err = ioutil.ReadAll(sflate.NewReader(bytes.NewReader(comp)))
	if err != nil {
		panic(err)
	}
	if !bytes.Equal(output, data) {
		panic("mismatching bytes")
	}

	output, err = ioutil.ReadAll(kflate.NewReader(bytes.NewReader(comp)))
	if err != nil {
		panic(err)
	}
	if !bytes.Equal(output, data) {
		panic("mismatching bytes")
	}
}
