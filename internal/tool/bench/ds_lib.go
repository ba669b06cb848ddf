// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build !no_ds_lib
// +build !no_ds_lib

package bench

import "github.com/dsnet/deflate/flate"

func init() {
	RegisterEncoder(FormatFlate, "ds",
		func(input []byte, lvl int) ([]byte, error) {
			return flate.Encode(input, &flate.EncoderConfig{Level: lvl})
		})
	RegisterDecoder(FormatFlate, "ds",
		func(input []byte, size int) ([]byte, error) {
			return flate.Decode(input, &flate.DecoderConfig{OutputSize: size})
		})
}
