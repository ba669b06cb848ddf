// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build !no_std_lib
// +build !no_std_lib

package bench

import (
	"bytes"
	"compress/flate"
	"io/ioutil"

	"github.com/pkg/errors"
)

func init() {
	RegisterEncoder(FormatFlate, "std",
		func(input []byte, lvl int) ([]byte, error) {
			var buf bytes.Buffer
			zw, err := flate.NewWriter(&buf, lvl)
			if err != nil {
				return nil, errors.Wrap(err, "std flate")
			}
			if _, err := zw.Write(input); err != nil {
				return nil, errors.Wrap(err, "std flate")
			}
			if err := zw.Close(); err != nil {
				return nil, errors.Wrap(err, "std flate")
			}
			return buf.Bytes(), nil
		})
	RegisterDecoder(FormatFlate, "std",
		func(input []byte, size int) ([]byte, error) {
			zr := flate.NewReader(bytes.NewReader(input))
			defer zr.Close()
			output, err := ioutil.ReadAll(zr)
			return output, errors.Wrap(err, "std flate")
		})
}
