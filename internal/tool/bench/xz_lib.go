// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build !no_uk_lib
// +build !no_uk_lib

package bench

import (
	"bytes"
	"io/ioutil"

	"github.com/pkg/errors"
	"github.com/ulikunitz/xz"
)

// The xz codec has no notion of levels, so every level runs with the
// package defaults. It serves as a reference point for the ratio suite.
func init() {
	RegisterEncoder(FormatXZ, "uk",
		func(input []byte, lvl int) ([]byte, error) {
			var buf bytes.Buffer
			zw, err := xz.NewWriter(&buf)
			if err != nil {
				return nil, errors.Wrap(err, "xz")
			}
			if _, err := zw.Write(input); err != nil {
				return nil, errors.Wrap(err, "xz")
			}
			if err := zw.Close(); err != nil {
				return nil, errors.Wrap(err, "xz")
			}
			return buf.Bytes(), nil
		})
	RegisterDecoder(FormatXZ, "uk",
		func(input []byte, size int) ([]byte, error) {
			zr, err := xz.NewReader(bytes.NewReader(input))
			if err != nil {
				return nil, errors.Wrap(err, "xz")
			}
			output, err := ioutil.ReadAll(zr)
			return output, errors.Wrap(err, "xz")
		})
}
