// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dsnet/deflate/internal/tool/bench"
)

func TestParseOptions(t *testing.T) {
	opts, err := parseOptions("fl,xz", "encRate:ratio", "std,ds", "text", "1,6,9", "1e4,1e5")
	if assert.NoError(t, err) {
		assert.Equal(t, []bench.Format{bench.FormatFlate, bench.FormatXZ}, opts.formats)
		assert.Equal(t, []int{bench.TestEncodeRate, bench.TestCompressRatio}, opts.tests)
		assert.Equal(t, []string{"std", "ds"}, opts.codecs)
		assert.Equal(t, []string{"text"}, opts.files)
		assert.Equal(t, []int{1, 6, 9}, opts.levels)
		assert.Equal(t, []int{1e4, 1e5}, opts.sizes)
	}

	_, err = parseOptions("gz", "ratio", "ds", "text", "6", "1e4")
	assert.Error(t, err)
	_, err = parseOptions("fl", "speed", "ds", "text", "6", "1e4")
	assert.Error(t, err)
}

func TestDefaults(t *testing.T) {
	assert.Equal(t, "encRate,decRate,ratio", defaultTests())
	assert.Equal(t, "fl,xz", defaultFormats())
	assert.Equal(t, "std,ds,kp,uk", defaultCodecs())
	assert.NotNil(t, getReferenceEncoder(bench.FormatFlate))
}
