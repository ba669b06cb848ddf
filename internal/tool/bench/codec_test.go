// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bench

import (
	"bytes"
	"fmt"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dsnet/deflate/internal/testutil"
)

// TestCodecs tests that the output of each registered encoder is a valid input
// for each registered decoder. This test runs in O(n^2) where n is the number
// of registered codecs. This assumes that the number of test inputs and
// compression formats stays relatively constant.
func TestCodecs(t *testing.T) {
	for _, name := range testutil.CorpusNames() {
		dd := testutil.Corpus[name](1e5)
		t.Run(fmt.Sprintf("Corpus:%v", name), func(t *testing.T) { testFormats(t, dd) })
	}
}

func testFormats(t *testing.T, dd []byte) {
	t.Parallel()
	for _, ft := range []Format{FormatFlate, FormatXZ} {
		if len(Encoders[ft]) == 0 || len(Decoders[ft]) == 0 {
			t.Skip("no codecs available")
		}
		t.Run(fmt.Sprintf("Format:%v", ft), func(t *testing.T) { testEncoders(t, ft, dd) })
	}
}

func testEncoders(t *testing.T, ft Format, dd []byte) {
	t.Parallel()
	const level = 6 // Default compression on all encoders
	for encName := range Encoders[ft] {
		encName := encName
		t.Run(fmt.Sprintf("Encoder:%v", encName), func(t *testing.T) {
			de, err := Encoders[ft][encName](dd, level)
			if err != nil {
				t.Fatalf("unexpected Encode error: %v", err)
			}
			testDecoders(t, ft, dd, de)
		})
	}
}

func testDecoders(t *testing.T, ft Format, dd, de []byte) {
	t.Parallel()
	for decName := range Decoders[ft] {
		decName := decName
		t.Run(fmt.Sprintf("Decoder:%v", decName), func(t *testing.T) {
			bd, err := Decoders[ft][decName](de, len(dd))
			if err != nil {
				t.Fatalf("unexpected Decode error: %v", err)
			}
			if !bytes.Equal(bd, dd) {
				t.Error("data mismatch")
			}
		})
	}
}

func TestRegistry(t *testing.T) {
	for _, name := range []string{"ds", "std", "kp"} {
		if Encoders[FormatFlate][name] == nil || Decoders[FormatFlate][name] == nil {
			t.Errorf("flate codec %q is not registered", name)
		}
	}
	if Encoders[FormatXZ]["uk"] == nil || Decoders[FormatXZ]["uk"] == nil {
		t.Errorf("xz codec %q is not registered", "uk")
	}
}

// TestBuildTags checks that every tag-gated file states its constraint in both
// the //go:build and the legacy // +build form, and that the two agree.
func TestBuildTags(t *testing.T) {
	files, err := filepath.Glob("*_lib.go")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	files = append(files, filepath.Join("..", "fuzz", "flate", "flate.go"))

	for _, file := range files {
		b, err := ioutil.ReadFile(file)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var goBuild, plusBuild string
		for _, line := range strings.Split(string(b), "\n") {
			if strings.HasPrefix(line, "package ") {
				break
			}
			if s := strings.TrimPrefix(line, "//go:build "); s != line {
				goBuild = s
			}
			if s := strings.TrimPrefix(line, "// +build "); s != line {
				plusBuild = s
			}
		}
		if goBuild == "" || goBuild != plusBuild {
			t.Errorf("%s: mismatching constraints: //go:build %q, // +build %q", file, goBuild, plusBuild)
		}
	}
}
