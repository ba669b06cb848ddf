// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package bench compares the performance of various compression implementations
// with respect to encode speed, decode speed, and ratio.
//
// Every codec operates on complete in-memory buffers, which is the only mode
// the deflate encoder and decoder support.
package bench

import (
	"fmt"
	"regexp"
	"runtime"
	"strings"
	"testing"

	"github.com/apex/log"
	strconv "github.com/dsnet/golib/unitconv"
	"github.com/pkg/errors"

	"github.com/dsnet/deflate/internal/testutil"
)

type Format int

const (
	FormatFlate Format = iota
	FormatXZ
)

func (f Format) String() string {
	switch f {
	case FormatFlate:
		return "fl"
	case FormatXZ:
		return "xz"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

const (
	TestEncodeRate = iota
	TestDecodeRate
	TestCompressRatio
)

// Encoder compresses input at the given level.
type Encoder func(input []byte, lvl int) ([]byte, error)

// Decoder decompresses input. The size is the expected output size, which
// a decoder may use as a hint.
type Decoder func(input []byte, size int) ([]byte, error)

var (
	Encoders map[Format]map[string]Encoder
	Decoders map[Format]map[string]Decoder
)

func RegisterEncoder(format Format, name string, enc Encoder) {
	if Encoders == nil {
		Encoders = make(map[Format]map[string]Encoder)
	}
	if Encoders[format] == nil {
		Encoders[format] = make(map[string]Encoder)
	}
	Encoders[format][name] = enc
}

func RegisterDecoder(format Format, name string, dec Decoder) {
	if Decoders == nil {
		Decoders = make(map[Format]map[string]Decoder)
	}
	if Decoders[format] == nil {
		Decoders[format] = make(map[string]Decoder)
	}
	Decoders[format][name] = dec
}

// BenchmarkEncoder benchmarks a single encoder on the given input data using
// the selected compression level and reports the result.
func BenchmarkEncoder(input []byte, enc Encoder, lvl int) testing.BenchmarkResult {
	return testing.Benchmark(func(b *testing.B) {
		b.StopTimer()
		if enc == nil {
			b.Fatalf("unexpected error: nil Encoder")
		}
		runtime.GC()
		b.StartTimer()
		for i := 0; i < b.N; i++ {
			if _, err := enc(input, lvl); err != nil {
				b.Fatalf("unexpected error: %v", err)
			}
			b.SetBytes(int64(len(input)))
		}
	})
}

type Result struct {
	R float64 // Rate (MB/s) or ratio (rawSize/compSize)
	D float64 // Delta ratio relative to primary benchmark
}

// BenchmarkEncoderSuite runs multiple benchmarks across all encoder
// implementations, files, levels, and sizes.
//
// The values returned have the following structure:
//	results: [len(files)*len(levels)*len(sizes)][len(encs)]Result
//	names:   [len(files)*len(levels)*len(sizes)]string
func BenchmarkEncoderSuite(format Format, encs, files []string, levels, sizes []int, tick func()) (results [][]Result, names []string) {
	return benchmarkSuite(encs, files, levels, sizes, tick,
		func(input []byte, enc string, lvl int) (Result, error) {
			result := BenchmarkEncoder(input, Encoders[format][enc], lvl)
			return rateResult(result), nil
		})
}

// BenchmarkDecoder benchmarks a single decoder on the given pre-compressed
// input data and reports the result.
func BenchmarkDecoder(input []byte, size int, dec Decoder) testing.BenchmarkResult {
	return testing.Benchmark(func(b *testing.B) {
		b.StopTimer()
		if dec == nil {
			b.Fatalf("unexpected error: nil Decoder")
		}
		runtime.GC()
		b.StartTimer()
		for i := 0; i < b.N; i++ {
			output, err := dec(input, size)
			if err != nil {
				b.Fatalf("unexpected error: %v", err)
			}
			b.SetBytes(int64(len(output)))
		}
	})
}

// BenchmarkDecoderSuite runs multiple benchmarks across all decoder
// implementations, files, levels, and sizes.
//
// The values returned have the following structure:
//	results: [len(files)*len(levels)*len(sizes)][len(decs)]Result
//	names:   [len(files)*len(levels)*len(sizes)]string
func BenchmarkDecoderSuite(format Format, decs, files []string, levels, sizes []int, ref Encoder, tick func()) (results [][]Result, names []string) {
	return benchmarkSuite(decs, files, levels, sizes, tick,
		func(input []byte, dec string, lvl int) (Result, error) {
			output, err := ref(input, lvl)
			if err != nil {
				return Result{}, errors.Wrap(err, "reference encoder")
			}
			result := BenchmarkDecoder(output, len(input), Decoders[format][dec])
			return rateResult(result), nil
		})
}

// BenchmarkRatioSuite runs multiple benchmarks across all encoder
// implementations, files, levels, and sizes.
//
// The values returned have the following structure:
//	results: [len(files)*len(levels)*len(sizes)][len(encs)]Result
//	names:   [len(files)*len(levels)*len(sizes)]string
func BenchmarkRatioSuite(format Format, encs, files []string, levels, sizes []int, tick func()) (results [][]Result, names []string) {
	return benchmarkSuite(encs, files, levels, sizes, tick,
		func(input []byte, enc string, lvl int) (Result, error) {
			output, err := Encoders[format][enc](input, lvl)
			if err != nil {
				return Result{}, errors.Wrapf(err, "encoder %s", enc)
			}
			return Result{R: float64(len(input)) / float64(len(output))}, nil
		})
}

func rateResult(result testing.BenchmarkResult) Result {
	if result.N == 0 {
		return Result{}
	}
	us := (float64(result.T.Nanoseconds()) / 1e3) / float64(result.N)
	return Result{R: float64(result.Bytes) / us}
}

type benchFunc func(input []byte, codec string, level int) (Result, error)

func benchmarkSuite(codecs, files []string, levels, sizes []int, tick func(), run benchFunc) ([][]Result, []string) {
	// Allocate buffers for the result.
	d0 := len(files) * len(levels) * len(sizes)
	d1 := len(codecs)
	results := make([][]Result, d0)
	for i := range results {
		results[i] = make([]Result, d1)
	}
	names := make([]string, d0)

	// Run the benchmark for every codec, file, level, and size.
	var i int
	for _, f := range files {
		for _, l := range levels {
			for _, n := range sizes {
				b, err := loadInput(f, n)
				name := getName(f, l, len(b))
				if err != nil {
					log.WithError(err).WithField("input", f).Warn("skipping input")
				}
				for j, c := range codecs {
					if tick != nil {
						tick()
					}
					names[i] = name
					if err == nil {
						r, err := run(b, c, l)
						if err != nil {
							log.WithError(err).WithFields(log.Fields{"benchmark": name, "codec": c}).Error("benchmark failed")
						}
						results[i][j] = r
					}
					results[i][j].D = results[i][j].R / results[i][0].R
				}
				i++
			}
		}
	}
	return results, names
}

// loadInput generates n bytes of the named corpus.
func loadInput(name string, n int) ([]byte, error) {
	gen, ok := testutil.Corpus[name]
	if !ok {
		return nil, errors.Errorf("unknown corpus %q", name)
	}
	if n < 0 {
		return nil, errors.Errorf("invalid size %d", n)
	}
	return gen(n), nil
}

var reExp = regexp.MustCompile("\\.0*e\\+0*")

func getName(f string, l, n int) string {
	var sn string
	switch n {
	case 1e3, 1e4, 1e5, 1e6, 1e7, 1e8, 1e9, 1e10, 1e11, 1e12:
		s := fmt.Sprintf("%e", float64(n))
		sn = reExp.ReplaceAllString(s, "e")
	default:
		s := strconv.FormatPrefix(float64(n), strconv.Base1024, 2)
		sn = strings.Replace(s, ".00", "", -1)
	}
	return fmt.Sprintf("%s:%d:%s", f, l, sn)
}
