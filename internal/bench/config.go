// Copyright 2026 Marko Milivojevic
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package bench

import (
	"fmt"
	"strings"

	"github.com/icemarkom/invert-bench/internal/common"
	"github.com/icemarkom/invert-bench/internal/compress"
	"github.com/icemarkom/invert-bench/internal/errors"
	"github.com/icemarkom/invert-bench/internal/generate"
	"github.com/icemarkom/invert-bench/internal/progress"
	"github.com/icemarkom/invert-bench/internal/writer"
)

// Defaults for a benchmark run.
const (
	DefaultBufferSize = 1024 * 1024 // 1 MiB
	DefaultIterations = 1000
	DefaultDir        = "benchmark_files"
)

// Variant selects the micro-optimizations applied to the benchmark loop.
type Variant int

const (
	// Baseline allocates a fresh output buffer every iteration and writes
	// straight to the file.
	Baseline Variant = iota
	// Optimized reuses one output buffer and writes through a 64 KiB buffer.
	Optimized
)

func (v Variant) String() string {
	switch v {
	case Baseline:
		return "baseline"
	case Optimized:
		return "optimized"
	default:
		return fmt.Sprintf("unknown(%d)", int(v))
	}
}

// ParseVariant converts a case-insensitive name into a Variant.
func ParseVariant(name string) (Variant, error) {
	for _, v := range []Variant{Baseline, Optimized} {
		if strings.EqualFold(name, v.String()) {
			return v, nil
		}
	}
	return Baseline, fmt.Errorf("unknown variant: %q (valid: baseline, optimized)", name)
}

// WriteBufferSize returns the file write buffer the variant uses.
func (v Variant) WriteBufferSize() int {
	if v == Optimized {
		return common.WriteBufferSize
	}
	return 0
}

// Config holds configuration for one benchmark run. It is not modified by Run.
type Config struct {
	Dir        string
	BufferSize int
	Iterations int
	Variant    Variant

	Generator *generate.Generator // nil uses the secure random source
	Writer    writer.FileWriter

	// Verify reads every file back after timing and compares it against the
	// expected content. Decoder undoes the compression stage, if any.
	Verify  bool
	Decoder compress.Compressor

	// Report receives the result after timing and verification, before the
	// output files are cleaned up. An error from Report fails the run.
	Report func(*Result) error

	Keep     bool // leave the output files in place
	Verbose  bool
	Progress *progress.Tracker
}

// Validate checks the configuration before anything touches the filesystem.
func (c Config) Validate() error {
	if c.Dir == "" {
		return errors.MissingRequired("--dir", "Name the directory benchmark files are written to")
	}
	if c.BufferSize <= 0 {
		return errors.InvalidConfig("size", fmt.Sprintf("%d bytes", c.BufferSize),
			"Use a buffer size greater than 0, e.g. --size 1MiB")
	}
	if c.Iterations <= 0 {
		return errors.InvalidConfig("iterations", fmt.Sprintf("%d", c.Iterations),
			"Use an iteration count greater than 0")
	}
	if c.Variant != Baseline && c.Variant != Optimized {
		return errors.InvalidConfig("variant", c.Variant.String(), "Use baseline or optimized")
	}
	if c.Writer == nil {
		return errors.New("No file writer configured", "This is an internal error - please report it")
	}
	return nil
}
