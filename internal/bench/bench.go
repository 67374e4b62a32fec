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

// Package bench drives the invert-and-write benchmark loop.
package bench

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/icemarkom/invert-bench/internal/errors"
	"github.com/icemarkom/invert-bench/internal/format"
	"github.com/icemarkom/invert-bench/internal/generate"
	"github.com/icemarkom/invert-bench/internal/invert"
	"github.com/icemarkom/invert-bench/internal/lock"
	"github.com/icemarkom/invert-bench/internal/progress"
)

// FileName returns the name of the file written in iteration i.
func FileName(i int, ext string) string {
	return "inverted_" + strconv.Itoa(i) + ".bin" + ext
}

// extensioner is implemented by writers whose stages rename the output files.
type extensioner interface {
	Extension() string
}

// Run executes the benchmark: DIRECTORY → GENERATE → (INVERT → WRITE) × N →
// REPORT → CLEANUP.
//
// The output directory is created first; if that fails nothing else happens.
// Any write failure stops the loop immediately and is returned naming the
// file. Once the lock is held the output is cleaned up on every exit path
// unless cfg.Keep is set. A directory that existed before the run is kept and
// only the files written by the run are removed from it.
func Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	_, statErr := os.Stat(cfg.Dir)
	created := os.IsNotExist(statErr)
	if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
		return nil, errors.OutputDirectory(cfg.Dir, err)
	}

	lockPath, err := lock.Acquire(cfg.Dir)
	if err != nil {
		// Another run owns the directory, leave it alone
		return nil, err
	}

	var written []string
	defer func() {
		lock.Release(lockPath)
		if !cfg.Keep {
			cleanup(cfg.Dir, created, written, cfg.Verbose)
		}
	}()

	gen := cfg.Generator
	if gen == nil {
		gen = generate.New()
	}
	input, err := gen.Generate(cfg.BufferSize)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("Failed to generate input data: %v", err), "")
	}

	var reuse []byte
	if cfg.Variant == Optimized {
		reuse = make([]byte, cfg.BufferSize)
	}

	ext := ""
	if e, ok := cfg.Writer.(extensioner); ok {
		ext = e.Extension()
	}

	tracker := cfg.Progress
	if tracker == nil {
		tracker = progress.New(progress.Config{})
	}

	if cfg.Verbose {
		fmt.Printf("Running %s benchmark: %d x %s into %s\n",
			cfg.Variant, cfg.Iterations, format.Size(int64(cfg.BufferSize)), cfg.Dir)
	}

	var totalBytes int64
	start := time.Now()

	for i := 0; i < cfg.Iterations; i++ {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err,
				fmt.Sprintf("Benchmark interrupted after %d of %d files", i, cfg.Iterations), "")
		}

		var out []byte
		if reuse != nil {
			if out, err = invert.Into(reuse, input); err != nil {
				return nil, fmt.Errorf("failed to invert data: %w", err)
			}
		} else {
			out = invert.Bytes(input)
		}

		path := filepath.Join(cfg.Dir, FileName(i, ext))
		written = append(written, path)
		if err := cfg.Writer.WriteFile(path, out); err != nil {
			return nil, errors.WriteFailed(path, err)
		}

		totalBytes += int64(len(out))
		tracker.Add(len(out))
	}

	elapsed := time.Since(start)
	tracker.Finish()

	sum := sha256.Sum256(invert.Bytes(input))
	res := &Result{
		Variant:    cfg.Variant,
		BufferSize: cfg.BufferSize,
		Files:      cfg.Iterations,
		TotalBytes: totalBytes,
		Elapsed:    elapsed,
		Checksum:   hex.EncodeToString(sum[:]),
		Seeded:     gen.Seeded(),
	}

	if cfg.Verbose {
		fmt.Printf("Wrote %s in %s (%s)\n", format.Size(totalBytes), elapsed, format.Rate(totalBytes, elapsed))
	}

	if cfg.Verify {
		if err := verifyFiles(ctx, cfg, ext, res.Checksum); err != nil {
			return nil, err
		}
		res.Verified = true
		if cfg.Verbose {
			fmt.Printf("✓ Verified %d file(s)\n", res.Files)
		}
	}

	if cfg.Report != nil {
		if err := cfg.Report(res); err != nil {
			return nil, err
		}
	}

	return res, nil
}

// cleanup removes the benchmark output. A directory created by this run is
// removed entirely; in a directory that already existed only the files this
// run wrote are removed. Failures are reported, never fatal.
func cleanup(dir string, created bool, written []string, verbose bool) {
	if created {
		if err := os.RemoveAll(dir); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to remove %s: %v\n", dir, err)
			return
		}
		if verbose {
			fmt.Printf("Removed %s\n", dir)
		}
		return
	}

	removed := 0
	for _, path := range written {
		if err := os.Remove(path); err != nil {
			if !os.IsNotExist(err) {
				fmt.Fprintf(os.Stderr, "Warning: failed to remove %s: %v\n", path, err)
			}
			continue
		}
		removed++
	}
	if verbose {
		fmt.Printf("Removed %d file(s) from %s\n", removed, dir)
	}
}
