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
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/icemarkom/invert-bench/internal/compress"
)

// verifyFiles checks that every file decodes to exactly BufferSize bytes whose
// SHA-256 is want. Files are checked in parallel; the first mismatch wins.
func verifyFiles(ctx context.Context, cfg Config, ext, want string) error {
	decoder := cfg.Decoder
	if decoder == nil {
		decoder = compress.NewNoneCompressor()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i := 0; i < cfg.Iterations; i++ {
		path := filepath.Join(cfg.Dir, FileName(i, ext))
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return verifyFile(path, decoder, int64(cfg.BufferSize), want)
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("verification failed: %w", err)
	}
	return nil
}

func verifyFile(path string, decoder compress.Compressor, wantSize int64, wantSum string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	r, err := decoder.Decompress(f)
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}

	h := sha256.New()
	n, err := io.Copy(h, r)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	if n != wantSize {
		return fmt.Errorf("%s: size mismatch: expected %d bytes, got %d", path, wantSize, n)
	}
	if got := hex.EncodeToString(h.Sum(nil)); got != wantSum {
		return fmt.Errorf("%s: checksum mismatch: expected %s, got %s", path, wantSum, got)
	}
	return nil
}
