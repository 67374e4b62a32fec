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

package compress

import (
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
)

// Lz4Compressor implements the Compressor interface using the lz4 frame format.
type Lz4Compressor struct {
	level lz4.CompressionLevel
}

// NewLz4Compressor creates a new lz4 compressor. Level 0 selects the fast
// compressor; 1-9 select the high compression levels.
func NewLz4Compressor(level int) (*Lz4Compressor, error) {
	levels := []lz4.CompressionLevel{
		lz4.Fast,
		lz4.Level1, lz4.Level2, lz4.Level3,
		lz4.Level4, lz4.Level5, lz4.Level6,
		lz4.Level7, lz4.Level8, lz4.Level9,
	}
	if level < 0 || level >= len(levels) {
		return nil, fmt.Errorf("invalid lz4 compression level: %d (must be 0-9)", level)
	}

	return &Lz4Compressor{level: levels[level]}, nil
}

// Compress compresses the input stream using lz4.
func (c *Lz4Compressor) Compress(input io.Reader) (io.Reader, error) {
	return encodePipe(input, "lz4", func(w io.Writer) (io.WriteCloser, error) {
		zw := lz4.NewWriter(w)
		if err := zw.Apply(lz4.CompressionLevelOption(c.level)); err != nil {
			return nil, err
		}
		return zw, nil
	}), nil
}

// Decompress decompresses the input stream using lz4.
func (c *Lz4Compressor) Decompress(input io.Reader) (io.Reader, error) {
	return decodePipe(lz4.NewReader(input), "lz4", nil), nil
}

// Type returns Lz4.
func (c *Lz4Compressor) Type() Method {
	return Lz4
}

// Extension returns the file extension for lz4 compressed files.
func (c *Lz4Compressor) Extension() string {
	return ".lz4"
}
