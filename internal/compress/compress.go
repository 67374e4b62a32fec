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
	"strings"

	"github.com/icemarkom/invert-bench/internal/common"
)

// Method identifies a compression stage applied before a buffer reaches disk.
type Method int

const (
	None Method = iota
	Gzip
	Zstd
	Lz4
)

// Method names as accepted on the command line.
const (
	MethodNone = "none"
	MethodGzip = "gzip"
	MethodZstd = "zstd"
	MethodLz4  = "lz4"
)

func (m Method) String() string {
	switch m {
	case None:
		return MethodNone
	case Gzip:
		return MethodGzip
	case Zstd:
		return MethodZstd
	case Lz4:
		return MethodLz4
	default:
		return fmt.Sprintf("unknown(%d)", int(m))
	}
}

// ParseMethod converts a case-insensitive name into a Method.
func ParseMethod(name string) (Method, error) {
	for _, m := range ValidMethods() {
		if strings.EqualFold(name, m.String()) {
			return m, nil
		}
	}
	return None, fmt.Errorf("unknown compression method: %q (valid: %s)", name, ValidMethodNames())
}

// ValidMethods returns every supported method.
func ValidMethods() []Method {
	return []Method{None, Gzip, Zstd, Lz4}
}

// ValidMethodNames returns the supported method names joined for help text.
func ValidMethodNames() string {
	names := make([]string, 0, len(ValidMethods()))
	for _, m := range ValidMethods() {
		names = append(names, m.String())
	}
	return strings.Join(names, ", ")
}

// Compressor defines the interface for compression/decompression operations
type Compressor interface {
	// Compress compresses the input stream
	Compress(input io.Reader) (io.Reader, error)

	// Decompress decompresses the input stream
	Decompress(input io.Reader) (io.Reader, error)

	// Type returns the compression method
	Type() Method

	// Extension returns the file suffix (".gz", ".zst", ".lz4", or "")
	Extension() string
}

// Config holds compression configuration
type Config struct {
	Method Method
	Level  int // 0 selects the method default
}

// NewCompressor creates a compressor based on config
func NewCompressor(cfg Config) (Compressor, error) {
	switch cfg.Method {
	case None:
		return NewNoneCompressor(), nil
	case Gzip:
		return NewGzipCompressor(cfg.Level)
	case Zstd:
		return NewZstdCompressor(cfg.Level)
	case Lz4:
		return NewLz4Compressor(cfg.Level)
	default:
		return nil, fmt.Errorf("unknown compression method: %s", cfg.Method)
	}
}

// encodePipe streams input through the encoder returned by newEncoder and
// exposes the encoded bytes as a reader. The encoder is closed before the
// pipe reports EOF, so a reader that drains the pipe sees the complete stream.
func encodePipe(input io.Reader, name string, newEncoder func(io.Writer) (io.WriteCloser, error)) io.Reader {
	pr, pw := io.Pipe()

	go func() {
		enc, err := newEncoder(pw)
		if err != nil {
			pw.CloseWithError(fmt.Errorf("failed to create %s writer: %w", name, err))
			return
		}

		if _, err := io.CopyBuffer(enc, input, common.NewBuffer()); err != nil {
			enc.Close()
			abortUpstream(input, err)
			pw.CloseWithError(fmt.Errorf("%s compression failed: %w", name, err))
			return
		}

		if err := enc.Close(); err != nil {
			pw.CloseWithError(fmt.Errorf("failed to close %s writer: %w", name, err))
			return
		}
		pw.Close()
	}()

	return pr
}

// decodePipe copies a decoder's output into a pipe, closing the decoder when done.
func decodePipe(dec io.Reader, name string, closeFn func()) io.Reader {
	pr, pw := io.Pipe()

	go func() {
		if closeFn != nil {
			defer closeFn()
		}

		if _, err := io.CopyBuffer(pw, dec, common.NewBuffer()); err != nil {
			pw.CloseWithError(fmt.Errorf("%s decompression failed: %w", name, err))
			return
		}
		pw.Close()
	}()

	return pr
}

// abortUpstream unblocks an upstream pipe stage that will no longer be drained.
func abortUpstream(r io.Reader, err error) {
	if pr, ok := r.(*io.PipeReader); ok {
		pr.CloseWithError(err)
	}
}
