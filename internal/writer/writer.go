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

// Package writer persists benchmark buffers to individual files.
package writer

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/icemarkom/invert-bench/internal/common"
	"github.com/icemarkom/invert-bench/internal/compress"
	"github.com/icemarkom/invert-bench/internal/encrypt"
)

// FileWriter writes one buffer to one file. The file is complete and closed
// when WriteFile returns.
type FileWriter interface {
	WriteFile(path string, data []byte) error
}

// Config holds writer configuration
type Config struct {
	BufferSize int                 // bufio buffer size; 0 writes straight to the file
	Sync       bool                // fsync each file before closing it
	Compressor compress.Compressor // optional compression stage
	Encryptor  encrypt.Encryptor   // optional encryption stage
}

// Writer is the FileWriter used by the benchmark driver. It is not safe for
// concurrent use: the write buffer is reset onto each new file.
type Writer struct {
	cfg     Config
	bw      *bufio.Writer
	copyBuf []byte
}

// New creates a Writer. A negative BufferSize is rejected.
func New(cfg Config) (*Writer, error) {
	if cfg.BufferSize < 0 {
		return nil, fmt.Errorf("invalid write buffer size: %d", cfg.BufferSize)
	}

	w := &Writer{cfg: cfg}
	if cfg.BufferSize > 0 {
		w.bw = bufio.NewWriterSize(nil, cfg.BufferSize)
	}
	if w.staged() {
		w.copyBuf = common.NewBuffer()
	}
	return w, nil
}

// Extension returns the suffix the configured stages add to file names.
func (w *Writer) Extension() string {
	ext := ""
	if w.cfg.Compressor != nil {
		ext += w.cfg.Compressor.Extension()
	}
	if w.cfg.Encryptor != nil {
		ext += w.cfg.Encryptor.Type().Extension()
	}
	return ext
}

// staged reports whether a compression or encryption stage changes the bytes
// that reach the file.
func (w *Writer) staged() bool {
	compressed := w.cfg.Compressor != nil && w.cfg.Compressor.Type() != compress.None
	encrypted := w.cfg.Encryptor != nil && w.cfg.Encryptor.Type() != encrypt.None
	return compressed || encrypted
}

// WriteFile creates or truncates path and writes data to it. It fails if the
// file cannot be opened or if fewer than len(data) bytes reach the file.
func (w *Writer) WriteFile(path string, data []byte) (err error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close file: %w", cerr)
		}
	}()

	var dst io.Writer = f
	if w.bw != nil {
		w.bw.Reset(f)
		dst = w.bw
	}

	if w.staged() {
		err = w.writeStaged(dst, data)
	} else {
		err = writeFull(dst, data)
	}
	if err != nil {
		return err
	}

	if w.bw != nil {
		if err := w.bw.Flush(); err != nil {
			return fmt.Errorf("failed to flush file: %w", err)
		}
	}

	if w.cfg.Sync {
		if err := f.Sync(); err != nil {
			return fmt.Errorf("failed to sync file: %w", err)
		}
	}

	return nil
}

// writeStaged runs data through the compression and encryption stages.
func (w *Writer) writeStaged(dst io.Writer, data []byte) error {
	var src io.Reader = bytes.NewReader(data)
	var err error

	if w.cfg.Compressor != nil {
		if src, err = w.cfg.Compressor.Compress(src); err != nil {
			return fmt.Errorf("failed to start compression: %w", err)
		}
	}
	if w.cfg.Encryptor != nil {
		if src, err = w.cfg.Encryptor.Encrypt(src); err != nil {
			return fmt.Errorf("failed to start encryption: %w", err)
		}
	}

	if _, err := io.CopyBuffer(dst, src, w.copyBuf); err != nil {
		if pr, ok := src.(*io.PipeReader); ok {
			pr.CloseWithError(err)
		}
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

func writeFull(dst io.Writer, data []byte) error {
	n, err := dst.Write(data)
	if err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	if n != len(data) {
		return fmt.Errorf("failed to write file: %w (%d of %d bytes)", io.ErrShortWrite, n, len(data))
	}
	return nil
}
