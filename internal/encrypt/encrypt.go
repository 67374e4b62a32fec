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

package encrypt

import (
	"fmt"
	"io"
	"strings"

	"github.com/icemarkom/invert-bench/internal/common"
)

// Method identifies the encryption stage applied to each benchmark file.
type Method int

const (
	None Method = iota
	AGE
	GPG
)

// Method names as accepted on the command line.
const (
	MethodNone = "none"
	MethodAGE  = "age"
	MethodGPG  = "gpg"
)

func (m Method) String() string {
	switch m {
	case None:
		return MethodNone
	case AGE:
		return MethodAGE
	case GPG:
		return MethodGPG
	default:
		return fmt.Sprintf("unknown(%d)", int(m))
	}
}

// Extension returns the file suffix for the method, including the dot.
func (m Method) Extension() string {
	switch m {
	case AGE:
		return ".age"
	case GPG:
		return ".gpg"
	default:
		return ""
	}
}

// ParseMethod converts a case-insensitive name into a Method.
func ParseMethod(name string) (Method, error) {
	for _, m := range ValidMethods() {
		if strings.EqualFold(name, m.String()) {
			return m, nil
		}
	}
	return None, fmt.Errorf("unknown encryption method: %q (valid: %s)", name, ValidMethodNames())
}

// ValidMethods returns every supported method.
func ValidMethods() []Method {
	return []Method{None, AGE, GPG}
}

// ValidMethodNames returns the supported method names joined for help text.
func ValidMethodNames() string {
	names := make([]string, 0, len(ValidMethods()))
	for _, m := range ValidMethods() {
		names = append(names, m.String())
	}
	return strings.Join(names, ", ")
}

// Encryptor defines the interface for the encryption stage
type Encryptor interface {
	// Encrypt encrypts the input stream and returns the encrypted output
	Encrypt(plaintext io.Reader) (io.Reader, error)

	// Type returns the encryption method
	Type() Method
}

// Config holds encryption configuration
type Config struct {
	Method    Method
	Recipient string // age recipient (age1...)
	PublicKey string // path to an OpenPGP public key file (armored or binary)
}

// NewEncryptor creates an encryptor based on config. Keys are loaded here so
// that key parsing stays out of the timed region.
func NewEncryptor(cfg Config) (Encryptor, error) {
	switch cfg.Method {
	case None:
		return NewNoneEncryptor(), nil
	case AGE:
		return NewAgeEncryptor(cfg)
	case GPG:
		return NewGPGEncryptor(cfg)
	default:
		return nil, fmt.Errorf("unknown encryption method: %s", cfg.Method)
	}
}

// NoneEncryptor passes plaintext through unchanged.
type NoneEncryptor struct{}

// NewNoneEncryptor creates a passthrough encryptor.
func NewNoneEncryptor() *NoneEncryptor {
	return &NoneEncryptor{}
}

// Encrypt returns the input stream unchanged.
func (e *NoneEncryptor) Encrypt(plaintext io.Reader) (io.Reader, error) {
	return plaintext, nil
}

// Type returns None.
func (e *NoneEncryptor) Type() Method {
	return None
}

// encryptPipe streams plaintext through the writer returned by newWriter.
// Closing that writer flushes the final chunk before the pipe reports EOF.
func encryptPipe(plaintext io.Reader, name string, newWriter func(io.Writer) (io.WriteCloser, error)) io.Reader {
	pr, pw := io.Pipe()

	go func() {
		encWriter, err := newWriter(pw)
		if err != nil {
			pw.CloseWithError(fmt.Errorf("failed to create %s encrypted writer: %w", name, err))
			return
		}

		if _, err := io.CopyBuffer(encWriter, plaintext, common.NewBuffer()); err != nil {
			encWriter.Close()
			abortUpstream(plaintext, err)
			pw.CloseWithError(fmt.Errorf("%s encryption failed: %w", name, err))
			return
		}

		if err := encWriter.Close(); err != nil {
			pw.CloseWithError(fmt.Errorf("failed to close %s encrypted writer: %w", name, err))
			return
		}
		pw.Close()
	}()

	return pr
}

func abortUpstream(r io.Reader, err error) {
	if pr, ok := r.(*io.PipeReader); ok {
		pr.CloseWithError(err)
	}
}
