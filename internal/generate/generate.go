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

// Package generate produces buffers of uniformly distributed random bytes.
package generate

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	mrand "math/rand/v2"
)

// Generator fills buffers with random bytes. The zero value draws from the
// host's secure random source; NewSeeded returns a reproducible generator.
type Generator struct {
	seed   uint64
	seeded bool
}

// New returns a generator backed by crypto/rand.
func New() *Generator {
	return &Generator{}
}

// NewSeeded returns a generator whose output depends only on seed.
// Every Generate call with the same size returns the same bytes.
func NewSeeded(seed uint64) *Generator {
	return &Generator{seed: seed, seeded: true}
}

// Seeded reports whether the generator is deterministic.
func (g *Generator) Seeded() bool {
	return g.seeded
}

// Generate returns a buffer of exactly size bytes.
func (g *Generator) Generate(size int) ([]byte, error) {
	if size < 0 {
		return nil, fmt.Errorf("invalid buffer size: %d", size)
	}

	data := make([]byte, size)
	if size == 0 {
		return data, nil
	}

	if g.seeded {
		var key [32]byte
		binary.LittleEndian.PutUint64(key[:8], g.seed)
		// ChaCha8.Read never returns an error
		mrand.NewChaCha8(key).Read(data)
		return data, nil
	}

	if _, err := rand.Read(data); err != nil {
		return nil, fmt.Errorf("failed to generate random data: %w", err)
	}
	return data, nil
}
