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

package invert

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomBytes(t testing.TB, n int) []byte {
	t.Helper()
	data := make([]byte, n)
	_, err := rand.Read(data)
	require.NoError(t, err)
	return data
}

func TestBytes_Complement(t *testing.T) {
	sizes := []int{0, 1, 7, 8, 9, 16, 255, 4096, 1024*1024 + 3}

	for _, size := range sizes {
		src := randomBytes(t, size)
		out := Bytes(src)

		require.Len(t, out, size)
		for k := range src {
			if out[k] != 255-src[k] {
				t.Fatalf("size %d: out[%d] = %d, want %d", size, k, out[k], 255-src[k])
			}
		}
	}
}

func TestBytes_AllValues(t *testing.T) {
	src := make([]byte, 256)
	for i := range src {
		src[i] = byte(i)
	}

	out := Bytes(src)
	for i := range out {
		assert.Equal(t, byte(255-i), out[i])
	}
}

func TestBytes_Involution(t *testing.T) {
	src := randomBytes(t, 1000)
	assert.Equal(t, src, Bytes(Bytes(src)))
}

func TestBytes_DoesNotMutateInput(t *testing.T) {
	src := randomBytes(t, 64)
	orig := bytes.Clone(src)

	Bytes(src)
	assert.Equal(t, orig, src)
}

func TestInto_MatchesBytes(t *testing.T) {
	for _, size := range []int{0, 1, 5, 8, 13, 64, 1000, 65537} {
		src := randomBytes(t, size)
		orig := bytes.Clone(src)
		dst := make([]byte, size)

		out, err := Into(dst, src)
		require.NoError(t, err)
		assert.Equal(t, Bytes(src), out, "size %d", size)
		assert.Equal(t, orig, src, "input must not change")
	}
}

func TestInto_ReturnsCallerBuffer(t *testing.T) {
	src := randomBytes(t, 32)
	dst := make([]byte, 32)

	out, err := Into(dst, src)
	require.NoError(t, err)
	assert.Same(t, &dst[0], &out[0])
}

func TestInto_ReuseOverwrites(t *testing.T) {
	dst := make([]byte, 16)

	first := randomBytes(t, 16)
	_, err := Into(dst, first)
	require.NoError(t, err)

	second := randomBytes(t, 16)
	out, err := Into(dst, second)
	require.NoError(t, err)
	assert.Equal(t, Bytes(second), out)
}

func TestInto_Involution(t *testing.T) {
	src := randomBytes(t, 4099)
	once := make([]byte, len(src))
	twice := make([]byte, len(src))

	_, err := Into(once, src)
	require.NoError(t, err)
	_, err = Into(twice, once)
	require.NoError(t, err)
	assert.Equal(t, src, twice)
}

func TestInto_LengthMismatch(t *testing.T) {
	_, err := Into(make([]byte, 3), make([]byte, 4))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not match")
}
