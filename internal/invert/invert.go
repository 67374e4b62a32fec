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
	"encoding/binary"
	"fmt"
)

// Bytes returns a newly allocated buffer holding the bitwise complement of src.
func Bytes(src []byte) []byte {
	dst := make([]byte, len(src))
	for i, b := range src {
		dst[i] = ^b
	}
	return dst
}

// Into writes the bitwise complement of src into dst and returns dst.
// dst must have the same length as src and must not overlap it.
func Into(dst, src []byte) ([]byte, error) {
	if len(dst) != len(src) {
		return nil, fmt.Errorf("output buffer length %d does not match input length %d", len(dst), len(src))
	}

	// 8 bytes per step; byte order is irrelevant for a bitwise NOT
	n := len(src) &^ 7
	for i := 0; i < n; i += 8 {
		binary.NativeEndian.PutUint64(dst[i:], ^binary.NativeEndian.Uint64(src[i:]))
	}
	for i := n; i < len(src); i++ {
		dst[i] = ^src[i]
	}

	return dst, nil
}
