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

import "testing"

const benchSize = 1024 * 1024

func BenchmarkBytes(b *testing.B) {
	src := randomBytes(b, benchSize)

	b.SetBytes(benchSize)
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = Bytes(src)
	}
}

func BenchmarkInto(b *testing.B) {
	src := randomBytes(b, benchSize)
	dst := make([]byte, benchSize)

	b.SetBytes(benchSize)
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := Into(dst, src); err != nil {
			b.Fatalf("Into: %v", err)
		}
	}
}
