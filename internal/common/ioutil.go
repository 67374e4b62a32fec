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

package common

// IOBufferSize is the copy buffer used by the compression and encryption
// stages. It matches the default benchmark buffer so one 1 MiB block moves
// through a stage in a single copy call.
const IOBufferSize = 1024 * 1024 // 1 MiB

// WriteBufferSize is the file write buffer of the optimized variant.
const WriteBufferSize = 64 * 1024 // 64 KiB

// NewBuffer returns a new byte slice of IOBufferSize for use with io.CopyBuffer.
func NewBuffer() []byte {
	return make([]byte, IOBufferSize)
}
