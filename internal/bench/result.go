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

import "time"

const bytesPerMiB = 1024 * 1024

// Result holds the metrics of a completed run.
type Result struct {
	Variant    Variant
	BufferSize int
	Files      int
	TotalBytes int64
	Elapsed    time.Duration

	// Checksum is the hex SHA-256 of the content every file should hold.
	Checksum string
	Verified bool
	Seeded   bool // input came from a seeded, reproducible generator
}

// Seconds returns the elapsed time at microsecond resolution.
func (r *Result) Seconds() float64 {
	return r.Elapsed.Truncate(time.Microsecond).Seconds()
}

// MiB returns the data processed in mebibytes.
func (r *Result) MiB() float64 {
	return float64(r.TotalBytes) / bytesPerMiB
}

// BytesPerSecond returns the raw throughput.
func (r *Result) BytesPerSecond() float64 {
	s := r.Seconds()
	if s <= 0 {
		return 0
	}
	return float64(r.TotalBytes) / s
}

// Gbps returns the throughput in gigabits per second.
func (r *Result) Gbps() float64 {
	return Gbps(r.TotalBytes, r.Seconds())
}

// Gbps converts bytes moved in seconds to gigabits per second (10^9 bits).
// It returns 0 for a non-positive duration.
func Gbps(totalBytes int64, seconds float64) float64 {
	if seconds <= 0 {
		return 0
	}
	return float64(totalBytes) * 8 / seconds / 1e9
}
