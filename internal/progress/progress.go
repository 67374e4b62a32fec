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

package progress

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
)

// Config holds configuration for progress tracking
type Config struct {
	Description string    // Description of the operation
	TotalBytes  int64     // Total bytes to process (0 for indeterminate)
	Enabled     bool      // Only true when --verbose flag is set
	Output      io.Writer // Defaults to os.Stderr so stdout stays clean
}

// Tracker reports bytes processed by the benchmark loop. A disabled tracker
// is a no-op, so callers never branch on verbosity.
type Tracker struct {
	bar *progressbar.ProgressBar
}

// New creates a tracker. If cfg.Enabled is false, the tracker draws nothing.
func New(cfg Config) *Tracker {
	if !cfg.Enabled {
		return &Tracker{}
	}

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	opts := []progressbar.Option{
		progressbar.OptionSetDescription(cfg.Description),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionThrottle(100 * time.Millisecond),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(out) }),
		progressbar.OptionSetWriter(out),
	}

	total := cfg.TotalBytes
	if total > 0 {
		opts = append(opts, progressbar.OptionShowCount())
	} else {
		total = -1
		opts = append(opts, progressbar.OptionSpinnerType(14))
	}

	return &Tracker{bar: progressbar.NewOptions64(total, opts...)}
}

// Add records n processed bytes
func (t *Tracker) Add(n int) {
	if t.bar != nil && n > 0 {
		t.bar.Add(n)
	}
}

// Finish completes the bar
func (t *Tracker) Finish() {
	if t.bar != nil {
		t.bar.Finish()
	}
}
