package format

import (
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"
)

// Size formats bytes as a human-readable string (e.g., "1.5 KiB", "2.0 MiB").
func Size(bytes int64) string {
	if bytes < 0 {
		return fmt.Sprintf("%d B", bytes)
	}
	return humanize.IBytes(uint64(bytes))
}

// ParseSize parses a byte count with optional units ("16", "64KiB", "1 MiB", "1MB").
func ParseSize(s string) (int, error) {
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", s, err)
	}
	if n > math.MaxInt32 {
		return 0, fmt.Errorf("invalid size %q: exceeds %s", s, Size(math.MaxInt32))
	}
	return int(n), nil
}

// Rate formats a transfer rate (e.g., "1.2 GiB/s"). A zero duration yields "n/a".
func Rate(bytes int64, d time.Duration) string {
	if d <= 0 {
		return "n/a"
	}
	perSecond := float64(bytes) / d.Seconds()
	return humanize.IBytes(uint64(perSecond)) + "/s"
}
