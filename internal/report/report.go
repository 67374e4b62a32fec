package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/icemarkom/invert-bench/internal/bench"
)

// Report is the persisted record of one benchmark run
type Report struct {
	CreatedAt         time.Time `json:"created_at"`
	CreatedBy         CreatedBy `json:"created_by"`
	Variant           string    `json:"variant"`
	BufferSize        int       `json:"buffer_size"`
	Files             int       `json:"files"`
	Compression       string    `json:"compression"`
	Encryption        string    `json:"encryption"`
	TotalBytes        int64     `json:"total_bytes"`
	ElapsedSeconds    float64   `json:"elapsed_seconds"`
	ThroughputGbps    float64   `json:"throughput_gbps"`
	ChecksumAlgorithm string    `json:"checksum_algorithm"`
	ChecksumValue     string    `json:"checksum_value"`
	Verified          bool      `json:"verified"`
	Seeded            bool      `json:"seeded"`
}

// CreatedBy holds information about the tool that ran the benchmark
type CreatedBy struct {
	Tool     string `json:"tool"`
	Version  string `json:"version"`
	Hostname string `json:"hostname"`
}

// New creates a report from a completed run
func New(res *bench.Result, compression, encryption, version string) *Report {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	return &Report{
		CreatedAt:         time.Now().UTC(),
		Variant:           res.Variant.String(),
		BufferSize:        res.BufferSize,
		Files:             res.Files,
		Compression:       compression,
		Encryption:        encryption,
		TotalBytes:        res.TotalBytes,
		ElapsedSeconds:    res.Seconds(),
		ThroughputGbps:    res.Gbps(),
		ChecksumAlgorithm: "sha256",
		ChecksumValue:     res.Checksum,
		Verified:          res.Verified,
		Seeded:            res.Seeded,
		CreatedBy: CreatedBy{
			Tool:     "invert-bench",
			Version:  version,
			Hostname: hostname,
		},
	}
}

// MiB returns the data processed in mebibytes
func (r *Report) MiB() float64 {
	return float64(r.TotalBytes) / (1024 * 1024)
}

// WriteText prints the human-readable benchmark summary:
//
//	Benchmark Results:
//	Total time: 0.012345 seconds
//	Files generated: 3
//	Total data processed: 0.00004577637 MB
//	Performance: 0.00003110571 Gbps
func (r *Report) WriteText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "\nBenchmark Results:\nTotal time: %s seconds\nFiles generated: %d\nTotal data processed: %s MB\nPerformance: %s Gbps\n",
		decimal(r.ElapsedSeconds), r.Files, decimal(r.MiB()), decimal(r.ThroughputGbps))
	return err
}

// decimal renders v with six decimal places, or seven significant digits
// when v is below one, without trailing zeros.
func decimal(v float64) string {
	if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}

	prec := 6
	if mag := int(math.Floor(math.Log10(math.Abs(v)))); 6-mag > prec {
		prec = 6 - mag
	}

	s := strconv.FormatFloat(v, 'f', prec, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	}
	return s
}

// Write serializes the report to a JSON file with indentation using atomic write
func (r *Report) Write(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write report file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to finalize report file: %w", err)
	}

	return nil
}

// Read deserializes a report from a JSON file
func Read(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report file: %w", err)
	}

	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}

	return &r, nil
}

// Validate checks that all required fields are present and consistent
func (r *Report) Validate() error {
	if r.Variant == "" {
		return fmt.Errorf("report missing variant")
	}
	if r.Files <= 0 {
		return fmt.Errorf("report missing files")
	}
	if r.BufferSize <= 0 {
		return fmt.Errorf("report missing buffer_size")
	}
	if r.TotalBytes != int64(r.Files)*int64(r.BufferSize) {
		return fmt.Errorf("report total_bytes %d does not equal files × buffer_size (%d × %d)",
			r.TotalBytes, r.Files, r.BufferSize)
	}
	if r.ChecksumValue == "" {
		return fmt.Errorf("report missing checksum_value")
	}
	if r.CreatedBy.Tool == "" {
		return fmt.Errorf("report missing created_by.tool")
	}
	return nil
}
