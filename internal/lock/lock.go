package lock

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/icemarkom/invert-bench/internal/errors"
)

// FileName is the lock file created inside a benchmark output directory.
const FileName = ".invert-bench.lock"

// LockInfo represents the contents of a lock file
type LockInfo struct {
	PID       int       `json:"pid"`
	Hostname  string    `json:"hostname"`
	Timestamp time.Time `json:"timestamp"`
}

// Acquire creates the lock file in dir so that two benchmark runs never
// write into the same directory. Returns the lock file path on success.
func Acquire(dir string) (string, error) {
	lockPath := filepath.Join(dir, FileName)

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	data, err := json.MarshalIndent(LockInfo{
		PID:       os.Getpid(),
		Hostname:  hostname,
		Timestamp: time.Now().UTC(),
	}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize lock info: %w", err)
	}

	// O_EXCL makes creation the existence check
	f, err := os.OpenFile(lockPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if os.IsExist(err) {
			return "", inUse(lockPath)
		}
		return "", fmt.Errorf("failed to create lock file: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(lockPath)
		return "", fmt.Errorf("failed to write lock file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(lockPath)
		return "", fmt.Errorf("failed to write lock file: %w", err)
	}

	return lockPath, nil
}

func inUse(lockPath string) error {
	existing, err := Read(lockPath)
	if err != nil {
		return errors.New(
			fmt.Sprintf("Benchmark already running (lock file exists: %s)", lockPath),
			fmt.Sprintf("If no benchmark is running, remove the lock file with: rm %s", lockPath),
		)
	}

	return errors.New(
		fmt.Sprintf("Benchmark already running (PID %d on %s, started %s)",
			existing.PID,
			existing.Hostname,
			existing.Timestamp.Format("2006-01-02 15:04:05")),
		fmt.Sprintf("Use a different --dir, or if the process is gone remove the lock file with: rm %s", lockPath),
	)
}

// Release removes the lock file
// Does not return an error if the lock file doesn't exist
func Release(lockPath string) error {
	err := os.Remove(lockPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lock file: %w", err)
	}
	return nil
}

// Read reads and deserializes a lock file
func Read(lockPath string) (*LockInfo, error) {
	data, err := os.ReadFile(lockPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("lock file not found: %s", lockPath)
		}
		return nil, fmt.Errorf("failed to read lock file: %w", err)
	}

	var lockInfo LockInfo
	if err := json.Unmarshal(data, &lockInfo); err != nil {
		return nil, fmt.Errorf("failed to parse lock file (corrupted?): %w", err)
	}

	return &lockInfo, nil
}
