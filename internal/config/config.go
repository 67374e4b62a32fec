// Package config loads optional benchmark settings from a TOML file.
package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// EnvVar names the config file when --config is not given.
const EnvVar = "INVERT_BENCH_CONFIG"

// File mirrors the run command's flags. Keys left out of the file keep the
// flag defaults; flags set on the command line win over the file.
type File struct {
	Dir              string `toml:"dir"`
	Size             string `toml:"size"`
	Iterations       int    `toml:"iterations"`
	Variant          string `toml:"variant"`
	WriteBuffer      string `toml:"write_buffer"`
	Sync             bool   `toml:"sync"`
	Compression      string `toml:"compression"`
	CompressionLevel int    `toml:"compression_level"`
	Encryption       string `toml:"encryption"`
	Recipient        string `toml:"recipient"`
	PublicKey        string `toml:"public_key"`
	Verify           bool   `toml:"verify"`
	Keep             bool   `toml:"keep"`
	Seed             uint64 `toml:"seed"`
	Report           string `toml:"report"`

	meta toml.MetaData
}

// Resolve returns the config file path: the flag value first, then the
// environment variable. An empty result means no config file.
func Resolve(flagValue, envName string) string {
	if flagValue != "" {
		return flagValue
	}
	if envName != "" {
		return os.Getenv(envName)
	}
	return ""
}

// Load decodes the TOML file at path. Unknown keys are an error so that a
// typo never silently falls back to a default.
func Load(path string) (*File, error) {
	var f File
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("unknown keys in config file %s: %s", path, strings.Join(keys, ", "))
	}

	f.meta = md
	return &f, nil
}

// Defined reports whether key was present in the file.
func (f *File) Defined(key string) bool {
	if f == nil {
		return false
	}
	return f.meta.IsDefined(key)
}
