package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/icemarkom/invert-bench/internal/config"
	"github.com/icemarkom/invert-bench/internal/encrypt"
	"github.com/icemarkom/invert-bench/internal/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.EnvVar, "")
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags restores every flag to its default so runs do not leak state.
func resetFlags(c *cobra.Command) {
	c.Flags().VisitAll(func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	})
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func TestRunCommand_FlagDefaults(t *testing.T) {
	cmd := runCmd

	dir, _ := cmd.Flags().GetString("dir")
	assert.Equal(t, "benchmark_files", dir, "default dir should be benchmark_files")

	size, _ := cmd.Flags().GetString("size")
	assert.Equal(t, "1MiB", size, "default size should be 1MiB")

	iterations, _ := cmd.Flags().GetInt("iterations")
	assert.Equal(t, 1000, iterations, "default iterations should be 1000")

	variant, _ := cmd.Flags().GetString("variant")
	assert.Equal(t, "optimized", variant)

	compression, _ := cmd.Flags().GetString("compression")
	assert.Equal(t, "none", compression, "default compression should be none")

	encryption, _ := cmd.Flags().GetString("encryption")
	assert.Equal(t, "none", encryption, "default encryption should be none")

	keep, _ := cmd.Flags().GetBool("keep")
	assert.False(t, keep, "default keep should be false")

	verbose, _ := cmd.Flags().GetBool("verbose")
	assert.False(t, verbose, "default verbose should be false")
}

func TestRunCommand_VerboseFlag(t *testing.T) {
	cmd := runCmd
	defer resetFlags(cmd)

	cmd.ParseFlags([]string{"-v"})
	verbose, _ := cmd.Flags().GetBool("verbose")
	assert.True(t, verbose)

	cmd.Flags().Set("verbose", "false")

	cmd.ParseFlags([]string{"--verbose"})
	verbose, _ = cmd.Flags().GetBool("verbose")
	assert.True(t, verbose)
}

func TestRunCommand_IterationsShortFlag(t *testing.T) {
	cmd := runCmd
	defer resetFlags(cmd)

	cmd.ParseFlags([]string{"-n", "30"})
	iterations, _ := cmd.Flags().GetInt("iterations")
	assert.Equal(t, 30, iterations)
}

func TestRootCommand_HasSubcommands(t *testing.T) {
	commands := rootCmd.Commands()

	commandNames := make([]string, 0)
	for _, cmd := range commands {
		commandNames = append(commandNames, cmd.Name())
	}

	assert.Contains(t, commandNames, "run")
	assert.Contains(t, commandNames, "report")
	assert.Contains(t, commandNames, "version")
}

func TestReportCommand_FlagsRegistered(t *testing.T) {
	cmd := reportCmd

	assert.NotNil(t, cmd.Flags().Lookup("file"))
	assert.NotNil(t, cmd.Flags().Lookup("verbose"))
}

func TestVersionCommand(t *testing.T) {
	SetVersion("1.2.3", "abc123", "2026-01-01")
	defer SetVersion("dev", "unknown", "unknown")

	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "invert-bench 1.2.3")
	assert.Contains(t, out, "commit: abc123")
}

func TestRun_EndToEnd(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "benchmark_files")

	out, err := execute(t, "run", "--size", "16", "--iterations", "3", "--dir", dir)
	require.NoError(t, err)

	assert.Contains(t, out, "\nBenchmark Results:\n")
	assert.Regexp(t, `Total time: [0-9.]+ seconds`, out)
	assert.Contains(t, out, "Files generated: 3\n")
	assert.Contains(t, out, "Total data processed: 0.00004577637 MB\n")
	assert.Regexp(t, `Performance: [0-9.]+ Gbps`, out)

	_, err = os.Stat(dir)
	assert.True(t, os.IsNotExist(err), "output directory should be removed")
}

func TestRun_KeepLeavesFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	_, err := execute(t, "run", "--size", "16", "-n", "3", "--dir", dir, "--keep", "--variant", "baseline")
	require.NoError(t, err)

	var first []byte
	for i := 0; i < 3; i++ {
		data, err := os.ReadFile(filepath.Join(dir, fmt.Sprintf("inverted_%d.bin", i)))
		require.NoError(t, err)
		assert.Len(t, data, 16)
		if first == nil {
			first = data
		}
		assert.Equal(t, first, data, "every file holds the same inverted buffer")
	}

	_, err = os.Stat(filepath.Join(dir, "inverted_3.bin"))
	assert.True(t, os.IsNotExist(err))
}

func TestRun_ExistingDirectoryPreserved(t *testing.T) {
	dir := t.TempDir()
	other := filepath.Join(dir, "thesis.tex")
	require.NoError(t, os.WriteFile(other, []byte("draft"), 0644))

	out, err := execute(t, "run", "--size", "16", "-n", "3", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Files generated: 3\n")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "thesis.tex", entries[0].Name())
}

func TestRun_DirectoryCollidesWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "benchmark_files")
	require.NoError(t, os.WriteFile(path, []byte("occupied"), 0644))

	_, err := execute(t, "run", "--size", "16", "-n", "3", "--dir", path)
	require.Error(t, err)

	var userErr *errors.UserError
	assert.ErrorAs(t, err, &userErr)
	assert.Contains(t, err.Error(), path)

	data, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, "occupied", string(data), "colliding file must be left untouched")
}

func TestRun_InvalidFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"bad size", []string{"--size", "lots"}, "--size"},
		{"bad variant", []string{"--variant", "turbo"}, "--variant"},
		{"bad compression", []string{"--compression", "brotli"}, "--compression"},
		{"bad compression level", []string{"--compression", "zstd", "--compression-level", "42"}, "--compression-level"},
		{"bad encryption", []string{"--encryption", "rot13"}, "--encryption"},
		{"age without recipient", []string{"--encryption", "age"}, "--recipient"},
		{"gpg without key", []string{"--encryption", "gpg"}, "--public-key"},
		{"zero iterations", []string{"-n", "0"}, "iterations"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "out")
			args := append([]string{"run", "--size", "16", "--dir", dir}, tt.args...)

			_, err := execute(t, args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)

			_, statErr := os.Stat(dir)
			assert.True(t, os.IsNotExist(statErr), "nothing should be created on invalid input")
		})
	}
}

func TestRun_VerifyWithCompression(t *testing.T) {
	for _, method := range []string{"gzip", "zstd", "lz4"} {
		t.Run(method, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "out")

			out, err := execute(t, "run", "--size", "4KiB", "-n", "4", "--dir", dir,
				"--compression", method, "--verify", "--seed", "7")
			require.NoError(t, err)
			assert.Contains(t, out, "Files generated: 4\n")
			assert.Contains(t, out, "Total data processed: 0.015625 MB\n")
		})
	}
}

func TestRun_AgeEncryption(t *testing.T) {
	_, recipient, err := encrypt.GenerateX25519Identity()
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "out")
	_, err = execute(t, "run", "--size", "16", "-n", "2", "--dir", dir,
		"--encryption", "age", "--recipient", recipient, "--keep")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "inverted_0.bin.age"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "inverted_1.bin.age"))
	assert.NoError(t, err)
}

func TestRun_VerifyWithEncryptionRejected(t *testing.T) {
	_, recipient, err := encrypt.GenerateX25519Identity()
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "out")
	_, err = execute(t, "run", "--size", "16", "-n", "2", "--dir", dir,
		"--encryption", "age", "--recipient", recipient, "--verify")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--verify")
}

func TestRun_ConfigFile(t *testing.T) {
	tmp := t.TempDir()
	dir := filepath.Join(tmp, "from_config")
	cfgPath := filepath.Join(tmp, "bench.toml")

	content := fmt.Sprintf("dir = %q\nsize = \"16\"\niterations = 2\nkeep = true\n", dir)
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0644))

	// --iterations on the command line wins over the file
	out, err := execute(t, "run", "--config", cfgPath, "--iterations", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Files generated: 3\n")
	assert.Contains(t, out, "Total data processed: 0.00004577637 MB\n")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err, "keep from the config file should leave the directory")
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"inverted_0.bin", "inverted_1.bin", "inverted_2.bin"}, names)
}

func TestRun_ConfigFileFromEnv(t *testing.T) {
	tmp := t.TempDir()
	dir := filepath.Join(tmp, "from_env")
	cfgPath := filepath.Join(tmp, "bench.toml")

	content := fmt.Sprintf("dir = %q\nsize = \"16\"\niterations = 1\n", dir)
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0644))

	resetFlags(rootCmd)
	t.Setenv(config.EnvVar, cfgPath)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"run"})
	defer func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	}()

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "Files generated: 1\n")
	assert.Contains(t, out.String(), "Total data processed: 0.00001525879 MB\n")
}

func TestRun_ConfigFileErrors(t *testing.T) {
	tmp := t.TempDir()

	_, err := execute(t, "run", "--config", filepath.Join(tmp, "missing.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")

	badPath := filepath.Join(tmp, "typo.toml")
	require.NoError(t, os.WriteFile(badPath, []byte("iteratons = 5\n"), 0644))

	_, err = execute(t, "run", "--config", badPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "iteratons")
}

func TestReport_RoundTrip(t *testing.T) {
	tmp := t.TempDir()
	dir := filepath.Join(tmp, "out")
	reportPath := filepath.Join(tmp, "result.json")

	runOut, err := execute(t, "run", "--size", "16", "-n", "3", "--dir", dir, "--report", reportPath)
	require.NoError(t, err)

	out, err := execute(t, "report", "--file", reportPath, "-v")
	require.NoError(t, err)

	assert.Contains(t, out, runOut, "saved report prints the same summary")
	assert.Contains(t, out, "Variant:     optimized")
	assert.Contains(t, out, "Compression: none")
	assert.Contains(t, out, "Checksum:    sha256:")
}

func TestReport_MissingFile(t *testing.T) {
	_, err := execute(t, "report", "--file", filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)

	var userErr *errors.UserError
	require.ErrorAs(t, err, &userErr)
	assert.Contains(t, userErr.Message, "nope.json")
}

func TestReport_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"variant":"baseline","files":3,"buffer_size":16,"total_bytes":1}`), 0644))

	_, err := execute(t, "report", "--file", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Report is invalid")
}
