package cmd

import (
	"fmt"

	"github.com/icemarkom/invert-bench/internal/bench"
	"github.com/icemarkom/invert-bench/internal/compress"
	"github.com/icemarkom/invert-bench/internal/config"
	"github.com/icemarkom/invert-bench/internal/encrypt"
	"github.com/icemarkom/invert-bench/internal/errors"
	"github.com/icemarkom/invert-bench/internal/format"
	"github.com/icemarkom/invert-bench/internal/generate"
	"github.com/icemarkom/invert-bench/internal/progress"
	"github.com/icemarkom/invert-bench/internal/report"
	"github.com/icemarkom/invert-bench/internal/writer"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	runConfigPath       string
	runDir              string
	runSize             string
	runIterations       int
	runVariant          string
	runWriteBuffer      string
	runSync             bool
	runCompression      string
	runCompressionLevel int
	runEncryption       string
	runRecipient        string
	runPublicKey        string
	runVerify           bool
	runKeep             bool
	runSeed             uint64
	runReport           string
	runVerbose          bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the invert-and-write benchmark",
	Long: `Run the benchmark: generate one random buffer, then for every iteration
invert it and write the result to <dir>/inverted_<i>.bin.

Variants:
  baseline   - allocate a new output buffer per iteration, unbuffered writes
  optimized  - reuse one output buffer, 64 KiB buffered writes

Optional stages (between INVERT and WRITE, in this order):
  COMPRESS - gzip, zstd or lz4
  ENCRYPT  - age or gpg

The output files are removed when the run ends; a directory created by the
run is removed with them. Use --keep to inspect the files.

Settings can also come from a TOML file (--config or INVERT_BENCH_CONFIG);
flags given on the command line override the file.`,
	Args: cobra.NoArgs,
	RunE: runBenchmark,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runConfigPath, "config", "", "Path to a TOML config file (env: "+config.EnvVar+")")
	runCmd.Flags().StringVar(&runDir, "dir", bench.DefaultDir, "Output directory (files removed after the run)")
	runCmd.Flags().StringVar(&runSize, "size", "1MiB", "Buffer size per file (e.g. 16, 64KiB, 1MiB)")
	runCmd.Flags().IntVarP(&runIterations, "iterations", "n", bench.DefaultIterations, "Number of files to write")
	runCmd.Flags().StringVar(&runVariant, "variant", "optimized", "Benchmark variant (baseline, optimized)")
	runCmd.Flags().StringVar(&runWriteBuffer, "write-buffer", "", "File write buffer size (default: 0 for baseline, 64KiB for optimized)")
	runCmd.Flags().BoolVar(&runSync, "sync", false, "fsync every file before closing it")
	runCmd.Flags().StringVar(&runCompression, "compression", compress.MethodNone, "Compression stage ("+compress.ValidMethodNames()+")")
	runCmd.Flags().IntVar(&runCompressionLevel, "compression-level", 0, "Compression level (0 = method default)")
	runCmd.Flags().StringVar(&runEncryption, "encryption", encrypt.MethodNone, "Encryption stage ("+encrypt.ValidMethodNames()+")")
	runCmd.Flags().StringVar(&runRecipient, "recipient", "", "age recipient public key (age1...)")
	runCmd.Flags().StringVar(&runPublicKey, "public-key", "", "Path to GPG public key file")
	runCmd.Flags().BoolVar(&runVerify, "verify", false, "Read every file back and check its content after timing")
	runCmd.Flags().BoolVar(&runKeep, "keep", false, "Keep the output directory after the run")
	runCmd.Flags().Uint64Var(&runSeed, "seed", 0, "Seed for reproducible buffer content (default: secure random)")
	runCmd.Flags().StringVar(&runReport, "report", "", "Write a JSON report to this path")
	runCmd.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Verbose output")
}

func runBenchmark(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	if path := config.Resolve(runConfigPath, config.EnvVar); path != "" {
		file, err := config.Load(path)
		if err != nil {
			return errors.Wrap(err, fmt.Sprintf("Failed to load config file: %v", err),
				"Config keys match the run flags with dashes replaced by underscores")
		}
		if err := applyConfigFile(cmd.Flags(), file); err != nil {
			return err
		}
	}

	size, err := format.ParseSize(runSize)
	if err != nil {
		return errors.InvalidConfig("--size", err.Error(), "Use a byte count such as 16, 64KiB or 1MiB")
	}

	variant, err := bench.ParseVariant(runVariant)
	if err != nil {
		return errors.InvalidConfig("--variant", err.Error(), "Use baseline or optimized")
	}

	writeBuffer := variant.WriteBufferSize()
	if runWriteBuffer != "" {
		if writeBuffer, err = format.ParseSize(runWriteBuffer); err != nil {
			return errors.InvalidConfig("--write-buffer", err.Error(), "Use a byte count such as 0, 4KiB or 64KiB")
		}
	}

	compressor, err := newCompressor()
	if err != nil {
		return err
	}

	encryptor, err := newEncryptor()
	if err != nil {
		return err
	}

	if runVerify && encryptor.Type() != encrypt.None {
		return errors.InvalidConfig("--verify", "cannot read back encrypted files",
			"Drop --verify or use --encryption none")
	}

	w, err := writer.New(writer.Config{
		BufferSize: writeBuffer,
		Sync:       runSync,
		Compressor: compressor,
		Encryptor:  encryptor,
	})
	if err != nil {
		return errors.Wrap(err, fmt.Sprintf("Failed to initialize writer: %v", err), "")
	}

	gen := generate.New()
	if cmd.Flags().Changed("seed") {
		gen = generate.NewSeeded(runSeed)
	}

	cfg := bench.Config{
		Dir:        runDir,
		BufferSize: size,
		Iterations: runIterations,
		Variant:    variant,
		Generator:  gen,
		Writer:     w,
		Verify:     runVerify,
		Decoder:    compressor,
		Report: func(res *bench.Result) error {
			return writeReport(cmd, res, compressor.Type().String(), encryptor.Type().String())
		},
		Keep:    runKeep,
		Verbose: runVerbose,
		Progress: progress.New(progress.Config{
			Description: "Writing",
			TotalBytes:  int64(size) * int64(runIterations),
			Enabled:     runVerbose,
		}),
	}

	if _, err := bench.Run(cmd.Context(), cfg); err != nil {
		return err // Run already returns user-friendly errors
	}
	return nil
}

// writeReport prints the results and saves the JSON report. It runs before
// the output directory is cleaned up.
func writeReport(cmd *cobra.Command, res *bench.Result, compression, encryption string) error {
	rep := report.New(res, compression, encryption, GetVersion())
	if err := rep.WriteText(cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("failed to print report: %w", err)
	}

	if runReport != "" {
		if err := rep.Write(runReport); err != nil {
			return errors.Wrap(err, fmt.Sprintf("Failed to write report: %v", err), "Check that the --report directory exists and is writable")
		}
		if runVerbose {
			fmt.Fprintf(cmd.OutOrStdout(), "Report written: %s\n", runReport)
		}
	}
	return nil
}

func newCompressor() (compress.Compressor, error) {
	method, err := compress.ParseMethod(runCompression)
	if err != nil {
		return nil, errors.InvalidConfig("--compression", err.Error(),
			"Use one of: "+compress.ValidMethodNames())
	}

	compressor, err := compress.NewCompressor(compress.Config{Method: method, Level: runCompressionLevel})
	if err != nil {
		return nil, errors.InvalidConfig("--compression-level", err.Error(),
			"Use 0 for the method default")
	}
	return compressor, nil
}

func newEncryptor() (encrypt.Encryptor, error) {
	method, err := encrypt.ParseMethod(runEncryption)
	if err != nil {
		return nil, errors.InvalidConfig("--encryption", err.Error(),
			"Use one of: "+encrypt.ValidMethodNames())
	}

	switch {
	case method == encrypt.AGE && runRecipient == "":
		return nil, errors.MissingRequired("--recipient",
			"Generate a key with age-keygen and pass its public key with --recipient age1...")
	case method == encrypt.GPG && runPublicKey == "":
		return nil, errors.MissingRequired("--public-key",
			"Export your GPG public key with: gpg --export your@email.com > bench-pub.gpg")
	}

	encryptor, err := encrypt.NewEncryptor(encrypt.Config{
		Method:    method,
		Recipient: runRecipient,
		PublicKey: runPublicKey,
	})
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("Failed to initialize encryption: %v", err),
			"Check the --recipient key or --public-key file")
	}
	return encryptor, nil
}

// applyConfigFile copies values from the config file into flags the user did
// not set on the command line.
func applyConfigFile(flags *pflag.FlagSet, file *config.File) error {
	settings := []struct {
		flag  string
		key   string
		value any
	}{
		{"dir", "dir", file.Dir},
		{"size", "size", file.Size},
		{"iterations", "iterations", file.Iterations},
		{"variant", "variant", file.Variant},
		{"write-buffer", "write_buffer", file.WriteBuffer},
		{"sync", "sync", file.Sync},
		{"compression", "compression", file.Compression},
		{"compression-level", "compression_level", file.CompressionLevel},
		{"encryption", "encryption", file.Encryption},
		{"recipient", "recipient", file.Recipient},
		{"public-key", "public_key", file.PublicKey},
		{"verify", "verify", file.Verify},
		{"keep", "keep", file.Keep},
		{"seed", "seed", file.Seed},
		{"report", "report", file.Report},
	}

	for _, s := range settings {
		if !file.Defined(s.key) || flags.Changed(s.flag) {
			continue
		}
		if err := flags.Set(s.flag, fmt.Sprint(s.value)); err != nil {
			return errors.InvalidConfig(s.key, err.Error(), "Fix the value in the config file")
		}
	}
	return nil
}
