package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	appVersion = "dev"
	appCommit  = "unknown"
	appDate    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "invert-bench",
	Short: "Measure invert-and-write throughput",
	Long: `invert-bench measures how fast a block of random bytes can be inverted
and written to disk, one file per iteration.

Each run:
  1. GENERATE - Fill one buffer with random bytes
  2. INVERT   - Flip every bit of the buffer
  3. WRITE    - Persist the inverted copy to its own file
  4. REPORT   - Print elapsed time, data processed and throughput in Gbps

Steps 2 and 3 repeat for every iteration. The output directory is removed
when the run ends.`,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "invert-bench %s\n", appVersion)
		fmt.Fprintf(out, "  commit: %s\n", appCommit)
		fmt.Fprintf(out, "  built:  %s\n", appDate)
	},
}

// SetVersion sets version information from build-time ldflags
func SetVersion(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

// GetVersion returns the current application version
func GetVersion() string {
	return appVersion
}

// ExecuteContext runs the root command with a cancellable context
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.AddCommand(versionCmd)
	// run and report register themselves in their own init() functions
}
