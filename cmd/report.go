package cmd

import (
	"fmt"
	"os"

	"github.com/icemarkom/invert-bench/internal/errors"
	"github.com/icemarkom/invert-bench/internal/format"
	"github.com/icemarkom/invert-bench/internal/report"
	"github.com/spf13/cobra"
)

var (
	reportFile    string
	reportVerbose bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print a saved benchmark report",
	Long: `Print the results stored in a JSON report written by "run --report".

The report is checked for consistency before it is printed.`,
	Args: cobra.NoArgs,
	RunE: printReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVar(&reportFile, "file", "", "Report file to print (required)")
	reportCmd.Flags().BoolVarP(&reportVerbose, "verbose", "v", false, "Show run details")

	reportCmd.MarkFlagRequired("file")
}

func printReport(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	if _, err := os.Stat(reportFile); os.IsNotExist(err) {
		return errors.MissingFile(reportFile, "Write a report with: invert-bench run --report <path>")
	}

	rep, err := report.Read(reportFile)
	if err != nil {
		return errors.Wrap(err, fmt.Sprintf("Failed to read report: %v", err), "Check that the file was written by invert-bench")
	}
	if err := rep.Validate(); err != nil {
		return errors.Wrap(err, fmt.Sprintf("Report is invalid: %v", err), "The file may be truncated or edited by hand")
	}

	out := cmd.OutOrStdout()
	if err := rep.WriteText(out); err != nil {
		return fmt.Errorf("failed to print report: %w", err)
	}

	if reportVerbose {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "  Created:     %s\n", rep.CreatedAt.Format("2006-01-02 15:04:05 MST"))
		fmt.Fprintf(out, "  Tool:        %s %s\n", rep.CreatedBy.Tool, rep.CreatedBy.Version)
		fmt.Fprintf(out, "  Host:        %s\n", rep.CreatedBy.Hostname)
		fmt.Fprintf(out, "  Variant:     %s\n", rep.Variant)
		fmt.Fprintf(out, "  Buffer:      %s\n", format.Size(int64(rep.BufferSize)))
		fmt.Fprintf(out, "  Compression: %s\n", rep.Compression)
		fmt.Fprintf(out, "  Encryption:  %s\n", rep.Encryption)
		fmt.Fprintf(out, "  Checksum:    %s:%s\n", rep.ChecksumAlgorithm, rep.ChecksumValue)
		fmt.Fprintf(out, "  Verified:    %t\n", rep.Verified)
		fmt.Fprintf(out, "  Seeded:      %t\n", rep.Seeded)
	}

	return nil
}
