// Package main provides the colophon CLI entry point.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "colophon",
	Short: "Filter bulk open-access metadata into library catalog records",
	Long: `colophon turns a bulk open-access metadata snapshot (one JSON record
per line, gzip-compressed) into MARC catalog records, keeping only the
articles whose titles match a set of regex rules.

Typical workflow:
  colophon download                          fetch the latest snapshot
  colophon filter -p rules/topic -o out.csv  filter into an intermediate CSV
  colophon marc out.csv -o records.mrc       convert the CSV to binary MARC

The intermediate CSV can be skipped with 'filter --marc', or inspected
with 'colophon index' and 'colophon search' before committing to a load.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Version = Version
}
