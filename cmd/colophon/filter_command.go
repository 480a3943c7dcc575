package main

import (
	"io"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/openshelf/colophon/internal/config"
	"github.com/openshelf/colophon/internal/pipeline"
	"github.com/openshelf/colophon/internal/rule"
	"github.com/openshelf/colophon/internal/snapshot"
)

var (
	filterRuleFiles []string
	filterDataset   string
	filterOutput    string
	filterMARC      bool
)

func init() {
	filterCmd.Flags().StringArrayVarP(&filterRuleFiles, "pattern", "p", nil, "path to a file containing a title regex (repeat for OR)")
	filterCmd.Flags().StringVarP(&filterDataset, "dataset", "d", "", "path to the gzip snapshot (default from config)")
	filterCmd.Flags().StringVarP(&filterOutput, "output", "o", "", "output file (default: stdout)")
	filterCmd.Flags().BoolVar(&filterMARC, "marc", false, "emit binary MARC records directly, skipping the CSV stage")
	filterCmd.MarkFlagRequired("pattern")
	rootCmd.AddCommand(filterCmd)
}

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Filter the snapshot by title rules",
	Long: `Filter the snapshot by title rules.

Streams the gzip snapshot one record at a time, keeps records whose
normalized title (diacritics stripped, lower-cased) matches any rule,
and writes the seven-column intermediate CSV. With --marc the CSV stage
is skipped and binary MARC records are written directly.

Each rule file contains one regular expression; repeat -p to OR rules
together. Matching is case-insensitive regardless of the pattern.`,
	Args: cobra.NoArgs,
	Run:  runFilter,
}

func runFilter(cmd *cobra.Command, args []string) {
	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	rules, err := rule.LoadFiles(filterRuleFiles)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	toStdout := filterOutput == "" || filterOutput == "-"
	if !toStdout {
		if _, err := os.Stat(filterOutput); err == nil {
			if !confirm("Output file exists! Overwrite?", false) {
				os.Exit(ExitError)
			}
		}
	}

	dataset := filterDataset
	if dataset == "" {
		dataset = cfg.SnapshotPath
	}
	if _, err := os.Stat(dataset); err != nil {
		exitWithError(ExitError, "no downloaded snapshot found at %s; fetch one with:\n    colophon download", dataset)
	}

	stream, err := snapshot.Open(dataset)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	defer stream.Close()

	var out io.Writer = os.Stdout
	var outFile *os.File
	var progress pipeline.Progress
	if !toStdout {
		outFile, err = os.Create(filterOutput)
		if err != nil {
			exitWithError(ExitError, "creating output file: %v", err)
		}
		out = outFile

		// The total is an estimate for display only.
		bar := progressbar.NewOptions64(pipeline.SnapshotLineEstimate,
			progressbar.OptionSetDescription("filtering"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionSetItsString("articles"),
			progressbar.OptionThrottle(100*time.Millisecond),
		)
		progress = func(lines int64) { _ = bar.Set64(lines) }
		defer bar.Finish()
	}

	var sink pipeline.Sink
	if filterMARC {
		sink = pipeline.NewMARCSink(out)
	} else {
		sink = pipeline.NewCSVSink(out)
	}

	if err := pipeline.Run(stream, snapshot.NewFilter(rules), sink, progress); err != nil {
		exitWithError(ExitError, "%v", err)
	}
	if outFile != nil {
		if err := outFile.Close(); err != nil {
			exitWithError(ExitError, "closing output file: %v", err)
		}
	}
}
