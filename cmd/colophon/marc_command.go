package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/openshelf/colophon/internal/pipeline"
	"github.com/openshelf/colophon/internal/storage"
)

var marcOutput string

func init() {
	marcCmd.Flags().StringVarP(&marcOutput, "output", "o", "", "output MARC file (default: stdout)")
	rootCmd.AddCommand(marcCmd)
}

var marcCmd = &cobra.Command{
	Use:   "marc <rows.csv>",
	Short: "Convert a filtered CSV into binary MARC records",
	Long: `Convert a filtered CSV into binary MARC records.

Reads the intermediate CSV produced by 'colophon filter', rebuilds each
record from its embedded JSON, and writes concatenated MARC 21 records.
A record missing a required key (publisher, year, journal, DOI) aborts
the run; the snapshot carries no fallbacks for them.`,
	Args: cobra.ExactArgs(1),
	Run:  runMarc,
}

func runMarc(cmd *cobra.Command, args []string) {
	in, err := os.Open(args[0])
	if err != nil {
		exitWithError(ExitError, "opening rows file: %v", err)
	}
	defer in.Close()

	toStdout := marcOutput == "" || marcOutput == "-"
	var out io.Writer = os.Stdout
	var outFile *os.File
	if !toStdout {
		if _, err := os.Stat(marcOutput); err == nil {
			if !confirm("Output file exists! Overwrite?", false) {
				os.Exit(ExitError)
			}
		}
		outFile, err = os.Create(marcOutput)
		if err != nil {
			exitWithError(ExitError, "creating output file: %v", err)
		}
		out = outFile
	}

	if err := pipeline.RunRows(storage.NewRowReader(in), pipeline.NewMARCSink(out), nil); err != nil {
		exitWithError(ExitError, "%v", err)
	}
	if outFile != nil {
		if err := outFile.Close(); err != nil {
			exitWithError(ExitError, "closing output file: %v", err)
		}
	}
}
