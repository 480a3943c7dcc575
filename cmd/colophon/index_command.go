package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openshelf/colophon/internal/storage"
)

var indexDBPath string

func init() {
	indexCmd.Flags().StringVar(&indexDBPath, "db", "rows.db", "SQLite database to build")
	rootCmd.AddCommand(indexCmd)
}

var indexCmd = &cobra.Command{
	Use:   "index <rows.csv>",
	Short: "Load a filtered CSV into a local SQLite index",
	Long: `Load a filtered CSV into a local SQLite index.

Builds a full-text index over title, primary author, and journal so a
filter run can be inspected with 'colophon search' before converting it
to MARC. Reimporting replaces the previous contents.`,
	Args: cobra.ExactArgs(1),
	Run:  runIndex,
}

func runIndex(cmd *cobra.Command, args []string) {
	db, err := storage.OpenDB(indexDBPath)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	defer db.Close()

	n, err := db.ImportCSV(args[0])
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	fmt.Printf("Indexed %d rows into %s\n", n, indexDBPath)
}
