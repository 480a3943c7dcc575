package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openshelf/colophon/internal/storage"
)

var (
	searchDBPath string
	searchLimit  int
)

func init() {
	searchCmd.Flags().StringVar(&searchDBPath, "db", "rows.db", "SQLite index built by 'colophon index'")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 20, "maximum number of results")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search an index of filtered rows",
	Args:  cobra.ExactArgs(1),
	Run:   runSearch,
}

func runSearch(cmd *cobra.Command, args []string) {
	db, err := storage.OpenDB(searchDBPath)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	defer db.Close()

	results, err := db.Search(args[0], searchLimit)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	if len(results) == 0 {
		fmt.Println("No matches.")
		return
	}

	for i, r := range results {
		fmt.Printf("%d. %s\n", i+1, truncateString(r.Title, 70))
		year := r.Year
		if year == "" {
			year = "n.d."
		}
		fmt.Printf("   %s (%s), %s\n", r.PrimaryAuthor, year, r.Journal)
		if r.DOI != "" {
			fmt.Printf("   %s\n", r.DOI)
		}
		fmt.Println()
	}
}
