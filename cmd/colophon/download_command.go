package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/openshelf/colophon/internal/config"
	"github.com/openshelf/colophon/internal/fetch"
)

var downloadPath string

func init() {
	downloadCmd.Flags().StringVarP(&downloadPath, "output", "o", "", "store the snapshot at this path (default from config)")
	rootCmd.AddCommand(downloadCmd)
}

var downloadCmd = &cobra.Command{
	Use:     "download",
	Aliases: []string{"dl"},
	Short:   "Download the latest metadata snapshot",
	Long: `Download the latest metadata snapshot.

Discovers the newest snapshot archive in the remote listing, asks for
confirmation (snapshots run to tens of gigabytes), and streams it to
disk with a progress bar.

The listing URL can be overridden with base_url in the global config or
the COLOPHON_BASE_URL environment variable (a .env file is honored).
Exits 99 when no snapshot is discoverable online.`,
	Args: cobra.NoArgs,
	Run:  runDownload,
}

func runDownload(cmd *cobra.Command, args []string) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	path := downloadPath
	if path == "" {
		path = cfg.SnapshotPath
	}

	baseURL := cfg.BaseURL
	if env := os.Getenv("COLOPHON_BASE_URL"); env != "" {
		baseURL = env
	}
	var opts []fetch.ClientOption
	if baseURL != "" {
		opts = append(opts, fetch.WithBaseURL(baseURL))
	}
	client := fetch.NewClient(opts...)

	ctx := cmd.Context()
	snap, err := client.Latest(ctx)
	if err != nil {
		if errors.Is(err, fetch.ErrNoSnapshot) {
			exitWithError(ExitNoSnapshot, "no snapshot found online")
		}
		exitWithError(ExitError, "discovering snapshot: %v", err)
	}

	fmt.Printf("Snapshot found. Last update: %s.\n", snap.LastModified.Format("02 Jan 2006"))

	if !confirm(fmt.Sprintf("Download this %.1f GB snapshot?", gigabytes(snap.Size)), true) {
		os.Exit(ExitSuccess)
	}
	if _, err := os.Stat(path); err == nil {
		if !confirm("Output file exists! Replace?", false) {
			os.Exit(ExitSuccess)
		}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			exitWithError(ExitError, "creating snapshot directory: %v", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		exitWithError(ExitError, "creating snapshot file: %v", err)
	}

	bar := progressbar.DefaultBytes(snap.Size, "downloading")
	_, err = client.Download(ctx, snap.URL, io.MultiWriter(f, bar))
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		// The partial file is left in place; rerun to replace it.
		var statusErr *fetch.StatusError
		if errors.As(err, &statusErr) {
			exitWithError(ExitError, "download failed with status code %d", statusErr.StatusCode)
		}
		exitWithError(ExitError, "downloading snapshot: %v", err)
	}

	fmt.Println("Done! Proceeding...")
}
