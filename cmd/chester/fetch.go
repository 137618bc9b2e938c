package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chesterbot/chester/internal/fetch"
	"github.com/chesterbot/chester/internal/util"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download audio for every cataloged track that is missing on disk",
	Long: `Walk the catalog and download audio for every track whose file is
absent from the audio directory. Tracks with an existing file are skipped.

The --mode flag is required:
  sequential  one download at a time
  parallel    several downloads at once (bounded by --jobs)

Individual download failures are logged and the pass continues.`,
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().String("mode", "", "download mode: sequential or parallel (required)")
	fetchCmd.Flags().Int("jobs", 0, "parallel download workers (default 4)")
	fetchCmd.MarkFlagRequired("mode")
}

// fetchJobs resolves the mode flag to a worker count before any other work
func fetchJobs(mode string, jobs int) (int, error) {
	switch mode {
	case "sequential":
		return 1, nil
	case "parallel":
		if jobs <= 0 {
			jobs = GetConfigInt("fetch.jobs", 4)
		}
		return jobs, nil
	default:
		return 0, fmt.Errorf("invalid mode %q: must be sequential or parallel", mode)
	}
}

func runFetch(cmd *cobra.Command, args []string) error {
	mode, _ := cmd.Flags().GetString("mode")
	jobsFlag, _ := cmd.Flags().GetInt("jobs")

	jobs, err := fetchJobs(mode, jobsFlag)
	if err != nil {
		return err
	}

	db, err := openLibrary()
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	dl, err := newDownloader()
	if err != nil {
		return fmt.Errorf("failed to prepare audio directory: %w", err)
	}

	logger := newEventLogger()
	defer logger.Close()

	driver := fetch.New(&fetch.Config{
		Store:      db,
		Downloader: dl,
		Jobs:       jobs,
		Logger:     logger,
	})

	result, err := driver.Run(cmd.Context())
	if err != nil {
		return err
	}

	if result.Failed > 0 {
		util.WarnLog("%d downloads failed, see the log above", result.Failed)
	}

	return nil
}
