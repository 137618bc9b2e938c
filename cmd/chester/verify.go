package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/chesterbot/chester/internal/util"
	"github.com/chesterbot/chester/internal/verify"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Audit the catalog against the audio directory",
	Long: `Cross-check the catalog against the audio directory.

Reports cataloged tracks without an audio file, files that cannot be read
or parsed, and audio files no cataloged track claims.`,
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	db, err := openLibrary()
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	logger := newEventLogger()
	defer logger.Close()

	result, err := verify.Audit(db, audioDir(), logger)
	if err != nil {
		return err
	}

	util.InfoLog("Checked %d tracks, %s of audio",
		result.Checked, humanize.IBytes(uint64(result.TotalBytes)))

	if result.OK() {
		util.SuccessLog("Catalog and audio directory are in sync")
		return nil
	}

	util.WarnLog("Found %d missing, %d unreadable, %d orphaned",
		len(result.Missing), len(result.Unreadable), len(result.Orphaned))
	return fmt.Errorf("audit found %d problem(s)",
		len(result.Missing)+len(result.Unreadable)+len(result.Orphaned))
}
