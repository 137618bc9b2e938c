package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chesterbot/chester/internal/util"
)

var rmCmd = &cobra.Command{
	Use:   "rm <track-id>",
	Short: "Remove a track from the catalog",
	Long: `Remove a track from the catalog. Its tag associations and aliases go
with it; other tracks are untouched. With --purge the audio file is deleted
from disk as well.`,
	Args: cobra.ExactArgs(1),
	RunE: runRm,
}

func init() {
	rootCmd.AddCommand(rmCmd)

	rmCmd.Flags().Bool("purge", false, "also delete the audio file")
}

func runRm(cmd *cobra.Command, args []string) error {
	db, err := openLibrary()
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	logger := newEventLogger()
	defer logger.Close()

	id, err := db.ResolveAlias(args[0])
	if err != nil {
		return err
	}

	if err := db.DeleteTrack(id); err != nil {
		return err
	}
	logger.LogRemove(id)

	purge, _ := cmd.Flags().GetBool("purge")
	if purge {
		dl, err := newDownloader()
		if err != nil {
			return err
		}
		path := dl.AudioPath(id)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			util.WarnLog("Failed to delete %s: %v", path, err)
		}
	}

	util.SuccessLog("Removed %s from the catalog", id)
	return nil
}
