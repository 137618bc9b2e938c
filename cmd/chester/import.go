package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chesterbot/chester/internal/importer"
)

var importCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Import tracks from a JSON batch file",
	Long: `Import a JSON array of track records into the catalog.

Each record carries the track ID, source metadata, title, artist, origin
and tags. Existing tracks are updated in place; records without an ID are
skipped and the rest of the batch continues.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	db, err := openLibrary()
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	logger := newEventLogger()
	defer logger.Close()

	_, err = importer.ImportFile(db, args[0], logger)
	return err
}
