package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chesterbot/chester/internal/util"
)

var setCmd = &cobra.Command{
	Use:   "set <title|artist|origin> <track-id> <value>",
	Short: "Update a track's title, artist or origin",
	Long: `Update one metadata field on a cataloged track.

An empty artist or origin value resets the field to its catalog default.`,
	Args: cobra.ExactArgs(3),
	RunE: runSet,
}

func init() {
	rootCmd.AddCommand(setCmd)
}

func runSet(cmd *cobra.Command, args []string) error {
	field, idArg, value := args[0], args[1], args[2]

	db, err := openLibrary()
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	id, err := db.ResolveAlias(idArg)
	if err != nil {
		return err
	}

	switch field {
	case "title":
		err = db.SetTitle(id, value)
	case "artist":
		err = db.SetArtist(id, value)
	case "origin":
		err = db.SetOrigin(id, value)
	default:
		return fmt.Errorf("unknown field %q: must be title, artist or origin", field)
	}
	if err != nil {
		return err
	}

	util.SuccessLog("Updated %s of %s", field, id)
	return nil
}
