package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chesterbot/chester/internal/util"
)

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Manage track tags",
}

var tagAddCmd = &cobra.Command{
	Use:   "add <track-id> <tag>...",
	Short: "Attach one or more tags to a track",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runTagAdd,
}

var tagResetCmd = &cobra.Command{
	Use:   "reset <track-id>",
	Short: "Remove all tags from a track",
	Args:  cobra.ExactArgs(1),
	RunE:  runTagReset,
}

var tagListCmd = &cobra.Command{
	Use:   "list [track-id]",
	Short: "List a track's tags, or every known tag",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTagList,
}

func init() {
	rootCmd.AddCommand(tagCmd)
	tagCmd.AddCommand(tagAddCmd)
	tagCmd.AddCommand(tagResetCmd)
	tagCmd.AddCommand(tagListCmd)
}

func runTagAdd(cmd *cobra.Command, args []string) error {
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

	for _, label := range args[1:] {
		if err := db.AddTag(id, label); err != nil {
			return err
		}
		logger.LogTag(id, "add", label)
	}

	util.SuccessLog("Tagged %s with %d tag(s)", id, len(args)-1)
	return nil
}

func runTagReset(cmd *cobra.Command, args []string) error {
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

	if err := db.ResetTags(id); err != nil {
		return err
	}

	logger.LogTag(id, "reset", "")
	util.SuccessLog("Cleared tags on %s", id)
	return nil
}

func runTagList(cmd *cobra.Command, args []string) error {
	db, err := openLibrary()
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	var labels []string
	if len(args) == 1 {
		id, err := db.ResolveAlias(args[0])
		if err != nil {
			return err
		}
		labels, err = db.TrackTags(id)
		if err != nil {
			return err
		}
	} else {
		var err error
		labels, err = db.AllTags()
		if err != nil {
			return err
		}
	}

	for _, label := range labels {
		fmt.Println(label)
	}
	return nil
}
