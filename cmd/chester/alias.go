package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chesterbot/chester/internal/util"
	"github.com/chesterbot/chester/internal/ytdlp"
)

var aliasCmd = &cobra.Command{
	Use:   "alias",
	Short: "Manage alternate IDs for cataloged tracks",
	Long: `Aliases map alternate video IDs (re-uploads, mirrors) to a canonical
cataloged track, so duplicate links resolve to the track already on disk.`,
}

var aliasAddCmd = &cobra.Command{
	Use:   "add <link-or-id> <track-id>",
	Short: "Map an alternate ID to a cataloged track",
	Args:  cobra.ExactArgs(2),
	RunE:  runAliasAdd,
}

var aliasResolveCmd = &cobra.Command{
	Use:   "resolve <link-or-id>",
	Short: "Resolve an ID to its canonical track",
	Args:  cobra.ExactArgs(1),
	RunE:  runAliasResolve,
}

var aliasListCmd = &cobra.Command{
	Use:   "list <track-id>",
	Short: "List the aliases of a track",
	Args:  cobra.ExactArgs(1),
	RunE:  runAliasList,
}

var aliasRemoveCmd = &cobra.Command{
	Use:   "remove <alias>",
	Short: "Remove an alias mapping",
	Args:  cobra.ExactArgs(1),
	RunE:  runAliasRemove,
}

func init() {
	rootCmd.AddCommand(aliasCmd)
	aliasCmd.AddCommand(aliasAddCmd)
	aliasCmd.AddCommand(aliasResolveCmd)
	aliasCmd.AddCommand(aliasListCmd)
	aliasCmd.AddCommand(aliasRemoveCmd)
}

// aliasArg accepts either a raw video ID or a full YouTube link
func aliasArg(arg string) string {
	if id, err := ytdlp.VideoID(arg); err == nil {
		return id
	}
	return arg
}

func runAliasAdd(cmd *cobra.Command, args []string) error {
	db, err := openLibrary()
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	logger := newEventLogger()
	defer logger.Close()

	alias := aliasArg(args[0])
	trackID := args[1]

	if err := db.AddAlias(alias, trackID); err != nil {
		return err
	}

	logger.LogAlias(trackID, "add", alias)
	util.SuccessLog("Alias %s now points to %s", alias, trackID)
	return nil
}

func runAliasResolve(cmd *cobra.Command, args []string) error {
	db, err := openLibrary()
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	canonical, err := db.ResolveAlias(aliasArg(args[0]))
	if err != nil {
		return err
	}

	fmt.Println(canonical)
	return nil
}

func runAliasList(cmd *cobra.Command, args []string) error {
	db, err := openLibrary()
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	aliases, err := db.Aliases(args[0])
	if err != nil {
		return err
	}

	for _, alias := range aliases {
		fmt.Println(alias)
	}
	return nil
}

func runAliasRemove(cmd *cobra.Command, args []string) error {
	db, err := openLibrary()
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	logger := newEventLogger()
	defer logger.Close()

	alias := aliasArg(args[0])
	if err := db.RemoveAlias(alias); err != nil {
		return err
	}

	logger.LogAlias("", "remove", alias)
	util.SuccessLog("Removed alias %s", alias)
	return nil
}
