package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/chesterbot/chester/internal/library"
	"github.com/chesterbot/chester/internal/util"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "List the catalog",
	Long: `List cataloged tracks.

The default view shows every track with its artist, origin and tags.
Alternate views group the catalog differently:

  --titles    titles only
  --artists   (artist, title) pairs
  --origins   (origin, title) pairs
  --tags      (tag, title) pairs, untagged tracks last`,
	RunE: runLibrary,
}

func init() {
	rootCmd.AddCommand(libraryCmd)

	libraryCmd.Flags().Bool("titles", false, "list titles only")
	libraryCmd.Flags().Bool("artists", false, "list tracks grouped by artist")
	libraryCmd.Flags().Bool("origins", false, "list tracks grouped by origin")
	libraryCmd.Flags().Bool("tags", false, "list tracks grouped by tag")
}

func runLibrary(cmd *cobra.Command, args []string) error {
	db, err := openLibrary()
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	titles, _ := cmd.Flags().GetBool("titles")
	artists, _ := cmd.Flags().GetBool("artists")
	origins, _ := cmd.Flags().GetBool("origins")
	tags, _ := cmd.Flags().GetBool("tags")

	switch {
	case titles:
		return printTitles(db)
	case artists:
		return printPairs(db.ListByArtist, "Artist")
	case origins:
		return printPairs(db.ListByOrigin, "Origin")
	case tags:
		return printPairs(db.ListByTag, "Tag")
	default:
		return printFullLibrary(db)
	}
}

func printFullLibrary(db *library.Store) error {
	entries, err := db.ListLibrary()
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		util.InfoLog("Catalog is empty")
		return nil
	}

	t := newTable()
	t.AppendHeader(table.Row{"ID", "Title", "Artist", "Origin", "Tags"})
	for _, entry := range entries {
		t.AppendRow(table.Row{
			entry.ID,
			entry.Title,
			entry.Artist,
			entry.Origin,
			strings.Join(entry.Tags, ", "),
		})
	}
	t.Render()

	util.InfoLog("%d tracks", len(entries))
	return nil
}

func printTitles(db *library.Store) error {
	titles, err := db.ListTitles()
	if err != nil {
		return err
	}

	for _, title := range titles {
		fmt.Println(title)
	}
	return nil
}

func printPairs(list func() ([]*library.Pair, error), header string) error {
	pairs, err := list()
	if err != nil {
		return err
	}

	t := newTable()
	t.AppendHeader(table.Row{header, "Title"})
	for _, pair := range pairs {
		t.AppendRow(table.Row{pair.Key, pair.Title})
	}
	t.Render()

	return nil
}

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	if width := util.GetTerminalWidth(); width > 0 {
		t.SetAllowedRowLength(width)
	}
	return t
}
