package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chesterbot/chester/internal/library"
	"github.com/chesterbot/chester/internal/util"
	"github.com/chesterbot/chester/internal/ytdlp"
)

var downloadCmd = &cobra.Command{
	Use:   "download <youtube-link>",
	Short: "Download a single track and add it to the catalog",
	Long: `Download one track by YouTube link and catalog it.

The link must be a youtu.be, watch or embed URL. Links that resolve to an
already cataloged track (directly or through an alias) are rejected.
Title, artist and origin can be set at download time; missing artist and
origin fall back to the catalog defaults.`,
	Args: cobra.ExactArgs(1),
	RunE: runDownload,
}

func init() {
	rootCmd.AddCommand(downloadCmd)

	downloadCmd.Flags().String("title", "", "track title (defaults to the source title)")
	downloadCmd.Flags().String("artist", "", "track artist")
	downloadCmd.Flags().String("origin", "", "track origin (game or series)")
}

func runDownload(cmd *cobra.Command, args []string) error {
	id, err := ytdlp.VideoID(args[0])
	if err != nil {
		return err
	}

	db, err := openLibrary()
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	// Reject tracks already known, including under an alias
	if canonical, err := db.ResolveAlias(id); err == nil {
		return fmt.Errorf("track %s: %w", canonical, util.ErrDuplicate)
	} else if err != library.ErrTrackNotFound {
		return err
	}

	dl, err := newDownloader()
	if err != nil {
		return fmt.Errorf("failed to prepare audio directory: %w", err)
	}

	logger := newEventLogger()
	defer logger.Close()

	util.InfoLog("Downloading %s", id)
	if err := dl.DownloadAudio(cmd.Context(), id); err != nil {
		logger.LogDownload(id, dl.AudioPath(id), err)
		return err
	}

	info, err := dl.ProcessInfoJSON(id)
	if err != nil {
		return fmt.Errorf("failed to process video metadata: %w", err)
	}

	title, _ := cmd.Flags().GetString("title")
	artist, _ := cmd.Flags().GetString("artist")
	origin, _ := cmd.Flags().GetString("origin")

	if title == "" {
		title = info.Title
	}

	track := &library.Track{
		ID:         info.ID,
		UploadDate: info.UploadDate,
		YTTitle:    info.Title,
		YTChannel:  info.Channel,
		Title:      title,
		Artist:     artist,
		Origin:     origin,
	}
	if err := db.UpsertTrack(track); err != nil {
		return err
	}

	logger.LogDownload(id, dl.AudioPath(id), nil)
	util.SuccessLog("Cataloged %s - %s", track.ID, track.Title)

	return nil
}
