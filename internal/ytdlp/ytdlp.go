package ytdlp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/chesterbot/chester/internal/util"
)

// Client invokes the yt-dlp binary to fetch audio into OutputDir
type Client struct {
	OutputDir string
}

// VideoInfo is the slice of yt-dlp's info.json that the catalog keeps
type VideoInfo struct {
	ID         string `json:"id"`
	UploadDate string `json:"upload_date"`
	Title      string `json:"title"`
	Channel    string `json:"channel"`
}

// Available reports whether yt-dlp can be found in PATH
func Available() bool {
	_, err := exec.LookPath("yt-dlp")
	return err == nil
}

// Version returns the installed yt-dlp version string
func Version() (string, error) {
	if _, err := exec.LookPath("yt-dlp"); err != nil {
		return "", util.ErrUnavailable
	}

	output, err := exec.Command("yt-dlp", "--version").Output()
	if err != nil {
		return "", fmt.Errorf("yt-dlp version check failed: %w", err)
	}

	return strings.TrimSpace(string(output)), nil
}

// DownloadAudio fetches a single video's audio as mp3 plus its info.json.
// The output file lands at <OutputDir>/<id>.mp3.
func (c *Client) DownloadAudio(ctx context.Context, id string) error {
	if _, err := exec.LookPath("yt-dlp"); err != nil {
		return util.ErrUnavailable
	}

	cmd := exec.CommandContext(ctx, "yt-dlp",
		"-t", "mp3",
		"-o", filepath.Join(c.OutputDir, "%(id)s.%(ext)s"),
		"--no-playlist",
		"--write-info-json",
		"--no-progress",
		WatchURL(id),
	)

	if _, err := cmd.Output(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return fmt.Errorf("yt-dlp failed: %s", strings.TrimSpace(string(exitErr.Stderr)))
		}
		return fmt.Errorf("yt-dlp execution failed: %w", err)
	}

	return nil
}

// AudioPath returns where DownloadAudio places the audio file for an ID
func (c *Client) AudioPath(id string) string {
	return filepath.Join(c.OutputDir, id+".mp3")
}

// ProcessInfoJSON reads the info.json written next to a downloaded file,
// extracts the metadata the catalog keeps, and removes the file.
func (c *Client) ProcessInfoJSON(id string) (*VideoInfo, error) {
	path := filepath.Join(c.OutputDir, id+".info.json")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read info json: %w", err)
	}

	var info VideoInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("failed to parse info json: %w", err)
	}

	if err := os.Remove(path); err != nil {
		return nil, fmt.Errorf("failed to remove info json: %w", err)
	}

	return &info, nil
}
