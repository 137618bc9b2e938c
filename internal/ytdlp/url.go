package ytdlp

import (
	"net/url"
	"strings"

	"github.com/chesterbot/chester/internal/util"
)

// VideoID extracts the video ID from a YouTube link. Short youtu.be links,
// regular watch URLs and embed URLs are accepted.
func VideoID(link string) (string, error) {
	parsed, err := url.Parse(link)
	if err != nil {
		return "", util.ErrInvalidLink
	}

	host := strings.TrimPrefix(parsed.Hostname(), "www.")

	switch host {
	case "youtu.be":
		id := strings.Trim(parsed.Path, "/")
		if id == "" || strings.Contains(id, "/") {
			return "", util.ErrInvalidLink
		}
		return id, nil

	case "youtube.com", "m.youtube.com", "music.youtube.com":
		if parsed.Path == "/watch" {
			id := parsed.Query().Get("v")
			if id == "" {
				return "", util.ErrInvalidLink
			}
			return id, nil
		}
		if rest, ok := strings.CutPrefix(parsed.Path, "/embed/"); ok {
			id := strings.Trim(rest, "/")
			if id == "" || strings.Contains(id, "/") {
				return "", util.ErrInvalidLink
			}
			return id, nil
		}
	}

	return "", util.ErrInvalidLink
}

// WatchURL builds the canonical watch URL for a video ID
func WatchURL(id string) string {
	return "https://www.youtube.com/watch?v=" + id
}
