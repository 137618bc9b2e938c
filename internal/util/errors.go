package util

import "errors"

// Sentinel errors for common failure modes
var (
	// ErrDuplicate indicates the track is already cataloged
	ErrDuplicate = errors.New("already in library")

	// ErrUnavailable indicates a required external tool is missing from PATH
	ErrUnavailable = errors.New("tool not available")

	// ErrInvalidLink indicates a link that does not resolve to a video ID
	ErrInvalidLink = errors.New("invalid YouTube link")
)
