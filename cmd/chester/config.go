package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/chesterbot/chester/internal/library"
	"github.com/chesterbot/chester/internal/report"
	"github.com/chesterbot/chester/internal/ytdlp"
)

// GetConfigString retrieves a string config value with proper precedence:
// 1. Command-line flag (if set)
// 2. Environment variable (CHESTER_*)
// 3. Config file
// 4. Default value
func GetConfigString(key string, defaultValue string) string {
	val := viper.GetString(key)
	if val == "" {
		return defaultValue
	}
	return val
}

// GetConfigInt retrieves an int config value with proper precedence
func GetConfigInt(key string, defaultValue int) int {
	val := viper.GetInt(key)
	if val == 0 {
		return defaultValue
	}
	return val
}

// openLibrary opens the catalog database, creating parent directories first
func openLibrary() (*library.Store, error) {
	dbPath := viper.GetString("db")

	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}

	return library.Open(dbPath)
}

// audioDir returns the configured audio directory
func audioDir() string {
	return GetConfigString("audio_dir", "media/audio")
}

// newDownloader builds a yt-dlp client for the audio directory
func newDownloader() (*ytdlp.Client, error) {
	dir := audioDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &ytdlp.Client{OutputDir: dir}, nil
}

// newEventLogger opens a JSONL event log when log_dir is configured. Without
// it commands run with the no-op logger.
func newEventLogger() *report.EventLogger {
	logDir := viper.GetString("log_dir")
	if logDir == "" {
		return report.NullLogger()
	}

	minLevel := report.LevelInfo
	if viper.GetBool("verbose") {
		minLevel = report.LevelDebug
	}

	logger, err := report.NewEventLogger(logDir, minLevel)
	if err != nil {
		return report.NullLogger()
	}
	return logger
}
