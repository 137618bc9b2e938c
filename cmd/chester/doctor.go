package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/chesterbot/chester/internal/library"
	"github.com/chesterbot/chester/internal/util"
	"github.com/chesterbot/chester/internal/ytdlp"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run diagnostic checks on the environment and configuration",
	Long: `Run diagnostic checks to ensure chester can operate correctly.

This command checks:
- Required tools (yt-dlp)
- Optional tools (ffmpeg for audio conversion)
- SQLite version
- Database accessibility and integrity
- Audio directory permissions

Use this command to troubleshoot issues before running chester operations.`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

type checkResult struct {
	name    string
	message string
	error   bool
	warning bool
}

func runDoctor(cmd *cobra.Command, args []string) error {
	util.InfoLog("=== Chester Doctor - System Diagnostics ===")
	util.InfoLog("")

	results := []checkResult{}

	// 1. Check yt-dlp
	results = append(results, checkYtdlp())

	// 2. Check ffmpeg (optional)
	results = append(results, checkFfmpeg())

	// 3. Check SQLite
	results = append(results, checkSQLite())

	// 4. Check database file
	results = append(results, checkDatabase(viper.GetString("db")))

	// 5. Check audio directory
	results = append(results, checkAudioDirectory(audioDir()))

	// Print results
	util.InfoLog("")
	util.InfoLog("=== Diagnostic Results ===")
	util.InfoLog("")

	hasErrors := false
	hasWarnings := false

	for _, r := range results {
		symbol := "✓"
		if r.error {
			symbol = "✗"
			hasErrors = true
		} else if r.warning {
			symbol = "⚠"
			hasWarnings = true
		}

		line := fmt.Sprintf("[%s] %s", symbol, r.name)
		if r.message != "" {
			line += fmt.Sprintf(": %s", r.message)
		}

		if r.error {
			util.ErrorLog("%s", line)
		} else if r.warning {
			util.WarnLog("%s", line)
		} else {
			util.SuccessLog("%s", line)
		}
	}

	// Summary
	util.InfoLog("")
	if hasErrors {
		util.ErrorLog("❌ Some critical checks failed. Please resolve errors before running chester.")
		return fmt.Errorf("system diagnostics failed")
	} else if hasWarnings {
		util.WarnLog("⚠️  Some checks produced warnings. Review them before proceeding.")
	} else {
		util.SuccessLog("✅ All checks passed! System is ready for chester operations.")
	}

	return nil
}

// checkYtdlp verifies yt-dlp is available and gets version
func checkYtdlp() checkResult {
	version, err := ytdlp.Version()
	if err != nil {
		return checkResult{
			name:    "yt-dlp",
			error:   true,
			message: "not found or not executable (required for downloads)",
		}
	}

	return checkResult{
		name:    "yt-dlp",
		message: fmt.Sprintf("version %s", version),
	}
}

// checkFfmpeg verifies ffmpeg is available (optional, yt-dlp uses it for mp3)
func checkFfmpeg() checkResult {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, "ffmpeg", "-version")
	output, err := cmd.CombinedOutput()

	if err != nil {
		return checkResult{
			name:    "ffmpeg (optional)",
			warning: true,
			message: "not found (yt-dlp needs it to convert audio to mp3)",
		}
	}

	// Parse version from first line
	lines := strings.Split(string(output), "\n")
	version := "unknown"
	if len(lines) > 0 {
		parts := strings.Fields(lines[0])
		if len(parts) >= 3 {
			version = parts[2]
		}
	}

	return checkResult{
		name:    "ffmpeg (optional)",
		message: fmt.Sprintf("version %s", version),
	}
}

// checkSQLite verifies SQLite version
func checkSQLite() checkResult {
	// modernc.org/sqlite needs no external library, just report the version
	version := library.SQLiteVersion()
	if version == "" {
		return checkResult{
			name:    "SQLite",
			error:   true,
			message: "unable to determine version",
		}
	}

	return checkResult{
		name:    "SQLite",
		message: fmt.Sprintf("version %s (built-in)", version),
	}
}

// checkDatabase verifies database file accessibility
func checkDatabase(dbPath string) checkResult {
	if dbPath == "" {
		return checkResult{
			name:    "Database",
			warning: true,
			message: "no database path specified (use --db flag or config)",
		}
	}

	// Check if database exists
	info, err := os.Stat(dbPath)
	if err != nil {
		if os.IsNotExist(err) {
			return checkResult{
				name:    "Database",
				message: fmt.Sprintf("%s (will be created on first run)", dbPath),
			}
		}
		return checkResult{
			name:    "Database",
			error:   true,
			message: fmt.Sprintf("cannot access %s: %v", dbPath, err),
		}
	}

	// Check if it's a regular file
	if !info.Mode().IsRegular() {
		return checkResult{
			name:    "Database",
			error:   true,
			message: fmt.Sprintf("%s is not a regular file", dbPath),
		}
	}

	// Try to open it
	db, err := library.Open(dbPath)
	if err != nil {
		return checkResult{
			name:    "Database",
			error:   true,
			message: fmt.Sprintf("cannot open %s: %v", dbPath, err),
		}
	}
	defer db.Close()

	// Check integrity
	if err := db.CheckIntegrity(); err != nil {
		return checkResult{
			name:    "Database",
			error:   true,
			message: fmt.Sprintf("integrity check failed: %v", err),
		}
	}

	// Get some stats
	trackCount, _ := db.CountTracks()
	size := humanize.IBytes(uint64(info.Size()))

	return checkResult{
		name:    "Database",
		message: fmt.Sprintf("%s (%s, %d tracks)", dbPath, size, trackCount),
	}
}

// checkAudioDirectory verifies the audio directory is writable
func checkAudioDirectory(path string) checkResult {
	// Check if exists
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Try to create it
			if err := os.MkdirAll(path, 0755); err != nil {
				return checkResult{
					name:    "Audio directory",
					error:   true,
					message: fmt.Sprintf("cannot create %s: %v", path, err),
				}
			}
			return checkResult{
				name:    "Audio directory",
				message: fmt.Sprintf("%s (created)", path),
			}
		}
		return checkResult{
			name:    "Audio directory",
			error:   true,
			message: fmt.Sprintf("cannot access %s: %v", path, err),
		}
	}

	if !info.IsDir() {
		return checkResult{
			name:    "Audio directory",
			error:   true,
			message: fmt.Sprintf("%s is not a directory", path),
		}
	}

	// Check write permission by creating a temp file
	testFile := filepath.Join(path, ".chester_write_test")
	f, err := os.Create(testFile)
	if err != nil {
		return checkResult{
			name:    "Audio directory",
			error:   true,
			message: fmt.Sprintf("cannot write to %s: %v", path, err),
		}
	}
	f.Close()
	os.Remove(testFile)

	// Tally the audio files already present
	entries, _ := os.ReadDir(path)
	var count int
	var total int64
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".mp3") {
			continue
		}
		count++
		if fi, err := entry.Info(); err == nil {
			total += fi.Size()
		}
	}

	return checkResult{
		name:    "Audio directory",
		message: fmt.Sprintf("%s (%d files, %s)", path, count, humanize.IBytes(uint64(total))),
	}
}
