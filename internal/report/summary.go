package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/chesterbot/chester/internal/library"
)

// AuditFinding is one audit problem carried into the summary
type AuditFinding struct {
	TrackID string
	Path    string
	Reason  string
}

// SummaryReport represents a complete catalog summary
type SummaryReport struct {
	GeneratedAt time.Time

	// Catalog statistics
	TrackCount     int
	TagCount       int
	UntaggedTracks int

	// Audit statistics
	AudioChecked int
	AudioBytes   int64
	Missing      []AuditFinding
	Unreadable   []AuditFinding
	Orphaned     []AuditFinding

	// Metadata
	DatabasePath string
	AudioDir     string
	EventLogPath string
}

// GenerateSummaryReport gathers catalog statistics from the database. Audit
// findings are filled in by the caller when an audit ran.
func GenerateSummaryReport(db *library.Store) (*SummaryReport, error) {
	summary := &SummaryReport{
		GeneratedAt: time.Now(),
	}

	count, err := db.CountTracks()
	if err != nil {
		return nil, fmt.Errorf("failed to count tracks: %w", err)
	}
	summary.TrackCount = count

	tags, err := db.AllTags()
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	summary.TagCount = len(tags)

	entries, err := db.ListLibrary()
	if err != nil {
		return nil, fmt.Errorf("failed to list library: %w", err)
	}
	for _, entry := range entries {
		if len(entry.Tags) == 0 {
			summary.UntaggedTracks++
		}
	}

	return summary, nil
}

// WriteMarkdownReport writes the summary report as Markdown
func WriteMarkdownReport(summary *SummaryReport, outputPath string) error {
	// Create output directory
	dir := filepath.Dir(outputPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	// Generate markdown content
	var md strings.Builder

	// Header
	md.WriteString("# Chester - Catalog Report\n\n")
	md.WriteString(fmt.Sprintf("**Generated:** %s\n\n", summary.GeneratedAt.Format("2006-01-02 15:04:05")))

	if summary.DatabasePath != "" {
		md.WriteString(fmt.Sprintf("**Database:** `%s`\n\n", summary.DatabasePath))
	}
	if summary.AudioDir != "" {
		md.WriteString(fmt.Sprintf("**Audio Directory:** `%s`\n\n", summary.AudioDir))
	}
	if summary.EventLogPath != "" {
		md.WriteString(fmt.Sprintf("**Event Log:** `%s`\n\n", summary.EventLogPath))
	}

	md.WriteString("---\n\n")

	// Overview
	md.WriteString("## Overview\n\n")
	md.WriteString("| Metric | Value |\n")
	md.WriteString("|--------|-------|\n")
	md.WriteString(fmt.Sprintf("| Tracks | %d |\n", summary.TrackCount))
	md.WriteString(fmt.Sprintf("| Tags | %d |\n", summary.TagCount))
	if summary.UntaggedTracks > 0 {
		md.WriteString(fmt.Sprintf("| Untagged Tracks | %d |\n", summary.UntaggedTracks))
	}
	md.WriteString("\n")

	// Audit
	if summary.AudioChecked > 0 {
		md.WriteString("## Audit\n\n")
		md.WriteString("| Metric | Value |\n")
		md.WriteString("|--------|-------|\n")
		md.WriteString(fmt.Sprintf("| Files Checked | %d |\n", summary.AudioChecked))
		md.WriteString(fmt.Sprintf("| Audio Size | %s |\n", humanize.IBytes(uint64(summary.AudioBytes))))
		md.WriteString(fmt.Sprintf("| Missing | %d |\n", len(summary.Missing)))
		md.WriteString(fmt.Sprintf("| Unreadable | %d |\n", len(summary.Unreadable)))
		md.WriteString(fmt.Sprintf("| Orphaned | %d |\n", len(summary.Orphaned)))
		md.WriteString("\n")
	}

	// Findings
	findings := make([]AuditFinding, 0, len(summary.Missing)+len(summary.Unreadable)+len(summary.Orphaned))
	findings = append(findings, summary.Missing...)
	findings = append(findings, summary.Unreadable...)
	findings = append(findings, summary.Orphaned...)

	if len(findings) > 0 {
		md.WriteString("## Findings\n\n")
		md.WriteString("| Track | Path | Reason |\n")
		md.WriteString("|-------|------|--------|\n")
		for _, finding := range findings {
			md.WriteString(fmt.Sprintf("| %s | `%s` | %s |\n",
				finding.TrackID,
				truncatePath(finding.Path, 60),
				finding.Reason))
		}
		md.WriteString("\n")
	}

	// Write to file
	if err := os.WriteFile(outputPath, []byte(md.String()), 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	return nil
}

// truncatePath truncates a file path to a maximum length
func truncatePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	// Truncate from the middle, keeping start and end
	start := maxLen/2 - 2
	end := len(path) - (maxLen/2 - 2)
	return path[:start] + "..." + path[end:]
}
