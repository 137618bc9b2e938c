package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/chesterbot/chester/internal/report"
	"github.com/chesterbot/chester/internal/util"
	"github.com/chesterbot/chester/internal/verify"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write a Markdown summary of the catalog",
	Long: `Generate a Markdown report of the catalog: track, tag and untagged
counts, plus the findings of an audit of the audio directory.`,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringP("output", "o", "reports/summary.md", "report output path")
}

func runReport(cmd *cobra.Command, args []string) error {
	db, err := openLibrary()
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	logger := newEventLogger()
	defer logger.Close()

	summary, err := report.GenerateSummaryReport(db)
	if err != nil {
		return err
	}
	summary.DatabasePath = viper.GetString("db")
	summary.AudioDir = audioDir()
	summary.EventLogPath = logger.Path()

	audit, err := verify.Audit(db, audioDir(), logger)
	if err != nil {
		return err
	}
	summary.AudioChecked = audit.Checked
	summary.AudioBytes = audit.TotalBytes
	summary.Missing = toFindings(audit.Missing)
	summary.Unreadable = toFindings(audit.Unreadable)
	summary.Orphaned = toFindings(audit.Orphaned)

	output, _ := cmd.Flags().GetString("output")
	if err := report.WriteMarkdownReport(summary, output); err != nil {
		return err
	}

	util.SuccessLog("Report written to %s", output)
	return nil
}

func toFindings(findings []verify.Finding) []report.AuditFinding {
	out := make([]report.AuditFinding, len(findings))
	for i, f := range findings {
		out[i] = report.AuditFinding{TrackID: f.TrackID, Path: f.Path, Reason: f.Reason}
	}
	return out
}
