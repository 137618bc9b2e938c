package importer

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/chesterbot/chester/internal/library"
	"github.com/chesterbot/chester/internal/report"
	"github.com/chesterbot/chester/internal/util"
)

// Record is one track in a batch import file
type Record struct {
	ID         string   `json:"id"`
	UploadDate string   `json:"upload_date"`
	YTTitle    string   `json:"yt_title"`
	YTChannel  string   `json:"yt_channel"`
	Title      string   `json:"track_title"`
	Artist     string   `json:"track_artist"`
	Origin     string   `json:"track_origin"`
	Tags       []string `json:"tags"`
}

// Result represents a batch import
type Result struct {
	Imported int
	Skipped  int
	Errors   []error
}

// ImportFile reads a JSON array of records and imports them into the catalog
func ImportFile(store *library.Store, path string, logger *report.EventLogger) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read import file: %w", err)
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse import file: %w", err)
	}

	return Import(store, records, logger)
}

// Import upserts records into the catalog. Records without an ID are skipped
// and counted; one bad record never aborts the batch.
func Import(store *library.Store, records []Record, logger *report.EventLogger) (*Result, error) {
	result := &Result{
		Errors: make([]error, 0),
	}

	for i, record := range records {
		if err := importOne(store, record); err != nil {
			util.WarnLog("Skipping record %d (%s): %v", i, record.ID, err)
			logger.LogImport(record.ID, err)
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Errorf("record %d: %w", i, err))
			continue
		}

		logger.LogImport(record.ID, nil)
		result.Imported++
	}

	util.InfoLog("Import complete: %d imported, %d skipped", result.Imported, result.Skipped)
	return result, nil
}

func importOne(store *library.Store, record Record) error {
	if record.ID == "" {
		return fmt.Errorf("record has no ID")
	}

	track := &library.Track{
		ID:         record.ID,
		UploadDate: record.UploadDate,
		YTTitle:    record.YTTitle,
		YTChannel:  record.YTChannel,
		Title:      record.Title,
		Artist:     record.Artist,
		Origin:     record.Origin,
	}
	if track.Title == "" {
		track.Title = record.YTTitle
	}

	if err := store.UpsertTrack(track); err != nil {
		return err
	}

	for _, label := range record.Tags {
		if label == "" {
			continue
		}
		if err := store.AddTag(record.ID, label); err != nil {
			return fmt.Errorf("failed to tag: %w", err)
		}
	}

	return nil
}
