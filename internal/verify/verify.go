package verify

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"

	"github.com/chesterbot/chester/internal/library"
	"github.com/chesterbot/chester/internal/report"
	"github.com/chesterbot/chester/internal/util"
)

// Finding is one problem discovered by the audit
type Finding struct {
	TrackID string
	Path    string
	Reason  string
}

// Result aggregates the audit findings
type Result struct {
	Checked    int
	TotalBytes int64
	Missing    []Finding
	Unreadable []Finding
	Orphaned   []Finding
}

// OK reports whether the audit found no problems
func (r *Result) OK() bool {
	return len(r.Missing) == 0 && len(r.Unreadable) == 0 && len(r.Orphaned) == 0
}

// Audit cross-checks the catalog against the audio directory. Every cataloged
// track must have a readable audio file, and every audio file must belong to a
// cataloged track.
func Audit(store *library.Store, audioDir string, logger *report.EventLogger) (*Result, error) {
	ids, err := store.TrackIDs()
	if err != nil {
		return nil, fmt.Errorf("failed to list tracks: %w", err)
	}

	result := &Result{}
	cataloged := make(map[string]bool, len(ids))

	for _, id := range ids {
		cataloged[id] = true
		result.Checked++

		path := filepath.Join(audioDir, id+".mp3")
		info, err := os.Stat(path)
		if err != nil {
			finding := Finding{TrackID: id, Path: path, Reason: "audio file missing"}
			result.Missing = append(result.Missing, finding)
			logger.LogVerify(id, path, finding.Reason)
			util.WarnLog("Missing audio file for track %s", id)
			continue
		}
		result.TotalBytes += info.Size()

		if reason := checkReadable(path); reason != "" {
			finding := Finding{TrackID: id, Path: path, Reason: reason}
			result.Unreadable = append(result.Unreadable, finding)
			logger.LogVerify(id, path, reason)
			util.WarnLog("Unreadable audio file for track %s: %s", id, reason)
		}
	}

	// Sweep the audio directory for files no track claims
	entries, err := os.ReadDir(audioDir)
	if err != nil {
		if os.IsNotExist(err) {
			return result, nil
		}
		return nil, fmt.Errorf("failed to read audio directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".mp3") {
			continue
		}
		id := strings.TrimSuffix(name, ".mp3")
		if cataloged[id] {
			continue
		}

		path := filepath.Join(audioDir, name)
		finding := Finding{TrackID: id, Path: path, Reason: "not cataloged"}
		result.Orphaned = append(result.Orphaned, finding)
		logger.LogVerify(id, path, finding.Reason)
		util.WarnLog("Orphaned audio file %s", path)
	}

	return result, nil
}

// checkReadable opens the file and probes its metadata header. A file without
// embedded tags is still fine; only open and parse failures count.
func checkReadable(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Sprintf("cannot open: %v", err)
	}
	defer f.Close()

	if _, err := tag.ReadFrom(f); err != nil {
		if errors.Is(err, tag.ErrNoTagsFound) {
			return ""
		}
		return fmt.Sprintf("cannot parse: %v", err)
	}

	return ""
}
