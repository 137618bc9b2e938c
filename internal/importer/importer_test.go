package importer

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/chesterbot/chester/internal/library"
	"github.com/chesterbot/chester/internal/report"
)

func openTestStore(t *testing.T) *library.Store {
	t.Helper()

	store, err := library.Open(filepath.Join(t.TempDir(), "library.sqlite3"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func TestImport(t *testing.T) {
	store := openTestStore(t)

	records := []Record{
		{
			ID:         "aaa11111111",
			UploadDate: "20210401",
			YTTitle:    "Raw Title",
			YTChannel:  "Some Channel",
			Title:      "Boss Theme",
			Artist:     "Composer A",
			Origin:     "Game One",
			Tags:       []string{"battle", "loud"},
		},
		{
			ID:      "bbb22222222",
			YTTitle: "Fallback Title",
		},
	}

	result, err := Import(store, records, report.NullLogger())
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}

	if result.Imported != 2 || result.Skipped != 0 {
		t.Errorf("unexpected result: %+v", result)
	}

	track, err := store.GetTrack("aaa11111111")
	if err != nil {
		t.Fatalf("failed to get track: %v", err)
	}
	if track.Title != "Boss Theme" || track.Artist != "Composer A" {
		t.Errorf("unexpected track: %+v", track)
	}

	tags, err := store.TrackTags("aaa11111111")
	if err != nil {
		t.Fatalf("failed to get tags: %v", err)
	}
	if !reflect.DeepEqual(tags, []string{"battle", "loud"}) {
		t.Errorf("expected [battle loud], got %v", tags)
	}

	// Records without an explicit title fall back to the source title,
	// and artist/origin get the sentinel defaults
	track, err = store.GetTrack("bbb22222222")
	if err != nil {
		t.Fatalf("failed to get track: %v", err)
	}
	if track.Title != "Fallback Title" {
		t.Errorf("expected fallback title, got %q", track.Title)
	}
	if track.Artist != library.DefaultArtist || track.Origin != library.DefaultOrigin {
		t.Errorf("expected sentinel defaults, got %+v", track)
	}
}

func TestImportSkipsBadRecords(t *testing.T) {
	store := openTestStore(t)

	records := []Record{
		{Title: "No ID at all"},
		{ID: "aaa11111111", Title: "Good Record"},
	}

	result, err := Import(store, records, report.NullLogger())
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}

	if result.Imported != 1 || result.Skipped != 1 {
		t.Errorf("unexpected result: %+v", result)
	}
	if len(result.Errors) != 1 {
		t.Errorf("expected 1 recorded error, got %d", len(result.Errors))
	}

	count, err := store.CountTracks()
	if err != nil {
		t.Fatalf("failed to count tracks: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 track, got %d", count)
	}
}

func TestImportFile(t *testing.T) {
	store := openTestStore(t)

	path := filepath.Join(t.TempDir(), "batch.json")
	raw := `[
		{"id": "aaa11111111", "track_title": "Boss Theme", "tags": ["battle"]},
		{"id": "bbb22222222", "track_title": "Credits Roll"}
	]`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	result, err := ImportFile(store, path, report.NullLogger())
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if result.Imported != 2 {
		t.Errorf("expected 2 imported, got %d", result.Imported)
	}
}

func TestImportFileErrors(t *testing.T) {
	store := openTestStore(t)

	if _, err := ImportFile(store, filepath.Join(t.TempDir(), "missing.json"), report.NullLogger()); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not an array"), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	if _, err := ImportFile(store, path, report.NullLogger()); err == nil {
		t.Error("expected error for malformed file")
	}
}

func TestImportIsIdempotent(t *testing.T) {
	store := openTestStore(t)

	records := []Record{
		{ID: "aaa11111111", Title: "Boss Theme", Tags: []string{"battle"}},
	}

	for i := 0; i < 2; i++ {
		if _, err := Import(store, records, report.NullLogger()); err != nil {
			t.Fatalf("import run %d failed: %v", i+1, err)
		}
	}

	count, err := store.CountTracks()
	if err != nil {
		t.Fatalf("failed to count tracks: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 track after double import, got %d", count)
	}

	tags, err := store.TrackTags("aaa11111111")
	if err != nil {
		t.Fatalf("failed to get tags: %v", err)
	}
	if len(tags) != 1 {
		t.Errorf("expected 1 tag after double import, got %v", tags)
	}
}
