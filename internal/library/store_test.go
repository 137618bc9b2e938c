package library

import (
	"database/sql"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "library.sqlite3")
	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func TestStoreOpenAndMigrate(t *testing.T) {
	store := openTestStore(t)

	// Verify schema version
	version, err := store.getSchemaVersion()
	if err != nil {
		t.Fatalf("failed to get schema version: %v", err)
	}
	if version != currentSchemaVersion {
		t.Errorf("expected schema version %d, got %d", currentSchemaVersion, version)
	}

	// Verify current-generation tables exist
	tables := []string{"tracks", "tags", "track_tags", "aliases", "schema_version"}
	for _, table := range tables {
		var count int
		err := store.db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count)
		if err != nil {
			t.Fatalf("failed to query table %s: %v", table, err)
		}
		if count != 1 {
			t.Errorf("expected table %s to exist", table)
		}
	}

	// Intermediate-generation lookup tables must be gone
	for _, table := range []string{"artists", "origins"} {
		var count int
		err := store.db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count)
		if err != nil {
			t.Fatalf("failed to query table %s: %v", table, err)
		}
		if count != 0 {
			t.Errorf("expected lookup table %s to be dropped", table)
		}
	}

	// The legacy JSON tags column must be gone
	var cols int
	err = store.db.QueryRow("SELECT COUNT(*) FROM pragma_table_info('tracks') WHERE name = 'tags'").Scan(&cols)
	if err != nil {
		t.Fatalf("failed to inspect tracks table: %v", err)
	}
	if cols != 0 {
		t.Error("expected legacy tags column to be dropped")
	}
}

func TestStoreReopenIsNoOp(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "library.sqlite3")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	if err := store.UpsertTrack(&Track{ID: "dQw4w9WgXcQ", Title: "Some Song"}); err != nil {
		t.Fatalf("failed to insert track: %v", err)
	}
	if err := store.AddTag("dQw4w9WgXcQ", "jazz"); err != nil {
		t.Fatalf("failed to add tag: %v", err)
	}
	store.Close()

	// Reopening must not re-run migrations or disturb data
	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("failed to reopen store: %v", err)
	}
	defer store.Close()

	version, err := store.getSchemaVersion()
	if err != nil {
		t.Fatalf("failed to get schema version: %v", err)
	}
	if version != currentSchemaVersion {
		t.Errorf("expected schema version %d after reopen, got %d", currentSchemaVersion, version)
	}

	tags, err := store.TrackTags("dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("failed to get tags: %v", err)
	}
	if len(tags) != 1 || tags[0] != "jazz" {
		t.Errorf("expected tags [jazz] after reopen, got %v", tags)
	}
}

// seedLegacyDatabase creates a database in the generation-1 shape (free-text
// artist/origin, JSON tags column) stamped at the given schema version.
func seedLegacyDatabase(t *testing.T, dbPath string, version int, inserts []string) {
	t.Helper()

	db, err := sql.Open("sqlite", "file:"+dbPath)
	if err != nil {
		t.Fatalf("failed to open raw database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(schemaV1); err != nil {
		t.Fatalf("failed to create legacy schema: %v", err)
	}
	for v := 1; v <= version; v++ {
		if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", v); err != nil {
			t.Fatalf("failed to stamp schema version %d: %v", v, err)
		}
	}
	for _, stmt := range inserts {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("failed to seed legacy data: %v", err)
		}
	}
}

func TestMigrateFromLegacySchema(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "library.sqlite3")

	// Generation-1 database: full free-text rows plus JSON tag arrays
	seedLegacyDatabase(t, dbPath, 1, []string{
		`INSERT INTO tracks (id, upload_date, yt_title, yt_channel, track_title, track_artist, track_origin, tags)
		 VALUES ('aaa11111111', '20210401', 'Raw Title A', 'Channel A', 'Title A', 'Artist A', 'Game A', '["jazz","battle"]')`,
		`INSERT INTO tracks (id, upload_date, yt_title, yt_channel, track_title, track_artist, track_origin, tags)
		 VALUES ('bbb22222222', '20220515', 'Raw Title B', 'Channel B', 'Title B', 'No artist provided', 'No origin provided', '[]')`,
	})

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("migration from legacy schema failed: %v", err)
	}
	defer store.Close()

	// Track data must survive the v2 normalize / v3 denormalize round trip
	track, err := store.GetTrack("aaa11111111")
	if err != nil {
		t.Fatalf("failed to get migrated track: %v", err)
	}
	if track == nil {
		t.Fatal("expected migrated track, got nil")
	}
	if track.Artist != "Artist A" {
		t.Errorf("expected artist 'Artist A', got %q", track.Artist)
	}
	if track.Origin != "Game A" {
		t.Errorf("expected origin 'Game A', got %q", track.Origin)
	}

	// Sentinel values must survive unchanged
	track, err = store.GetTrack("bbb22222222")
	if err != nil {
		t.Fatalf("failed to get migrated track: %v", err)
	}
	if track.Artist != DefaultArtist {
		t.Errorf("expected sentinel artist, got %q", track.Artist)
	}

	// JSON tag arrays must land in the join table
	tags, err := store.TrackTags("aaa11111111")
	if err != nil {
		t.Fatalf("failed to get migrated tags: %v", err)
	}
	if len(tags) != 2 || tags[0] != "battle" || tags[1] != "jazz" {
		t.Errorf("expected tags [battle jazz], got %v", tags)
	}

	tags, err = store.TrackTags("bbb22222222")
	if err != nil {
		t.Fatalf("failed to get migrated tags: %v", err)
	}
	if len(tags) != 0 {
		t.Errorf("expected no tags, got %v", tags)
	}
}

func TestTagNormalizationIsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "library.sqlite3")

	db, err := sql.Open("sqlite", "file:"+dbPath)
	if err != nil {
		t.Fatalf("failed to open raw database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(schemaV1); err != nil {
		t.Fatalf("failed to create legacy schema: %v", err)
	}
	if _, err := db.Exec(schemaV4TagTables); err != nil {
		t.Fatalf("failed to create tag tables: %v", err)
	}
	_, err = db.Exec(`INSERT INTO tracks (id, upload_date, yt_title, yt_channel, track_title, track_artist, track_origin, tags)
		 VALUES ('ccc33333333', '20230101', 'Raw', 'Chan', 'Title C', 'Artist C', 'Game C', '["chill","jazz"]')`)
	if err != nil {
		t.Fatalf("failed to seed legacy data: %v", err)
	}

	// Run the normalization twice over the same legacy data
	for i := 0; i < 2; i++ {
		tx, err := db.Begin()
		if err != nil {
			t.Fatalf("failed to begin transaction: %v", err)
		}
		if err := normalizeLegacyTags(tx); err != nil {
			t.Fatalf("normalization run %d failed: %v", i+1, err)
		}
		if err := tx.Commit(); err != nil {
			t.Fatalf("failed to commit run %d: %v", i+1, err)
		}
	}

	var tagCount, assocCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM tags").Scan(&tagCount); err != nil {
		t.Fatalf("failed to count tags: %v", err)
	}
	if err := db.QueryRow("SELECT COUNT(*) FROM track_tags").Scan(&assocCount); err != nil {
		t.Fatalf("failed to count associations: %v", err)
	}

	if tagCount != 2 {
		t.Errorf("expected 2 tag rows after double run, got %d", tagCount)
	}
	if assocCount != 2 {
		t.Errorf("expected 2 associations after double run, got %d", assocCount)
	}
}

func TestMigrateRejectsMalformedTags(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "library.sqlite3")

	seedLegacyDatabase(t, dbPath, 1, []string{
		`INSERT INTO tracks (id, tags) VALUES ('ddd44444444', 'not-json')`,
	})

	_, err := Open(dbPath)
	if err == nil {
		t.Fatal("expected migration to fail on malformed tags value")
	}
}
