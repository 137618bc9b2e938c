package library

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
)

// migration is one forward-only schema step. Each step runs inside a single
// transaction together with its version bump.
type migration struct {
	version int
	name    string
	apply   func(*sql.Tx) error
}

// migrations replays the schema history of the catalog: free-text fields with
// a JSON tags column, normalization of artist/origin into lookup tables,
// denormalization back to text, and finally the tag join table plus aliases.
var migrations = []migration{
	{1, "initial tracks table", applyV1},
	{2, "normalize artist and origin into lookup tables", applyV2},
	{3, "denormalize artist and origin back to text", applyV3},
	{4, "tag join table and aliases", applyV4},
}

func applyV1(tx *sql.Tx) error {
	_, err := tx.Exec(schemaV1)
	return err
}

func applyV2(tx *sql.Tx) error {
	if _, err := tx.Exec(schemaV2Lookups); err != nil {
		return err
	}

	// Skip the rebuild if the tracks table is already keyed by lookup IDs
	normalized, err := columnExists(tx, "tracks", "artist_id")
	if err != nil {
		return err
	}
	if normalized {
		return nil
	}

	_, err = tx.Exec(schemaV2Rebuild)
	return err
}

func applyV3(tx *sql.Tx) error {
	denormalized, err := columnExists(tx, "tracks", "track_artist")
	if err != nil {
		return err
	}
	if denormalized {
		return nil
	}

	_, err = tx.Exec(schemaV3Rebuild)
	return err
}

func applyV4(tx *sql.Tx) error {
	if _, err := tx.Exec(schemaV4TagTables); err != nil {
		return err
	}

	if err := normalizeLegacyTags(tx); err != nil {
		return err
	}

	// Drop the JSON tags column only once its values live in the join table
	legacy, err := columnExists(tx, "tracks", "tags")
	if err != nil {
		return err
	}
	if !legacy {
		return nil
	}

	_, err = tx.Exec(schemaV4DropLegacyTags)
	return err
}

// normalizeLegacyTags copies every label from the legacy JSON tags column
// into the tags/track_tags tables. Inserts are insert-if-absent, so running
// this on already-migrated data never duplicates rows or associations.
func normalizeLegacyTags(tx *sql.Tx) error {
	legacy, err := columnExists(tx, "tracks", "tags")
	if err != nil {
		return err
	}
	if !legacy {
		// Nothing left to migrate
		return nil
	}

	rows, err := tx.Query("SELECT id, tags FROM tracks")
	if err != nil {
		return fmt.Errorf("failed to read legacy tags: %w", err)
	}

	type trackTags struct {
		id  string
		raw string
	}
	var pending []trackTags
	for rows.Next() {
		var t trackTags
		if err := rows.Scan(&t.id, &t.raw); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan legacy tags: %w", err)
		}
		pending = append(pending, t)
	}
	if err := rows.Close(); err != nil {
		return err
	}

	for _, t := range pending {
		if strings.TrimSpace(t.raw) == "" {
			continue
		}

		var labels []string
		if err := json.Unmarshal([]byte(t.raw), &labels); err != nil {
			return fmt.Errorf("track %s: malformed tags value %q: %w", t.id, t.raw, err)
		}

		for _, label := range labels {
			label = strings.TrimSpace(label)
			if label == "" {
				continue
			}

			if _, err := tx.Exec("INSERT OR IGNORE INTO tags (tag) VALUES (?)", label); err != nil {
				return fmt.Errorf("track %s: failed to insert tag %q: %w", t.id, label, err)
			}
			_, err := tx.Exec(`
				INSERT OR IGNORE INTO track_tags (track_id, tag_id)
				SELECT ?, id FROM tags WHERE tag = ?
			`, t.id, label)
			if err != nil {
				return fmt.Errorf("track %s: failed to associate tag %q: %w", t.id, label, err)
			}
		}
	}

	return nil
}

// columnExists reports whether a table has a column with the given name
func columnExists(tx *sql.Tx, table, column string) (bool, error) {
	var count int
	err := tx.QueryRow(
		"SELECT COUNT(*) FROM pragma_table_info(?) WHERE name = ?",
		table, column,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to inspect table %s: %w", table, err)
	}
	return count > 0, nil
}
