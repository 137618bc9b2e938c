package library

import (
	"database/sql"
	"fmt"
)

// AddTag attaches a tag to a track. The tag row is created on demand;
// re-adding an existing tag or association is a no-op.
func (s *Store) AddTag(trackID, label string) error {
	if label == "" {
		return fmt.Errorf("tag label is required")
	}

	if err := s.requireTrack(trackID); err != nil {
		return err
	}

	tagID, err := s.getOrCreateTagID(label)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(
		"INSERT OR IGNORE INTO track_tags (track_id, tag_id) VALUES (?, ?)",
		trackID, tagID,
	)
	if err != nil {
		return fmt.Errorf("failed to tag track: %w", err)
	}

	return nil
}

// ResetTags removes all tag associations from a track. The tag rows
// themselves stay for other tracks.
func (s *Store) ResetTags(trackID string) error {
	if err := s.requireTrack(trackID); err != nil {
		return err
	}

	_, err := s.db.Exec("DELETE FROM track_tags WHERE track_id = ?", trackID)
	if err != nil {
		return fmt.Errorf("failed to reset tags: %w", err)
	}

	return nil
}

// TrackTags returns a track's tags in sorted order
func (s *Store) TrackTags(trackID string) ([]string, error) {
	rows, err := s.db.Query(`
		SELECT tags.tag FROM track_tags
		JOIN tags ON track_tags.tag_id = tags.id
		WHERE track_tags.track_id = ?
		ORDER BY tags.tag
	`, trackID)
	if err != nil {
		return nil, fmt.Errorf("failed to query track tags: %w", err)
	}
	defer rows.Close()

	var labels []string
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		labels = append(labels, label)
	}

	return labels, rows.Err()
}

// AllTags returns every known tag label in sorted order
func (s *Store) AllTags() ([]string, error) {
	rows, err := s.db.Query("SELECT tag FROM tags ORDER BY tag")
	if err != nil {
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}
	defer rows.Close()

	var labels []string
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		labels = append(labels, label)
	}

	return labels, rows.Err()
}

// getOrCreateTagID looks up a tag's row ID, inserting it if absent
func (s *Store) getOrCreateTagID(label string) (int64, error) {
	var id int64
	err := s.db.QueryRow("SELECT id FROM tags WHERE tag = ?", label).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, fmt.Errorf("failed to look up tag: %w", err)
	}

	if _, err := s.db.Exec("INSERT OR IGNORE INTO tags (tag) VALUES (?)", label); err != nil {
		return 0, fmt.Errorf("failed to insert tag: %w", err)
	}

	err = s.db.QueryRow("SELECT id FROM tags WHERE tag = ?", label).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch tag ID: %w", err)
	}

	return id, nil
}

// requireTrack returns ErrTrackNotFound when the track is not cataloged
func (s *Store) requireTrack(trackID string) error {
	var exists int
	err := s.db.QueryRow("SELECT COUNT(*) FROM tracks WHERE id = ?", trackID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check track: %w", err)
	}
	if exists == 0 {
		return ErrTrackNotFound
	}
	return nil
}
