package library

import (
	"database/sql"
	"fmt"
)

// Track is one catalog entry, keyed by its source video ID
type Track struct {
	ID         string
	UploadDate string
	YTTitle    string
	YTChannel  string
	Title      string
	Artist     string
	Origin     string
}

// UpsertTrack inserts or updates a track row. Empty artist/origin values fall
// back to the sentinel defaults so every track stays resolvable.
func (s *Store) UpsertTrack(t *Track) error {
	if t.ID == "" {
		return fmt.Errorf("track ID is required")
	}
	if t.Artist == "" {
		t.Artist = DefaultArtist
	}
	if t.Origin == "" {
		t.Origin = DefaultOrigin
	}

	_, err := s.db.Exec(`
		INSERT INTO tracks (id, upload_date, yt_title, yt_channel, track_title, track_artist, track_origin)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			upload_date = excluded.upload_date,
			yt_title = excluded.yt_title,
			yt_channel = excluded.yt_channel,
			track_title = excluded.track_title,
			track_artist = excluded.track_artist,
			track_origin = excluded.track_origin
		`, t.ID, t.UploadDate, t.YTTitle, t.YTChannel, t.Title, t.Artist, t.Origin)

	if err != nil {
		return fmt.Errorf("failed to upsert track: %w", err)
	}

	return nil
}

// GetTrack retrieves a track by ID, or nil if it is not cataloged
func (s *Store) GetTrack(id string) (*Track, error) {
	t := &Track{}
	err := s.db.QueryRow(`
		SELECT id, upload_date, yt_title, yt_channel, track_title, track_artist, track_origin
		FROM tracks WHERE id = ?
	`, id).Scan(
		&t.ID, &t.UploadDate, &t.YTTitle, &t.YTChannel,
		&t.Title, &t.Artist, &t.Origin,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get track: %w", err)
	}

	return t, nil
}

// TrackIDs returns every cataloged track ID
func (s *Store) TrackIDs() ([]string, error) {
	rows, err := s.db.Query("SELECT id FROM tracks ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query track IDs: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan track ID: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// CountTracks returns the number of cataloged tracks
func (s *Store) CountTracks() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM tracks").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count tracks: %w", err)
	}
	return count, nil
}

// DeleteTrack removes a track row. Tag associations and aliases cascade with
// it; unrelated tracks are untouched.
func (s *Store) DeleteTrack(id string) error {
	result, err := s.db.Exec("DELETE FROM tracks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete track: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return ErrTrackNotFound
	}

	return nil
}

// SetTitle updates a track's user-assigned title
func (s *Store) SetTitle(id, title string) error {
	return s.updateTrackField(id, "track_title", title)
}

// SetArtist updates a track's artist. An empty value resets it to the
// sentinel default.
func (s *Store) SetArtist(id, artist string) error {
	if artist == "" {
		artist = DefaultArtist
	}
	return s.updateTrackField(id, "track_artist", artist)
}

// SetOrigin updates a track's origin. An empty value resets it to the
// sentinel default.
func (s *Store) SetOrigin(id, origin string) error {
	if origin == "" {
		origin = DefaultOrigin
	}
	return s.updateTrackField(id, "track_origin", origin)
}

func (s *Store) updateTrackField(id, column, value string) error {
	// Column names come from the Set* wrappers above, never from input
	result, err := s.db.Exec(
		fmt.Sprintf("UPDATE tracks SET %s = ? WHERE id = ?", column),
		value, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", column, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return ErrTrackNotFound
	}

	return nil
}
