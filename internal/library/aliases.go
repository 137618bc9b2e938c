package library

import (
	"database/sql"
	"fmt"
)

// AddAlias maps an alternate source ID to a canonical track, used to dedupe
// re-uploads of the same content. Re-pointing an existing alias overwrites
// its target.
func (s *Store) AddAlias(alias, trackID string) error {
	if alias == "" {
		return fmt.Errorf("alias is required")
	}
	if alias == trackID {
		return fmt.Errorf("alias %q is the canonical ID itself", alias)
	}

	if err := s.requireTrack(trackID); err != nil {
		return err
	}

	// An alias must not shadow a cataloged track
	existing, err := s.GetTrack(alias)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("alias %q is already a cataloged track", alias)
	}

	_, err = s.db.Exec(
		"INSERT OR REPLACE INTO aliases (alias, track_id) VALUES (?, ?)",
		alias, trackID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert alias: %w", err)
	}

	return nil
}

// ResolveAlias maps a source ID to its canonical track ID. Canonical IDs
// resolve to themselves; unknown IDs return ErrTrackNotFound.
func (s *Store) ResolveAlias(id string) (string, error) {
	track, err := s.GetTrack(id)
	if err != nil {
		return "", err
	}
	if track != nil {
		return track.ID, nil
	}

	var canonical string
	err = s.db.QueryRow("SELECT track_id FROM aliases WHERE alias = ?", id).Scan(&canonical)
	if err == sql.ErrNoRows {
		return "", ErrTrackNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to resolve alias: %w", err)
	}

	return canonical, nil
}

// Aliases returns the alternate IDs mapped to a track
func (s *Store) Aliases(trackID string) ([]string, error) {
	rows, err := s.db.Query(
		"SELECT alias FROM aliases WHERE track_id = ? ORDER BY alias",
		trackID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query aliases: %w", err)
	}
	defer rows.Close()

	var aliases []string
	for rows.Next() {
		var alias string
		if err := rows.Scan(&alias); err != nil {
			return nil, fmt.Errorf("failed to scan alias: %w", err)
		}
		aliases = append(aliases, alias)
	}

	return aliases, rows.Err()
}

// RemoveAlias deletes an alias mapping
func (s *Store) RemoveAlias(alias string) error {
	result, err := s.db.Exec("DELETE FROM aliases WHERE alias = ?", alias)
	if err != nil {
		return fmt.Errorf("failed to remove alias: %w", err)
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
