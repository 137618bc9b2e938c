package library

import (
	"fmt"
	"strings"
)

// Entry is one row of the full library listing
type Entry struct {
	ID     string
	Title  string
	Artist string
	Origin string
	Tags   []string
}

// Pair is one row of the two-column library views
type Pair struct {
	Key   string
	Title string
}

// ListLibrary returns the full library sorted by track title, with each
// track's tags collected into a single slice
func (s *Store) ListLibrary() ([]*Entry, error) {
	rows, err := s.db.Query(`
		SELECT tracks.id, tracks.track_title, tracks.track_artist, tracks.track_origin,
		       COALESCE(GROUP_CONCAT(tags.tag, ','), '')
		FROM tracks
		LEFT JOIN track_tags ON tracks.id = track_tags.track_id
		LEFT JOIN tags ON track_tags.tag_id = tags.id
		GROUP BY tracks.id, tracks.track_title, tracks.track_artist, tracks.track_origin
		ORDER BY tracks.track_title
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query library: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		e := &Entry{}
		var tags string
		if err := rows.Scan(&e.ID, &e.Title, &e.Artist, &e.Origin, &tags); err != nil {
			return nil, fmt.Errorf("failed to scan library row: %w", err)
		}
		if tags != "" {
			e.Tags = strings.Split(tags, ",")
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// ListTitles returns all track titles in sorted order
func (s *Store) ListTitles() ([]string, error) {
	rows, err := s.db.Query("SELECT track_title FROM tracks ORDER BY track_title")
	if err != nil {
		return nil, fmt.Errorf("failed to query titles: %w", err)
	}
	defer rows.Close()

	var titles []string
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, fmt.Errorf("failed to scan title: %w", err)
		}
		titles = append(titles, title)
	}

	return titles, rows.Err()
}

// ListByArtist returns (artist, title) pairs sorted by artist then title
func (s *Store) ListByArtist() ([]*Pair, error) {
	return s.listPairs(`
		SELECT track_artist, track_title FROM tracks
		ORDER BY track_artist, track_title
	`)
}

// ListByOrigin returns (origin, title) pairs sorted by origin then title
func (s *Store) ListByOrigin() ([]*Pair, error) {
	return s.listPairs(`
		SELECT track_origin, track_title FROM tracks
		ORDER BY track_origin, track_title
	`)
}

// ListByTag returns (tag, title) pairs sorted by tag then title. Untagged
// tracks appear last with an empty tag.
func (s *Store) ListByTag() ([]*Pair, error) {
	return s.listPairs(`
		SELECT COALESCE(tags.tag, ''), tracks.track_title
		FROM tracks
		LEFT JOIN track_tags ON tracks.id = track_tags.track_id
		LEFT JOIN tags ON track_tags.tag_id = tags.id
		ORDER BY
			CASE WHEN tags.tag IS NULL THEN 1 ELSE 0 END,
			tags.tag,
			tracks.track_title
	`)
}

func (s *Store) listPairs(query string) ([]*Pair, error) {
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query library view: %w", err)
	}
	defer rows.Close()

	var pairs []*Pair
	for rows.Next() {
		p := &Pair{}
		if err := rows.Scan(&p.Key, &p.Title); err != nil {
			return nil, fmt.Errorf("failed to scan library view row: %w", err)
		}
		pairs = append(pairs, p)
	}

	return pairs, rows.Err()
}
