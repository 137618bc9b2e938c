package library

// Schema generation 1 - the original shape: one row per track with free-text
// artist/origin values and the tag list stored as a JSON array column.
const schemaV1 = `
-- Schema version tracking
CREATE TABLE IF NOT EXISTS schema_version (
  version INTEGER PRIMARY KEY,
  applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- One row per track, keyed by the source video ID
CREATE TABLE IF NOT EXISTS tracks (
  id TEXT PRIMARY KEY,
  upload_date TEXT NOT NULL DEFAULT '',
  yt_title TEXT NOT NULL DEFAULT '',
  yt_channel TEXT NOT NULL DEFAULT '',
  track_title TEXT NOT NULL DEFAULT '',
  track_artist TEXT NOT NULL DEFAULT 'No artist provided',
  track_origin TEXT NOT NULL DEFAULT 'No origin provided',
  tags TEXT NOT NULL DEFAULT '[]'
);
`

// Schema generation 2 - artist/origin normalized into lookup tables.
// Sentinel rows are inserted idempotently so tracks without a known value
// always have a valid foreign key target.
const schemaV2Lookups = `
CREATE TABLE IF NOT EXISTS artists (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  artist TEXT UNIQUE NOT NULL
);

CREATE TABLE IF NOT EXISTS origins (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  origin TEXT UNIQUE NOT NULL
);

INSERT OR IGNORE INTO artists (artist) VALUES ('No artist provided');
INSERT OR IGNORE INTO origins (origin) VALUES ('No origin provided');
`

// Rebuild of the tracks table against the lookup tables. The data-preserving
// copy happens before the old table is dropped, inside the same transaction.
const schemaV2Rebuild = `
INSERT OR IGNORE INTO artists (artist) SELECT DISTINCT track_artist FROM tracks;
INSERT OR IGNORE INTO origins (origin) SELECT DISTINCT track_origin FROM tracks;

CREATE TABLE tracks_migrate (
  id TEXT PRIMARY KEY,
  upload_date TEXT NOT NULL DEFAULT '',
  yt_title TEXT NOT NULL DEFAULT '',
  yt_channel TEXT NOT NULL DEFAULT '',
  track_title TEXT NOT NULL DEFAULT '',
  artist_id INTEGER NOT NULL REFERENCES artists(id),
  origin_id INTEGER NOT NULL REFERENCES origins(id),
  tags TEXT NOT NULL DEFAULT '[]'
);

INSERT INTO tracks_migrate (id, upload_date, yt_title, yt_channel, track_title, artist_id, origin_id, tags)
SELECT t.id, t.upload_date, t.yt_title, t.yt_channel, t.track_title, a.id, o.id, t.tags
FROM tracks t
JOIN artists a ON a.artist = t.track_artist
JOIN origins o ON o.origin = t.track_origin;

DROP TABLE tracks;
ALTER TABLE tracks_migrate RENAME TO tracks;
`

// Schema generation 3 - artist/origin denormalized back to free text on the
// track row. The lookup tables are dropped only after their values have been
// copied back.
const schemaV3Rebuild = `
CREATE TABLE tracks_migrate (
  id TEXT PRIMARY KEY,
  upload_date TEXT NOT NULL DEFAULT '',
  yt_title TEXT NOT NULL DEFAULT '',
  yt_channel TEXT NOT NULL DEFAULT '',
  track_title TEXT NOT NULL DEFAULT '',
  track_artist TEXT NOT NULL DEFAULT 'No artist provided',
  track_origin TEXT NOT NULL DEFAULT 'No origin provided',
  tags TEXT NOT NULL DEFAULT '[]'
);

INSERT INTO tracks_migrate (id, upload_date, yt_title, yt_channel, track_title, track_artist, track_origin, tags)
SELECT t.id, t.upload_date, t.yt_title, t.yt_channel, t.track_title,
       COALESCE(a.artist, 'No artist provided'),
       COALESCE(o.origin, 'No origin provided'),
       t.tags
FROM tracks t
LEFT JOIN artists a ON t.artist_id = a.id
LEFT JOIN origins o ON t.origin_id = o.id;

DROP TABLE tracks;
ALTER TABLE tracks_migrate RENAME TO tracks;
DROP TABLE artists;
DROP TABLE origins;
`

// Schema generation 4 - tags move from the JSON array column to a unique tag
// table plus a join table, and aliases map re-uploads to canonical tracks.
// Child rows cascade when their track is deleted.
const schemaV4TagTables = `
CREATE TABLE IF NOT EXISTS tags (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  tag TEXT UNIQUE NOT NULL
);

CREATE TABLE IF NOT EXISTS track_tags (
  track_id TEXT NOT NULL REFERENCES tracks(id) ON DELETE CASCADE,
  tag_id INTEGER NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
  PRIMARY KEY (track_id, tag_id)
);

CREATE INDEX IF NOT EXISTS idx_track_tags_tag_id ON track_tags(tag_id);

CREATE TABLE IF NOT EXISTS aliases (
  alias TEXT PRIMARY KEY,
  track_id TEXT NOT NULL REFERENCES tracks(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_aliases_track_id ON aliases(track_id);
`

// Drop of the legacy JSON tags column, after its values have been migrated
// into the join table.
const schemaV4DropLegacyTags = `
CREATE TABLE tracks_migrate (
  id TEXT PRIMARY KEY,
  upload_date TEXT NOT NULL DEFAULT '',
  yt_title TEXT NOT NULL DEFAULT '',
  yt_channel TEXT NOT NULL DEFAULT '',
  track_title TEXT NOT NULL DEFAULT '',
  track_artist TEXT NOT NULL DEFAULT 'No artist provided',
  track_origin TEXT NOT NULL DEFAULT 'No origin provided'
);

INSERT INTO tracks_migrate (id, upload_date, yt_title, yt_channel, track_title, track_artist, track_origin)
SELECT id, upload_date, yt_title, yt_channel, track_title, track_artist, track_origin
FROM tracks;

DROP TABLE tracks;
ALTER TABLE tracks_migrate RENAME TO tracks;
`
