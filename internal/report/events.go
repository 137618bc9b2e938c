package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// EventType represents the type of event
type EventType string

const (
	EventFetch    EventType = "fetch"
	EventSkip     EventType = "skip"
	EventDownload EventType = "download"
	EventImport   EventType = "import"
	EventTag      EventType = "tag"
	EventAlias    EventType = "alias"
	EventRemove   EventType = "remove"
	EventVerify   EventType = "verify"
	EventError    EventType = "error"
)

// EventLevel represents the severity level
type EventLevel string

const (
	LevelDebug   EventLevel = "debug"
	LevelInfo    EventLevel = "info"
	LevelWarning EventLevel = "warning"
	LevelError   EventLevel = "error"
)

// levelPriority maps event levels to numeric priorities for comparison
var levelPriority = map[EventLevel]int{
	LevelDebug:   0,
	LevelInfo:    1,
	LevelWarning: 2,
	LevelError:   3,
}

// Event represents a single catalog event
type Event struct {
	Timestamp time.Time         `json:"ts"`
	Level     EventLevel        `json:"level"`
	Event     EventType         `json:"event"`
	TrackID   string            `json:"track_id,omitempty"`
	Path      string            `json:"path,omitempty"`
	Action    string            `json:"action,omitempty"`
	Reason    string            `json:"reason,omitempty"`
	Duration  int64             `json:"duration_ms,omitempty"` // in milliseconds
	Error     string            `json:"error,omitempty"`
	Extra     map[string]string `json:"extra,omitempty"`
}

// EventLogger writes events to a JSONL file
type EventLogger struct {
	file     *os.File
	encoder  *json.Encoder
	mu       sync.Mutex
	path     string
	minLevel EventLevel
}

// NewEventLogger creates a new event logger with a minimum log level
// minLevel determines which events are written (e.g., LevelInfo skips LevelDebug)
func NewEventLogger(outputDir string, minLevel EventLevel) (*EventLogger, error) {
	// Create output directory if it doesn't exist
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	// Generate filename with timestamp
	timestamp := time.Now().Format("20060102-150405")
	filename := fmt.Sprintf("events-%s.jsonl", timestamp)
	path := filepath.Join(outputDir, filename)

	// Open file for writing
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create event log: %w", err)
	}

	return &EventLogger{
		file:     file,
		encoder:  json.NewEncoder(file),
		path:     path,
		minLevel: minLevel,
	}, nil
}

// Log writes an event to the JSONL file
func (l *EventLogger) Log(event *Event) error {
	if l == nil || l.file == nil {
		return nil // Silently ignore if logger not initialized
	}

	// Filter by minimum level
	if levelPriority[event.Level] < levelPriority[l.minLevel] {
		return nil // Skip events below minimum level
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	if err := l.encoder.Encode(event); err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	return nil
}

// LogFetch logs one item of a fetch pass
func (l *EventLogger) LogFetch(trackID, path string, duration time.Duration, err error) error {
	level := LevelInfo
	errMsg := ""
	if err != nil {
		level = LevelError
		errMsg = err.Error()
	}

	return l.Log(&Event{
		Level:    level,
		Event:    EventFetch,
		TrackID:  trackID,
		Path:     path,
		Duration: duration.Milliseconds(),
		Error:    errMsg,
	})
}

// LogSkip logs an item skipped because its file already exists
func (l *EventLogger) LogSkip(trackID, path string) error {
	return l.Log(&Event{
		Level:   LevelDebug,
		Event:   EventSkip,
		TrackID: trackID,
		Path:    path,
		Reason:  "file exists",
	})
}

// LogDownload logs a single-track download and catalog insert
func (l *EventLogger) LogDownload(trackID, path string, err error) error {
	level := LevelInfo
	errMsg := ""
	if err != nil {
		level = LevelError
		errMsg = err.Error()
	}

	return l.Log(&Event{
		Level:   level,
		Event:   EventDownload,
		TrackID: trackID,
		Path:    path,
		Error:   errMsg,
	})
}

// LogImport logs one record of a batch import
func (l *EventLogger) LogImport(trackID string, err error) error {
	level := LevelInfo
	errMsg := ""
	if err != nil {
		level = LevelWarning
		errMsg = err.Error()
	}

	return l.Log(&Event{
		Level:   level,
		Event:   EventImport,
		TrackID: trackID,
		Error:   errMsg,
	})
}

// LogTag logs a tag change on a track
func (l *EventLogger) LogTag(trackID, action, label string) error {
	return l.Log(&Event{
		Level:   LevelInfo,
		Event:   EventTag,
		TrackID: trackID,
		Action:  action,
		Extra: map[string]string{
			"tag": label,
		},
	})
}

// LogAlias logs an alias change
func (l *EventLogger) LogAlias(trackID, action, alias string) error {
	return l.Log(&Event{
		Level:   LevelInfo,
		Event:   EventAlias,
		TrackID: trackID,
		Action:  action,
		Extra: map[string]string{
			"alias": alias,
		},
	})
}

// LogRemove logs a track removal
func (l *EventLogger) LogRemove(trackID string) error {
	return l.Log(&Event{
		Level:   LevelInfo,
		Event:   EventRemove,
		TrackID: trackID,
	})
}

// LogVerify logs an audit finding for a track's audio file
func (l *EventLogger) LogVerify(trackID, path, reason string) error {
	return l.Log(&Event{
		Level:   LevelWarning,
		Event:   EventVerify,
		TrackID: trackID,
		Path:    path,
		Reason:  reason,
	})
}

// LogError logs an error event
func (l *EventLogger) LogError(event EventType, trackID string, err error) error {
	return l.Log(&Event{
		Level:   LevelError,
		Event:   event,
		TrackID: trackID,
		Error:   err.Error(),
	})
}

// Close closes the event log file
func (l *EventLogger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	return l.file.Close()
}

// Path returns the path to the event log file
func (l *EventLogger) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// NullLogger returns a no-op event logger
func NullLogger() *EventLogger {
	return nil
}
