package report

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestNewEventLogger(t *testing.T) {
	tmpDir := t.TempDir()

	logger, err := NewEventLogger(tmpDir, LevelDebug)
	if err != nil {
		t.Fatalf("NewEventLogger failed: %v", err)
	}
	defer logger.Close()

	if logger.path == "" {
		t.Error("EventLogger path is empty")
	}

	// Verify file exists
	if _, err := os.Stat(logger.path); os.IsNotExist(err) {
		t.Errorf("Event log file was not created at %s", logger.path)
	}

	// Verify filename format
	filename := filepath.Base(logger.path)
	if len(filename) < len("events-20060102-150405.jsonl") {
		t.Errorf("Event log filename format incorrect: %s", filename)
	}
}

func TestEventLogger_Log(t *testing.T) {
	tmpDir := t.TempDir()
	logger, err := NewEventLogger(tmpDir, LevelDebug)
	if err != nil {
		t.Fatalf("NewEventLogger failed: %v", err)
	}
	defer logger.Close()

	event := &Event{
		Timestamp: time.Now(),
		Level:     LevelInfo,
		Event:     EventFetch,
		TrackID:   "dQw4w9WgXcQ",
		Path:      "/audio/dQw4w9WgXcQ.mp3",
	}

	if err := logger.Log(event); err != nil {
		t.Fatalf("Log failed: %v", err)
	}

	// Verify event was written
	logger.Close()
	content, err := os.ReadFile(logger.path)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}

	if len(content) == 0 {
		t.Error("Log file is empty")
	}

	// Verify JSONL format
	var decoded Event
	if err := json.Unmarshal(content, &decoded); err != nil {
		t.Fatalf("Failed to decode JSONL: %v", err)
	}

	if decoded.TrackID != "dQw4w9WgXcQ" {
		t.Errorf("Expected track_id 'dQw4w9WgXcQ', got '%s'", decoded.TrackID)
	}
	if decoded.Path != "/audio/dQw4w9WgXcQ.mp3" {
		t.Errorf("Expected path '/audio/dQw4w9WgXcQ.mp3', got '%s'", decoded.Path)
	}
}

func TestEventLogger_MultipleEvents(t *testing.T) {
	tmpDir := t.TempDir()
	logger, err := NewEventLogger(tmpDir, LevelDebug)
	if err != nil {
		t.Fatalf("NewEventLogger failed: %v", err)
	}
	defer logger.Close()

	events := []*Event{
		{Level: LevelInfo, Event: EventFetch, TrackID: "aaa11111111", Path: "/audio/aaa11111111.mp3"},
		{Level: LevelDebug, Event: EventSkip, TrackID: "bbb22222222"},
		{Level: LevelWarning, Event: EventVerify, TrackID: "ccc33333333", Reason: "missing file"},
		{Level: LevelError, Event: EventError, TrackID: "ddd44444444", Error: "test error"},
	}

	for _, event := range events {
		if err := logger.Log(event); err != nil {
			t.Fatalf("Log failed: %v", err)
		}
	}

	logger.Close()

	// Read and verify all events
	file, err := os.Open(logger.path)
	if err != nil {
		t.Fatalf("Failed to open log file: %v", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineCount := 0
	for scanner.Scan() {
		lineCount++
		var decoded Event
		if err := json.Unmarshal(scanner.Bytes(), &decoded); err != nil {
			t.Fatalf("Failed to decode line %d: %v", lineCount, err)
		}

		// Verify timestamp was set
		if decoded.Timestamp.IsZero() {
			t.Errorf("Line %d: timestamp not set", lineCount)
		}
	}

	if lineCount != len(events) {
		t.Errorf("Expected %d events, got %d", len(events), lineCount)
	}
}

func TestEventLogger_ConcurrentWrites(t *testing.T) {
	tmpDir := t.TempDir()
	logger, err := NewEventLogger(tmpDir, LevelDebug)
	if err != nil {
		t.Fatalf("NewEventLogger failed: %v", err)
	}
	defer logger.Close()

	const numGoroutines = 10
	const eventsPerGoroutine = 20

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < eventsPerGoroutine; j++ {
				event := &Event{
					Level:   LevelInfo,
					Event:   EventFetch,
					TrackID: "concurrent-test",
					Extra: map[string]string{
						"goroutine": string(rune(id)),
						"sequence":  string(rune(j)),
					},
				}
				if err := logger.Log(event); err != nil {
					t.Errorf("Concurrent log failed: %v", err)
				}
			}
		}(i)
	}

	wg.Wait()
	logger.Close()

	// Verify all events were written
	file, err := os.Open(logger.path)
	if err != nil {
		t.Fatalf("Failed to open log file: %v", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineCount := 0
	for scanner.Scan() {
		lineCount++
		var decoded Event
		if err := json.Unmarshal(scanner.Bytes(), &decoded); err != nil {
			t.Fatalf("Failed to decode line %d: %v", lineCount, err)
		}
	}

	expected := numGoroutines * eventsPerGoroutine
	if lineCount != expected {
		t.Errorf("Expected %d events, got %d", expected, lineCount)
	}
}

func TestEventLogger_LogFetch(t *testing.T) {
	tmpDir := t.TempDir()
	logger, err := NewEventLogger(tmpDir, LevelDebug)
	if err != nil {
		t.Fatalf("NewEventLogger failed: %v", err)
	}
	defer logger.Close()

	duration := 250 * time.Millisecond
	err = logger.LogFetch("dQw4w9WgXcQ", "/audio/dQw4w9WgXcQ.mp3", duration, nil)
	if err != nil {
		t.Fatalf("LogFetch failed: %v", err)
	}

	logger.Close()

	// Verify event
	content, _ := os.ReadFile(logger.path)
	var event Event
	json.Unmarshal(content, &event)

	if event.Event != EventFetch {
		t.Errorf("Expected event type 'fetch', got '%s'", event.Event)
	}
	if event.TrackID != "dQw4w9WgXcQ" {
		t.Errorf("Expected track_id 'dQw4w9WgXcQ', got '%s'", event.TrackID)
	}
	if event.Duration != duration.Milliseconds() {
		t.Errorf("Expected duration %d ms, got %d ms", duration.Milliseconds(), event.Duration)
	}
}

func TestEventLogger_LogFetchError(t *testing.T) {
	tmpDir := t.TempDir()
	logger, err := NewEventLogger(tmpDir, LevelDebug)
	if err != nil {
		t.Fatalf("NewEventLogger failed: %v", err)
	}
	defer logger.Close()

	err = logger.LogFetch("dQw4w9WgXcQ", "", 0, os.ErrNotExist)
	if err != nil {
		t.Fatalf("LogFetch failed: %v", err)
	}

	logger.Close()

	// Verify event
	content, _ := os.ReadFile(logger.path)
	var event Event
	json.Unmarshal(content, &event)

	if event.Level != LevelError {
		t.Errorf("Expected level 'error', got '%s'", event.Level)
	}
	if event.Error == "" {
		t.Error("Expected error message, got empty string")
	}
}

func TestEventLogger_LogTag(t *testing.T) {
	tmpDir := t.TempDir()
	logger, err := NewEventLogger(tmpDir, LevelDebug)
	if err != nil {
		t.Fatalf("NewEventLogger failed: %v", err)
	}
	defer logger.Close()

	err = logger.LogTag("dQw4w9WgXcQ", "add", "jazz")
	if err != nil {
		t.Fatalf("LogTag failed: %v", err)
	}

	logger.Close()

	// Verify event
	content, _ := os.ReadFile(logger.path)
	var event Event
	json.Unmarshal(content, &event)

	if event.Event != EventTag {
		t.Errorf("Expected event type 'tag', got '%s'", event.Event)
	}
	if event.Action != "add" {
		t.Errorf("Expected action 'add', got '%s'", event.Action)
	}
	if event.Extra["tag"] != "jazz" {
		t.Errorf("Expected tag 'jazz', got '%s'", event.Extra["tag"])
	}
}

func TestEventLogger_NullLogger(t *testing.T) {
	logger := NullLogger()

	// Should not panic
	err := logger.Log(&Event{Level: LevelInfo, Event: EventFetch})
	if err != nil {
		t.Errorf("NullLogger.Log should not return error, got: %v", err)
	}

	err = logger.LogSkip("dQw4w9WgXcQ", "/audio/dQw4w9WgXcQ.mp3")
	if err != nil {
		t.Errorf("NullLogger.LogSkip should not return error, got: %v", err)
	}

	err = logger.Close()
	if err != nil {
		t.Errorf("NullLogger.Close should not return error, got: %v", err)
	}

	path := logger.Path()
	if path != "" {
		t.Errorf("NullLogger.Path should return empty string, got: %s", path)
	}
}

func TestEventLogger_AutoTimestamp(t *testing.T) {
	tmpDir := t.TempDir()
	logger, err := NewEventLogger(tmpDir, LevelDebug)
	if err != nil {
		t.Fatalf("NewEventLogger failed: %v", err)
	}
	defer logger.Close()

	// Log event without setting timestamp
	event := &Event{
		Level: LevelInfo,
		Event: EventFetch,
	}

	if err := logger.Log(event); err != nil {
		t.Fatalf("Log failed: %v", err)
	}

	logger.Close()

	// Verify timestamp was auto-set
	content, _ := os.ReadFile(logger.path)
	var decoded Event
	json.Unmarshal(content, &decoded)

	if decoded.Timestamp.IsZero() {
		t.Error("Expected timestamp to be auto-set, but it's zero")
	}

	// Timestamp should be recent
	if time.Since(decoded.Timestamp) > 5*time.Second {
		t.Errorf("Timestamp is too old: %v", decoded.Timestamp)
	}
}

func TestEventLogger_LogLevelFiltering(t *testing.T) {
	testCases := []struct {
		name          string
		minLevel      EventLevel
		events        []Event
		expectedCount int
	}{
		{
			name:     "LevelDebug logs all",
			minLevel: LevelDebug,
			events: []Event{
				{Level: LevelDebug, Event: EventSkip},
				{Level: LevelInfo, Event: EventFetch},
				{Level: LevelWarning, Event: EventVerify},
				{Level: LevelError, Event: EventError},
			},
			expectedCount: 4,
		},
		{
			name:     "LevelInfo skips debug",
			minLevel: LevelInfo,
			events: []Event{
				{Level: LevelDebug, Event: EventSkip},
				{Level: LevelInfo, Event: EventFetch},
				{Level: LevelWarning, Event: EventVerify},
				{Level: LevelError, Event: EventError},
			},
			expectedCount: 3,
		},
		{
			name:     "LevelWarning skips debug and info",
			minLevel: LevelWarning,
			events: []Event{
				{Level: LevelDebug, Event: EventSkip},
				{Level: LevelInfo, Event: EventFetch},
				{Level: LevelWarning, Event: EventVerify},
				{Level: LevelError, Event: EventError},
			},
			expectedCount: 2,
		},
		{
			name:     "LevelError only logs errors",
			minLevel: LevelError,
			events: []Event{
				{Level: LevelDebug, Event: EventSkip},
				{Level: LevelInfo, Event: EventFetch},
				{Level: LevelWarning, Event: EventVerify},
				{Level: LevelError, Event: EventError},
			},
			expectedCount: 1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			logger, err := NewEventLogger(tmpDir, tc.minLevel)
			if err != nil {
				t.Fatalf("NewEventLogger failed: %v", err)
			}
			defer logger.Close()

			// Log all events
			for _, e := range tc.events {
				if err := logger.Log(&e); err != nil {
					t.Fatalf("Log failed: %v", err)
				}
			}

			logger.Close()

			// Count lines in log file
			file, err := os.Open(logger.path)
			if err != nil {
				t.Fatalf("Failed to open log file: %v", err)
			}
			defer file.Close()

			scanner := bufio.NewScanner(file)
			lineCount := 0
			for scanner.Scan() {
				lineCount++
			}

			if lineCount != tc.expectedCount {
				t.Errorf("Expected %d events logged, got %d", tc.expectedCount, lineCount)
			}
		})
	}
}
