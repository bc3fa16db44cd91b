package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// logSuffix marks run logs inside a session directory.
const logSuffix = "-session.jsonl"

// Logger receives run events.
type Logger interface {
	Log(event Event) error
	Close() error
}

// FileLogger appends events to a file, one JSON object per line.
type FileLogger struct {
	mu    sync.Mutex
	file  *os.File
	enc   *json.Encoder
	path  string
	count int
}

// Create opens path for appending, creating parent directories as needed.
func Create(path string) (*FileLogger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating session log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening session log: %w", err)
	}
	return &FileLogger{file: f, enc: json.NewEncoder(f), path: path}, nil
}

// Log writes event as one line. A zero timestamp is set to now.
func (l *FileLogger) Log(event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.enc.Encode(event); err != nil {
		return fmt.Errorf("writing %s event: %w", event.Type, err)
	}
	l.count++
	return nil
}

// Close closes the underlying file.
func (l *FileLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.file.Close()
}

// Path is where the events are written.
func (l *FileLogger) Path() string {
	return l.path
}

// Count is the number of events written so far.
func (l *FileLogger) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count
}

// NopLogger discards all events.
type NopLogger struct{}

func (NopLogger) Log(Event) error { return nil }

func (NopLogger) Close() error { return nil }

// DefaultLogPath returns a timestamped session log path inside dir.
func DefaultLogPath(dir string) string {
	return logPath(dir, time.Now())
}

func logPath(dir string, now time.Time) string {
	return filepath.Join(dir, now.UTC().Format("20060102T150405Z")+logSuffix)
}

// Open picks the logger for a --session-log value: nothing for "", a new
// timestamped file for an existing directory or a path ending in a
// separator, and the named file otherwise.
func Open(path string) (Logger, error) {
	if path == "" {
		return NopLogger{}, nil
	}
	if strings.HasSuffix(path, string(filepath.Separator)) || strings.HasSuffix(path, "/") {
		return Create(DefaultLogPath(path))
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return Create(DefaultLogPath(path))
	}
	return Create(path)
}
