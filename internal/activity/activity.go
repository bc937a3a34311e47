// Package activity keeps an append-only JSONL record of calendar mutations.
package activity

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const (
	// FileName is the activity log name inside the board directory.
	FileName   = "activity.jsonl"
	fileMode   = 0o600
	maxEntries = 10000 // oldest entries are dropped beyond this
)

// Entry is one logged mutation.
type Entry struct {
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	TaskID    int       `json:"task_id,omitempty"`
	Actor     string    `json:"actor,omitempty"`
	Detail    string    `json:"detail,omitempty"`
}

// Log appends entries to a JSONL file. A nil *Log discards everything.
type Log struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

// Open returns a Log writing to FileName inside dir.
func Open(dir string) *Log {
	return &Log{path: filepath.Join(dir, FileName), now: time.Now}
}

// Path returns the log file location.
func (l *Log) Path() string {
	return l.path
}

// Append writes e, stamping it when Timestamp is zero.
func (l *Log) Append(e Entry) error {
	if l == nil {
		return nil
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = l.now()
	}

	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshaling log entry: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, fileMode) //nolint:gosec // path from board dir
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	_, werr := f.Write(append(data, '\n'))
	cerr := f.Close()
	if werr != nil {
		return fmt.Errorf("writing log entry: %w", werr)
	}
	if cerr != nil {
		return cerr
	}

	_ = l.truncate() // best-effort
	return nil
}

// Record appends an entry and drops any error: the activity log must never
// fail the mutation it describes.
func (l *Log) Record(action string, taskID int, actor, detail string) {
	_ = l.Append(Entry{Action: action, TaskID: taskID, Actor: actor, Detail: detail})
}

// Read returns all entries, oldest first. A missing log reads as empty.
func (l *Log) Read() ([]Entry, error) {
	f, err := os.Open(l.path) //nolint:gosec // path from board dir
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var e Entry
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			continue
		}
		entries = append(entries, e)
	}
	return entries, scanner.Err()
}

// truncate rewrites the log keeping only the newest maxEntries lines.
// Callers hold l.mu.
func (l *Log) truncate() error {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return err
	}
	lines := strings.SplitAfter(string(data), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) <= maxEntries {
		return nil
	}
	return os.WriteFile(l.path, []byte(strings.Join(lines[len(lines)-maxEntries:], "")), fileMode)
}
