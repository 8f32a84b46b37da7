// Package healing records fallback-triggered resolutions in an append-only
// event log and answers statistics queries over it.
package healing

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/devicelab-dev/appium-healer/pkg/locator"
)

// Event is one logged healing occurrence: the element was found via a
// non-preferred strategy after the preferred one failed. Events are
// append-only facts used for offline analysis, never for resolution
// decisions.
type Event struct {
	Timestamp time.Time
	ElementID string
	Original  locator.Strategy // the originally-declared primary strategy
	Winning   locator.Strategy // the strategy that located the element
	Attempts  int              // 1-based position among alternatives tried
}

// Log appends healing events to a delimited text file, one line per event:
//
//	timestamp,originalLocatorText,successfulLocatorText,attemptNumber
//
// Safe for concurrent use; appends are serialized.
type Log struct {
	mu   sync.Mutex
	path string
}

// NewLog creates an event log writing to path. The file and its parent
// directory are created on first append.
func NewLog(path string) *Log {
	return &Log{path: path}
}

// Path returns the log file path.
func (l *Log) Path() string {
	return l.path
}

// Append writes one event line. Events are never mutated or deleted.
func (l *Log) Append(ev Event) error {
	if l.path == "" {
		return nil
	}

	ts := ev.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	line := fmt.Sprintf("%s,%s,%s,%d\n",
		ts.Format(time.RFC3339), ev.Original, ev.Winning, ev.Attempts)

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("failed to create event log directory: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) //#nosec G304 -- event log under the configured dir
	if err != nil {
		return fmt.Errorf("failed to open event log: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("failed to append healing event: %w", err)
	}
	return nil
}
