package repository

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/devicelab-dev/appium-healer/pkg/logger"
)

// Healing history persisted format: one entry per line,
//
//	elementId = bestIndex
//
// Order is not significant on disk; entries are written sorted so repeated
// writes of the same state produce byte-identical output.

// PersistHistory serializes the entire healing history to the history file.
// Idempotent and safe to call repeatedly and concurrently with reads. The
// file is replaced atomically (temp file + rename) so a crashed write never
// leaves a torn snapshot behind.
func (r *Repository) PersistHistory() error {
	if r.historyPath == "" {
		return nil
	}

	history := r.History()

	r.persistMu.Lock()
	defer r.persistMu.Unlock()

	if err := os.MkdirAll(filepath.Dir(r.historyPath), 0o755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	ids := make([]string, 0, len(history))
	for id := range history {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var sb strings.Builder
	for _, id := range ids {
		fmt.Fprintf(&sb, "%s = %d\n", id, history[id])
	}

	tmp := r.historyPath + ".tmp"
	if err := os.WriteFile(tmp, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}
	if err := os.Rename(tmp, r.historyPath); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace history file: %w", err)
	}

	return nil
}

// loadHistory reads the persisted history and applies every record whose
// index is still in range for its descriptor. Called once from LoadAll,
// after the catalog is in place.
func (r *Repository) loadHistory() {
	records, err := ReadHistoryFile(r.historyPath)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Error("failed to load healing history: %v", err)
		}
		return
	}

	applied := 0
	r.mu.Lock()
	for id, best := range records {
		d, ok := r.elements[id]
		if !ok || best < 0 || best >= len(d.strategies) {
			logger.Warn("dropping stale healing record for element %s (index %d)", id, best)
			continue
		}
		r.elements[id] = &descriptor{strategies: d.strategies, best: best}
		applied++
	}
	r.mu.Unlock()

	logger.Info("loaded healing history for %d elements", applied)
}

// ReadHistoryFile parses a healing history file into its mapping. Malformed
// lines are skipped.
func ReadHistoryFile(path string) (map[string]int, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- history file under the configured dir
	if err != nil {
		return nil, err
	}

	records := make(map[string]int)
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		id := strings.TrimSpace(parts[0])
		best, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			logger.Warn("invalid healing index for element %s: %q", id, strings.TrimSpace(parts[1]))
			continue
		}
		records[id] = best
	}
	return records, nil
}
