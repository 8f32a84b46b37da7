// Package repository stores locator strategies and healing history behind a
// single thread-safe facade shared by all concurrent test executions.
package repository

import (
	"sync"

	"github.com/devicelab-dev/appium-healer/pkg/catalog"
	"github.com/devicelab-dev/appium-healer/pkg/locator"
	"github.com/devicelab-dev/appium-healer/pkg/logger"
)

// descriptor pairs an element's strategy list with its healing record.
// The pair is one immutable unit: every update swaps in a fresh descriptor,
// so a reader holding a snapshot never sees a half-applied change and a
// healing index can never outlive the list it indexes into.
type descriptor struct {
	strategies []locator.Strategy
	best       int // index of last-known-working strategy, -1 when none
}

// Repository composes the strategy catalog store and the healing history
// store. Safe for concurrent use.
type Repository struct {
	mu       sync.RWMutex
	elements map[string]*descriptor

	historyPath string
	persistMu   sync.Mutex // serializes whole-snapshot history writes
}

// New creates an empty repository persisting healing history to historyPath.
func New(historyPath string) *Repository {
	return &Repository{
		elements:    make(map[string]*descriptor),
		historyPath: historyPath,
	}
}

// LoadAll performs one-time initialization: reads every definition source in
// catalogDir, then loads the persisted healing history and reconciles it
// against the loaded descriptors. Parse problems are logged, not fatal; a
// missing catalog yields an empty repository.
func (r *Repository) LoadAll(catalogDir string) error {
	cat, err := catalog.Load(catalogDir)
	if err != nil {
		return err
	}
	for _, w := range cat.Warnings {
		logger.Warn("catalog: %s", w)
	}

	r.mu.Lock()
	for id, strategies := range cat.Elements {
		r.elements[id] = &descriptor{strategies: strategies, best: -1}
	}
	r.mu.Unlock()

	logger.Info("loaded %d element descriptors from %s", len(cat.Elements), catalogDir)

	r.loadHistory()
	return nil
}

// GetStrategies returns the ordered strategy list for an element, or an
// empty list if the element is unknown. The returned slice is a snapshot;
// callers must not modify it.
func (r *Repository) GetStrategies(elementID string) []locator.Strategy {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.elements[elementID]
	if !ok {
		return nil
	}
	return d.strategies
}

// GetBestStrategy returns the strategy to try first: the healed strategy
// when a valid healing record exists, otherwise the declared primary.
// ok is false only when the element has no strategies at all.
func (r *Repository) GetBestStrategy(elementID string) (locator.Strategy, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.elements[elementID]
	if !ok || len(d.strategies) == 0 {
		return locator.Strategy{}, false
	}
	if d.best >= 0 && d.best < len(d.strategies) {
		return d.strategies[d.best], true
	}
	return d.strategies[0], true
}

// Snapshot returns the element's strategy list together with the index of
// the current best strategy (-1 when no healing record exists). A resolution
// pass works against this consistent snapshot; concurrent updates take
// effect on the next pass.
func (r *Repository) Snapshot(elementID string) (strategies []locator.Strategy, best int) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.elements[elementID]
	if !ok {
		return nil, -1
	}
	return d.strategies, d.best
}

// SetStrategies replaces an element's descriptor wholesale. Strategies are
// deduplicated by structural equality, order preserved, first occurrence
// wins. Any existing healing record for the element is invalidated, since a
// prior index may no longer correspond to the same strategy.
func (r *Repository) SetStrategies(elementID string, strategies []locator.Strategy) {
	deduped := locator.Dedup(strategies)

	r.mu.Lock()
	r.elements[elementID] = &descriptor{strategies: deduped, best: -1}
	r.mu.Unlock()

	logger.Info("updated locators for element %s: %d strategies", elementID, len(deduped))
}

// RecordHealing records that the strategy at successfulIndex located the
// element, making it the preferred strategy for subsequent resolutions, and
// persists the updated history. An out-of-range index is logged and ignored.
func (r *Repository) RecordHealing(elementID string, successfulIndex int) {
	r.mu.Lock()
	d, ok := r.elements[elementID]
	if !ok || successfulIndex < 0 || successfulIndex >= len(d.strategies) {
		r.mu.Unlock()
		logger.Warn("ignoring healing record for element %s: index %d out of range", elementID, successfulIndex)
		return
	}
	r.elements[elementID] = &descriptor{strategies: d.strategies, best: successfulIndex}
	r.mu.Unlock()

	logger.Info("registered healing for element %s: using strategy index %d", elementID, successfulIndex)

	if err := r.PersistHistory(); err != nil {
		logger.Error("failed to persist healing history: %v", err)
	}
}

// Count returns the number of registered element descriptors.
func (r *Repository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.elements)
}

// History returns a copy of the current healing history mapping.
func (r *Repository) History() map[string]int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	history := make(map[string]int)
	for id, d := range r.elements {
		if d.best >= 0 {
			history[id] = d.best
		}
	}
	return history
}
