// Package element provides the resolving element handle: a wrapper that
// makes locator healing transparent to ordinary UI operations.
package element

import (
	"context"
	"sync"
	"time"

	"github.com/devicelab-dev/appium-healer/pkg/core"
	"github.com/devicelab-dev/appium-healer/pkg/healing"
	"github.com/devicelab-dev/appium-healer/pkg/locator"
	"github.com/devicelab-dev/appium-healer/pkg/logger"
	"github.com/devicelab-dev/appium-healer/pkg/repository"
)

// Handle is a per-element handle that resolves its element lazily, caches
// the underlying reference, probes it for staleness, and falls back through
// alternative locator strategies when the preferred one stops matching.
//
// Which strategy is best lives in the repository and persists across runs;
// whether the cached reference is still good is a single-invocation concern
// answered by the driver's liveness probe. A handle is safe for concurrent
// use.
type Handle struct {
	id       string
	repo     *repository.Repository
	resolver core.Resolver
	events   *healing.Log // optional

	mu      sync.Mutex
	ref     core.ElementRef
	current locator.Strategy
}

// NewHandle creates a handle for the element identifier. The element does
// not need to be registered yet; resolution fails with ErrNoStrategyDefined
// if it still isn't when the first operation runs.
func NewHandle(id string, repo *repository.Repository, resolver core.Resolver, events *healing.Log) *Handle {
	return &Handle{
		id:       id,
		repo:     repo,
		resolver: resolver,
		events:   events,
	}
}

// ID returns the element identifier.
func (h *Handle) ID() string {
	return h.id
}

// CurrentStrategy returns the strategy that produced the cached reference,
// or the zero strategy if nothing has resolved yet.
func (h *Handle) CurrentStrategy() locator.Strategy {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

// Invalidate drops the cached reference so the next operation re-resolves.
func (h *Handle) Invalidate() {
	h.mu.Lock()
	h.ref = nil
	h.mu.Unlock()
}

// ensureResolved returns a live element reference, resolving or re-resolving
// as needed.
func (h *Handle) ensureResolved(ctx context.Context) (core.ElementRef, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	// Reuse the cached reference if it still points at a live node.
	if h.ref != nil {
		live, err := h.ref.Live(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil, core.ErrCancelled.WithCause(ctx.Err())
			}
			live = false
		}
		if live {
			return h.ref, nil
		}
		logger.Debug("cached reference for %s is stale, re-resolving", h.id)
		h.ref = nil
	}

	return h.resolveLocked(ctx)
}

// resolveLocked runs the resolution algorithm against a consistent snapshot
// of the element's descriptor. Caller holds h.mu.
func (h *Handle) resolveLocked(ctx context.Context) (core.ElementRef, error) {
	strategies, bestIdx := h.repo.Snapshot(h.id)
	if len(strategies) == 0 {
		return nil, core.ErrNoStrategyDefined.WithDetails(map[string]interface{}{
			"elementId": h.id,
		})
	}

	best := strategies[0]
	if bestIdx >= 0 && bestIdx < len(strategies) {
		best = strategies[bestIdx]
	}

	// Preferred strategy first.
	logger.Debug("resolving %s with %s", h.id, best)
	ref, found, err := h.resolver.Resolve(ctx, best)
	if err != nil {
		if ctx.Err() != nil {
			return nil, core.ErrCancelled.WithCause(ctx.Err())
		}
		logger.Warn("resolve %s with %s failed: %v", h.id, best, err)
	}
	if found {
		h.ref = ref
		h.current = best
		return ref, nil
	}

	logger.Warn("element %s not found with preferred locator %s, trying alternatives", h.id, best)
	return h.resolveAlternativesLocked(ctx, strategies, best)
}

// resolveAlternativesLocked walks the remaining strategies in declared
// order, skipping the one already attempted, and records a healing event for
// the first that succeeds.
func (h *Handle) resolveAlternativesLocked(ctx context.Context, strategies []locator.Strategy, tried locator.Strategy) (core.ElementRef, error) {
	attempt := 0
	for i, s := range strategies {
		if s == tried {
			continue
		}
		if ctx.Err() != nil {
			return nil, core.ErrCancelled.WithCause(ctx.Err())
		}
		attempt++

		logger.Debug("trying alternative %d for %s: %s", attempt, h.id, s)
		ref, found, err := h.resolver.Resolve(ctx, s)
		if err != nil {
			if ctx.Err() != nil {
				return nil, core.ErrCancelled.WithCause(ctx.Err())
			}
			logger.Warn("resolve %s with %s failed: %v", h.id, s, err)
			continue
		}
		if !found {
			continue
		}

		logger.Info("healing successful for element %s: using alternative locator %s", h.id, s)
		h.repo.RecordHealing(h.id, i)
		h.appendEvent(strategies[0], s, attempt)

		h.ref = ref
		h.current = s
		return ref, nil
	}

	logger.Error("element %s not found with any of %d locator strategies", h.id, len(strategies))
	return nil, core.ErrElementNotFound.WithDetails(map[string]interface{}{
		"elementId":  h.id,
		"strategies": len(strategies),
	})
}

func (h *Handle) appendEvent(original, winning locator.Strategy, attempts int) {
	if h.events == nil {
		return
	}
	err := h.events.Append(healing.Event{
		Timestamp: time.Now(),
		ElementID: h.id,
		Original:  original,
		Winning:   winning,
		Attempts:  attempts,
	})
	if err != nil {
		logger.Error("failed to record healing event: %v", err)
	}
}
