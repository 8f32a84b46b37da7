// Package session wires the repository, event log, and driver into the
// handle factory owned by the test-session bootstrap.
package session

import (
	"sync"

	"github.com/devicelab-dev/appium-healer/pkg/core"
	"github.com/devicelab-dev/appium-healer/pkg/element"
	"github.com/devicelab-dev/appium-healer/pkg/healing"
	"github.com/devicelab-dev/appium-healer/pkg/locator"
	"github.com/devicelab-dev/appium-healer/pkg/logger"
	"github.com/devicelab-dev/appium-healer/pkg/repository"
)

// Config configures the stores backing a session.
type Config struct {
	// LocatorsDir holds the locator definition sources, one file per group.
	LocatorsDir string
	// HistoryFile is the persisted healing history.
	HistoryFile string
	// EventsFile is the append-only healing event log. Empty disables it.
	EventsFile string
}

// Session owns one repository and one event log for a test run and hands
// out resolving element handles. Construct it once in the test bootstrap
// and share it; handles for the same identifier are cached.
type Session struct {
	repo     *repository.Repository
	resolver core.Resolver
	events   *healing.Log

	mu      sync.Mutex
	handles map[string]*element.Handle
}

// New creates a session around the given driver resolver, loading the
// catalog and the persisted healing history.
func New(resolver core.Resolver, cfg Config) (*Session, error) {
	repo := repository.New(cfg.HistoryFile)
	if err := repo.LoadAll(cfg.LocatorsDir); err != nil {
		return nil, err
	}

	var events *healing.Log
	if cfg.EventsFile != "" {
		events = healing.NewLog(cfg.EventsFile)
	}

	return &Session{
		repo:     repo,
		resolver: resolver,
		events:   events,
		handles:  make(map[string]*element.Handle),
	}, nil
}

// Element returns the handle for an element identifier, creating and
// caching it on first use.
func (s *Session) Element(id string) *element.Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	if h, ok := s.handles[id]; ok {
		return h
	}
	h := element.NewHandle(id, s.repo, s.resolver, s.events)
	s.handles[id] = h
	return h
}

// Define registers an element ad hoc with a primary strategy plus
// alternatives and returns its handle. If the element already has
// strategies in the catalog, those win and the arguments are ignored.
func (s *Session) Define(id string, primary locator.Strategy, alternatives ...locator.Strategy) *element.Handle {
	if len(s.repo.GetStrategies(id)) == 0 {
		strategies := append([]locator.Strategy{primary}, alternatives...)
		s.repo.SetStrategies(id, strategies)
	}
	return s.Element(id)
}

// Repository returns the shared locator repository.
func (s *Session) Repository() *repository.Repository {
	return s.repo
}

// Events returns the healing event log, or nil when disabled.
func (s *Session) Events() *healing.Log {
	return s.events
}

// ClearCache drops all cached handles. Existing handles stay usable; they
// re-resolve on their next operation.
func (s *Session) ClearCache() {
	s.mu.Lock()
	s.handles = make(map[string]*element.Handle)
	s.mu.Unlock()
	logger.Debug("element handle cache cleared")
}

// Close flushes the healing history to durable storage.
func (s *Session) Close() error {
	return s.repo.PersistHistory()
}
