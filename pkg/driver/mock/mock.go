// Package mock provides an in-memory resolver for testing without a device.
package mock

import (
	"context"
	"sync"
	"time"

	"github.com/devicelab-dev/appium-healer/pkg/core"
	"github.com/devicelab-dev/appium-healer/pkg/locator"
)

// Resolver is a scriptable implementation of core.Resolver. Strategies
// resolve to the refs registered for them; everything else is not found.
// Safe for concurrent use.
type Resolver struct {
	// ResolveDelay adds artificial latency per Resolve call.
	ResolveDelay time.Duration

	mu       sync.Mutex
	elements map[locator.Strategy]*Ref
	errs     map[locator.Strategy]error
	calls    []locator.Strategy
}

// NewResolver creates an empty mock resolver.
func NewResolver() *Resolver {
	return &Resolver{
		elements: make(map[locator.Strategy]*Ref),
		errs:     make(map[locator.Strategy]error),
	}
}

// Register makes strategy resolve to a new ref and returns it.
func (r *Resolver) Register(strategy locator.Strategy) *Ref {
	r.mu.Lock()
	defer r.mu.Unlock()

	ref := &Ref{displayed: true, enabled: true}
	r.elements[strategy] = ref
	return ref
}

// Unregister makes strategy stop resolving.
func (r *Resolver) Unregister(strategy locator.Strategy) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.elements, strategy)
}

// FailWith makes strategy return a transport error instead of a result.
func (r *Resolver) FailWith(strategy locator.Strategy, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs[strategy] = err
}

// Calls returns the strategies passed to Resolve, in order.
func (r *Resolver) Calls() []locator.Strategy {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]locator.Strategy(nil), r.calls...)
}

// ResetCalls clears the recorded calls.
func (r *Resolver) ResetCalls() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}

// Resolve implements core.Resolver.
func (r *Resolver) Resolve(ctx context.Context, strategy locator.Strategy) (core.ElementRef, bool, error) {
	if r.ResolveDelay > 0 {
		select {
		case <-time.After(r.ResolveDelay):
		case <-ctx.Done():
			return nil, false, ctx.Err()
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls = append(r.calls, strategy)

	if err, ok := r.errs[strategy]; ok {
		return nil, false, err
	}
	ref, ok := r.elements[strategy]
	if !ok {
		return nil, false, nil
	}
	return ref, true, nil
}

// Ref is the mock element reference. Fields are settable to script
// element state; a stale ref fails the liveness probe.
type Ref struct {
	mu        sync.Mutex
	stale     bool
	displayed bool
	enabled   bool
	selected  bool
	text      string
	attrs     map[string]string
	rect      core.Rect

	ClickCount int
	TypedText  []string
	Cleared    int
}

// MarkStale makes the ref fail its liveness probe.
func (e *Ref) MarkStale() {
	e.mu.Lock()
	e.stale = true
	e.mu.Unlock()
}

// SetText sets the text returned by Text.
func (e *Ref) SetText(text string) {
	e.mu.Lock()
	e.text = text
	e.mu.Unlock()
}

// SetAttribute sets an attribute returned by Attribute.
func (e *Ref) SetAttribute(name, value string) {
	e.mu.Lock()
	if e.attrs == nil {
		e.attrs = make(map[string]string)
	}
	e.attrs[name] = value
	e.mu.Unlock()
}

// SetRect sets the geometry returned by Rect.
func (e *Ref) SetRect(rect core.Rect) {
	e.mu.Lock()
	e.rect = rect
	e.mu.Unlock()
}

// SetDisplayed sets visibility.
func (e *Ref) SetDisplayed(displayed bool) {
	e.mu.Lock()
	e.displayed = displayed
	e.mu.Unlock()
}

func (e *Ref) Click(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ClickCount++
	return nil
}

func (e *Ref) SendKeys(ctx context.Context, text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.TypedText = append(e.TypedText, text)
	return nil
}

func (e *Ref) Clear(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Cleared++
	return nil
}

func (e *Ref) Text(ctx context.Context) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.text, nil
}

func (e *Ref) Attribute(ctx context.Context, name string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.attrs[name], nil
}

func (e *Ref) Displayed(ctx context.Context) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.displayed, nil
}

func (e *Ref) Enabled(ctx context.Context) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.enabled, nil
}

func (e *Ref) Selected(ctx context.Context) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selected, nil
}

func (e *Ref) Rect(ctx context.Context) (core.Rect, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rect, nil
}

func (e *Ref) Screenshot(ctx context.Context) ([]byte, error) {
	// Minimal valid PNG (1x1 transparent pixel)
	return []byte{
		0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A,
		0x00, 0x00, 0x00, 0x0D, 0x49, 0x48, 0x44, 0x52,
		0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
		0x08, 0x06, 0x00, 0x00, 0x00, 0x1F, 0x15, 0xC4,
		0x89, 0x00, 0x00, 0x00, 0x0A, 0x49, 0x44, 0x41,
		0x54, 0x78, 0x9C, 0x63, 0x00, 0x01, 0x00, 0x00,
		0x05, 0x00, 0x01, 0x0D, 0x0A, 0x2D, 0xB4, 0x00,
		0x00, 0x00, 0x00, 0x49, 0x45, 0x4E, 0x44, 0xAE,
		0x42, 0x60, 0x82,
	}, nil
}

// Live implements the liveness probe: false once the ref is marked stale.
func (e *Ref) Live(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return !e.stale, nil
}
