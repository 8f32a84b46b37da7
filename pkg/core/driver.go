// Package core provides the driver abstraction and error model shared by
// the locator repository, the resolving element handle, and the drivers.
package core

import (
	"context"

	"github.com/devicelab-dev/appium-healer/pkg/locator"
)

// Resolver is the consumed capability of the external UI automation driver:
// a single strategy-based lookup against the live UI tree.
//
// Resolve returns (ref, true, nil) when the strategy matched an element and
// (nil, false, nil) when it matched nothing. A non-nil error is reserved for
// transport faults and cancellation; "not found" is a result, not an error.
type Resolver interface {
	Resolve(ctx context.Context, strategy locator.Strategy) (ElementRef, bool, error)
}

// ElementRef is a handle to a concrete element resolved by a driver.
// All operations accept a context so callers can impose deadlines on the
// underlying network/IPC calls.
type ElementRef interface {
	// Actions
	Click(ctx context.Context) error
	SendKeys(ctx context.Context, text string) error
	Clear(ctx context.Context) error

	// Properties
	Text(ctx context.Context) (string, error)
	Attribute(ctx context.Context, name string) (string, error)
	Displayed(ctx context.Context) (bool, error)
	Enabled(ctx context.Context) (bool, error)
	Selected(ctx context.Context) (bool, error)
	Rect(ctx context.Context) (Rect, error)
	Screenshot(ctx context.Context) ([]byte, error)

	// Live is the cheap liveness probe: it reports whether the reference
	// still points at a live node. A stale reference returns (false, nil),
	// not an error.
	Live(ctx context.Context) (bool, error)
}

// Rect represents element position and size.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Center returns the center point of the rect.
func (r Rect) Center() (int, int) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Contains checks if a point is within the rect.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}
