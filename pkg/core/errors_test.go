package core

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestResolutionError_IsMatchesByCode(t *testing.T) {
	derived := ErrElementNotFound.
		WithDetails(map[string]interface{}{"elementId": "login.button"}).
		WithCause(fmt.Errorf("timeout"))

	if !errors.Is(derived, ErrElementNotFound) {
		t.Error("derived copy must match its predefined instance")
	}
	if errors.Is(derived, ErrNoStrategyDefined) {
		t.Error("must not match an instance with a different code")
	}
}

func TestResolutionError_WrappedStillMatches(t *testing.T) {
	wrapped := fmt.Errorf("click failed: %w", ErrElementNotFound.WithMessage("gone"))
	if !errors.Is(wrapped, ErrElementNotFound) {
		t.Error("wrapping must preserve errors.Is matching")
	}
}

func TestResolutionError_Error(t *testing.T) {
	if got := ErrCancelled.Error(); got != "resolution cancelled by caller" {
		t.Errorf("unexpected message: %q", got)
	}

	withCause := ErrPersistence.WithCause(errors.New("disk full"))
	if got := withCause.Error(); !strings.Contains(got, "disk full") {
		t.Errorf("expected cause in message, got %q", got)
	}
}

func TestResolutionError_WithDetailsMerges(t *testing.T) {
	base := ErrElementNotFound.WithDetails(map[string]interface{}{"elementId": "a"})
	derived := base.WithDetails(map[string]interface{}{"strategies": 3})

	if derived.Details["elementId"] != "a" || derived.Details["strategies"] != 3 {
		t.Errorf("unexpected merged details: %v", derived.Details)
	}
	// The base copy stays untouched.
	if _, ok := base.Details["strategies"]; ok {
		t.Error("WithDetails must not mutate the receiver")
	}
}

func TestResolutionError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := ErrCancelled.WithCause(cause)
	if !errors.Is(err, cause) {
		t.Error("expected cause reachable via Unwrap")
	}
}

func TestErrorCategory_String(t *testing.T) {
	tests := []struct {
		category ErrorCategory
		expected string
	}{
		{ErrCategoryNone, "none"},
		{ErrCategoryResolution, "resolution"},
		{ErrCategoryState, "state"},
		{ErrCategoryPersistence, "persistence"},
		{ErrCategoryConfig, "config"},
		{ErrCategoryCancelled, "cancelled"},
		{ErrorCategory(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.category.String(); got != tt.expected {
			t.Errorf("category %d: expected %q, got %q", tt.category, tt.expected, got)
		}
	}
}

func TestErrorCategory_IsRecoverable(t *testing.T) {
	if !ErrCategoryState.IsRecoverable() || !ErrCategoryPersistence.IsRecoverable() {
		t.Error("state and persistence failures are absorbed by fallback")
	}
	if ErrCategoryResolution.IsRecoverable() || ErrCategoryCancelled.IsRecoverable() {
		t.Error("resolution and cancellation failures surface to the caller")
	}
}
