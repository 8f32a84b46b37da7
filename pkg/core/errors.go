package core

import (
	"fmt"
)

// ResolutionError represents a structured error with category and details
type ResolutionError struct {
	Category ErrorCategory
	Code     string                 // Machine-readable code: element_not_found, no_strategy_defined, etc.
	Message  string                 // Human-readable message
	Details  map[string]interface{} // Additional context (element id, strategy, attempt count)
	Cause    error                  // Underlying error
}

// Error implements the error interface
func (e *ResolutionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *ResolutionError) Unwrap() error {
	return e.Cause
}

// Is matches against the predefined instances by code, so
// errors.Is(err, core.ErrElementNotFound) works on derived copies.
func (e *ResolutionError) Is(target error) bool {
	t, ok := target.(*ResolutionError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithCause returns a copy of the error with the given cause
func (e *ResolutionError) WithCause(cause error) *ResolutionError {
	return &ResolutionError{
		Category: e.Category,
		Code:     e.Code,
		Message:  e.Message,
		Details:  e.Details,
		Cause:    cause,
	}
}

// WithMessage returns a copy of the error with a custom message
func (e *ResolutionError) WithMessage(msg string) *ResolutionError {
	return &ResolutionError{
		Category: e.Category,
		Code:     e.Code,
		Message:  msg,
		Details:  e.Details,
		Cause:    e.Cause,
	}
}

// WithDetails returns a copy of the error with additional details
func (e *ResolutionError) WithDetails(details map[string]interface{}) *ResolutionError {
	merged := make(map[string]interface{})
	for k, v := range e.Details {
		merged[k] = v
	}
	for k, v := range details {
		merged[k] = v
	}
	return &ResolutionError{
		Category: e.Category,
		Code:     e.Code,
		Message:  e.Message,
		Details:  merged,
		Cause:    e.Cause,
	}
}

// Predefined errors
var (
	// ErrNoStrategyDefined: the repository has zero strategies for the
	// element identifier. Fatal to the calling operation, not retried.
	ErrNoStrategyDefined = &ResolutionError{
		Category: ErrCategoryResolution,
		Code:     "no_strategy_defined",
		Message:  "no locator strategies defined for element",
	}

	// ErrElementNotFound: every strategy, preferred and alternatives,
	// failed to resolve. Fatal to the calling operation.
	ErrElementNotFound = &ResolutionError{
		Category: ErrCategoryResolution,
		Code:     "element_not_found",
		Message:  "element not found with any locator strategy",
	}

	// ErrStaleReference: the cached reference no longer points at a live
	// node. Recovered internally by re-resolving, never surfaced.
	ErrStaleReference = &ResolutionError{
		Category: ErrCategoryState,
		Code:     "stale_reference",
		Message:  "cached element reference is stale",
	}

	// ErrInvalidHealingIndex: a healing record's index is out of range for
	// the current strategy list. Logged and ignored.
	ErrInvalidHealingIndex = &ResolutionError{
		Category: ErrCategoryState,
		Code:     "invalid_healing_index",
		Message:  "healing index out of range for strategy list",
	}

	// ErrPersistence: catalog or history storage failed. Execution
	// continues with best-effort in-memory state.
	ErrPersistence = &ResolutionError{
		Category: ErrCategoryPersistence,
		Code:     "persistence_failure",
		Message:  "failed to read or write durable store",
	}

	// ErrCancelled: the caller's deadline or cancellation fired
	// mid-resolution. Surfaced distinctly from ErrElementNotFound.
	ErrCancelled = &ResolutionError{
		Category: ErrCategoryCancelled,
		Code:     "cancelled",
		Message:  "resolution cancelled by caller",
	}

	// ErrInvalidConfig: the workspace configuration could not be used.
	ErrInvalidConfig = &ResolutionError{
		Category: ErrCategoryConfig,
		Code:     "invalid_config",
		Message:  "invalid configuration",
	}
)

// NewResolutionError creates a new ResolutionError with the given parameters
func NewResolutionError(category ErrorCategory, code, message string) *ResolutionError {
	return &ResolutionError{
		Category: category,
		Code:     code,
		Message:  message,
	}
}
