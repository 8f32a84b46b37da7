package core

// ErrorCategory classifies resolution failures for logging and reporting.
type ErrorCategory int

const (
	ErrCategoryNone        ErrorCategory = iota // No error
	ErrCategoryResolution                       // No strategy defined, all strategies exhausted
	ErrCategoryState                            // Stale reference, invalid healing index
	ErrCategoryPersistence                      // Catalog/history read or write failure
	ErrCategoryConfig                           // Invalid configuration
	ErrCategoryCancelled                        // Caller deadline or cancellation
)

// String returns the string representation of ErrorCategory.
func (c ErrorCategory) String() string {
	switch c {
	case ErrCategoryNone:
		return "none"
	case ErrCategoryResolution:
		return "resolution"
	case ErrCategoryState:
		return "state"
	case ErrCategoryPersistence:
		return "persistence"
	case ErrCategoryConfig:
		return "config"
	case ErrCategoryCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// IsRecoverable reports whether failures in this category are absorbed
// locally by the fallback logic rather than surfaced to the caller.
func (c ErrorCategory) IsRecoverable() bool {
	switch c {
	case ErrCategoryState, ErrCategoryPersistence:
		return true
	default:
		return false
	}
}
