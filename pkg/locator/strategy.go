// Package locator defines the locator strategy value type used to find UI elements.
package locator

import (
	"fmt"
	"strings"
)

// Kind identifies a location strategy.
type Kind string

// Supported strategy kinds. The string values double as the tokens used in
// locator definition files.
const (
	KindID              Kind = "id"
	KindName            Kind = "name"
	KindXPath           Kind = "xpath"
	KindCSS             Kind = "css"
	KindClassName       Kind = "classname"
	KindTagName         Kind = "tagname"
	KindLinkText        Kind = "linktext"
	KindPartialLinkText Kind = "partiallinktext"
	KindAccessibilityID Kind = "accessibilityid"
)

// IsValid reports whether k is a known strategy kind.
func (k Kind) IsValid() bool {
	switch k {
	case KindID, KindName, KindXPath, KindCSS, KindClassName,
		KindTagName, KindLinkText, KindPartialLinkText, KindAccessibilityID:
		return true
	}
	return false
}

// Using returns the W3C WebDriver location-strategy name for the kind.
func (k Kind) Using() string {
	switch k {
	case KindID:
		return "id"
	case KindName:
		return "name"
	case KindXPath:
		return "xpath"
	case KindCSS:
		return "css selector"
	case KindClassName:
		return "class name"
	case KindTagName:
		return "tag name"
	case KindLinkText:
		return "link text"
	case KindPartialLinkText:
		return "partial link text"
	case KindAccessibilityID:
		return "accessibility id"
	default:
		return string(k)
	}
}

// Strategy is one way of locating a UI element: a kind plus a value.
// Immutable once constructed; equality is structural.
type Strategy struct {
	Kind  Kind
	Value string
}

// New creates a strategy.
func New(kind Kind, value string) Strategy {
	return Strategy{Kind: kind, Value: value}
}

// Convenience constructors mirroring the common strategies.

// ByID locates by resource id.
func ByID(value string) Strategy { return Strategy{Kind: KindID, Value: value} }

// ByName locates by name attribute.
func ByName(value string) Strategy { return Strategy{Kind: KindName, Value: value} }

// ByXPath locates by XPath expression.
func ByXPath(value string) Strategy { return Strategy{Kind: KindXPath, Value: value} }

// ByCSS locates by CSS selector.
func ByCSS(value string) Strategy { return Strategy{Kind: KindCSS, Value: value} }

// ByAccessibilityID locates by accessibility label.
func ByAccessibilityID(value string) Strategy {
	return Strategy{Kind: KindAccessibilityID, Value: value}
}

// Parse parses a "kind=value" token into a strategy.
// The kind token is case-insensitive; the value keeps its case and may
// itself contain "=" (only the first one splits).
func Parse(token string) (Strategy, error) {
	parts := strings.SplitN(token, "=", 2)
	if len(parts) != 2 {
		return Strategy{}, fmt.Errorf("invalid locator token %q: expected kind=value", token)
	}

	kind := Kind(strings.ToLower(strings.TrimSpace(parts[0])))
	value := strings.TrimSpace(parts[1])

	if !kind.IsValid() {
		return Strategy{}, fmt.Errorf("unsupported locator kind %q", parts[0])
	}
	if value == "" {
		return Strategy{}, fmt.Errorf("empty value for locator kind %q", kind)
	}

	return Strategy{Kind: kind, Value: value}, nil
}

// IsZero reports whether s is the zero strategy.
func (s Strategy) IsZero() bool {
	return s.Kind == "" && s.Value == ""
}

// String returns the "kind=value" form, the same shape Parse accepts.
func (s Strategy) String() string {
	return string(s.Kind) + "=" + s.Value
}

// Dedup returns strategies with structural duplicates removed,
// order preserved, first occurrence wins.
func Dedup(strategies []Strategy) []Strategy {
	if len(strategies) == 0 {
		return nil
	}
	seen := make(map[Strategy]struct{}, len(strategies))
	out := make([]Strategy, 0, len(strategies))
	for _, s := range strategies {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// IndexOf returns the index of s in strategies, or -1.
func IndexOf(strategies []Strategy, s Strategy) int {
	for i, candidate := range strategies {
		if candidate == s {
			return i
		}
	}
	return -1
}
