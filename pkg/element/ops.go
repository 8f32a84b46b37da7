package element

import (
	"context"

	"github.com/devicelab-dev/appium-healer/pkg/core"
	"github.com/devicelab-dev/appium-healer/pkg/logger"
)

// UI operations. Every operation funnels through the same ensure-resolved
// step, then delegates to the driver on the resolved reference.

// Click clicks the element.
func (h *Handle) Click(ctx context.Context) error {
	logger.Debug("clicking element %s", h.id)
	ref, err := h.ensureResolved(ctx)
	if err != nil {
		return err
	}
	return ref.Click(ctx)
}

// TypeText types text into the element. The driver receives the raw value;
// only the masked form reaches the log.
func (h *Handle) TypeText(ctx context.Context, text string) error {
	logger.Debug("typing into element %s: %s", h.id, logger.Mask(text))
	ref, err := h.ensureResolved(ctx)
	if err != nil {
		return err
	}
	return ref.SendKeys(ctx, text)
}

// Clear clears the element's text.
func (h *Handle) Clear(ctx context.Context) error {
	logger.Debug("clearing element %s", h.id)
	ref, err := h.ensureResolved(ctx)
	if err != nil {
		return err
	}
	return ref.Clear(ctx)
}

// Text returns the element's visible text.
func (h *Handle) Text(ctx context.Context) (string, error) {
	ref, err := h.ensureResolved(ctx)
	if err != nil {
		return "", err
	}
	return ref.Text(ctx)
}

// Attribute returns the named attribute of the element.
func (h *Handle) Attribute(ctx context.Context, name string) (string, error) {
	ref, err := h.ensureResolved(ctx)
	if err != nil {
		return "", err
	}
	return ref.Attribute(ctx, name)
}

// Visible reports whether the element is displayed.
func (h *Handle) Visible(ctx context.Context) (bool, error) {
	ref, err := h.ensureResolved(ctx)
	if err != nil {
		return false, err
	}
	return ref.Displayed(ctx)
}

// Enabled reports whether the element is enabled.
func (h *Handle) Enabled(ctx context.Context) (bool, error) {
	ref, err := h.ensureResolved(ctx)
	if err != nil {
		return false, err
	}
	return ref.Enabled(ctx)
}

// Selected reports whether the element is selected.
func (h *Handle) Selected(ctx context.Context) (bool, error) {
	ref, err := h.ensureResolved(ctx)
	if err != nil {
		return false, err
	}
	return ref.Selected(ctx)
}

// Rect returns the element's position and size.
func (h *Handle) Rect(ctx context.Context) (core.Rect, error) {
	ref, err := h.ensureResolved(ctx)
	if err != nil {
		return core.Rect{}, err
	}
	return ref.Rect(ctx)
}

// Screenshot captures the element as PNG.
func (h *Handle) Screenshot(ctx context.Context) ([]byte, error) {
	ref, err := h.ensureResolved(ctx)
	if err != nil {
		return nil, err
	}
	return ref.Screenshot(ctx)
}
