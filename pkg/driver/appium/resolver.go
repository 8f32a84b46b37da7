package appium

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/devicelab-dev/appium-healer/pkg/core"
	"github.com/devicelab-dev/appium-healer/pkg/locator"
)

// Resolve performs a single strategy-based lookup against the live UI tree.
// A "no such element" response is a not-found result, not an error.
func (c *Client) Resolve(ctx context.Context, strategy locator.Strategy) (core.ElementRef, bool, error) {
	body := map[string]interface{}{
		"using": strategy.Kind.Using(),
		"value": strategy.Value,
	}

	resp, err := c.post(ctx, c.sessionPath()+"/element", body)
	if err != nil {
		var perr *protocolError
		if errors.As(err, &perr) && perr.Type == errNoSuchElement {
			return nil, false, nil
		}
		return nil, false, err
	}

	value, ok := resp["value"].(map[string]interface{})
	if !ok {
		return nil, false, fmt.Errorf("invalid element response")
	}
	id := extractElementID(value)
	if id == "" {
		return nil, false, nil
	}

	return &elementRef{client: c, id: id}, true, nil
}

// elementRef implements core.ElementRef over the W3C element endpoints.
type elementRef struct {
	client *Client
	id     string
}

func (e *elementRef) path() string {
	return e.client.elementPath(e.id)
}

// Click clicks the element using the WebDriver standard endpoint.
func (e *elementRef) Click(ctx context.Context) error {
	_, err := e.client.post(ctx, e.path()+"/click", nil)
	return err
}

// SendKeys types text into the element.
func (e *elementRef) SendKeys(ctx context.Context, text string) error {
	_, err := e.client.post(ctx, e.path()+"/value", map[string]interface{}{
		"text": text,
	})
	return err
}

// Clear clears the element's text.
func (e *elementRef) Clear(ctx context.Context) error {
	_, err := e.client.post(ctx, e.path()+"/clear", nil)
	return err
}

// Text returns the element's text.
func (e *elementRef) Text(ctx context.Context) (string, error) {
	resp, err := e.client.get(ctx, e.path()+"/text")
	if err != nil {
		return "", err
	}
	text, _ := resp["value"].(string)
	return text, nil
}

// Attribute returns an attribute value.
func (e *elementRef) Attribute(ctx context.Context, name string) (string, error) {
	resp, err := e.client.get(ctx, e.path()+"/attribute/"+name)
	if err != nil {
		return "", err
	}
	value, _ := resp["value"].(string)
	return value, nil
}

// Displayed checks if the element is visible.
func (e *elementRef) Displayed(ctx context.Context) (bool, error) {
	resp, err := e.client.get(ctx, e.path()+"/displayed")
	if err != nil {
		return false, err
	}
	displayed, _ := resp["value"].(bool)
	return displayed, nil
}

// Enabled checks if the element is enabled.
func (e *elementRef) Enabled(ctx context.Context) (bool, error) {
	resp, err := e.client.get(ctx, e.path()+"/enabled")
	if err != nil {
		return false, err
	}
	enabled, _ := resp["value"].(bool)
	return enabled, nil
}

// Selected checks if the element is selected.
func (e *elementRef) Selected(ctx context.Context) (bool, error) {
	resp, err := e.client.get(ctx, e.path()+"/selected")
	if err != nil {
		return false, err
	}
	selected, _ := resp["value"].(bool)
	return selected, nil
}

// Rect returns the element's position and size.
func (e *elementRef) Rect(ctx context.Context) (core.Rect, error) {
	resp, err := e.client.get(ctx, e.path()+"/rect")
	if err != nil {
		return core.Rect{}, err
	}
	value, ok := resp["value"].(map[string]interface{})
	if !ok {
		return core.Rect{}, fmt.Errorf("invalid rect response")
	}

	xf, _ := value["x"].(float64)
	yf, _ := value["y"].(float64)
	wf, _ := value["width"].(float64)
	hf, _ := value["height"].(float64)
	return core.Rect{X: int(xf), Y: int(yf), Width: int(wf), Height: int(hf)}, nil
}

// Screenshot captures the element as PNG bytes.
func (e *elementRef) Screenshot(ctx context.Context) ([]byte, error) {
	resp, err := e.client.get(ctx, e.path()+"/screenshot")
	if err != nil {
		return nil, err
	}
	encoded, ok := resp["value"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid screenshot response")
	}
	return base64.StdEncoding.DecodeString(encoded)
}

// Live probes the reference with the displayed endpoint. A stale element
// response means the node is gone: (false, nil), so the caller re-resolves.
func (e *elementRef) Live(ctx context.Context) (bool, error) {
	_, err := e.client.get(ctx, e.path()+"/displayed")
	if err != nil {
		var perr *protocolError
		if errors.As(err, &perr) && (perr.Type == errStaleElementRef || perr.Type == errNoSuchElement) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
