package fastly

import (
	"context"
	"fmt"
	"net/url"
)

// Healthcheck customises how a backend's health is probed. Only backends
// with a passing healthcheck receive traffic.
type Healthcheck struct {
	ServiceID        string  `json:"service_id"`
	Version          FlexInt `json:"version"`
	Name             string  `json:"name"`
	Method           string  `json:"method"`
	Host             string  `json:"host"`
	Path             string  `json:"path"`
	HTTPVersion      string  `json:"http_version"`
	Timeout          FlexInt `json:"timeout"`
	CheckInterval    FlexInt `json:"check_interval"`
	ExpectedResponse FlexInt `json:"expected_response"`
	Window           FlexInt `json:"window"`
	Threshold        FlexInt `json:"threshold"`
	Initial          FlexInt `json:"initial"`
	Comment          string  `json:"comment"`
}

func healthcheckPath(serviceID string, version int, name string) string {
	if name == "" {
		return fmt.Sprintf("/service/%s/version/%d/healthcheck", url.PathEscape(serviceID), version)
	}
	return fmt.Sprintf("/service/%s/version/%d/healthcheck/%s", url.PathEscape(serviceID), version, url.PathEscape(name))
}

// ListHealthchecks returns all healthchecks in the version.
func (c *Client) ListHealthchecks(ctx context.Context, serviceID string, version int) ([]*Healthcheck, error) {
	checks := []*Healthcheck{}
	if err := c.get(ctx, healthcheckPath(serviceID, version, ""), &checks); err != nil {
		return nil, err
	}
	return checks, nil
}

// CreateHealthcheckInput are the fields for CreateHealthcheck.
type CreateHealthcheckInput struct {
	Name             string `validate:"required"`
	Host             string `validate:"required"`
	Method           *string
	Path             *string
	HTTPVersion      *string
	Timeout          *int
	CheckInterval    *int
	ExpectedResponse *int
	Window           *int
	Threshold        *int
	Initial          *int
	Comment          *string
}

func (i *CreateHealthcheckInput) formValues() url.Values {
	return formValues(map[string]any{
		"name":              i.Name,
		"host":              i.Host,
		"method":            i.Method,
		"path":              i.Path,
		"http_version":      i.HTTPVersion,
		"timeout":           i.Timeout,
		"check_interval":    i.CheckInterval,
		"expected_response": i.ExpectedResponse,
		"window":            i.Window,
		"threshold":         i.Threshold,
		"initial":           i.Initial,
		"comment":           i.Comment,
	})
}

// CreateHealthcheck creates a healthcheck in the version.
func (c *Client) CreateHealthcheck(ctx context.Context, serviceID string, version int, input *CreateHealthcheckInput) (*Healthcheck, error) {
	if err := c.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("fastly: invalid healthcheck input: %w", err)
	}

	var h Healthcheck
	if err := c.post(ctx, healthcheckPath(serviceID, version, ""), input.formValues(), &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// GetHealthcheck returns the named healthcheck.
func (c *Client) GetHealthcheck(ctx context.Context, serviceID string, version int, name string) (*Healthcheck, error) {
	var h Healthcheck
	if err := c.get(ctx, healthcheckPath(serviceID, version, name), &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// UpdateHealthcheckInput are the fields for UpdateHealthcheck.
type UpdateHealthcheckInput struct {
	Name             *string
	Host             *string
	Method           *string
	Path             *string
	HTTPVersion      *string
	Timeout          *int
	CheckInterval    *int
	ExpectedResponse *int
	Window           *int
	Threshold        *int
	Initial          *int
	Comment          *string
}

func (i *UpdateHealthcheckInput) formValues() url.Values {
	return formValues(map[string]any{
		"name":              i.Name,
		"host":              i.Host,
		"method":            i.Method,
		"path":              i.Path,
		"http_version":      i.HTTPVersion,
		"timeout":           i.Timeout,
		"check_interval":    i.CheckInterval,
		"expected_response": i.ExpectedResponse,
		"window":            i.Window,
		"threshold":         i.Threshold,
		"initial":           i.Initial,
		"comment":           i.Comment,
	})
}

// UpdateHealthcheck partially updates the named healthcheck.
func (c *Client) UpdateHealthcheck(ctx context.Context, serviceID string, version int, name string, input *UpdateHealthcheckInput) (*Healthcheck, error) {
	var h Healthcheck
	if err := c.put(ctx, healthcheckPath(serviceID, version, name), input.formValues(), &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// DeleteHealthcheck deletes the named healthcheck.
func (c *Client) DeleteHealthcheck(ctx context.Context, serviceID string, version int, name string) error {
	return c.del(ctx, healthcheckPath(serviceID, version, name))
}

// CheckAllBackends performs an immediate health check against every
// backend in the version, using each backend's configured healthcheck or
// a HEAD / probe when none is set. The response shape varies by account
// so it is returned raw.
func (c *Client) CheckAllBackends(ctx context.Context, serviceID string, version int) ([]byte, error) {
	path := fmt.Sprintf("/service/%s/version/%d/backend/check_all", url.PathEscape(serviceID), version)
	return c.do(ctx, "GET", path, requestOptions{})
}
