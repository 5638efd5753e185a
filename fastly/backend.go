package fastly

import (
	"context"
	"fmt"
	"net/url"
)

// Backend is an origin address (IP or domain) that content is fetched
// from. A service version can hold multiple backends.
type Backend struct {
	ServiceID           string   `json:"service_id"`
	Version             FlexInt  `json:"version"`
	Name                string   `json:"name"`
	Address             string   `json:"address"`
	Port                FlexInt  `json:"port"`
	UseSSL              FlexBool `json:"use_ssl"`
	ConnectTimeout      FlexInt  `json:"connect_timeout"`
	FirstByteTimeout    FlexInt  `json:"first_byte_timeout"`
	BetweenBytesTimeout FlexInt  `json:"between_bytes_timeout"`
	ErrorThreshold      FlexInt  `json:"error_threshold"`
	MaxConn             FlexInt  `json:"max_conn"`
	Weight              FlexInt  `json:"weight"`
	AutoLoadbalance     FlexBool `json:"auto_loadbalance"`
	Shield              string   `json:"shield"`
	RequestCondition    string   `json:"request_condition"`
	Healthcheck         string   `json:"healthcheck"`
	Comment             string   `json:"comment"`
}

func backendPath(serviceID string, version int, name string) string {
	if name == "" {
		return fmt.Sprintf("/service/%s/version/%d/backend", url.PathEscape(serviceID), version)
	}
	return fmt.Sprintf("/service/%s/version/%d/backend/%s", url.PathEscape(serviceID), version, url.PathEscape(name))
}

// ListBackends returns all backends in the version. An empty slice is not
// an error.
func (c *Client) ListBackends(ctx context.Context, serviceID string, version int) ([]*Backend, error) {
	backends := []*Backend{}
	if err := c.get(ctx, backendPath(serviceID, version, ""), &backends); err != nil {
		return nil, err
	}
	return backends, nil
}

// CreateBackendInput are the fields for CreateBackend. Optional fields
// left nil take the server-defined defaults.
type CreateBackendInput struct {
	Name                string `validate:"required"`
	Address             string `validate:"required"`
	Port                *int
	UseSSL              *bool
	ConnectTimeout      *int
	FirstByteTimeout    *int
	BetweenBytesTimeout *int
	ErrorThreshold      *int
	MaxConn             *int
	Weight              *int
	AutoLoadbalance     *bool
	Shield              *string
	RequestCondition    *string
	Healthcheck         *string
	Comment             *string
}

func (i *CreateBackendInput) formValues() url.Values {
	return formValues(map[string]any{
		"name":                  i.Name,
		"address":               i.Address,
		"port":                  i.Port,
		"use_ssl":               i.UseSSL,
		"connect_timeout":       i.ConnectTimeout,
		"first_byte_timeout":    i.FirstByteTimeout,
		"between_bytes_timeout": i.BetweenBytesTimeout,
		"error_threshold":       i.ErrorThreshold,
		"max_conn":              i.MaxConn,
		"weight":                i.Weight,
		"auto_loadbalance":      i.AutoLoadbalance,
		"shield":                i.Shield,
		"request_condition":     i.RequestCondition,
		"healthcheck":           i.Healthcheck,
		"comment":               i.Comment,
	})
}

// CreateBackend creates a backend in the version. Fails with a
// ConflictError when the name already exists in that scope.
func (c *Client) CreateBackend(ctx context.Context, serviceID string, version int, input *CreateBackendInput) (*Backend, error) {
	if err := c.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("fastly: invalid backend input: %w", err)
	}

	var b Backend
	if err := c.post(ctx, backendPath(serviceID, version, ""), input.formValues(), &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// GetBackend returns the named backend, or a NotFoundError.
func (c *Client) GetBackend(ctx context.Context, serviceID string, version int, name string) (*Backend, error) {
	var b Backend
	if err := c.get(ctx, backendPath(serviceID, version, name), &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// UpdateBackendInput are the fields for UpdateBackend. Nil fields retain
// their server-side values.
type UpdateBackendInput struct {
	Name                *string
	Address             *string
	Port                *int
	UseSSL              *bool
	ConnectTimeout      *int
	FirstByteTimeout    *int
	BetweenBytesTimeout *int
	ErrorThreshold      *int
	MaxConn             *int
	Weight              *int
	AutoLoadbalance     *bool
	Shield              *string
	RequestCondition    *string
	Healthcheck         *string
	Comment             *string
}

func (i *UpdateBackendInput) formValues() url.Values {
	return formValues(map[string]any{
		"name":                  i.Name,
		"address":               i.Address,
		"port":                  i.Port,
		"use_ssl":               i.UseSSL,
		"connect_timeout":       i.ConnectTimeout,
		"first_byte_timeout":    i.FirstByteTimeout,
		"between_bytes_timeout": i.BetweenBytesTimeout,
		"error_threshold":       i.ErrorThreshold,
		"max_conn":              i.MaxConn,
		"weight":                i.Weight,
		"auto_loadbalance":      i.AutoLoadbalance,
		"shield":                i.Shield,
		"request_condition":     i.RequestCondition,
		"healthcheck":           i.Healthcheck,
		"comment":               i.Comment,
	})
}

// UpdateBackend partially updates the named backend.
func (c *Client) UpdateBackend(ctx context.Context, serviceID string, version int, name string, input *UpdateBackendInput) (*Backend, error) {
	var b Backend
	if err := c.put(ctx, backendPath(serviceID, version, name), input.formValues(), &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// DeleteBackend deletes the named backend. Deleting a nonexistent name is
// a NotFoundError, never a silent success.
func (c *Client) DeleteBackend(ctx context.Context, serviceID string, version int, name string) error {
	return c.del(ctx, backendPath(serviceID, version, name))
}
