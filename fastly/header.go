package fastly

import (
	"context"
	"fmt"
	"net/url"
)

// Header rewriting actions.
const (
	HeaderActionSet         = "set"
	HeaderActionAppend      = "append"
	HeaderActionDelete      = "delete"
	HeaderActionRegex       = "regex"
	HeaderActionRegexRepeat = "regex_repeat"
)

// Header lifecycle phases a header object can attach to.
const (
	HeaderTypeRequest  = "request"
	HeaderTypeFetch    = "fetch"
	HeaderTypeCache    = "cache"
	HeaderTypeResponse = "response"
)

// Header adds, modifies, or deletes headers on requests and responses.
// The destination and source can reference Varnish variables, and regex
// actions allow further rewriting.
type Header struct {
	ServiceID         string   `json:"service_id"`
	Version           FlexInt  `json:"version"`
	Name              string   `json:"name"`
	Destination       string   `json:"dst"`
	Source            string   `json:"src"`
	Type              string   `json:"type"`
	Action            string   `json:"action"`
	Regex             string   `json:"regex"`
	Substitution      string   `json:"substitution"`
	IgnoreIfSet       FlexBool `json:"ignore_if_set"`
	Priority          FlexInt  `json:"priority"`
	ResponseCondition string   `json:"response_condition"`
	RequestCondition  string   `json:"request_condition"`
	CacheCondition    string   `json:"cache_condition"`
}

func headerPath(serviceID string, version int, name string) string {
	if name == "" {
		return fmt.Sprintf("/service/%s/version/%d/header", url.PathEscape(serviceID), version)
	}
	return fmt.Sprintf("/service/%s/version/%d/header/%s", url.PathEscape(serviceID), version, url.PathEscape(name))
}

// ListHeaders returns all header objects in the version.
func (c *Client) ListHeaders(ctx context.Context, serviceID string, version int) ([]*Header, error) {
	headers := []*Header{}
	if err := c.get(ctx, headerPath(serviceID, version, ""), &headers); err != nil {
		return nil, err
	}
	return headers, nil
}

// CreateHeaderInput are the fields for CreateHeader.
type CreateHeaderInput struct {
	Name              string `validate:"required"`
	Destination       string `validate:"required"`
	Source            string `validate:"required"`
	Type              *string
	Action            *string
	Regex             *string
	Substitution      *string
	IgnoreIfSet       *bool
	Priority          *int
	ResponseCondition *string
	RequestCondition  *string
	CacheCondition    *string
}

func (i *CreateHeaderInput) formValues() url.Values {
	return formValues(map[string]any{
		"name":               i.Name,
		"dst":                i.Destination,
		"src":                i.Source,
		"type":               i.Type,
		"action":             i.Action,
		"regex":              i.Regex,
		"substitution":       i.Substitution,
		"ignore_if_set":      i.IgnoreIfSet,
		"priority":           i.Priority,
		"response_condition": i.ResponseCondition,
		"request_condition":  i.RequestCondition,
		"cache_condition":    i.CacheCondition,
	})
}

// CreateHeader creates a header object in the version.
func (c *Client) CreateHeader(ctx context.Context, serviceID string, version int, input *CreateHeaderInput) (*Header, error) {
	if err := c.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("fastly: invalid header input: %w", err)
	}

	var h Header
	if err := c.post(ctx, headerPath(serviceID, version, ""), input.formValues(), &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// GetHeader returns the named header object.
func (c *Client) GetHeader(ctx context.Context, serviceID string, version int, name string) (*Header, error) {
	var h Header
	if err := c.get(ctx, headerPath(serviceID, version, name), &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// UpdateHeaderInput are the fields for UpdateHeader.
type UpdateHeaderInput struct {
	Name              *string
	Destination       *string
	Source            *string
	Type              *string
	Action            *string
	Regex             *string
	Substitution      *string
	IgnoreIfSet       *bool
	Priority          *int
	ResponseCondition *string
	RequestCondition  *string
	CacheCondition    *string
}

func (i *UpdateHeaderInput) formValues() url.Values {
	return formValues(map[string]any{
		"name":               i.Name,
		"dst":                i.Destination,
		"src":                i.Source,
		"type":               i.Type,
		"action":             i.Action,
		"regex":              i.Regex,
		"substitution":       i.Substitution,
		"ignore_if_set":      i.IgnoreIfSet,
		"priority":           i.Priority,
		"response_condition": i.ResponseCondition,
		"request_condition":  i.RequestCondition,
		"cache_condition":    i.CacheCondition,
	})
}

// UpdateHeader partially updates the named header object.
func (c *Client) UpdateHeader(ctx context.Context, serviceID string, version int, name string, input *UpdateHeaderInput) (*Header, error) {
	var h Header
	if err := c.put(ctx, headerPath(serviceID, version, name), input.formValues(), &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// DeleteHeader deletes the named header object.
func (c *Client) DeleteHeader(ctx context.Context, serviceID string, version int, name string) error {
	return c.del(ctx, headerPath(serviceID, version, name))
}
