package fastly

import (
	"context"
	"fmt"
	"net/url"
)

// Request setting actions.
const (
	RequestSettingActionLookup = "lookup"
	RequestSettingActionPass   = "pass"
)

// X-Forwarded-For handling modes.
const (
	ForwardedForClear     = "clear"
	ForwardedForLeave     = "leave"
	ForwardedForAppend    = "append"
	ForwardedForAppendAll = "append_all"
	ForwardedForOverwrite = "overwrite"
)

// RequestSetting customises request handling, typically gated by a
// request condition.
type RequestSetting struct {
	ServiceID        string   `json:"service_id"`
	Version          FlexInt  `json:"version"`
	Name             string   `json:"name"`
	DefaultHost      string   `json:"default_host"`
	ForceMiss        FlexBool `json:"force_miss"`
	ForceSSL         FlexBool `json:"force_ssl"`
	Action           string   `json:"action"`
	BypassBusyWait   FlexBool `json:"bypass_busy_wait"`
	MaxStaleAge      FlexInt  `json:"max_stale_age"`
	HashKeys         string   `json:"hash_keys"`
	XForwardedFor    string   `json:"xff"`
	TimerSupport     FlexBool `json:"timer_support"`
	GeoHeaders       FlexBool `json:"geo_headers"`
	RequestCondition string   `json:"request_condition"`
}

func requestSettingPath(serviceID string, version int, name string) string {
	if name == "" {
		return fmt.Sprintf("/service/%s/version/%d/request_settings", url.PathEscape(serviceID), version)
	}
	return fmt.Sprintf("/service/%s/version/%d/request_settings/%s", url.PathEscape(serviceID), version, url.PathEscape(name))
}

// ListRequestSettings returns all request settings objects in the
// version.
func (c *Client) ListRequestSettings(ctx context.Context, serviceID string, version int) ([]*RequestSetting, error) {
	settings := []*RequestSetting{}
	if err := c.get(ctx, requestSettingPath(serviceID, version, ""), &settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// CreateRequestSettingInput are the fields for CreateRequestSetting.
type CreateRequestSettingInput struct {
	Name             string `validate:"required"`
	DefaultHost      *string
	ForceMiss        *bool
	ForceSSL         *bool
	Action           *string
	BypassBusyWait   *bool
	MaxStaleAge      *int
	HashKeys         *string
	XForwardedFor    *string
	TimerSupport     *bool
	GeoHeaders       *bool
	RequestCondition *string
}

func (i *CreateRequestSettingInput) formValues() url.Values {
	return formValues(map[string]any{
		"name":              i.Name,
		"default_host":      i.DefaultHost,
		"force_miss":        i.ForceMiss,
		"force_ssl":         i.ForceSSL,
		"action":            i.Action,
		"bypass_busy_wait":  i.BypassBusyWait,
		"max_stale_age":     i.MaxStaleAge,
		"hash_keys":         i.HashKeys,
		"xff":               i.XForwardedFor,
		"timer_support":     i.TimerSupport,
		"geo_headers":       i.GeoHeaders,
		"request_condition": i.RequestCondition,
	})
}

// CreateRequestSetting creates a request settings object in the version.
func (c *Client) CreateRequestSetting(ctx context.Context, serviceID string, version int, input *CreateRequestSettingInput) (*RequestSetting, error) {
	if err := c.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("fastly: invalid request setting input: %w", err)
	}

	var rs RequestSetting
	if err := c.post(ctx, requestSettingPath(serviceID, version, ""), input.formValues(), &rs); err != nil {
		return nil, err
	}
	return &rs, nil
}

// GetRequestSetting returns the named request settings object.
func (c *Client) GetRequestSetting(ctx context.Context, serviceID string, version int, name string) (*RequestSetting, error) {
	var rs RequestSetting
	if err := c.get(ctx, requestSettingPath(serviceID, version, name), &rs); err != nil {
		return nil, err
	}
	return &rs, nil
}

// UpdateRequestSettingInput are the fields for UpdateRequestSetting.
type UpdateRequestSettingInput struct {
	Name             *string
	DefaultHost      *string
	ForceMiss        *bool
	ForceSSL         *bool
	Action           *string
	BypassBusyWait   *bool
	MaxStaleAge      *int
	HashKeys         *string
	XForwardedFor    *string
	TimerSupport     *bool
	GeoHeaders       *bool
	RequestCondition *string
}

func (i *UpdateRequestSettingInput) formValues() url.Values {
	return formValues(map[string]any{
		"name":              i.Name,
		"default_host":      i.DefaultHost,
		"force_miss":        i.ForceMiss,
		"force_ssl":         i.ForceSSL,
		"action":            i.Action,
		"bypass_busy_wait":  i.BypassBusyWait,
		"max_stale_age":     i.MaxStaleAge,
		"hash_keys":         i.HashKeys,
		"xff":               i.XForwardedFor,
		"timer_support":     i.TimerSupport,
		"geo_headers":       i.GeoHeaders,
		"request_condition": i.RequestCondition,
	})
}

// UpdateRequestSetting partially updates the named request settings
// object.
func (c *Client) UpdateRequestSetting(ctx context.Context, serviceID string, version int, name string, input *UpdateRequestSettingInput) (*RequestSetting, error) {
	var rs RequestSetting
	if err := c.put(ctx, requestSettingPath(serviceID, version, name), input.formValues(), &rs); err != nil {
		return nil, err
	}
	return &rs, nil
}

// DeleteRequestSetting deletes the named request settings object.
func (c *Client) DeleteRequestSetting(ctx context.Context, serviceID string, version int, name string) error {
	return c.del(ctx, requestSettingPath(serviceID, version, name))
}
