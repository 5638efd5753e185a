package fastly

import (
	"context"
	"fmt"
	"net/url"
)

// Settings are the per-version defaults applied when no more specific
// configuration object matches a request.
type Settings struct {
	ServiceID    string   `json:"service_id"`
	Version      FlexInt  `json:"version"`
	DefaultHost  string   `json:"general.default_host"`
	DefaultTTL   FlexInt  `json:"general.default_ttl"`
	StaleIfError FlexBool `json:"general.stale_if_error"`
}

func settingsPath(serviceID string, version int) string {
	return fmt.Sprintf("/service/%s/version/%d/settings", url.PathEscape(serviceID), version)
}

// GetSettings returns the version's default settings.
func (c *Client) GetSettings(ctx context.Context, serviceID string, version int) (*Settings, error) {
	var s Settings
	if err := c.get(ctx, settingsPath(serviceID, version), &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// UpdateSettingsInput are the fields for UpdateSettings.
type UpdateSettingsInput struct {
	DefaultHost  *string
	DefaultTTL   *int
	StaleIfError *bool
}

func (i *UpdateSettingsInput) formValues() url.Values {
	return formValues(map[string]any{
		"general.default_host":   i.DefaultHost,
		"general.default_ttl":    i.DefaultTTL,
		"general.stale_if_error": i.StaleIfError,
	})
}

// UpdateSettings updates the version's default settings.
func (c *Client) UpdateSettings(ctx context.Context, serviceID string, version int, input *UpdateSettingsInput) (*Settings, error) {
	var s Settings
	if err := c.put(ctx, settingsPath(serviceID, version), input.formValues(), &s); err != nil {
		return nil, err
	}
	return &s, nil
}
