package fastly

import (
	"context"
	"fmt"
	"net/url"
)

// Cache settings actions.
const (
	CacheSettingsActionCache   = "cache"
	CacheSettingsActionPass    = "pass"
	CacheSettingsActionRestart = "restart"
)

// CacheSettings controls how long content persists in the cache. Combined
// with a cache condition it gives fine-grained control per request class.
type CacheSettings struct {
	ServiceID      string  `json:"service_id"`
	Version        FlexInt `json:"version"`
	Name           string  `json:"name"`
	Action         string  `json:"action"`
	TTL            FlexInt `json:"ttl"`
	StaleTTL       FlexInt `json:"stale_ttl"`
	CacheCondition string  `json:"cache_condition"`
}

func cacheSettingsPath(serviceID string, version int, name string) string {
	if name == "" {
		return fmt.Sprintf("/service/%s/version/%d/cache_settings", url.PathEscape(serviceID), version)
	}
	return fmt.Sprintf("/service/%s/version/%d/cache_settings/%s", url.PathEscape(serviceID), version, url.PathEscape(name))
}

// ListCacheSettings returns all cache settings objects in the version.
func (c *Client) ListCacheSettings(ctx context.Context, serviceID string, version int) ([]*CacheSettings, error) {
	settings := []*CacheSettings{}
	if err := c.get(ctx, cacheSettingsPath(serviceID, version, ""), &settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// CreateCacheSettingsInput are the fields for CreateCacheSettings.
type CreateCacheSettingsInput struct {
	Name           string `validate:"required"`
	Action         string `validate:"required,oneof=cache pass restart"`
	TTL            *int
	StaleTTL       *int
	CacheCondition *string
}

func (i *CreateCacheSettingsInput) formValues() url.Values {
	return formValues(map[string]any{
		"name":            i.Name,
		"action":          i.Action,
		"ttl":             i.TTL,
		"stale_ttl":       i.StaleTTL,
		"cache_condition": i.CacheCondition,
	})
}

// CreateCacheSettings creates a cache settings object in the version.
func (c *Client) CreateCacheSettings(ctx context.Context, serviceID string, version int, input *CreateCacheSettingsInput) (*CacheSettings, error) {
	if err := c.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("fastly: invalid cache settings input: %w", err)
	}

	var cs CacheSettings
	if err := c.post(ctx, cacheSettingsPath(serviceID, version, ""), input.formValues(), &cs); err != nil {
		return nil, err
	}
	return &cs, nil
}

// GetCacheSettings returns the named cache settings object.
func (c *Client) GetCacheSettings(ctx context.Context, serviceID string, version int, name string) (*CacheSettings, error) {
	var cs CacheSettings
	if err := c.get(ctx, cacheSettingsPath(serviceID, version, name), &cs); err != nil {
		return nil, err
	}
	return &cs, nil
}

// UpdateCacheSettingsInput are the fields for UpdateCacheSettings.
type UpdateCacheSettingsInput struct {
	Name           *string
	Action         *string
	TTL            *int
	StaleTTL       *int
	CacheCondition *string
}

func (i *UpdateCacheSettingsInput) formValues() url.Values {
	return formValues(map[string]any{
		"name":            i.Name,
		"action":          i.Action,
		"ttl":             i.TTL,
		"stale_ttl":       i.StaleTTL,
		"cache_condition": i.CacheCondition,
	})
}

// UpdateCacheSettings partially updates the named cache settings object.
func (c *Client) UpdateCacheSettings(ctx context.Context, serviceID string, version int, name string, input *UpdateCacheSettingsInput) (*CacheSettings, error) {
	var cs CacheSettings
	if err := c.put(ctx, cacheSettingsPath(serviceID, version, name), input.formValues(), &cs); err != nil {
		return nil, err
	}
	return &cs, nil
}

// DeleteCacheSettings deletes the named cache settings object.
func (c *Client) DeleteCacheSettings(ctx context.Context, serviceID string, version int, name string) error {
	return c.del(ctx, cacheSettingsPath(serviceID, version, name))
}
