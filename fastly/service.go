package fastly

import (
	"context"
	"fmt"
	"net/url"
)

// Service is the configuration root for one site or application. A
// service owns an ordered set of versions, at most one of which is active
// at a time.
type Service struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	CustomerID    string     `json:"customer_id"`
	PublishKey    string     `json:"publish_key"`
	Comment       string     `json:"comment"`
	ActiveVersion FlexInt    `json:"active_version"`
	Versions      []*Version `json:"versions"`
}

// LatestVersion returns the version with the highest number from the
// embedded version list, or nil when the list was not populated by the
// endpoint that produced this Service.
func (s *Service) LatestVersion() *Version {
	var latest *Version
	for _, v := range s.Versions {
		if latest == nil || v.Number > latest.Number {
			latest = v
		}
	}
	return latest
}

// CurrentlyActive returns the embedded version marked active, or nil.
func (s *Service) CurrentlyActive() *Version {
	for _, v := range s.Versions {
		if v.Active.Bool() {
			return v
		}
	}
	return nil
}

// CreateServiceInput are the fields for CreateService.
type CreateServiceInput struct {
	Name       string `validate:"required"`
	CustomerID *string
	PublishKey *string
	Comment    *string
}

func (i *CreateServiceInput) formValues() url.Values {
	return formValues(map[string]any{
		"name":        i.Name,
		"customer_id": i.CustomerID,
		"publish_key": i.PublishKey,
		"comment":     i.Comment,
	})
}

// CreateService creates a service. The server creates version 1 along
// with it.
func (c *Client) CreateService(ctx context.Context, input *CreateServiceInput) (*Service, error) {
	if err := c.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("fastly: invalid service input: %w", err)
	}

	var s Service
	if err := c.post(ctx, "/service", input.formValues(), &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// ListServices returns every service visible to the caller.
func (c *Client) ListServices(ctx context.Context) ([]*Service, error) {
	services := []*Service{}
	if err := c.get(ctx, "/service", &services); err != nil {
		return nil, err
	}
	return services, nil
}

// GetService returns a service by ID.
func (c *Client) GetService(ctx context.Context, serviceID string) (*Service, error) {
	var s Service
	if err := c.get(ctx, fmt.Sprintf("/service/%s", url.PathEscape(serviceID)), &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// GetServiceDetails returns a service with its version list populated.
func (c *Client) GetServiceDetails(ctx context.Context, serviceID string) (*Service, error) {
	var s Service
	if err := c.get(ctx, fmt.Sprintf("/service/%s/details", url.PathEscape(serviceID)), &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// GetServiceByName looks a service up by its display name.
func (c *Client) GetServiceByName(ctx context.Context, name string) (*Service, error) {
	var s Service
	path := "/service/search?name=" + url.QueryEscape(name)
	if err := c.get(ctx, path, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// UpdateServiceInput are the fields for UpdateService. Service attributes
// are versionless, so no version scoping applies.
type UpdateServiceInput struct {
	Name    *string
	Comment *string
}

func (i *UpdateServiceInput) formValues() url.Values {
	return formValues(map[string]any{
		"name":    i.Name,
		"comment": i.Comment,
	})
}

// UpdateService updates a service's versionless attributes.
func (c *Client) UpdateService(ctx context.Context, serviceID string, input *UpdateServiceInput) (*Service, error) {
	var s Service
	if err := c.put(ctx, fmt.Sprintf("/service/%s", url.PathEscape(serviceID)), input.formValues(), &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// DeleteService deletes a service and all of its versions.
func (c *Client) DeleteService(ctx context.Context, serviceID string) error {
	return c.del(ctx, fmt.Sprintf("/service/%s", url.PathEscape(serviceID)))
}
