package fastly

import (
	"context"
	"fmt"
	"net/url"
)

// Director balancing strategies.
const (
	DirectorTypeRandom     = 1
	DirectorTypeRoundRobin = 2
	DirectorTypeHash       = 3
	DirectorTypeClient     = 4
)

// Director balances requests among a group of backends. The quorum
// setting determines when the director as a whole counts as up, avoiding
// flapping while servers recover from an outage.
type Director struct {
	ServiceID string  `json:"service_id"`
	Version   FlexInt `json:"version"`
	Name      string  `json:"name"`
	Quorum    FlexInt `json:"quorum"`
	Type      FlexInt `json:"type"`
	Retries   FlexInt `json:"retries"`
	Shield    string  `json:"shield"`
	Capacity  FlexInt `json:"capacity"`
	Comment   string  `json:"comment"`
	CreatedAt string  `json:"created"`
	UpdatedAt string  `json:"updated"`
	DeletedAt string  `json:"deleted"`
}

func directorPath(serviceID string, version int, name string) string {
	if name == "" {
		return fmt.Sprintf("/service/%s/version/%d/director", url.PathEscape(serviceID), version)
	}
	return fmt.Sprintf("/service/%s/version/%d/director/%s", url.PathEscape(serviceID), version, url.PathEscape(name))
}

// ListDirectors returns all directors in the version.
func (c *Client) ListDirectors(ctx context.Context, serviceID string, version int) ([]*Director, error) {
	directors := []*Director{}
	if err := c.get(ctx, directorPath(serviceID, version, ""), &directors); err != nil {
		return nil, err
	}
	return directors, nil
}

// CreateDirectorInput are the fields for CreateDirector.
type CreateDirectorInput struct {
	Name    string `validate:"required"`
	Quorum  *int
	Type    *int
	Retries *int
	Shield  *string
	Comment *string
}

func (i *CreateDirectorInput) formValues() url.Values {
	return formValues(map[string]any{
		"name":    i.Name,
		"quorum":  i.Quorum,
		"type":    i.Type,
		"retries": i.Retries,
		"shield":  i.Shield,
		"comment": i.Comment,
	})
}

// CreateDirector creates a director in the version.
func (c *Client) CreateDirector(ctx context.Context, serviceID string, version int, input *CreateDirectorInput) (*Director, error) {
	if err := c.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("fastly: invalid director input: %w", err)
	}

	var d Director
	if err := c.post(ctx, directorPath(serviceID, version, ""), input.formValues(), &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// GetDirector returns the named director.
func (c *Client) GetDirector(ctx context.Context, serviceID string, version int, name string) (*Director, error) {
	var d Director
	if err := c.get(ctx, directorPath(serviceID, version, name), &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// UpdateDirectorInput are the fields for UpdateDirector.
type UpdateDirectorInput struct {
	Name    *string
	Quorum  *int
	Type    *int
	Retries *int
	Shield  *string
	Comment *string
}

func (i *UpdateDirectorInput) formValues() url.Values {
	return formValues(map[string]any{
		"name":    i.Name,
		"quorum":  i.Quorum,
		"type":    i.Type,
		"retries": i.Retries,
		"shield":  i.Shield,
		"comment": i.Comment,
	})
}

// UpdateDirector partially updates the named director.
func (c *Client) UpdateDirector(ctx context.Context, serviceID string, version int, name string, input *UpdateDirectorInput) (*Director, error) {
	var d Director
	if err := c.put(ctx, directorPath(serviceID, version, name), input.formValues(), &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// DeleteDirector deletes the named director.
func (c *Client) DeleteDirector(ctx context.Context, serviceID string, version int, name string) error {
	return c.del(ctx, directorPath(serviceID, version, name))
}

// DirectorBackend is the membership of one backend in one director. A
// backend can belong to any number of directors, but a director holds at
// most one reference to a given backend.
type DirectorBackend struct {
	ServiceID string  `json:"service_id"`
	Version   FlexInt `json:"version"`
	Director  string  `json:"director"`
	Backend   string  `json:"backend"`
	CreatedAt string  `json:"created"`
	UpdatedAt string  `json:"updated"`
	DeletedAt string  `json:"deleted"`
}

func directorBackendPath(serviceID string, version int, director, backend string) string {
	return fmt.Sprintf("/service/%s/version/%d/director/%s/backend/%s",
		url.PathEscape(serviceID), version, url.PathEscape(director), url.PathEscape(backend))
}

// CreateDirectorBackend makes the backend a member of the director so
// traffic can be balanced onto it.
func (c *Client) CreateDirectorBackend(ctx context.Context, serviceID string, version int, director, backend string) (*DirectorBackend, error) {
	var db DirectorBackend
	if err := c.post(ctx, directorBackendPath(serviceID, version, director, backend), nil, &db); err != nil {
		return nil, err
	}
	return &db, nil
}

// GetDirectorBackend returns the membership record for the pair, or a
// NotFoundError when the backend is not a member of the director.
func (c *Client) GetDirectorBackend(ctx context.Context, serviceID string, version int, director, backend string) (*DirectorBackend, error) {
	var db DirectorBackend
	if err := c.get(ctx, directorBackendPath(serviceID, version, director, backend), &db); err != nil {
		return nil, err
	}
	return &db, nil
}

// DeleteDirectorBackend removes the backend from the director.
func (c *Client) DeleteDirectorBackend(ctx context.Context, serviceID string, version int, director, backend string) error {
	return c.del(ctx, directorBackendPath(serviceID, version, director, backend))
}
