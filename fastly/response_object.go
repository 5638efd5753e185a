package fastly

import (
	"context"
	"fmt"
	"net/url"
)

// ResponseObject is a synthetic response served entirely from the edge,
// typically an error or maintenance page, usually gated by a condition.
type ResponseObject struct {
	ServiceID        string  `json:"service_id"`
	Version          FlexInt `json:"version"`
	Name             string  `json:"name"`
	Status           FlexInt `json:"status"`
	Response         string  `json:"response"`
	Content          string  `json:"content"`
	CacheCondition   string  `json:"cache_condition"`
	RequestCondition string  `json:"request_condition"`
}

func responseObjectPath(serviceID string, version int, name string) string {
	if name == "" {
		return fmt.Sprintf("/service/%s/version/%d/response_object", url.PathEscape(serviceID), version)
	}
	return fmt.Sprintf("/service/%s/version/%d/response_object/%s", url.PathEscape(serviceID), version, url.PathEscape(name))
}

// ListResponseObjects returns all response objects in the version.
func (c *Client) ListResponseObjects(ctx context.Context, serviceID string, version int) ([]*ResponseObject, error) {
	objects := []*ResponseObject{}
	if err := c.get(ctx, responseObjectPath(serviceID, version, ""), &objects); err != nil {
		return nil, err
	}
	return objects, nil
}

// CreateResponseObjectInput are the fields for CreateResponseObject.
type CreateResponseObjectInput struct {
	Name             string `validate:"required"`
	Status           *int
	Response         *string
	Content          *string
	CacheCondition   *string
	RequestCondition *string
}

func (i *CreateResponseObjectInput) formValues() url.Values {
	return formValues(map[string]any{
		"name":              i.Name,
		"status":            i.Status,
		"response":          i.Response,
		"content":           i.Content,
		"cache_condition":   i.CacheCondition,
		"request_condition": i.RequestCondition,
	})
}

// CreateResponseObject creates a response object in the version.
func (c *Client) CreateResponseObject(ctx context.Context, serviceID string, version int, input *CreateResponseObjectInput) (*ResponseObject, error) {
	if err := c.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("fastly: invalid response object input: %w", err)
	}

	var ro ResponseObject
	if err := c.post(ctx, responseObjectPath(serviceID, version, ""), input.formValues(), &ro); err != nil {
		return nil, err
	}
	return &ro, nil
}

// GetResponseObject returns the named response object.
func (c *Client) GetResponseObject(ctx context.Context, serviceID string, version int, name string) (*ResponseObject, error) {
	var ro ResponseObject
	if err := c.get(ctx, responseObjectPath(serviceID, version, name), &ro); err != nil {
		return nil, err
	}
	return &ro, nil
}

// UpdateResponseObjectInput are the fields for UpdateResponseObject.
type UpdateResponseObjectInput struct {
	Name             *string
	Status           *int
	Response         *string
	Content          *string
	CacheCondition   *string
	RequestCondition *string
}

func (i *UpdateResponseObjectInput) formValues() url.Values {
	return formValues(map[string]any{
		"name":              i.Name,
		"status":            i.Status,
		"response":          i.Response,
		"content":           i.Content,
		"cache_condition":   i.CacheCondition,
		"request_condition": i.RequestCondition,
	})
}

// UpdateResponseObject partially updates the named response object.
func (c *Client) UpdateResponseObject(ctx context.Context, serviceID string, version int, name string, input *UpdateResponseObjectInput) (*ResponseObject, error) {
	var ro ResponseObject
	if err := c.put(ctx, responseObjectPath(serviceID, version, name), input.formValues(), &ro); err != nil {
		return nil, err
	}
	return &ro, nil
}

// DeleteResponseObject deletes the named response object.
func (c *Client) DeleteResponseObject(ctx context.Context, serviceID string, version int, name string) error {
	return c.del(ctx, responseObjectPath(serviceID, version, name))
}
