package fastly

import (
	"context"
	"fmt"
	"net/url"
)

// Condition types.
const (
	ConditionTypeRequest  = "REQUEST"
	ConditionTypeCache    = "CACHE"
	ConditionTypeResponse = "RESPONSE"
	ConditionTypeFetch    = "FETCH"
)

// Condition is a named boolean expression other configuration objects
// reference by name. The reference is free text, not a strong foreign
// key: the server validates it at activation time, not when the reference
// is written.
type Condition struct {
	ServiceID string  `json:"service_id"`
	Version   FlexInt `json:"version"`
	Name      string  `json:"name"`
	Type      string  `json:"type"`
	Statement string  `json:"statement"`
	Priority  FlexInt `json:"priority"`
	Comment   string  `json:"comment"`
}

func conditionPath(serviceID string, version int, name string) string {
	if name == "" {
		return fmt.Sprintf("/service/%s/version/%d/condition", url.PathEscape(serviceID), version)
	}
	return fmt.Sprintf("/service/%s/version/%d/condition/%s", url.PathEscape(serviceID), version, url.PathEscape(name))
}

// ListConditions returns all conditions in the version.
func (c *Client) ListConditions(ctx context.Context, serviceID string, version int) ([]*Condition, error) {
	conditions := []*Condition{}
	if err := c.get(ctx, conditionPath(serviceID, version, ""), &conditions); err != nil {
		return nil, err
	}
	return conditions, nil
}

// CreateConditionInput are the fields for CreateCondition.
type CreateConditionInput struct {
	Name      string `validate:"required"`
	Type      string `validate:"required"`
	Statement string `validate:"required"`
	Priority  *int
	Comment   *string
}

func (i *CreateConditionInput) formValues() url.Values {
	return formValues(map[string]any{
		"name":      i.Name,
		"type":      i.Type,
		"statement": i.Statement,
		"priority":  i.Priority,
		"comment":   i.Comment,
	})
}

// CreateCondition creates a condition in the version.
func (c *Client) CreateCondition(ctx context.Context, serviceID string, version int, input *CreateConditionInput) (*Condition, error) {
	if err := c.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("fastly: invalid condition input: %w", err)
	}

	var cond Condition
	if err := c.post(ctx, conditionPath(serviceID, version, ""), input.formValues(), &cond); err != nil {
		return nil, err
	}
	return &cond, nil
}

// GetCondition returns the named condition.
func (c *Client) GetCondition(ctx context.Context, serviceID string, version int, name string) (*Condition, error) {
	var cond Condition
	if err := c.get(ctx, conditionPath(serviceID, version, name), &cond); err != nil {
		return nil, err
	}
	return &cond, nil
}

// UpdateConditionInput are the fields for UpdateCondition.
type UpdateConditionInput struct {
	Name      *string
	Type      *string
	Statement *string
	Priority  *int
	Comment   *string
}

func (i *UpdateConditionInput) formValues() url.Values {
	return formValues(map[string]any{
		"name":      i.Name,
		"type":      i.Type,
		"statement": i.Statement,
		"priority":  i.Priority,
		"comment":   i.Comment,
	})
}

// UpdateCondition partially updates the named condition.
func (c *Client) UpdateCondition(ctx context.Context, serviceID string, version int, name string, input *UpdateConditionInput) (*Condition, error) {
	var cond Condition
	if err := c.put(ctx, conditionPath(serviceID, version, name), input.formValues(), &cond); err != nil {
		return nil, err
	}
	return &cond, nil
}

// DeleteCondition deletes the named condition.
func (c *Client) DeleteCondition(ctx context.Context, serviceID string, version int, name string) error {
	return c.del(ctx, conditionPath(serviceID, version, name))
}
