package fastly

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// Customer is the account-level entity that owns users and services.
type Customer struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	OwnerID           string   `json:"owner_id"`
	PricingPlan       string   `json:"pricing_plan"`
	RawAPIKey         string   `json:"raw_api_key"`
	CanUploadVCL      FlexBool `json:"can_upload_vcl"`
	CanStreamSyslog   FlexBool `json:"can_stream_syslog"`
	CanEditMatches    FlexBool `json:"can_edit_matches"`
	CanResetPasswords FlexBool `json:"can_reset_passwords"`
	HasConfigPanel    FlexBool `json:"has_config_panel"`
	HasBillingPanel   FlexBool `json:"has_billing_panel"`
	CreatedAt         string   `json:"created_at"`
	UpdatedAt         string   `json:"updated_at"`
}

// GetCurrentCustomer returns the customer that owns the session.
func (c *Client) GetCurrentCustomer(ctx context.Context) (*Customer, error) {
	var cust Customer
	if err := c.get(ctx, "/current_customer", &cust); err != nil {
		return nil, err
	}
	return &cust, nil
}

// GetCustomer returns a customer by ID.
func (c *Client) GetCustomer(ctx context.Context, customerID string) (*Customer, error) {
	var cust Customer
	if err := c.get(ctx, fmt.Sprintf("/customer/%s", url.PathEscape(customerID)), &cust); err != nil {
		return nil, err
	}
	return &cust, nil
}

// GetCustomerDetails returns the customer together with its owner and
// billing contact. The contact shape varies by account so it is returned
// raw.
func (c *Client) GetCustomerDetails(ctx context.Context, customerID string) (json.RawMessage, error) {
	return c.do(ctx, "GET", fmt.Sprintf("/customer/details/%s", url.PathEscape(customerID)), requestOptions{})
}

// ListCustomerUsers returns all users belonging to the customer.
func (c *Client) ListCustomerUsers(ctx context.Context, customerID string) ([]*User, error) {
	users := []*User{}
	if err := c.get(ctx, fmt.Sprintf("/customer/users/%s", url.PathEscape(customerID)), &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateCustomerInput are the fields for UpdateCustomer.
type UpdateCustomerInput struct {
	Name    *string
	OwnerID *string
}

func (i *UpdateCustomerInput) formValues() url.Values {
	return formValues(map[string]any{
		"name":     i.Name,
		"owner_id": i.OwnerID,
	})
}

// UpdateCustomer updates a customer. Requires a full session.
func (c *Client) UpdateCustomer(ctx context.Context, customerID string, input *UpdateCustomerInput) (*Customer, error) {
	var cust Customer
	if err := c.put(ctx, fmt.Sprintf("/customer/%s", url.PathEscape(customerID)), input.formValues(), &cust); err != nil {
		return nil, err
	}
	return &cust, nil
}

// DeleteCustomer deletes a customer. Requires a full session.
func (c *Client) DeleteCustomer(ctx context.Context, customerID string) error {
	return c.del(ctx, fmt.Sprintf("/customer/%s", url.PathEscape(customerID)))
}
