package fastly

import (
	"context"
	"fmt"
	"net/url"
)

// User roles.
const (
	RoleUser      = "user"
	RoleBilling   = "billing"
	RoleEngineer  = "engineer"
	RoleSuperuser = "superuser"
)

// User is an account that can log into the control panel and API.
type User struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Login              string   `json:"login"`
	Role               string   `json:"role"`
	CustomerID         string   `json:"customer_id"`
	EmailHash          string   `json:"email_hash"`
	RequireNewPassword FlexBool `json:"require_new_password"`
	CreatedAt          string   `json:"created_at"`
	UpdatedAt          string   `json:"updated_at"`
}

// GetCurrentUser returns the logged-in user.
func (c *Client) GetCurrentUser(ctx context.Context) (*User, error) {
	var u User
	if err := c.get(ctx, "/current_user", &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUser returns a user by ID.
func (c *Client) GetUser(ctx context.Context, userID string) (*User, error) {
	var u User
	if err := c.get(ctx, fmt.Sprintf("/user/%s", url.PathEscape(userID)), &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUserInput are the fields for CreateUser.
type CreateUserInput struct {
	CustomerID         string `validate:"required"`
	Name               string `validate:"required"`
	Login              string `validate:"required"`
	Password           string `validate:"required"`
	Role               *string
	RequireNewPassword *bool
}

func (i *CreateUserInput) formValues() url.Values {
	return formValues(map[string]any{
		"customer_id":          i.CustomerID,
		"name":                 i.Name,
		"login":                i.Login,
		"password":             i.Password,
		"role":                 i.Role,
		"require_new_password": i.RequireNewPassword,
	})
}

// CreateUser creates a user. Requires a full session.
func (c *Client) CreateUser(ctx context.Context, input *CreateUserInput) (*User, error) {
	if err := c.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("fastly: invalid user input: %w", err)
	}

	var u User
	if err := c.post(ctx, "/user", input.formValues(), &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateUserInput are the fields for UpdateUser.
type UpdateUserInput struct {
	Name  *string
	Login *string
	Role  *string
}

func (i *UpdateUserInput) formValues() url.Values {
	return formValues(map[string]any{
		"name":  i.Name,
		"login": i.Login,
		"role":  i.Role,
	})
}

// UpdateUser updates a user. Requires a full session.
func (c *Client) UpdateUser(ctx context.Context, userID string, input *UpdateUserInput) (*User, error) {
	var u User
	if err := c.put(ctx, fmt.Sprintf("/user/%s", url.PathEscape(userID)), input.formValues(), &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// DeleteUser deletes a user. Requires a full session.
func (c *Client) DeleteUser(ctx context.Context, userID string) error {
	return c.del(ctx, fmt.Sprintf("/user/%s", url.PathEscape(userID)))
}

// ChangePassword updates the logged-in user's password.
func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) (*User, error) {
	form := url.Values{}
	form.Set("old_password", oldPassword)
	form.Set("password", newPassword)

	var u User
	if err := c.post(ctx, "/current_user/password", form, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// RequestPasswordReset triggers a password reset email for the user.
func (c *Client) RequestPasswordReset(ctx context.Context, userID string) (*User, error) {
	var u User
	path := fmt.Sprintf("/user/%s/password/request_reset", url.PathEscape(userID))
	if err := c.post(ctx, path, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
