package fastly

import (
	"context"
	"fmt"
	"net/url"
)

// Syslog streams request logs to a remote endpoint in the configured
// format.
type Syslog struct {
	ServiceID         string   `json:"service_id"`
	Version           FlexInt  `json:"version"`
	Name              string   `json:"name"`
	Address           string   `json:"address"`
	Port              FlexInt  `json:"port"`
	UseTLS            FlexBool `json:"use_tls"`
	TLSCACert         string   `json:"tls_ca_cert"`
	Token             string   `json:"token"`
	Format            string   `json:"format"`
	ResponseCondition string   `json:"response_condition"`
	CreatedAt         string   `json:"created"`
	UpdatedAt         string   `json:"updated"`
	DeletedAt         string   `json:"deleted"`
}

func syslogPath(serviceID string, version int, name string) string {
	if name == "" {
		return fmt.Sprintf("/service/%s/version/%d/syslog", url.PathEscape(serviceID), version)
	}
	return fmt.Sprintf("/service/%s/version/%d/syslog/%s", url.PathEscape(serviceID), version, url.PathEscape(name))
}

// ListSyslogs returns all syslog endpoints in the version.
func (c *Client) ListSyslogs(ctx context.Context, serviceID string, version int) ([]*Syslog, error) {
	syslogs := []*Syslog{}
	if err := c.get(ctx, syslogPath(serviceID, version, ""), &syslogs); err != nil {
		return nil, err
	}
	return syslogs, nil
}

// CreateSyslogInput are the fields for CreateSyslog.
type CreateSyslogInput struct {
	Name              string `validate:"required"`
	Address           string `validate:"required"`
	Port              *int
	UseTLS            *bool
	TLSCACert         *string
	Token             *string
	Format            *string
	ResponseCondition *string
}

func (i *CreateSyslogInput) formValues() url.Values {
	return formValues(map[string]any{
		"name":               i.Name,
		"address":            i.Address,
		"port":               i.Port,
		"use_tls":            i.UseTLS,
		"tls_ca_cert":        i.TLSCACert,
		"token":              i.Token,
		"format":             i.Format,
		"response_condition": i.ResponseCondition,
	})
}

// CreateSyslog creates a syslog endpoint in the version.
func (c *Client) CreateSyslog(ctx context.Context, serviceID string, version int, input *CreateSyslogInput) (*Syslog, error) {
	if err := c.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("fastly: invalid syslog input: %w", err)
	}

	var s Syslog
	if err := c.post(ctx, syslogPath(serviceID, version, ""), input.formValues(), &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// GetSyslog returns the named syslog endpoint.
func (c *Client) GetSyslog(ctx context.Context, serviceID string, version int, name string) (*Syslog, error) {
	var s Syslog
	if err := c.get(ctx, syslogPath(serviceID, version, name), &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// UpdateSyslogInput are the fields for UpdateSyslog.
type UpdateSyslogInput struct {
	Name              *string
	Address           *string
	Port              *int
	UseTLS            *bool
	TLSCACert         *string
	Token             *string
	Format            *string
	ResponseCondition *string
}

func (i *UpdateSyslogInput) formValues() url.Values {
	return formValues(map[string]any{
		"name":               i.Name,
		"address":            i.Address,
		"port":               i.Port,
		"use_tls":            i.UseTLS,
		"tls_ca_cert":        i.TLSCACert,
		"token":              i.Token,
		"format":             i.Format,
		"response_condition": i.ResponseCondition,
	})
}

// UpdateSyslog partially updates the named syslog endpoint.
func (c *Client) UpdateSyslog(ctx context.Context, serviceID string, version int, name string, input *UpdateSyslogInput) (*Syslog, error) {
	var s Syslog
	if err := c.put(ctx, syslogPath(serviceID, version, name), input.formValues(), &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// DeleteSyslog deletes the named syslog endpoint.
func (c *Client) DeleteSyslog(ctx context.Context, serviceID string, version int, name string) error {
	return c.del(ctx, syslogPath(serviceID, version, name))
}
