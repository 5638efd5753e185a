package fastly

import (
	"context"
	"fmt"
	"net/url"
)

// Domain is a domain name the service responds to. A service version can
// hold multiple domains.
type Domain struct {
	ServiceID string  `json:"service_id"`
	Version   FlexInt `json:"version"`
	Name      string  `json:"name"`
	Comment   string  `json:"comment"`
}

func domainPath(serviceID string, version int, name string) string {
	if name == "" {
		return fmt.Sprintf("/service/%s/version/%d/domain", url.PathEscape(serviceID), version)
	}
	return fmt.Sprintf("/service/%s/version/%d/domain/%s", url.PathEscape(serviceID), version, url.PathEscape(name))
}

// ListDomains returns all domains in the version.
func (c *Client) ListDomains(ctx context.Context, serviceID string, version int) ([]*Domain, error) {
	domains := []*Domain{}
	if err := c.get(ctx, domainPath(serviceID, version, ""), &domains); err != nil {
		return nil, err
	}
	return domains, nil
}

// CreateDomainInput are the fields for CreateDomain.
type CreateDomainInput struct {
	Name    string `validate:"required,fqdn"`
	Comment *string
}

func (i *CreateDomainInput) formValues() url.Values {
	return formValues(map[string]any{
		"name":    i.Name,
		"comment": i.Comment,
	})
}

// CreateDomain creates a domain in the version.
func (c *Client) CreateDomain(ctx context.Context, serviceID string, version int, input *CreateDomainInput) (*Domain, error) {
	if err := c.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("fastly: invalid domain input: %w", err)
	}

	var d Domain
	if err := c.post(ctx, domainPath(serviceID, version, ""), input.formValues(), &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// GetDomain returns the named domain.
func (c *Client) GetDomain(ctx context.Context, serviceID string, version int, name string) (*Domain, error) {
	var d Domain
	if err := c.get(ctx, domainPath(serviceID, version, name), &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// UpdateDomainInput are the fields for UpdateDomain.
type UpdateDomainInput struct {
	Name    *string
	Comment *string
}

func (i *UpdateDomainInput) formValues() url.Values {
	return formValues(map[string]any{
		"name":    i.Name,
		"comment": i.Comment,
	})
}

// UpdateDomain partially updates the named domain.
func (c *Client) UpdateDomain(ctx context.Context, serviceID string, version int, name string, input *UpdateDomainInput) (*Domain, error) {
	var d Domain
	if err := c.put(ctx, domainPath(serviceID, version, name), input.formValues(), &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// DeleteDomain deletes the named domain.
func (c *Client) DeleteDomain(ctx context.Context, serviceID string, version int, name string) error {
	return c.del(ctx, domainPath(serviceID, version, name))
}

// DomainCheck is the DNS status of one domain: the domain record, its
// current CNAME, and whether the CNAME points at the CDN.
type DomainCheck struct {
	Domain *Domain
	CName  string
	Setup  bool
}

// UnmarshalJSON implements json.Unmarshaler. The check endpoints return a
// three-element array rather than an object.
func (d *DomainCheck) UnmarshalJSON(data []byte) error {
	parts := []any{&d.Domain, &d.CName, &d.Setup}
	return unmarshalTuple(data, parts)
}

// CheckDomain checks the status of one domain's DNS record.
func (c *Client) CheckDomain(ctx context.Context, serviceID string, version int, name string) (*DomainCheck, error) {
	var check DomainCheck
	path := domainPath(serviceID, version, name) + "/check"
	if err := c.get(ctx, path, &check); err != nil {
		return nil, err
	}
	return &check, nil
}

// CheckAllDomains checks the DNS records of every domain in the version.
func (c *Client) CheckAllDomains(ctx context.Context, serviceID string, version int) ([]*DomainCheck, error) {
	checks := []*DomainCheck{}
	path := domainPath(serviceID, version, "") + "/check_all"
	if err := c.get(ctx, path, &checks); err != nil {
		return nil, err
	}
	return checks, nil
}

// ListServiceDomains lists the domains attached to any version of the
// service.
func (c *Client) ListServiceDomains(ctx context.Context, serviceID string) ([]*Domain, error) {
	domains := []*Domain{}
	path := fmt.Sprintf("/service/%s/domain", url.PathEscape(serviceID))
	if err := c.get(ctx, path, &domains); err != nil {
		return nil, err
	}
	return domains, nil
}
