package fastly

import (
	"context"
	"fmt"
	"net/url"
)

// VCL is a Varnish configuration file attached to a service version. One
// VCL per version is the main program; the rest are includes.
type VCL struct {
	ServiceID  string   `json:"service_id"`
	Version    FlexInt  `json:"version"`
	Name       string   `json:"name"`
	Content    string   `json:"content"`
	Main       FlexBool `json:"main"`
	MD5        string   `json:"md5"`
	Generation FlexInt  `json:"generation"`
}

func vclPath(serviceID string, version int, name string) string {
	if name == "" {
		return fmt.Sprintf("/service/%s/version/%d/vcl", url.PathEscape(serviceID), version)
	}
	return fmt.Sprintf("/service/%s/version/%d/vcl/%s", url.PathEscape(serviceID), version, url.PathEscape(name))
}

// ListVCLs returns all VCL files in the version.
func (c *Client) ListVCLs(ctx context.Context, serviceID string, version int) ([]*VCL, error) {
	vcls := []*VCL{}
	if err := c.get(ctx, vclPath(serviceID, version, ""), &vcls); err != nil {
		return nil, err
	}
	return vcls, nil
}

// UploadVCLInput are the fields for UploadVCL.
type UploadVCLInput struct {
	Name    string `validate:"required"`
	Content string `validate:"required"`
	Main    *bool
	Comment *string
}

func (i *UploadVCLInput) formValues() url.Values {
	return formValues(map[string]any{
		"name":    i.Name,
		"content": i.Content,
		"main":    i.Main,
		"comment": i.Comment,
	})
}

// UploadVCL uploads a new VCL file to the version.
func (c *Client) UploadVCL(ctx context.Context, serviceID string, version int, input *UploadVCLInput) (*VCL, error) {
	if err := c.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("fastly: invalid vcl input: %w", err)
	}

	var v VCL
	if err := c.post(ctx, vclPath(serviceID, version, ""), input.formValues(), &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// GetVCL returns the named VCL file. Content is included unless
// includeContent is false.
func (c *Client) GetVCL(ctx context.Context, serviceID string, version int, name string, includeContent bool) (*VCL, error) {
	include := 0
	if includeContent {
		include = 1
	}

	var v VCL
	path := fmt.Sprintf("%s?include_content=%d", vclPath(serviceID, version, name), include)
	if err := c.get(ctx, path, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// UpdateVCLInput are the fields for UpdateVCL.
type UpdateVCLInput struct {
	Name    *string
	Content *string
	Comment *string
}

func (i *UpdateVCLInput) formValues() url.Values {
	return formValues(map[string]any{
		"name":    i.Name,
		"content": i.Content,
		"comment": i.Comment,
	})
}

// UpdateVCL partially updates the named VCL file.
func (c *Client) UpdateVCL(ctx context.Context, serviceID string, version int, name string, input *UpdateVCLInput) (*VCL, error) {
	var v VCL
	if err := c.put(ctx, vclPath(serviceID, version, name), input.formValues(), &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// DeleteVCL deletes the named VCL file.
func (c *Client) DeleteVCL(ctx context.Context, serviceID string, version int, name string) error {
	return c.del(ctx, vclPath(serviceID, version, name))
}

// SetMainVCL marks the named VCL file as the version's main program.
func (c *Client) SetMainVCL(ctx context.Context, serviceID string, version int, name string) (*VCL, error) {
	var v VCL
	if err := c.put(ctx, vclPath(serviceID, version, name)+"/main", nil, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// GetGeneratedVCL returns the VCL the server generated for the version
// from its configuration objects.
func (c *Client) GetGeneratedVCL(ctx context.Context, serviceID string, version int) (*VCL, error) {
	var v VCL
	path := fmt.Sprintf("/service/%s/version/%d/generated_vcl", url.PathEscape(serviceID), version)
	if err := c.get(ctx, path, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// vclContent is the payload of the syntax-highlighted content endpoints.
type vclContent struct {
	Content string `json:"content"`
}

// GetVCLHTML returns the named VCL file's content with HTML syntax
// highlighting, for embedding in a UI.
func (c *Client) GetVCLHTML(ctx context.Context, serviceID string, version int, name string) (string, error) {
	var out vclContent
	if err := c.get(ctx, vclPath(serviceID, version, name)+"/content", &out); err != nil {
		return "", err
	}
	return out.Content, nil
}

// GetGeneratedVCLHTML returns the generated VCL's content with HTML
// syntax highlighting.
func (c *Client) GetGeneratedVCLHTML(ctx context.Context, serviceID string, version int) (string, error) {
	var out vclContent
	path := fmt.Sprintf("/service/%s/version/%d/generated_vcl/content", url.PathEscape(serviceID), version)
	if err := c.get(ctx, path, &out); err != nil {
		return "", err
	}
	return out.Content, nil
}
