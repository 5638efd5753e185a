package fastly

import (
	"context"
	"fmt"
	"net/url"
)

// Version is a snapshot of a service's configuration. A version is
// mutable while in draft, and becomes immutable once activated (or
// explicitly locked). Version numbers are assigned by the server and are
// strictly increasing per service.
type Version struct {
	Number    FlexInt  `json:"number"`
	ServiceID string   `json:"service_id"`
	Active    FlexBool `json:"active"`
	Locked    FlexBool `json:"locked"`
	Deployed  FlexBool `json:"deployed"`
	Staging   FlexBool `json:"staging"`
	Testing   FlexBool `json:"testing"`
	Comment   string   `json:"comment"`
	CreatedAt string   `json:"created_at"`
	UpdatedAt string   `json:"updated_at"`
	DeletedAt string   `json:"deleted_at"`
}

// Mutable reports whether the version can still be edited directly.
func (v *Version) Mutable() bool {
	return !v.Locked.Bool() && !v.Active.Bool()
}

// ListVersions returns every version of the service, as returned by the
// server (ordered by number).
func (c *Client) ListVersions(ctx context.Context, serviceID string) ([]*Version, error) {
	versions := []*Version{}
	path := fmt.Sprintf("/service/%s/version", url.PathEscape(serviceID))
	if err := c.get(ctx, path, &versions); err != nil {
		return nil, err
	}
	return versions, nil
}

// GetVersion returns a single version of the service.
func (c *Client) GetVersion(ctx context.Context, serviceID string, version int) (*Version, error) {
	var v Version
	path := fmt.Sprintf("/service/%s/version/%d", url.PathEscape(serviceID), version)
	if err := c.get(ctx, path, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// CreateVersionInput are the optional fields for CreateVersion.
type CreateVersionInput struct {
	Comment *string
}

// CreateVersion creates a new empty version for the service.
func (c *Client) CreateVersion(ctx context.Context, serviceID string, input *CreateVersionInput) (*Version, error) {
	form := url.Values{}
	if input != nil {
		form = formValues(map[string]any{
			"comment": input.Comment,
		})
	}

	var v Version
	path := fmt.Sprintf("/service/%s/version", url.PathEscape(serviceID))
	if err := c.post(ctx, path, form, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// UpdateVersionInput are the fields for UpdateVersion.
type UpdateVersionInput struct {
	Comment *string
}

// UpdateVersion updates a version's metadata (its comment). Configuration
// objects are updated through their own operations.
func (c *Client) UpdateVersion(ctx context.Context, serviceID string, version int, input *UpdateVersionInput) (*Version, error) {
	form := url.Values{}
	if input != nil {
		form = formValues(map[string]any{
			"comment": input.Comment,
		})
	}

	var v Version
	path := fmt.Sprintf("/service/%s/version/%d", url.PathEscape(serviceID), version)
	if err := c.put(ctx, path, form, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// CloneVersion asks the server to create a new version inheriting the
// given version's configuration. The clone has a strictly greater number
// and is neither locked nor active.
func (c *Client) CloneVersion(ctx context.Context, serviceID string, version int) (*Version, error) {
	var v Version
	path := fmt.Sprintf("/service/%s/version/%d/clone", url.PathEscape(serviceID), version)
	if err := c.put(ctx, path, nil, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// ActivateVersion marks the version active. The server atomically
// deactivates whichever version was previously active, so at most one
// version per service serves traffic. A server-side configuration
// validation failure surfaces as a ValidationError; call ValidateVersion
// first when the configuration is large or exploratory.
func (c *Client) ActivateVersion(ctx context.Context, serviceID string, version int) (*Version, error) {
	var v Version
	path := fmt.Sprintf("/service/%s/version/%d/activate", url.PathEscape(serviceID), version)
	if err := c.put(ctx, path, nil, &v); err != nil {
		if api, ok := statusOf(err); ok && api.StatusCode == 400 {
			return nil, &ValidationError{*api}
		}
		return nil, err
	}
	return &v, nil
}

// DeactivateVersion clears the version's active flag. The version remains
// locked.
func (c *Client) DeactivateVersion(ctx context.Context, serviceID string, version int) (*Version, error) {
	var v Version
	path := fmt.Sprintf("/service/%s/version/%d/deactivate", url.PathEscape(serviceID), version)
	if err := c.put(ctx, path, nil, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// ValidateVersion runs server-side validation of the version's
// configuration, surfacing a failed validation as a ValidationError.
// Errors about the request itself (unknown service or version, expired
// session) keep their own class.
func (c *Client) ValidateVersion(ctx context.Context, serviceID string, version int) error {
	var status statusResponse
	path := fmt.Sprintf("/service/%s/version/%d/validate", url.PathEscape(serviceID), version)
	if err := c.get(ctx, path, &status); err != nil {
		if api, ok := statusOf(err); ok && api.StatusCode == 400 {
			return &ValidationError{*api}
		}
		return err
	}
	if err := status.check(); err != nil {
		api, _ := statusOf(err)
		return &ValidationError{*api}
	}
	return nil
}

// LockVersion locks the version against further edits without activating
// it. Requires a full session.
func (c *Client) LockVersion(ctx context.Context, serviceID string, version int) error {
	var status statusResponse
	path := fmt.Sprintf("/service/%s/version/%d/lock", url.PathEscape(serviceID), version)
	if err := c.get(ctx, path, &status); err != nil {
		return err
	}
	return status.check()
}

// DeleteVersion deletes a version. This is a privileged, rarely supported
// operation with no defined rollback.
func (c *Client) DeleteVersion(ctx context.Context, serviceID string, version int) error {
	path := fmt.Sprintf("/service/%s/version/%d", url.PathEscape(serviceID), version)
	return c.del(ctx, path)
}

// GetLatestVersion returns the version with the highest number. A valid
// service always has at least one version; a service with none yields a
// NotFoundError.
func (c *Client) GetLatestVersion(ctx context.Context, serviceID string) (*Version, error) {
	versions, err := c.ListVersions(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if len(versions) == 0 {
		return nil, &NotFoundError{APIError{
			StatusCode: 404,
			Msg:        fmt.Sprintf("service %s has no versions", serviceID),
		}}
	}

	latest := versions[0]
	for _, v := range versions[1:] {
		if v.Number > latest.Number {
			latest = v
		}
	}
	return latest, nil
}

// EnsureMutable guarantees the returned version can be edited. A draft
// version is returned unchanged (calling twice on the same draft is a
// no-op); a locked or active version is cloned and the clone returned.
//
// The clone-then-mutate-then-activate sequence is not atomic across
// callers: two callers racing on the same service may both clone the same
// latest version, and only one set of edits survives activation while the
// other clone is silently orphaned. The API offers no compare-and-swap on
// version creation, so callers needing exclusivity must arrange their own
// mutual exclusion.
func (c *Client) EnsureMutable(ctx context.Context, serviceID string, version *Version) (*Version, error) {
	if version.Mutable() {
		return version, nil
	}
	c.logger.Debug().
		Str("service_id", serviceID).
		Int("version", version.Number.Int()).
		Msg("version is locked or active, cloning")
	return c.CloneVersion(ctx, serviceID, version.Number.Int())
}

// ClearAllVCL deletes every VCL file on the version. Used to replace
// generated configuration wholesale rather than incrementally. Not
// atomic: a failure mid-sequence leaves a partially cleared version, and
// the caller must retry or abandon it.
func (c *Client) ClearAllVCL(ctx context.Context, serviceID string, version int) error {
	vcls, err := c.ListVCLs(ctx, serviceID, version)
	if err != nil {
		return err
	}
	for _, vcl := range vcls {
		if err := c.DeleteVCL(ctx, serviceID, version, vcl.Name); err != nil {
			return fmt.Errorf("deleting vcl %q: %w", vcl.Name, err)
		}
	}
	return nil
}
