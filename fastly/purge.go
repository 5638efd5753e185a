package fastly

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// Purge identifies an accepted cache-invalidation request. Propagation is
// tracked separately through PurgeStatus.
type Purge struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// PurgeStatus is one edge server's acknowledgement of a purge.
type PurgeStatus struct {
	Server    string  `json:"server"`
	Timestamp FlexInt `json:"timestamp"`
}

// PurgeURL invalidates one exact URL, independent of any version. The
// request uses the PURGE verb with the host carried in the Host header.
func (c *Client) PurgeURL(ctx context.Context, host, path string) (*Purge, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	payload, err := c.do(ctx, "PURGE", path, requestOptions{host: host})
	if err != nil {
		return nil, err
	}

	var p Purge
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, &TransportError{Op: "PURGE " + path, Err: fmt.Errorf("decoding response: %w", err)}
	}
	return &p, nil
}

// PurgeKey invalidates every cached object tagged with the surrogate key,
// independent of any version.
func (c *Client) PurgeKey(ctx context.Context, serviceID, key string) error {
	var status statusResponse
	path := fmt.Sprintf("/service/%s/purge/%s", url.PathEscape(serviceID), url.PathEscape(key))
	if err := c.post(ctx, path, nil, &status); err != nil {
		return err
	}
	return status.check()
}

// PurgeAll invalidates everything cached for the service.
func (c *Client) PurgeAll(ctx context.Context, serviceID string) error {
	var status statusResponse
	path := fmt.Sprintf("/service/%s/purge_all", url.PathEscape(serviceID))
	if err := c.post(ctx, path, nil, &status); err != nil {
		return err
	}
	return status.check()
}

// CheckPurgeStatus polls the propagation of a purge across edge servers.
// Propagation is eventually consistent: an incomplete list means still
// propagating, not failure. Callers that poll must loop with their own
// backoff; the client never retries.
func (c *Client) CheckPurgeStatus(ctx context.Context, purgeID string) ([]*PurgeStatus, error) {
	statuses := []*PurgeStatus{}
	path := "/purge?id=" + url.QueryEscape(purgeID)
	if err := c.get(ctx, path, &statuses); err != nil {
		return nil, err
	}
	return statuses, nil
}

// EdgeCheckResult is one edge server's view of a URL's content.
type EdgeCheckResult struct {
	Server       string          `json:"server"`
	Hash         string          `json:"hash"`
	ResponseTime float64         `json:"response_time"`
	Headers      json.RawMessage `json:"headers"`
}

// EdgeCheck retrieves the headers and content hash of a URL from each
// edge server. Any http:// or https:// prefix on the URL is stripped.
func (c *Client) EdgeCheck(ctx context.Context, rawURL string) ([]*EdgeCheckResult, error) {
	for _, prefix := range []string{"http://", "https://"} {
		if strings.HasPrefix(rawURL, prefix) {
			rawURL = strings.TrimPrefix(rawURL, prefix)
			break
		}
	}

	results := []*EdgeCheckResult{}
	if err := c.get(ctx, "/content/edge_check/"+rawURL, &results); err != nil {
		return nil, err
	}
	return results, nil
}
