package fastly

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// Aggregation windows for GetStats.
const (
	StatsAll      = "all"
	StatsDaily    = "daily"
	StatsHourly   = "hourly"
	StatsMinutely = "minutely"
)

// GetStats returns usage statistics for the service, aggregated over the
// given window. The payload shape varies by window and by account
// features so it is returned raw.
func (c *Client) GetStats(ctx context.Context, serviceID, window string) (json.RawMessage, error) {
	path := fmt.Sprintf("/service/%s/stats/%s", url.PathEscape(serviceID), url.PathEscape(window))
	return c.do(ctx, "GET", path, requestOptions{})
}
