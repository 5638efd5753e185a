package fastly

import (
	"context"
	"fmt"
	"net/url"
)

// EventLog records something that happened within a service or account,
// such as a version activation or a mass purge.
type EventLog struct {
	ID         string  `json:"id"`
	ObjectType string  `json:"object_type"`
	Message    string  `json:"message"`
	Details    string  `json:"details"`
	Level      string  `json:"level"`
	System     string  `json:"system"`
	Subsystem  string  `json:"subsystem"`
	Timestamp  FlexInt `json:"timestamp"`
}

// GetEventLog returns the event log entries for an object.
func (c *Client) GetEventLog(ctx context.Context, objectID string) (*EventLog, error) {
	var e EventLog
	if err := c.get(ctx, fmt.Sprintf("/event_log/%s", url.PathEscape(objectID)), &e); err != nil {
		return nil, err
	}
	return &e, nil
}
