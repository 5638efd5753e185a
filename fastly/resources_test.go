package fastly

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBuildMaintenancePage exercises several resource kinds the way a real
// configuration combines them: a request condition gating a synthetic
// response, plus a header rewrite on the way out.
func TestBuildMaintenancePage(t *testing.T) {
	f, client := newFakeAPI(t)
	svc := f.addService("svc1", "example")
	svc.addVersion(1, false, false)

	ctx := context.Background()

	cond, err := client.CreateCondition(ctx, "svc1", 1, &CreateConditionInput{
		Name:      "is-maintenance",
		Type:      ConditionTypeRequest,
		Statement: `req.url ~ "^/maintenance"`,
		Priority:  Int(5),
	})
	require.NoError(t, err)
	assert.Equal(t, 5, cond.Priority.Int())

	resp, err := client.CreateResponseObject(ctx, "svc1", 1, &CreateResponseObjectInput{
		Name:             "maintenance-page",
		Status:           Int(503),
		Response:         String("Service Unavailable"),
		Content:          String("<h1>Back soon</h1>"),
		RequestCondition: String(cond.Name),
	})
	require.NoError(t, err)
	assert.Equal(t, 503, resp.Status.Int())
	assert.Equal(t, "is-maintenance", resp.RequestCondition)

	hdr, err := client.CreateHeader(ctx, "svc1", 1, &CreateHeaderInput{
		Name:        "retry-after",
		Destination: "http.Retry-After",
		Source:      `"3600"`,
		Type:        String(HeaderTypeResponse),
		Action:      String(HeaderActionSet),
	})
	require.NoError(t, err)
	assert.Equal(t, "http.Retry-After", hdr.Destination)

	conditions, err := client.ListConditions(ctx, "svc1", 1)
	require.NoError(t, err)
	assert.Len(t, conditions, 1)
}

func TestHealthcheckLifecycle(t *testing.T) {
	f, client := newFakeAPI(t)
	svc := f.addService("svc1", "example")
	svc.addVersion(1, false, false)

	ctx := context.Background()

	hc, err := client.CreateHealthcheck(ctx, "svc1", 1, &CreateHealthcheckInput{
		Name:          "origin-probe",
		Host:          "origin.example.com",
		Path:          String("/healthz"),
		CheckInterval: Int(5000),
	})
	require.NoError(t, err)
	assert.Equal(t, "/healthz", hc.Path)
	assert.Equal(t, 5000, hc.CheckInterval.Int())

	updated, err := client.UpdateHealthcheck(ctx, "svc1", 1, "origin-probe", &UpdateHealthcheckInput{
		Threshold: Int(3),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Threshold.Int())

	require.NoError(t, client.DeleteHealthcheck(ctx, "svc1", 1, "origin-probe"))
	err = client.DeleteHealthcheck(ctx, "svc1", 1, "origin-probe")
	assert.True(t, IsNotFound(err))
}
