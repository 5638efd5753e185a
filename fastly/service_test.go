package fastly

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateService(t *testing.T) {
	_, client := newFakeAPI(t)

	ctx := context.Background()
	svc, err := client.CreateService(ctx, &CreateServiceInput{Name: "example"})
	require.NoError(t, err)
	assert.NotEmpty(t, svc.ID)
	assert.Equal(t, "example", svc.Name)

	// A fresh service starts with a single draft version.
	v, err := client.GetLatestVersion(ctx, svc.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, v.Number.Int())
	assert.True(t, v.Mutable())
}

func TestCreateServiceRequiresName(t *testing.T) {
	_, client := newFakeAPI(t)

	_, err := client.CreateService(context.Background(), &CreateServiceInput{})
	require.Error(t, err)
}

func TestGetServiceByName(t *testing.T) {
	f, client := newFakeAPI(t)
	f.addService("svc1", "example")
	f.addService("svc2", "other")

	svc, err := client.GetServiceByName(context.Background(), "other")
	require.NoError(t, err)
	assert.Equal(t, "svc2", svc.ID)
}

func TestGetServiceByNameNotFound(t *testing.T) {
	_, client := newFakeAPI(t)

	_, err := client.GetServiceByName(context.Background(), "missing")
	assert.True(t, IsNotFound(err))
}

func TestGetServiceDetails(t *testing.T) {
	f, client := newFakeAPI(t)
	svc := f.addService("svc1", "example")
	svc.addVersion(1, false, true)
	svc.addVersion(2, true, true)
	svc.addVersion(3, false, false)

	details, err := client.GetServiceDetails(context.Background(), "svc1")
	require.NoError(t, err)
	assert.Equal(t, 2, details.ActiveVersion.Int())
	require.Len(t, details.Versions, 3)

	latest := details.LatestVersion()
	require.NotNil(t, latest)
	assert.Equal(t, 3, latest.Number.Int())

	active := details.CurrentlyActive()
	require.NotNil(t, active)
	assert.Equal(t, 2, active.Number.Int())
}

func TestDeleteService(t *testing.T) {
	f, client := newFakeAPI(t)
	f.addService("svc1", "example")

	ctx := context.Background()
	require.NoError(t, client.DeleteService(ctx, "svc1"))

	_, err := client.GetService(ctx, "svc1")
	assert.True(t, IsNotFound(err))
}
