package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupDisabledWithoutEndpoint(t *testing.T) {
	t.Setenv(EndpointEnv, "")

	shutdown, err := Setup(context.Background())
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}

func TestSetupWithEndpoint(t *testing.T) {
	t.Setenv(EndpointEnv, "localhost:4318")
	t.Setenv(ServiceNameEnv, "mortar-editor-test")

	shutdown, err := Setup(context.Background())
	require.NoError(t, err)
	// Nothing was recorded, so shutdown has nothing to flush.
	assert.NoError(t, shutdown(context.Background()))
}

func TestSetupWithEndpointURL(t *testing.T) {
	t.Setenv(EndpointEnv, "http://localhost:4318")

	shutdown, err := Setup(context.Background())
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestSetupRejectsMalformedEndpointURL(t *testing.T) {
	for _, endpoint := range []string{"http://", "ftp://collector:4318"} {
		t.Setenv(EndpointEnv, endpoint)

		_, err := Setup(context.Background())
		assert.Error(t, err, endpoint)
	}
}

func TestEndpointOptions(t *testing.T) {
	opts, err := endpointOptions("localhost:4318")
	require.NoError(t, err)
	assert.Len(t, opts, 2)

	opts, err = endpointOptions("https://collector.example.com/otlp/")
	require.NoError(t, err)
	assert.Len(t, opts, 1)
}
