package api_test

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLivez(t *testing.T) {
	client := setupServer(t)

	health, err := client.Livez(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", health.Status)
	require.NotEmpty(t, health.Uptime)
	require.Equal(t, "test", health.Version)
}

func TestReadyz(t *testing.T) {
	client := setupServer(t)

	health, err := client.Readyz(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", health.Status)
	require.NotNil(t, health.Checks)
	require.Equal(t, "ok", health.Checks.Database)
}
