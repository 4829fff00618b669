package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".oceancfg")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRegistry_GetProfiles(t *testing.T) {
	path := writeConfig(t, `
[production]
host = https://api.cloudocean.example
token = prod-token

[staging]
host = https://staging.cloudocean.example
token = staging-token
rate = 0.15
currency = USD
`)

	registry, err := NewRegistry(path)
	require.NoError(t, err)

	profiles, err := registry.GetProfiles(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"production", "staging"}, profiles)
}

func TestRegistry_GetEndpoint(t *testing.T) {
	path := writeConfig(t, `
[staging]
host = https://staging.cloudocean.example
token = staging-token
rate = 0.15
currency = USD

[bare]
host = https://bare.cloudocean.example
token = bare-token
`)

	registry, err := NewRegistry(path)
	require.NoError(t, err)

	endpoint, err := registry.GetEndpoint(context.Background(), "staging")
	require.NoError(t, err)
	assert.Equal(t, "https://staging.cloudocean.example", endpoint.Host)
	assert.Equal(t, "staging-token", endpoint.Token)
	assert.Equal(t, "0.15", endpoint.Rate)
	assert.Equal(t, "USD", endpoint.Currency)

	endpoint, err = registry.GetEndpoint(context.Background(), "bare")
	require.NoError(t, err)
	assert.Equal(t, "CAD", endpoint.Currency, "currency defaults when omitted")
	assert.Empty(t, endpoint.Rate)
}

func TestRegistry_UnknownProfile(t *testing.T) {
	path := writeConfig(t, `
[production]
host = https://api.cloudocean.example
token = prod-token
`)

	registry, err := NewRegistry(path)
	require.NoError(t, err)

	_, err = registry.GetEndpoint(context.Background(), "nope")
	assert.Error(t, err)
}

func TestRegistry_MissingHost(t *testing.T) {
	path := writeConfig(t, `
[broken]
token = some-token
`)

	registry, err := NewRegistry(path)
	require.NoError(t, err)

	_, err = registry.GetEndpoint(context.Background(), "broken")
	assert.Error(t, err)
}

func TestLoadSettings_Defaults(t *testing.T) {
	settings, err := LoadSettings("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", settings.Addr)
	assert.Equal(t, 100, settings.PageSize)
	assert.NotZero(t, settings.ShutdownTimeout)
	assert.NotZero(t, settings.RequestTimeout)
}

func TestLoadSettings_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("addr: \":9090\"\npage_size: 25\n"), 0o600))

	settings, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", settings.Addr)
	assert.Equal(t, 25, settings.PageSize)
}
