package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("HTTP_LISTEN_ADDR")
	os.Unsetenv("LOG_LEVEL")
	os.Unsetenv("SERVICE_NAME")
	os.Unsetenv("CONNECTOR_SCRIPT")

	cfg, err := Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, ":8090", cfg.HTTPListenAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "edgeid", cfg.ServiceName)
	assert.Equal(t, "scripts/setup_cloudflared_connector.sh", cfg.ConnectorScript)
}

func TestLoad_SSLHosts(t *testing.T) {
	t.Setenv("CLOUDFLARE_SSL_HOSTS", "a.example.com, b.example.com,, ")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.example.com", "b.example.com"}, cfg.SSLHosts)
}

func TestValidate_APIService(t *testing.T) {
	cfg := &Config{}
	require.Error(t, cfg.Validate("edgeid-api"))

	cfg.DatabaseURL = "postgres://localhost/edgeid"
	require.Error(t, cfg.Validate("edgeid-api"))

	cfg.APIKey = "secret"
	require.NoError(t, cfg.Validate("edgeid-api"))
}

func TestHasCloudflareCredentials(t *testing.T) {
	cfg := &Config{}
	assert.False(t, cfg.HasCloudflareCredentials())

	cfg.CloudflareAuthEmail = "ops@example.com"
	assert.False(t, cfg.HasCloudflareCredentials(), "email without key is not enough")

	cfg.CloudflareAuthKey = "key"
	assert.True(t, cfg.HasCloudflareCredentials())

	cfg = &Config{CloudflareAPIToken: "token"}
	assert.True(t, cfg.HasCloudflareCredentials())
}
