package config

import (
	"fmt"
	"os"
	"strings"
)

type Config struct {
	DatabaseURL    string
	HTTPListenAddr string
	LogLevel       string
	ServiceName    string
	// APIKey protects the /api/v1 surface. Compared hashed, never logged.
	APIKey string

	// Cloudflare credentials: either AuthEmail+AuthKey or APIToken.
	CloudflareAPIToken  string
	CloudflareAuthEmail string
	CloudflareAuthKey   string
	CloudflareZoneID    string
	// SSLHosts is the fallback host list when the ssl_hosts setting is empty.
	SSLHosts []string

	// ConnectorScript is the install script invoked with the tunnel token.
	ConnectorScript string
}

func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:         getEnv("DATABASE_URL", ""),
		HTTPListenAddr:      getEnv("HTTP_LISTEN_ADDR", ":8090"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		ServiceName:         getEnv("SERVICE_NAME", "edgeid"),
		APIKey:              getEnv("API_KEY", ""),
		CloudflareAPIToken:  getEnv("CLOUDFLARE_API_TOKEN", ""),
		CloudflareAuthEmail: getEnv("CLOUDFLARE_AUTH_EMAIL", ""),
		CloudflareAuthKey:   getEnv("CLOUDFLARE_AUTH_KEY", ""),
		CloudflareZoneID:    getEnv("CLOUDFLARE_ZONE_ID", ""),
		SSLHosts:            splitHosts(getEnv("CLOUDFLARE_SSL_HOSTS", "")),
		ConnectorScript:     getEnv("CONNECTOR_SCRIPT", "scripts/setup_cloudflared_connector.sh"),
	}

	return cfg, nil
}

// Validate checks the settings required by the named service.
func (c *Config) Validate(service string) error {
	switch service {
	case "edgeid-api":
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for %s", service)
		}
		if c.APIKey == "" {
			return fmt.Errorf("API_KEY is required for %s", service)
		}
	case "ipsync":
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for %s", service)
		}
	}
	return nil
}

// HasCloudflareCredentials reports whether either auth mechanism is configured.
func (c *Config) HasCloudflareCredentials() bool {
	return (c.CloudflareAuthEmail != "" && c.CloudflareAuthKey != "") || c.CloudflareAPIToken != ""
}

func splitHosts(raw string) []string {
	var hosts []string
	for _, part := range strings.Split(raw, ",") {
		if host := strings.TrimSpace(part); host != "" {
			hosts = append(hosts, host)
		}
	}
	return hosts
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
