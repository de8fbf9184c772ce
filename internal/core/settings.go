package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/edvin/edgeid/internal/config"
)

// Well-known setting keys.
const (
	SettingSiteName = "site_name"
	SettingLocalIP  = "local_ip"
	SettingPublicIP = "public_ip"
	SettingSSLHosts = "ssl_hosts"
)

// SettingsService is the durable key/value configuration store. Reads are
// merged over built-in defaults; writes are last-writer-wins upserts.
type SettingsService struct {
	db       DB
	defaults map[string]string
}

func NewSettingsService(db DB, cfg *config.Config) *SettingsService {
	defaults := map[string]string{
		SettingSiteName: "Edge Identity",
		SettingLocalIP:  "127.0.0.1",
		SettingPublicIP: "",
		SettingSSLHosts: strings.Join(cfg.SSLHosts, ", "),
	}
	return &SettingsService{db: db, defaults: defaults}
}

// GetAll returns all settings merged over the built-in defaults. Keys stored
// with a NULL value fall back to their default.
func (s *SettingsService) GetAll(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.Query(ctx, `SELECT key, value FROM app_settings`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	merged := make(map[string]string, len(s.defaults))
	for key, value := range s.defaults {
		merged[key] = value
	}

	for rows.Next() {
		var key string
		var value *string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		if value != nil {
			merged[key] = *value
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate settings: %w", err)
	}

	return merged, nil
}

// Get returns a single merged setting value.
func (s *SettingsService) Get(ctx context.Context, key string) (string, error) {
	settings, err := s.GetAll(ctx)
	if err != nil {
		return "", err
	}
	return settings[key], nil
}

// Update upserts each key. No versioning; the last writer wins per key.
func (s *SettingsService) Update(ctx context.Context, updates map[string]string) error {
	for key, value := range updates {
		_, err := s.db.Exec(ctx,
			`INSERT INTO app_settings (key, value, updated_at) VALUES ($1, $2, now())
			 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
			key, value,
		)
		if err != nil {
			return fmt.Errorf("upsert setting %s: %w", key, err)
		}
	}
	return nil
}

// HostList parses the ssl_hosts setting into a trimmed host list.
func (s *SettingsService) HostList(ctx context.Context) ([]string, error) {
	raw, err := s.Get(ctx, SettingSSLHosts)
	if err != nil {
		return nil, err
	}
	var hosts []string
	for _, part := range strings.Split(raw, ",") {
		if host := strings.TrimSpace(part); host != "" {
			hosts = append(hosts, host)
		}
	}
	return hosts, nil
}
