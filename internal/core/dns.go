package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/edvin/edgeid/internal/config"
	"github.com/edvin/edgeid/internal/model"
)

// A records written by the synchronizer use a short fixed TTL so IP changes
// propagate quickly.
const dnsRecordTTL = 120

// DNSProvider is the zone-scoped record surface the synchronizer consumes.
type DNSProvider interface {
	FindARecord(ctx context.Context, zoneID, host string) (*model.DNSRecord, error)
	CreateARecord(ctx context.Context, zoneID string, payload model.DNSRecordPayload) error
	UpdateARecord(ctx context.Context, zoneID, recordID string, payload model.DNSRecordPayload) error
}

// DNSService upserts A records for a host list against the configured zone.
type DNSService struct {
	provider DNSProvider
	settings *SettingsService
	cfg      *config.Config
}

func NewDNSService(provider DNSProvider, settings *SettingsService, cfg *config.Config) *DNSService {
	return &DNSService{provider: provider, settings: settings, cfg: cfg}
}

// Sync points every host at ipAddress. A nil host list falls back to the
// configured defaults. Hosts are processed strictly in order and the first
// provider failure aborts the batch; results for hosts already processed are
// returned alongside the error and are not rolled back.
func (s *DNSService) Sync(ctx context.Context, ipAddress string, hosts []string, proxied *bool) ([]model.DNSSyncResult, error) {
	if ipAddress == "" {
		return nil, fmt.Errorf("%w: ip address must not be empty", ErrValidation)
	}

	zoneID := s.cfg.CloudflareZoneID
	if zoneID == "" {
		return nil, fmt.Errorf("%w: cloudflare zone id is not set", ErrConfiguration)
	}

	resolved, err := s.resolveHosts(ctx, hosts)
	if err != nil {
		return nil, err
	}
	if len(resolved) == 0 {
		return nil, fmt.Errorf("%w: dns host list is empty", ErrValidation)
	}

	// Proxying defaults to on when credentials are configured.
	proxiedValue := s.cfg.HasCloudflareCredentials()
	if proxied != nil {
		proxiedValue = *proxied
	}

	var results []model.DNSSyncResult
	for _, host := range resolved {
		payload := model.DNSRecordPayload{
			Type:    "A",
			Name:    host,
			Content: ipAddress,
			TTL:     dnsRecordTTL,
			Proxied: proxiedValue,
		}

		existing, err := s.provider.FindARecord(ctx, zoneID, host)
		if err != nil {
			return results, fmt.Errorf("find record for %s: %w", host, err)
		}

		if existing != nil {
			if err := s.provider.UpdateARecord(ctx, zoneID, existing.ID, payload); err != nil {
				return results, fmt.Errorf("update record for %s: %w", host, err)
			}
			results = append(results, model.DNSSyncResult{Host: host, Action: model.DNSActionUpdated})
			continue
		}

		if err := s.provider.CreateARecord(ctx, zoneID, payload); err != nil {
			return results, fmt.Errorf("create record for %s: %w", host, err)
		}
		results = append(results, model.DNSSyncResult{Host: host, Action: model.DNSActionCreated})
	}

	return results, nil
}

// resolveHosts lowercases, trims, and dedupes preserving first-seen order.
func (s *DNSService) resolveHosts(ctx context.Context, hosts []string) ([]string, error) {
	if hosts == nil {
		stored, err := s.settings.HostList(ctx)
		if err != nil {
			return nil, err
		}
		hosts = stored
		if len(hosts) == 0 {
			hosts = s.cfg.SSLHosts
		}
	}

	seen := make(map[string]bool, len(hosts))
	var resolved []string
	for _, host := range hosts {
		host = strings.ToLower(strings.TrimSpace(host))
		if host == "" || seen[host] {
			continue
		}
		seen[host] = true
		resolved = append(resolved, host)
	}
	return resolved, nil
}
