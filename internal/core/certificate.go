package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/edvin/edgeid/internal/config"
	"github.com/edvin/edgeid/internal/model"
)

// DefaultCertValidityDays is used when the caller does not pick a validity.
const DefaultCertValidityDays = 90

// CertificateProvider is the zone-scoped certificate pack surface.
type CertificateProvider interface {
	ListCertificatePacks(ctx context.Context, zoneID string) ([]model.CertificatePack, error)
	OrderCertificatePack(ctx context.Context, zoneID string, hosts []string, validityDays int) (model.CertificatePack, error)
}

// CertificateService issues and lists TLS certificate packs. Issuance
// progress is not tracked locally; status is visible via ListPacks only.
type CertificateService struct {
	provider CertificateProvider
	settings *SettingsService
	cfg      *config.Config
}

func NewCertificateService(provider CertificateProvider, settings *SettingsService, cfg *config.Config) *CertificateService {
	return &CertificateService{provider: provider, settings: settings, cfg: cfg}
}

// ListPacks fetches the zone's certificate packs live from the provider.
func (s *CertificateService) ListPacks(ctx context.Context) ([]model.CertificatePack, error) {
	zoneID := s.cfg.CloudflareZoneID
	if zoneID == "" {
		return nil, fmt.Errorf("%w: cloudflare zone id is not set", ErrConfiguration)
	}
	packs, err := s.provider.ListCertificatePacks(ctx, zoneID)
	if err != nil {
		return nil, fmt.Errorf("list certificate packs: %w", err)
	}
	return packs, nil
}

// Issue orders an advanced pack with TXT validation. Hosts default to the
// stored host list, then the configured fallback.
func (s *CertificateService) Issue(ctx context.Context, hosts []string, validityDays int) (model.CertificatePack, error) {
	zoneID := s.cfg.CloudflareZoneID
	if zoneID == "" {
		return model.CertificatePack{}, fmt.Errorf("%w: cloudflare zone id is not set", ErrConfiguration)
	}

	if validityDays <= 0 {
		validityDays = DefaultCertValidityDays
	}

	if len(hosts) == 0 {
		stored, err := s.settings.HostList(ctx)
		if err != nil {
			return model.CertificatePack{}, err
		}
		hosts = stored
		if len(hosts) == 0 {
			hosts = s.cfg.SSLHosts
		}
	}

	var cleaned []string
	for _, host := range hosts {
		if host = strings.TrimSpace(host); host != "" {
			cleaned = append(cleaned, host)
		}
	}
	if len(cleaned) == 0 {
		return model.CertificatePack{}, fmt.Errorf("%w: certificate host list is empty", ErrValidation)
	}

	pack, err := s.provider.OrderCertificatePack(ctx, zoneID, cleaned, validityDays)
	if err != nil {
		return model.CertificatePack{}, fmt.Errorf("order certificate pack: %w", err)
	}
	return pack, nil
}
