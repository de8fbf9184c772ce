package core

import (
	"github.com/edvin/edgeid/internal/config"
)

type Services struct {
	Settings    *SettingsService
	Alias       *AliasService
	DNS         *DNSService
	Certificate *CertificateService
	Connector   *ConnectorService
}

func NewServices(db DB, dns DNSProvider, certs CertificateProvider, runner CommandRunner, cfg *config.Config) *Services {
	settings := NewSettingsService(db, cfg)
	return &Services{
		Settings:    settings,
		Alias:       NewAliasService(db, settings),
		DNS:         NewDNSService(dns, settings, cfg),
		Certificate: NewCertificateService(certs, settings, cfg),
		Connector:   NewConnectorService(db, runner, cfg),
	}
}
