package model

import "time"

type DomainAlias struct {
	ID              string    `json:"id" db:"id"`
	BaseDomain      string    `json:"base_domain" db:"base_domain"`
	Subdomain       string    `json:"subdomain" db:"subdomain"`
	MaskedSubdomain string    `json:"masked_subdomain" db:"masked_subdomain"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`

	// Derived fields, never stored.
	TargetHost string `json:"target_host" db:"-"`
	MaskedHost string `json:"masked_host" db:"-"`
	TargetURL  string `json:"target_url" db:"-"`
	MaskedURL  string `json:"masked_url" db:"-"`
}
