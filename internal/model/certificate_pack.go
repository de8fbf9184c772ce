package model

// CertificateEntry is a single certificate inside a pack.
type CertificateEntry struct {
	ID        string `json:"id"`
	Issuer    string `json:"issuer,omitempty"`
	Status    string `json:"status,omitempty"`
	ExpiresOn string `json:"expires_on,omitempty"`
}

// CertificatePack is a provider-managed bundle of TLS certificates covering a
// set of hostnames. Always fetched live, never persisted locally.
type CertificatePack struct {
	ID           string             `json:"id"`
	Type         string             `json:"type"`
	Status       string             `json:"status"`
	Hosts        []string           `json:"hosts"`
	Certificates []CertificateEntry `json:"certificates"`
	CreatedOn    string             `json:"created_on,omitempty"`
	// ExpiresOn is the expiry of the first certificate entry.
	ExpiresOn string `json:"expires_on,omitempty"`
}
