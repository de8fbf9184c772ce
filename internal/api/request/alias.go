package request

type CreateAlias struct {
	BaseDomain      string `json:"base_domain" validate:"required"`
	Subdomain       string `json:"subdomain"`
	MaskedSubdomain string `json:"masked_subdomain"`
}
