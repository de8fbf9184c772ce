package request

type IssueCertificate struct {
	Hosts        []string `json:"hosts" validate:"omitempty,dive,hostname_rfc1123"`
	ValidityDays int      `json:"validity_days" validate:"omitempty,oneof=14 30 90 365"`
}
