package request

type SyncDNS struct {
	IP      string   `json:"ip" validate:"omitempty,ip"`
	Hosts   []string `json:"hosts" validate:"omitempty,dive,hostname_rfc1123"`
	Proxied *bool    `json:"proxied"`
}
