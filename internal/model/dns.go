package model

// DNS sync actions.
const (
	DNSActionCreated = "created"
	DNSActionUpdated = "updated"
)

// DNSSyncResult reports the action taken for one host during a sync.
type DNSSyncResult struct {
	Host   string `json:"host"`
	Action string `json:"action"`
}

// DNSRecord is the provider-side A record state, identified by the record ID
// the provider assigned. Never persisted locally.
type DNSRecord struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Name    string `json:"name"`
	Content string `json:"content"`
	TTL     int    `json:"ttl"`
	Proxied bool   `json:"proxied"`
}

// DNSRecordPayload is the create/update body for an A record.
type DNSRecordPayload struct {
	Type    string `json:"type"`
	Name    string `json:"name"`
	Content string `json:"content"`
	TTL     int    `json:"ttl"`
	Proxied bool   `json:"proxied"`
}
