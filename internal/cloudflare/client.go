// Package cloudflare is a thin client for the Cloudflare v4 API surface the
// orchestrator consumes: zone-scoped DNS A records and certificate packs.
package cloudflare

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/edvin/edgeid/internal/config"
	"github.com/edvin/edgeid/internal/core"
	"github.com/edvin/edgeid/internal/model"
)

const defaultBaseURL = "https://api.cloudflare.com/client/v4"

const requestTimeout = 15 * time.Second

type Client struct {
	cfg        *config.Config
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		cfg:        cfg,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// NewClientWithBaseURL points the client at an alternate API host, for tests.
func NewClientWithBaseURL(cfg *config.Config, baseURL string) *Client {
	c := NewClient(cfg)
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

type apiMessage struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type envelope struct {
	Success bool            `json:"success"`
	Errors  []apiMessage    `json:"errors"`
	Result  json.RawMessage `json:"result"`
}

// FindARecord looks up an existing A record by exact name. Returns nil when
// no record matches.
func (c *Client) FindARecord(ctx context.Context, zoneID, host string) (*model.DNSRecord, error) {
	query := url.Values{}
	query.Set("type", "A")
	query.Set("name", host)
	query.Set("page", "1")
	query.Set("per_page", "1")

	var records []model.DNSRecord
	path := fmt.Sprintf("/zones/%s/dns_records", zoneID)
	if err := c.do(ctx, http.MethodGet, path, query, nil, &records); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}

// CreateARecord creates a new A record in the zone.
func (c *Client) CreateARecord(ctx context.Context, zoneID string, payload model.DNSRecordPayload) error {
	path := fmt.Sprintf("/zones/%s/dns_records", zoneID)
	return c.do(ctx, http.MethodPost, path, nil, payload, nil)
}

// UpdateARecord replaces the record identified by recordID.
func (c *Client) UpdateARecord(ctx context.Context, zoneID, recordID string, payload model.DNSRecordPayload) error {
	path := fmt.Sprintf("/zones/%s/dns_records/%s", zoneID, recordID)
	return c.do(ctx, http.MethodPut, path, nil, payload, nil)
}

type certificatePackPayload struct {
	ID           string   `json:"id"`
	Type         string   `json:"type"`
	Status       string   `json:"status"`
	Hosts        []string `json:"hosts"`
	Certificates []struct {
		ID        string `json:"id"`
		Issuer    string `json:"issuer"`
		Status    string `json:"status"`
		ExpiresOn string `json:"expires_on"`
	} `json:"certificates"`
	CreatedOn string `json:"created_on"`
}

func (p certificatePackPayload) toModel() model.CertificatePack {
	pack := model.CertificatePack{
		ID:        p.ID,
		Type:      p.Type,
		Status:    p.Status,
		Hosts:     p.Hosts,
		CreatedOn: p.CreatedOn,
	}
	for _, entry := range p.Certificates {
		pack.Certificates = append(pack.Certificates, model.CertificateEntry{
			ID:        entry.ID,
			Issuer:    entry.Issuer,
			Status:    entry.Status,
			ExpiresOn: entry.ExpiresOn,
		})
	}
	if len(pack.Certificates) > 0 {
		pack.ExpiresOn = pack.Certificates[0].ExpiresOn
	}
	return pack
}

// ListCertificatePacks returns the zone's current certificate packs.
func (c *Client) ListCertificatePacks(ctx context.Context, zoneID string) ([]model.CertificatePack, error) {
	var payloads []certificatePackPayload
	path := fmt.Sprintf("/zones/%s/ssl/certificate_packs", zoneID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &payloads); err != nil {
		return nil, err
	}
	packs := make([]model.CertificatePack, 0, len(payloads))
	for _, p := range payloads {
		packs = append(packs, p.toModel())
	}
	return packs, nil
}

// OrderCertificatePack requests an advanced certificate pack with TXT
// validation for the given hosts.
func (c *Client) OrderCertificatePack(ctx context.Context, zoneID string, hosts []string, validityDays int) (model.CertificatePack, error) {
	payload := map[string]any{
		"type":              "advanced",
		"hosts":             hosts,
		"validation_method": "txt",
		"validity_days":     validityDays,
	}
	var result certificatePackPayload
	path := fmt.Sprintf("/zones/%s/ssl/certificate_packs", zoneID)
	if err := c.do(ctx, http.MethodPost, path, nil, payload, &result); err != nil {
		return model.CertificatePack{}, err
	}
	return result.toModel(), nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload, out any) error {
	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal %s %s payload: %w", method, path, err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return fmt.Errorf("build %s %s request: %w", method, path, err)
	}
	if err := c.setAuthHeaders(req); err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", core.ErrProvider, method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("%w: %s %s: status %d with undecodable body", core.ErrProvider, method, path, resp.StatusCode)
	}
	if resp.StatusCode >= 300 || !env.Success {
		return fmt.Errorf("%w: %s", core.ErrProvider, formatErrors(env.Errors))
	}

	if out != nil && len(env.Result) > 0 {
		if err := json.Unmarshal(env.Result, out); err != nil {
			return fmt.Errorf("%w: decode %s %s result: %v", core.ErrProvider, method, path, err)
		}
	}
	return nil
}

// setAuthHeaders prefers the email+key pair and falls back to a bearer token.
// Absence of both is a configuration error at call time, not at startup.
func (c *Client) setAuthHeaders(req *http.Request) error {
	if c.cfg.CloudflareAuthEmail != "" && c.cfg.CloudflareAuthKey != "" {
		req.Header.Set("X-Auth-Email", c.cfg.CloudflareAuthEmail)
		req.Header.Set("X-Auth-Key", c.cfg.CloudflareAuthKey)
		return nil
	}
	if c.cfg.CloudflareAPIToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.CloudflareAPIToken)
		return nil
	}
	return fmt.Errorf("%w: cloudflare credentials are not set", core.ErrConfiguration)
}

func formatErrors(msgs []apiMessage) string {
	if len(msgs) == 0 {
		return "cloudflare api request failed"
	}
	parts := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		parts = append(parts, fmt.Sprintf("%d: %s", msg.Code, msg.Message))
	}
	return strings.Join(parts, ", ")
}
