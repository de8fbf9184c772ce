// Package publicip discovers the host's current public IP address through an
// ordered chain of discovery endpoints.
package publicip

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/edvin/edgeid/internal/core"
)

// Endpoint is one discovery source. JSONField names the field to extract from
// a JSON body; empty means the body is the raw IP text.
type Endpoint struct {
	URL       string
	JSONField string
}

// DefaultEndpoints is tried in order; the first success wins.
var DefaultEndpoints = []Endpoint{
	{URL: "https://api.ipify.org?format=json", JSONField: "ip"},
	{URL: "https://ifconfig.co/json", JSONField: "ip"},
	{URL: "https://checkip.amazonaws.com"},
	{URL: "https://ipv4.icanhazip.com"},
}

const requestTimeout = 5 * time.Second

type Resolver struct {
	endpoints  []Endpoint
	httpClient *http.Client
}

func NewResolver() *Resolver {
	return &Resolver{
		endpoints:  DefaultEndpoints,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// NewResolverWithEndpoints overrides the discovery chain, primarily for tests.
func NewResolverWithEndpoints(endpoints []Endpoint) *Resolver {
	r := NewResolver()
	r.endpoints = endpoints
	return r
}

// Resolve tries each endpoint in order and returns the first IP found.
// Per-endpoint failures are swallowed; only the exhausted chain is an error.
func (r *Resolver) Resolve(ctx context.Context) (string, error) {
	var lastErr error
	for _, ep := range r.endpoints {
		ip, err := r.query(ctx, ep)
		if err != nil {
			lastErr = err
			continue
		}
		return ip, nil
	}
	return "", fmt.Errorf("%w: %v", core.ErrNetworkResolution, lastErr)
}

func (r *Resolver) query(ctx context.Context, ep Endpoint) (string, error) {
	reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, ep.URL, nil)
	if err != nil {
		return "", fmt.Errorf("build request for %s: %w", ep.URL, err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("query %s: %w", ep.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("query %s: status %d", ep.URL, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read %s response: %w", ep.URL, err)
	}

	if ep.JSONField == "" {
		ip := strings.TrimSpace(string(body))
		if ip == "" {
			return "", fmt.Errorf("query %s: empty body", ep.URL)
		}
		return ip, nil
	}

	var data map[string]any
	if err := json.Unmarshal(body, &data); err != nil {
		return "", fmt.Errorf("decode %s response: %w", ep.URL, err)
	}
	value, _ := data[ep.JSONField].(string)
	ip := strings.TrimSpace(value)
	if ip == "" {
		return "", fmt.Errorf("query %s: missing field %q", ep.URL, ep.JSONField)
	}
	return ip, nil
}
