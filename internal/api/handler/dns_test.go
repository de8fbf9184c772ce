package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/edvin/edgeid/internal/config"
	"github.com/edvin/edgeid/internal/core"
)

func TestDNSSync_InvalidIP(t *testing.T) {
	h := NewDNS(nil, nil, &fakeResolver{ip: "203.0.113.5"})
	rec := httptest.NewRecorder()

	h.Sync(rec, newRequest(http.MethodPost, "/dns/sync", map[string]any{"ip": "not-an-ip"}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeErrorResponse(rec)
	assert.Contains(t, body["error"], "validation error")
}

func TestDNSSync_InvalidJSON(t *testing.T) {
	h := NewDNS(nil, nil, &fakeResolver{})
	rec := httptest.NewRecorder()

	h.Sync(rec, newRequestRaw(http.MethodPost, "/dns/sync", "{"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDNSSync_ResolutionFailed(t *testing.T) {
	h := NewDNS(nil, nil, &fakeResolver{err: fmt.Errorf("%w: all endpoints failed", core.ErrNetworkResolution)})
	rec := httptest.NewRecorder()

	// No ip in the body; discovery runs first and its failure surfaces.
	h.Sync(rec, newRequest(http.MethodPost, "/dns/sync", map[string]any{}))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestDNSSync_MissingZone(t *testing.T) {
	db := &handlerMockDB{}
	cfg := &config.Config{}
	settings := core.NewSettingsService(db, cfg)
	h := NewDNS(core.NewDNSService(nil, settings, cfg), settings, &fakeResolver{ip: "203.0.113.5"})
	rec := httptest.NewRecorder()

	h.Sync(rec, newRequest(http.MethodPost, "/dns/sync", map[string]any{
		"ip":    "203.0.113.5",
		"hosts": []string{"a.example.com"},
	}))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeErrorResponse(rec)
	assert.Contains(t, body["error"], "zone id")
}

func TestDNSSync_StoresDiscoveredIP(t *testing.T) {
	db := &handlerMockDB{}
	cfg := &config.Config{}
	settings := core.NewSettingsService(db, cfg)
	h := NewDNS(core.NewDNSService(nil, settings, cfg), settings, &fakeResolver{ip: "203.0.113.9"})
	rec := httptest.NewRecorder()

	var stored []any
	db.On("Exec", mock.Anything, mock.AnythingOfType("string"), mock.MatchedBy(func(args []any) bool {
		stored = args
		return true
	})).Return(pgconn.NewCommandTag("INSERT 0 1"), nil)

	// The missing zone fails the sync afterwards, but the discovered IP
	// was already persisted.
	h.Sync(rec, newRequest(http.MethodPost, "/dns/sync", map[string]any{}))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Len(t, stored, 2)
	assert.Equal(t, core.SettingPublicIP, stored[0])
	assert.Equal(t, "203.0.113.9", stored[1])
}
