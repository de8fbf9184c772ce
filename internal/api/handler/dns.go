package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/edvin/edgeid/internal/api/request"
	"github.com/edvin/edgeid/internal/api/response"
	"github.com/edvin/edgeid/internal/core"
	"github.com/edvin/edgeid/internal/model"
)

type DNS struct {
	svc      *core.DNSService
	settings *core.SettingsService
	resolver IPResolver
}

func NewDNS(svc *core.DNSService, settings *core.SettingsService, resolver IPResolver) *DNS {
	return &DNS{svc: svc, settings: settings, resolver: resolver}
}

// Sync godoc
//
//	@Summary		Point A records for the host list at an IP
//	@Description	With no ip in the body the public IP is discovered first
//	@Description	and stored in the public_ip setting.
//	@Tags			DNS
//	@Security		ApiKeyAuth
//	@Param			body body request.SyncDNS true "Sync parameters"
//	@Success		200 {object} map[string]any
//	@Failure		400 {object} map[string]string
//	@Failure		502 {object} map[string]string
//	@Router			/dns/sync [post]
func (h *DNS) Sync(w http.ResponseWriter, r *http.Request) {
	var req request.SyncDNS
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	ip := req.IP
	if ip == "" {
		resolved, err := h.resolver.Resolve(r.Context())
		if err != nil {
			response.WriteServiceError(w, err)
			return
		}
		ip = resolved

		if err := h.settings.Update(r.Context(), map[string]string{core.SettingPublicIP: ip}); err != nil {
			zerolog.Ctx(r.Context()).Warn().Err(err).Msg("store discovered public ip")
		}
	}

	results, err := h.svc.Sync(r.Context(), ip, req.Hosts, req.Proxied)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	if results == nil {
		results = []model.DNSSyncResult{}
	}

	response.WriteJSON(w, http.StatusOK, map[string]any{
		"ip":      ip,
		"results": results,
	})
}
