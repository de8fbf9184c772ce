package handler

import (
	"encoding/json"
	"net/http"

	"github.com/edvin/edgeid/internal/api/response"
	"github.com/edvin/edgeid/internal/core"
)

type Settings struct {
	svc *core.SettingsService
}

func NewSettings(svc *core.SettingsService) *Settings {
	return &Settings{svc: svc}
}

// Get godoc
//
//	@Summary		Get all settings merged over defaults
//	@Tags			Settings
//	@Security		ApiKeyAuth
//	@Success		200 {object} map[string]string
//	@Router			/settings [get]
func (h *Settings) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.svc.GetAll(r.Context())
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, settings)
}

// Update godoc
//
//	@Summary		Update settings
//	@Tags			Settings
//	@Security		ApiKeyAuth
//	@Param			body body map[string]string true "Settings to upsert"
//	@Success		200 {object} map[string]string
//	@Failure		400 {object} map[string]string
//	@Router			/settings [put]
func (h *Settings) Update(w http.ResponseWriter, r *http.Request) {
	var updates map[string]string
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		response.WriteError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if len(updates) == 0 {
		response.WriteError(w, http.StatusBadRequest, "no settings given")
		return
	}

	if err := h.svc.Update(r.Context(), updates); err != nil {
		response.WriteServiceError(w, err)
		return
	}

	settings, err := h.svc.GetAll(r.Context())
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, settings)
}
