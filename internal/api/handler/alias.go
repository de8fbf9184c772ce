package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/edvin/edgeid/internal/api/request"
	"github.com/edvin/edgeid/internal/api/response"
	"github.com/edvin/edgeid/internal/core"
	"github.com/edvin/edgeid/internal/model"
)

type Alias struct {
	svc *core.AliasService
}

func NewAlias(svc *core.AliasService) *Alias {
	return &Alias{svc: svc}
}

// List godoc
//
//	@Summary		List domain aliases, newest first
//	@Tags			Aliases
//	@Security		ApiKeyAuth
//	@Success		200 {array} model.DomainAlias
//	@Router			/aliases [get]
func (h *Alias) List(w http.ResponseWriter, r *http.Request) {
	aliases, err := h.svc.List(r.Context())
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	if aliases == nil {
		aliases = []model.DomainAlias{}
	}
	response.WriteJSON(w, http.StatusOK, aliases)
}

// Create godoc
//
//	@Summary		Register a domain alias
//	@Tags			Aliases
//	@Security		ApiKeyAuth
//	@Param			body body request.CreateAlias true "Alias details"
//	@Success		201 {object} model.DomainAlias
//	@Failure		400 {object} map[string]string
//	@Failure		409 {object} map[string]string
//	@Router			/aliases [post]
func (h *Alias) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateAlias
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	alias, err := h.svc.Create(r.Context(), req.BaseDomain, req.Subdomain, req.MaskedSubdomain)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusCreated, alias)
}

// Delete godoc
//
//	@Summary		Delete a domain alias
//	@Tags			Aliases
//	@Security		ApiKeyAuth
//	@Param			id path string true "Alias ID"
//	@Success		204
//	@Failure		404 {object} map[string]string
//	@Router			/aliases/{id} [delete]
func (h *Alias) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		response.WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
