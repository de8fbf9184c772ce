package handler

import (
	"net/http"

	"github.com/edvin/edgeid/internal/api/request"
	"github.com/edvin/edgeid/internal/api/response"
	"github.com/edvin/edgeid/internal/core"
	"github.com/edvin/edgeid/internal/model"
)

type Certificate struct {
	svc *core.CertificateService
}

func NewCertificate(svc *core.CertificateService) *Certificate {
	return &Certificate{svc: svc}
}

// ListPacks godoc
//
//	@Summary		List the zone's certificate packs
//	@Tags			Certificates
//	@Security		ApiKeyAuth
//	@Success		200 {array} model.CertificatePack
//	@Failure		502 {object} map[string]string
//	@Router			/certificates/packs [get]
func (h *Certificate) ListPacks(w http.ResponseWriter, r *http.Request) {
	packs, err := h.svc.ListPacks(r.Context())
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	if packs == nil {
		packs = []model.CertificatePack{}
	}
	response.WriteJSON(w, http.StatusOK, packs)
}

// Issue godoc
//
//	@Summary		Order an advanced certificate pack
//	@Description	Validation runs on the provider side; poll the pack list
//	@Description	for status changes.
//	@Tags			Certificates
//	@Security		ApiKeyAuth
//	@Param			body body request.IssueCertificate true "Pack details"
//	@Success		202 {object} model.CertificatePack
//	@Failure		400 {object} map[string]string
//	@Failure		502 {object} map[string]string
//	@Router			/certificates/packs [post]
func (h *Certificate) Issue(w http.ResponseWriter, r *http.Request) {
	var req request.IssueCertificate
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	pack, err := h.svc.Issue(r.Context(), req.Hosts, req.ValidityDays)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusAccepted, pack)
}
