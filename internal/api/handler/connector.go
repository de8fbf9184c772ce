package handler

import (
	"net/http"

	"github.com/edvin/edgeid/internal/api/request"
	"github.com/edvin/edgeid/internal/api/response"
	"github.com/edvin/edgeid/internal/core"
	"github.com/edvin/edgeid/internal/model"
)

type Connector struct {
	svc *core.ConnectorService
}

func NewConnector(svc *core.ConnectorService) *Connector {
	return &Connector{svc: svc}
}

// Install godoc
//
//	@Summary		Install the tunnel connector
//	@Tags			Connector
//	@Security		ApiKeyAuth
//	@Param			body body request.InstallConnector true "Tunnel token"
//	@Success		200 {object} model.ExecutionResult
//	@Failure		400 {object} map[string]string
//	@Failure		504 {object} map[string]string
//	@Router			/connector/install [post]
func (h *Connector) Install(w http.ResponseWriter, r *http.Request) {
	var req request.InstallConnector
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.svc.Install(r.Context(), req.Token)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, result)
}

// StatusChecks godoc
//
//	@Summary		Run the connector diagnostic sequence
//	@Tags			Connector
//	@Security		ApiKeyAuth
//	@Success		200 {array} model.ExecutionResult
//	@Router			/connector/status-checks [post]
func (h *Connector) StatusChecks(w http.ResponseWriter, r *http.Request) {
	results, err := h.svc.RunStatusChecks(r.Context())
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, results)
}

// RunCommand godoc
//
//	@Summary		Run an arbitrary shell command
//	@Description	Every execution is written to the connector log.
//	@Tags			Connector
//	@Security		ApiKeyAuth
//	@Param			body body request.RunCommand true "Command line"
//	@Success		200 {object} model.ExecutionResult
//	@Failure		400 {object} map[string]string
//	@Failure		504 {object} map[string]string
//	@Router			/connector/commands [post]
func (h *Connector) RunCommand(w http.ResponseWriter, r *http.Request) {
	var req request.RunCommand
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.svc.RunCustom(r.Context(), req.Command)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, result)
}

// Logs godoc
//
//	@Summary		List recent connector log entries
//	@Tags			Connector
//	@Security		ApiKeyAuth
//	@Param			limit query int false "Page size" default(50)
//	@Success		200 {array} model.ConnectorLog
//	@Router			/connector/logs [get]
func (h *Connector) Logs(w http.ResponseWriter, r *http.Request) {
	logs, err := h.svc.RecentLogs(r.Context(), request.ParseLogLimit(r))
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	if logs == nil {
		logs = []model.ConnectorLog{}
	}
	response.WriteJSON(w, http.StatusOK, logs)
}
