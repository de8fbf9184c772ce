package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/edvin/edgeid/internal/core"
)

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, map[string]string{"error": message})
}

// WriteServiceError maps a core error to its HTTP status. Unrecognized
// errors become a 500.
func WriteServiceError(w http.ResponseWriter, err error) {
	WriteError(w, statusFor(err), err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, core.ErrAliasCollision):
		return http.StatusConflict
	case errors.Is(err, core.ErrProvider), errors.Is(err, core.ErrNetworkResolution):
		return http.StatusBadGateway
	case errors.Is(err, core.ErrProcessTimeout):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
