package handler

import (
	"context"
	"net/http"

	"github.com/edvin/edgeid/internal/api/response"
)

// IPResolver discovers the host's current public IP address.
// Implemented by publicip.Resolver.
type IPResolver interface {
	Resolve(ctx context.Context) (string, error)
}

type PublicIP struct {
	resolver IPResolver
}

func NewPublicIP(resolver IPResolver) *PublicIP {
	return &PublicIP{resolver: resolver}
}

// Get godoc
//
//	@Summary		Discover the current public IP
//	@Tags			PublicIP
//	@Security		ApiKeyAuth
//	@Success		200 {object} map[string]string
//	@Failure		502 {object} map[string]string
//	@Router			/public-ip [get]
func (h *PublicIP) Get(w http.ResponseWriter, r *http.Request) {
	ip, err := h.resolver.Resolve(r.Context())
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]string{"ip": ip})
}
