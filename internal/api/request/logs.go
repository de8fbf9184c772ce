package request

import (
	"net/http"
	"strconv"
)

const MaxLogLimit = 500

// ParseLogLimit extracts the limit query parameter. Zero means "use the
// service default"; values above the cap are clamped.
func ParseLogLimit(r *http.Request) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return 0
	}
	if limit > MaxLogLimit {
		return MaxLogLimit
	}
	return limit
}
