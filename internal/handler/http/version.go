package http

import "net/http"

// appVersion handles GET /api/v1/version.
func (h *Handler) appVersion(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, http.StatusOK, map[string]string{"version": h.version}, "")
}
