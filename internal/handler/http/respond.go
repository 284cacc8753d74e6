package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/tradeflix-auth/internal/logger"
	"github.com/MKhiriev/tradeflix-auth/models"
)

// writeJSON serializes payload with the given status. A failed encode at
// this point can only be logged; headers are already on the wire.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.FromRequest(r).Err(err).Msg("encoding response failed")
	}
}

// respondSuccess writes the uniform success envelope. Message and data are
// optional.
func respondSuccess(w http.ResponseWriter, r *http.Request, status int, data any, message string) {
	writeJSON(w, r, status, models.SuccessResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}
