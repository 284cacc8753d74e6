// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/tradeflix-auth/internal/apperrors"
	"github.com/MKhiriev/tradeflix-auth/internal/logger"
	"github.com/MKhiriev/tradeflix-auth/internal/validation"
	"github.com/MKhiriev/tradeflix-auth/models"
)

// respondError is the single funnel for every failed request.
//
// Trusted failures (*apperrors.Error and *validation.Error) are rendered
// exactly as constructed: status, code, message and details. Anything else
// is untrusted and becomes a generic 500; its text reaches the client only
// outside production. Every error, trusted or not, is logged in full.
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		log.Err(err).Int("status", appErr.Status).Str("code", appErr.Code).Msg("request failed")
		writeJSON(w, r, appErr.Status, models.ErrorResponse{
			Error: models.ErrorBody{
				Code:    appErr.Code,
				Message: appErr.Message,
				Details: appErr.Details,
			},
		})
		return
	}

	var valErr *validation.Error
	if errors.As(err, &valErr) {
		log.Err(err).Msg("validation failed")
		writeJSON(w, r, http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorBody{
				Code:    apperrors.CodeValidationError,
				Message: "Request validation failed",
				Details: valErr.Fields(),
			},
		})
		return
	}

	log.Err(err).Msg("unexpected error")

	body := models.ErrorBody{
		Code:    apperrors.CodeInternal,
		Message: "Something went wrong",
	}
	if !h.production {
		body.Internal = err.Error()
	}
	writeJSON(w, r, http.StatusInternalServerError, models.ErrorResponse{Error: body})
}
