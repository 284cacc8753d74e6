// Package http implements the HTTP transport layer of the service. It
// provides the route table, middleware (tracing, logging, authentication),
// the cookie handling for refresh secrets, and the single error classifier
// that turns service failures into the uniform JSON envelope.
package http

import (
	"github.com/MKhiriev/tradeflix-auth/internal/adapter"
	"github.com/MKhiriev/tradeflix-auth/internal/config"
	"github.com/MKhiriev/tradeflix-auth/internal/logger"
	"github.com/MKhiriev/tradeflix-auth/internal/service"
)

// Handler carries the service layer and request-scoped collaborators for all
// HTTP endpoints.
type Handler struct {
	services *service.Services

	// identity performs the OAuth code-for-profile exchange for the
	// federated callback endpoint.
	identity adapter.IdentityProvider

	// clientURL is the browser client base URL targeted by the
	// verify-email and OAuth redirects.
	clientURL string

	// production gates the Secure cookie attribute and whether internal
	// error text is rendered to clients.
	production bool

	// version is the running application version, served by /version.
	version string

	logger *logger.Logger
}

// NewHandler constructs the HTTP handler set.
func NewHandler(services *service.Services, identity adapter.IdentityProvider, cfg *config.StructuredConfig, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:   services,
		identity:   identity,
		clientURL:  cfg.App.ClientURL,
		production: cfg.App.IsProduction(),
		version:    cfg.App.Version,
		logger:     logger,
	}
}
