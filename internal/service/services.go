package service

import (
	"github.com/MKhiriev/tradeflix-auth/internal/adapter"
	"github.com/MKhiriev/tradeflix-auth/internal/config"
	"github.com/MKhiriev/tradeflix-auth/internal/logger"
	"github.com/MKhiriev/tradeflix-auth/internal/store"
)

// Services bundles the service layer for handler wiring.
type Services struct {
	TokenService TokenService
	AuthService  AuthService
	UserService  UserService
}

// NewServices wires the full service layer over the given stores and
// outbound collaborators.
func NewServices(
	storages store.Storages,
	mailer adapter.Mailer,
	mailCheck adapter.EmailChecker,
	cfg *config.StructuredConfig,
	logger *logger.Logger,
) *Services {
	tokens := NewTokenService(cfg.Auth)
	return &Services{
		TokenService: tokens,
		AuthService:  NewAuthService(storages, tokens, mailer, mailCheck, cfg, logger),
		UserService:  NewUserService(storages, logger),
	}
}
