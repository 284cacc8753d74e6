package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/tradeflix-auth/internal/logger"
	"github.com/MKhiriev/tradeflix-auth/internal/store"
	"github.com/MKhiriev/tradeflix-auth/models"
)

// FederatedLogin signs in from a provider-asserted identity profile.
//
// Resolution order:
//  1. An account already linked to the external ID signs straight in.
//  2. An account matching the asserted email gets the external ID linked,
//     is marked verified, and keeps its existing display name.
//  3. Otherwise a verified, passwordless account is created.
//
// The provider's consent handshake already proved control of the email, so
// no verification gate applies here.
func (a *authService) FederatedLogin(ctx context.Context, profile models.FederatedProfile, userAgent string) (models.AuthSession, error) {
	log := logger.FromContext(ctx)

	if profile.ExternalID == "" || profile.Email == "" {
		return models.AuthSession{}, ErrInvalidProfile
	}

	user, err := a.resolveFederatedUser(ctx, profile)
	if err != nil {
		return models.AuthSession{}, err
	}

	session, err := a.openSession(ctx, user, userAgent)
	if err != nil {
		return models.AuthSession{}, err
	}

	log.Info().Int64("user_id", user.UserID).Msg("federated login")
	return session, nil
}

func (a *authService) resolveFederatedUser(ctx context.Context, profile models.FederatedProfile) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := a.users.FindUserByGoogleID(ctx, profile.ExternalID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, store.ErrNoUserWasFound) {
		return models.User{}, fmt.Errorf("looking up federated user: %w", err)
	}

	email := normalizeEmail(profile.Email)

	existing, err := a.users.FindUserByEmail(ctx, email)
	if err == nil {
		linked, linkErr := a.users.LinkGoogleID(ctx, existing.UserID, profile.ExternalID, profile.DisplayName)
		if linkErr != nil {
			return models.User{}, fmt.Errorf("linking federated identity: %w", linkErr)
		}
		log.Info().Int64("user_id", linked.UserID).Msg("federated identity linked to existing account")
		return linked, nil
	}
	if !errors.Is(err, store.ErrNoUserWasFound) {
		return models.User{}, fmt.Errorf("looking up user by email: %w", err)
	}

	created, err := a.users.CreateUser(ctx, models.User{
		Email:      email,
		Name:       profile.DisplayName,
		GoogleID:   profile.ExternalID,
		IsVerified: true,
	})
	if err != nil {
		return models.User{}, fmt.Errorf("creating federated user: %w", err)
	}

	log.Info().Int64("user_id", created.UserID).Msg("federated account created")
	return created, nil
}
