// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/MKhiriev/tradeflix-auth/internal/config"
	"github.com/MKhiriev/tradeflix-auth/models"
	"github.com/golang-jwt/jwt/v5"
)

// refreshSecretBytes is the entropy of an opaque refresh secret. The secret
// travels hex-encoded, so the cookie value is twice this length.
const refreshSecretBytes = 64

// tokenService is the concrete implementation of TokenService. It is
// stateless apart from its configuration; the clock is injected so tests can
// pin issuance and expiry.
type tokenService struct {
	accessSecret string
	verifySecret string
	resetSecret  string

	issuer string

	accessTTL  time.Duration
	refreshTTL time.Duration
	verifyTTL  time.Duration
	resetTTL   time.Duration

	now func() time.Time
}

// NewTokenService constructs a TokenService from the auth configuration.
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewTokenService(cfg config.Auth) TokenService {
	return &tokenService{
		accessSecret: cfg.AccessSecret,
		verifySecret: cfg.VerifyEmailSecret,
		resetSecret:  cfg.ResetPasswordSecret,
		issuer:       cfg.Issuer,
		accessTTL:    cfg.AccessTTL,
		refreshTTL:   time.Duration(cfg.RefreshDays) * 24 * time.Hour,
		verifyTTL:    cfg.VerifyTTL,
		resetTTL:     cfg.ResetTTL,
		now:          time.Now,
	}
}

// IssueAccessToken signs an HS256 token carrying sub, email, iss, iat and exp.
func (t *tokenService) IssueAccessToken(user models.User) (string, error) {
	now := t.now()
	claims := models.AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.issuer,
			Subject:   strconv.FormatInt(user.UserID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.accessTTL)),
		},
		Email: user.Email,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(t.accessSecret))
	if err != nil {
		return "", fmt.Errorf("signing access token: %w", err)
	}
	return signed, nil
}

// ParseAccessToken validates the signature, issuer and expiry of an access
// token and extracts its payload.
func (t *tokenService) ParseAccessToken(tokenString string) (models.TokenPayload, error) {
	claims := &models.AccessClaims{}
	if err := t.parse(tokenString, t.accessSecret, claims); err != nil {
		return models.TokenPayload{}, err
	}

	userID, err := subjectID(&claims.RegisteredClaims)
	if err != nil {
		return models.TokenPayload{}, ErrTokenInvalid
	}
	return models.TokenPayload{UserID: userID, Email: claims.Email}, nil
}

// IssueAuthTokens mints an access token together with a fresh opaque refresh
// secret and the refresh expiry.
func (t *tokenService) IssueAuthTokens(user models.User) (models.AuthTokens, error) {
	accessToken, err := t.IssueAccessToken(user)
	if err != nil {
		return models.AuthTokens{}, err
	}

	secret, err := newRefreshSecret()
	if err != nil {
		return models.AuthTokens{}, err
	}

	return models.AuthTokens{
		AccessToken:      accessToken,
		RefreshSecret:    secret,
		RefreshExpiresAt: t.now().Add(t.refreshTTL),
	}, nil
}

// HashRefreshSecret returns the hex SHA-256 digest of the secret.
func (t *tokenService) HashRefreshSecret(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}

// IssueVerificationToken signs a token proving control of the account's
// email address. It asserts only the subject.
func (t *tokenService) IssueVerificationToken(user models.User) (string, error) {
	return t.issueSubjectToken(user.UserID, t.verifySecret, t.verifyTTL)
}

// ParseVerificationToken validates an email-verification token.
func (t *tokenService) ParseVerificationToken(tokenString string) (models.TokenPayload, error) {
	return t.parseSubjectToken(tokenString, t.verifySecret)
}

// IssueResetToken signs a token authorizing a single password reset.
func (t *tokenService) IssueResetToken(user models.User) (string, error) {
	return t.issueSubjectToken(user.UserID, t.resetSecret, t.resetTTL)
}

// ParseResetToken validates a password-reset token.
func (t *tokenService) ParseResetToken(tokenString string) (models.TokenPayload, error) {
	return t.parseSubjectToken(tokenString, t.resetSecret)
}

func (t *tokenService) issueSubjectToken(userID int64, secret string, ttl time.Duration) (string, error) {
	now := t.now()
	claims := jwt.RegisteredClaims{
		Issuer:    t.issuer,
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

func (t *tokenService) parseSubjectToken(tokenString, secret string) (models.TokenPayload, error) {
	claims := &jwt.RegisteredClaims{}
	if err := t.parse(tokenString, secret, claims); err != nil {
		return models.TokenPayload{}, err
	}

	userID, err := subjectID(claims)
	if err != nil {
		return models.TokenPayload{}, ErrTokenInvalid
	}
	return models.TokenPayload{UserID: userID}, nil
}

// parse verifies the signature, algorithm, issuer and time claims, filling
// claims in place. Every failure collapses into ErrTokenExpired or
// ErrTokenInvalid so callers never inspect low-level JWT errors.
func (t *tokenService) parse(tokenString, secret string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(t.issuer),
		jwt.WithTimeFunc(t.now),
	)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case err != nil, !token.Valid:
		return ErrTokenInvalid
	}
	return nil
}

func subjectID(claims *jwt.RegisteredClaims) (int64, error) {
	return strconv.ParseInt(claims.Subject, 10, 64)
}

// newRefreshSecret draws a fresh opaque secret from the system CSPRNG.
func newRefreshSecret() (string, error) {
	buf := make([]byte, refreshSecretBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("reading random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
