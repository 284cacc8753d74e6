package http

import (
	"context"

	"github.com/MKhiriev/tradeflix-auth/internal/logger"
	"github.com/MKhiriev/tradeflix-auth/internal/service"
	"github.com/MKhiriev/tradeflix-auth/models"
	"github.com/google/uuid"
)

// Function-field stubs for the service interfaces. Each test sets only the
// methods its route touches; an unset method panics, which surfaces an
// unexpected call as a test failure.

type stubAuthService struct {
	RegisterFn       func(ctx context.Context, req models.RegisterRequest) error
	VerifyEmailFn    func(ctx context.Context, token string) error
	LoginFn          func(ctx context.Context, req models.LoginRequest, userAgent string) (models.AuthSession, error)
	FederatedLoginFn func(ctx context.Context, profile models.FederatedProfile, userAgent string) (models.AuthSession, error)
	RefreshFn        func(ctx context.Context, secret, userAgent string) (models.AuthSession, error)
	LogoutFn         func(ctx context.Context, secret string) error
	ForgotPasswordFn func(ctx context.Context, email string) error
	ResetPasswordFn  func(ctx context.Context, token, newPassword string) error
}

func (s *stubAuthService) Register(ctx context.Context, req models.RegisterRequest) error {
	return s.RegisterFn(ctx, req)
}

func (s *stubAuthService) VerifyEmail(ctx context.Context, token string) error {
	return s.VerifyEmailFn(ctx, token)
}

func (s *stubAuthService) Login(ctx context.Context, req models.LoginRequest, userAgent string) (models.AuthSession, error) {
	return s.LoginFn(ctx, req, userAgent)
}

func (s *stubAuthService) FederatedLogin(ctx context.Context, profile models.FederatedProfile, userAgent string) (models.AuthSession, error) {
	return s.FederatedLoginFn(ctx, profile, userAgent)
}

func (s *stubAuthService) Refresh(ctx context.Context, secret, userAgent string) (models.AuthSession, error) {
	return s.RefreshFn(ctx, secret, userAgent)
}

func (s *stubAuthService) Logout(ctx context.Context, secret string) error {
	return s.LogoutFn(ctx, secret)
}

func (s *stubAuthService) ForgotPassword(ctx context.Context, email string) error {
	return s.ForgotPasswordFn(ctx, email)
}

func (s *stubAuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	return s.ResetPasswordFn(ctx, token, newPassword)
}

type stubUserService struct {
	CurrentUserFn   func(ctx context.Context, userID int64) (models.User, error)
	ListSessionsFn  func(ctx context.Context, userID int64) ([]models.Session, error)
	RevokeSessionFn func(ctx context.Context, userID int64, sessionID uuid.UUID) error
}

func (s *stubUserService) CurrentUser(ctx context.Context, userID int64) (models.User, error) {
	return s.CurrentUserFn(ctx, userID)
}

func (s *stubUserService) ListSessions(ctx context.Context, userID int64) ([]models.Session, error) {
	return s.ListSessionsFn(ctx, userID)
}

func (s *stubUserService) RevokeSession(ctx context.Context, userID int64, sessionID uuid.UUID) error {
	return s.RevokeSessionFn(ctx, userID, sessionID)
}

type stubTokenService struct {
	ParseAccessTokenFn func(tokenString string) (models.TokenPayload, error)
}

func (s *stubTokenService) IssueAccessToken(models.User) (string, error) {
	panic("IssueAccessToken is not expected on the http layer")
}

func (s *stubTokenService) ParseAccessToken(tokenString string) (models.TokenPayload, error) {
	return s.ParseAccessTokenFn(tokenString)
}

func (s *stubTokenService) IssueAuthTokens(models.User) (models.AuthTokens, error) {
	panic("IssueAuthTokens is not expected on the http layer")
}

func (s *stubTokenService) HashRefreshSecret(string) string {
	panic("HashRefreshSecret is not expected on the http layer")
}

func (s *stubTokenService) IssueVerificationToken(models.User) (string, error) {
	panic("IssueVerificationToken is not expected on the http layer")
}

func (s *stubTokenService) ParseVerificationToken(string) (models.TokenPayload, error) {
	panic("ParseVerificationToken is not expected on the http layer")
}

func (s *stubTokenService) IssueResetToken(models.User) (string, error) {
	panic("IssueResetToken is not expected on the http layer")
}

func (s *stubTokenService) ParseResetToken(string) (models.TokenPayload, error) {
	panic("ParseResetToken is not expected on the http layer")
}

type stubIdentityProvider struct {
	ExchangeFn func(ctx context.Context, code string) (models.FederatedProfile, error)
}

func (s *stubIdentityProvider) Exchange(ctx context.Context, code string) (models.FederatedProfile, error) {
	return s.ExchangeFn(ctx, code)
}

// testDeps bundles the stubs behind a handler under test.
type testDeps struct {
	auth     *stubAuthService
	users    *stubUserService
	tokens   *stubTokenService
	identity *stubIdentityProvider
}

// newTestHandler builds a Handler in development mode wired to fresh stubs.
func newTestHandler() (*Handler, *testDeps) {
	deps := &testDeps{
		auth:     &stubAuthService{},
		users:    &stubUserService{},
		tokens:   &stubTokenService{},
		identity: &stubIdentityProvider{},
	}
	h := &Handler{
		services: &service.Services{
			TokenService: deps.tokens,
			AuthService:  deps.auth,
			UserService:  deps.users,
		},
		identity:   deps.identity,
		clientURL:  "https://app.tradeflix.test",
		production: false,
		version:    "1.2.3",
		logger:     logger.Nop(),
	}
	return h, deps
}
