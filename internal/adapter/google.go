package adapter

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/tradeflix-auth/internal/config"
	"github.com/MKhiriev/tradeflix-auth/internal/logger"
	"github.com/MKhiriev/tradeflix-auth/models"
	"github.com/go-resty/resty/v2"
)

// Google OAuth 2.0 endpoints. Overridable in tests through the constructor
// options below.
const (
	googleTokenURL    = "https://oauth2.googleapis.com/token"
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

	googleExchangeTimeout = 10 * time.Second
)

// googleProvider exchanges an OAuth authorization code for the Google
// profile of the consenting user.
type googleProvider struct {
	client *resty.Client

	clientID     string
	clientSecret string
	redirectURL  string

	tokenURL    string
	userInfoURL string

	logger *logger.Logger
}

// GoogleOption overrides a provider default.
type GoogleOption func(*googleProvider)

// WithGoogleEndpoints points the provider at alternative token and userinfo
// endpoints.
func WithGoogleEndpoints(tokenURL, userInfoURL string) GoogleOption {
	return func(g *googleProvider) {
		g.tokenURL = tokenURL
		g.userInfoURL = userInfoURL
	}
}

// tokenResponse is Google's answer to the code exchange.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// userInfoResponse is the subset of the userinfo payload the service needs.
type userInfoResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// NewGoogleProvider constructs an IdentityProvider performing the Google
// code-for-profile exchange.
func NewGoogleProvider(cfg config.OAuth, logger *logger.Logger, opts ...GoogleOption) IdentityProvider {
	g := &googleProvider{
		client:       resty.New().SetTimeout(googleExchangeTimeout),
		clientID:     cfg.GoogleClientID,
		clientSecret: cfg.GoogleClientSecret,
		redirectURL:  cfg.GoogleRedirectURL,
		tokenURL:     googleTokenURL,
		userInfoURL:  googleUserInfoURL,
		logger:       logger,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Exchange trades the authorization code for an access token, then loads the
// userinfo profile it grants.
func (g *googleProvider) Exchange(ctx context.Context, code string) (models.FederatedProfile, error) {
	token := tokenResponse{}
	resp, err := g.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"code":          code,
			"client_id":     g.clientID,
			"client_secret": g.clientSecret,
			"redirect_uri":  g.redirectURL,
			"grant_type":    "authorization_code",
		}).
		SetResult(&token).
		Post(g.tokenURL)
	if err != nil {
		return models.FederatedProfile{}, fmt.Errorf("exchanging authorization code: %w", err)
	}
	if resp.IsError() || token.AccessToken == "" {
		return models.FederatedProfile{}, fmt.Errorf("code exchange rejected with status %d", resp.StatusCode())
	}

	info := userInfoResponse{}
	resp, err = g.client.R().
		SetContext(ctx).
		SetAuthToken(token.AccessToken).
		SetResult(&info).
		Get(g.userInfoURL)
	if err != nil {
		return models.FederatedProfile{}, fmt.Errorf("loading user profile: %w", err)
	}
	if resp.IsError() || info.ID == "" {
		return models.FederatedProfile{}, fmt.Errorf("profile request rejected with status %d", resp.StatusCode())
	}

	return models.FederatedProfile{
		ExternalID:  info.ID,
		Email:       info.Email,
		DisplayName: info.Name,
	}, nil
}
