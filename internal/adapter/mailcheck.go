package adapter

import (
	"context"
	"strings"
	"time"

	"github.com/MKhiriev/tradeflix-auth/internal/config"
	"github.com/MKhiriev/tradeflix-auth/internal/logger"
	"github.com/go-resty/resty/v2"
)

// mailCheckTimeout bounds the advisory lookup so a slow provider cannot
// stall registrations.
const mailCheckTimeout = 5 * time.Second

// mailCheckClient asks an external deliverability API whether an address can
// receive mail. The check is advisory by contract: every failure mode folds
// into VerdictUnknown.
type mailCheckClient struct {
	client *resty.Client
	apiKey string

	logger *logger.Logger
}

// verifyResponse is the provider's answer to GET /verify.
type verifyResponse struct {
	EmailStatus string `json:"email_status"`
}

// NewMailCheckClient constructs an EmailChecker against the configured
// deliverability API. An empty API key disables the check.
func NewMailCheckClient(cfg config.MailCheck, logger *logger.Logger) EmailChecker {
	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(mailCheckTimeout)

	return &mailCheckClient{client: cli, apiKey: cfg.APIKey, logger: logger}
}

// CheckEmail returns the provider's verdict on the address. Disabled
// checker, transport failure, non-2xx status and unrecognized verdicts all
// come back as VerdictUnknown.
func (m *mailCheckClient) CheckEmail(ctx context.Context, email string) Verdict {
	if m.apiKey == "" {
		return VerdictUnknown
	}

	result := verifyResponse{}
	resp, err := m.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"key":   m.apiKey,
			"email": email,
		}).
		SetResult(&result).
		Get("/verify")
	if err != nil {
		m.logger.Err(err).Msg("mail check request failed")
		return VerdictUnknown
	}
	if resp.IsError() {
		m.logger.Warn().Int("status", resp.StatusCode()).Msg("mail check returned error status")
		return VerdictUnknown
	}

	switch result.EmailStatus {
	case string(VerdictValid):
		return VerdictValid
	case string(VerdictInvalid):
		return VerdictInvalid
	default:
		return VerdictUnknown
	}
}
