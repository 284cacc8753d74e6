// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter contains the outbound collaborators of the auth service:
// the SMTP mailer, the email-deliverability checker, and the federated
// identity provider. All of them sit outside the core flows behind small
// interfaces so the service layer can be tested without the network.
package adapter

import (
	"context"

	"github.com/MKhiriev/tradeflix-auth/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// Verdict is the outcome of an email-deliverability check.
type Verdict string

const (
	// VerdictValid means the provider positively confirmed the mailbox.
	VerdictValid Verdict = "VALID"

	// VerdictInvalid means the provider positively confirmed the mailbox
	// does not exist. This is the only verdict that blocks registration.
	VerdictInvalid Verdict = "INVALID"

	// VerdictUnknown covers every other case: catch-all domains, provider
	// errors, timeouts, or a disabled checker. Treated as deliverable.
	VerdictUnknown Verdict = "UNKNOWN"
)

// Mailer delivers a single HTML email. Implementations must be safe for
// concurrent use. Callers treat delivery as best-effort: a failed send is
// logged, never surfaced to the client.
type Mailer interface {
	Send(ctx context.Context, to, subject, html string) error
}

// EmailChecker performs an advisory deliverability check on an address.
// Implementations never return an error: any failure to reach a definite
// answer folds into VerdictUnknown so that an outage of the external
// provider cannot block registrations.
type EmailChecker interface {
	CheckEmail(ctx context.Context, email string) Verdict
}

// IdentityProvider exchanges the authorization code delivered to the OAuth
// callback for a verified identity profile.
type IdentityProvider interface {
	Exchange(ctx context.Context, code string) (models.FederatedProfile, error)
}
