// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/MKhiriev/tradeflix-auth/internal/config"
	"github.com/MKhiriev/tradeflix-auth/internal/logger"
)

// smtpMailer delivers HTML email over plain SMTP with optional PLAIN auth.
type smtpMailer struct {
	addr string
	from string
	auth smtp.Auth

	logger *logger.Logger
}

// NewSMTPMailer constructs a Mailer speaking SMTP to the configured host.
// When no username is configured the connection is unauthenticated, which is
// what local relay setups expect.
func NewSMTPMailer(cfg config.Mail, logger *logger.Logger) Mailer {
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}

	return &smtpMailer{
		addr:   fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		from:   cfg.From,
		auth:   auth,
		logger: logger,
	}
}

// Send delivers a single HTML message. The context is consulted before
// dialing; net/smtp itself does not support cancellation mid-transaction.
func (s *smtpMailer) Send(ctx context.Context, to, subject, html string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := buildMessage(s.from, to, subject, html)
	if err := smtp.SendMail(s.addr, s.auth, s.from, []string{to}, msg); err != nil {
		return fmt.Errorf("sending mail to %s: %w", to, err)
	}

	s.logger.Info().Str("to", to).Str("subject", subject).Msg("email sent")
	return nil
}

// buildMessage assembles an RFC 5322 message with an HTML body.
func buildMessage(from, to, subject, html string) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(html)
	return []byte(b.String())
}
