// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a sentinel error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Auth.AccessSecret == "" ||
		cfg.Auth.VerifyEmailSecret == "" ||
		cfg.Auth.ResetPasswordSecret == "" {
		return ErrInvalidAuthConfigs
	}

	// the token classes must not share secrets, otherwise a token of one
	// class verifies as another
	if cfg.Auth.AccessSecret == cfg.Auth.VerifyEmailSecret ||
		cfg.Auth.AccessSecret == cfg.Auth.ResetPasswordSecret ||
		cfg.Auth.VerifyEmailSecret == cfg.Auth.ResetPasswordSecret {
		return ErrInvalidAuthConfigs
	}

	if cfg.Auth.AccessTTL <= 0 || cfg.Auth.RefreshDays <= 0 ||
		cfg.Auth.VerifyTTL <= 0 || cfg.Auth.ResetTTL <= 0 {
		return ErrInvalidAuthConfigs
	}

	if cfg.App.ClientURL == "" {
		return ErrInvalidAppConfigs
	}

	if cfg.Workers.SweepInterval <= 0 || cfg.Workers.SessionRetention <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
