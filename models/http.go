package models

// Request DTOs for the authentication endpoints. Each struct carries
// go-playground/validator tags; validation runs at the HTTP boundary before
// the orchestrator is invoked, so the service layer only ever sees
// well-formed input.

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	// Email is the address the account will be registered under.
	Email string `json:"email" validate:"required,email"`

	// Password must be 8-100 characters with at least one lowercase letter,
	// one uppercase letter, and one digit.
	Password string `json:"password" validate:"required,min=8,max=100,password"`

	// Name is the display name, at most 50 characters.
	Name string `json:"name" validate:"required,max=50"`
}

// LoginRequest is the body of POST /auth/login. The password is only
// required to be present; complexity rules apply at registration time.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ForgotPasswordRequest is the body of POST /auth/forgot-password.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest is the body of POST /auth/reset-password. The reset
// token itself travels in the query string, mirroring the emailed link.
type ResetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=8,max=100,password"`
}

// LoginResponse is the success payload of login and refresh: the signed
// access token plus the client-safe user projection. The refresh secret is
// deliberately absent — it is transported only via the HttpOnly cookie.
type LoginResponse struct {
	AccessToken string     `json:"accessToken"`
	User        PublicUser `json:"user"`
}
