package models

import "time"

// User represents an account entity used for authentication and authorization.
// It contains identity attributes and credential-related data.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"-"`

	// Email is the unique account identifier, stored lowercase.
	Email string `json:"email"`

	// Name is the display name of the user.
	// It is non-sensitive and may be shown in UI.
	Name string `json:"name"`

	// PasswordHash stores the bcrypt hash of the user's password.
	// Empty for accounts created through a federated identity provider.
	// It is never serialized to clients.
	PasswordHash string `json:"-"`

	// GoogleID is the identifier asserted by Google for federated accounts.
	// Empty unless the account was created via or linked to Google sign-in.
	GoogleID string `json:"-"`

	// IsVerified reports whether the account's email address has been
	// confirmed. Password-based logins are rejected until it is true;
	// federated accounts are verified implicitly.
	IsVerified bool `json:"is_verified"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp of the last account mutation
	// (verification, password change, federated link).
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// HasPassword reports whether the account carries a local password
// credential. Federated-only accounts have none.
func (u User) HasPassword() bool {
	return u.PasswordHash != ""
}

// PublicUser is the client-facing projection of a [User]. It carries only
// fields that are safe to return in API response bodies.
type PublicUser struct {
	// ID is the user's identifier.
	ID int64 `json:"id"`

	// Email is the account email address.
	Email string `json:"email"`

	// Name is the display name.
	Name string `json:"name"`
}

// Public returns the client-safe projection of the user.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:    u.UserID,
		Email: u.Email,
		Name:  u.Name,
	}
}

// MeResponse is the payload of the GET /user/me endpoint. It extends
// [PublicUser] with the verification flag so clients can gate UI state.
type MeResponse struct {
	ID         int64  `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	IsVerified bool   `json:"isVerified"`
}
