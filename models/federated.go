package models

// FederatedProfile is the identity assertion delivered by an external,
// pre-trusted provider after its own redirect/consent handshake. The auth
// core consumes the profile; it never performs the handshake itself.
type FederatedProfile struct {
	// ExternalID is the provider-scoped unique identifier of the user.
	ExternalID string `json:"id"`

	// Email is the address asserted by the provider. Provider-asserted
	// addresses are trusted as already verified.
	Email string `json:"email"`

	// DisplayName is the human-readable name reported by the provider.
	DisplayName string `json:"name"`
}
