package http

import (
	"context"

	"github.com/MKhiriev/tradeflix-auth/models"
)

// ctxKey is the private type for request-context keys of this package.
type ctxKey int

// userCtxKey stores the authenticated *models.User placed by the auth
// middleware.
const userCtxKey ctxKey = iota

// withUser returns a context carrying the authenticated user.
func withUser(ctx context.Context, user models.User) context.Context {
	return context.WithValue(ctx, userCtxKey, user)
}

// userFromContext retrieves the authenticated user. The boolean is false on
// routes that did not pass the auth middleware.
func userFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(userCtxKey).(models.User)
	return user, ok
}
