// Package middlewarectx holds the HTTP middleware that resolves the caller's
// session, enforces roles, limits login attempts and records activity.
package middlewarectx

import (
	"context"

	"github.com/AMULYA007-hub/campus-hire/internal/models"
)

// Key is the type of request context keys.
type Key string

// IdentityKey holds the Identity of an authenticated request.
const IdentityKey Key = "identity"

// Identity is the caller of an authenticated request.
type Identity struct {
	ContextID string
	Profile   models.Profile
}

// WithIdentity returns ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, IdentityKey, id)
}

// IdentityFrom returns the Identity stored by JWTMiddleware.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(IdentityKey).(Identity)
	return id, ok
}
