package auth

import (
	"context"

	"github.com/UmangSachdeva/StaffPortal/models"
)

type contextKey string

const identityKey contextKey = "identity"

// WithIdentity attaches the verified caller to ctx.
func WithIdentity(ctx context.Context, identity models.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

func IdentityFrom(ctx context.Context) (models.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(models.Identity)
	return identity, ok
}
