package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/UmangSachdeva/StaffPortal/apperror"
	"github.com/UmangSachdeva/StaffPortal/auth"
	"github.com/UmangSachdeva/StaffPortal/helpers"
	"github.com/UmangSachdeva/StaffPortal/models"
)

// Authenticator turns an Authorization header into the caller it belongs to.
type Authenticator interface {
	Authenticate(ctx context.Context, header string) (models.Identity, error)
}

// Authentication rejects requests without a valid bearer token and attaches the
// verified identity to the request context.
func Authentication(a Authenticator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := a.Authenticate(r.Context(), r.Header.Get("Authorization"))
			if err != nil {
				helpers.WriteError(w, logger, r, err)
				return
			}

			ctx := auth.WithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRoles lets the request through only when the authenticated caller holds one of roles.
func RequireRoles(logger *slog.Logger, roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := auth.IdentityFrom(r.Context())
			if !ok {
				helpers.WriteError(w, logger, r, apperror.InvalidCredential("Authentication required."))
				return
			}

			if !auth.HasAnyRole(identity, roles...) {
				helpers.WriteError(w, logger, r, apperror.Forbidden("Access denied. Insufficient permissions."))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
