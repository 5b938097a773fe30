package middleware

import (
	"context"
	"errors"
	"net/http"

	"career_path/internal/common"
	"career_path/internal/common/security"
	"career_path/internal/domain/model"

	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const IdentityCtxKey contextKey = "identity"

// IdentityResolver turns the user id carried by a session token back
// into a live identity. Injected rather than global so tests can swap
// it out.
type IdentityResolver interface {
	Resolve(ctx context.Context, id string) (*model.Identity, error)
}

// SessionChecker reports whether a session token has been revoked.
type SessionChecker interface {
	Revoked(ctx context.Context, jti string) (bool, error)
}

// Authenticator guards protected routes. It requires a verified token
// (jwtauth.Verifier must run earlier in the chain), rejects revoked
// sessions, and re-resolves the identity from the user store on every
// request. A token whose user no longer exists is treated exactly like
// a logged-out session.
func Authenticator(resolver IdentityResolver, sessions SessionChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())

			if err != nil {
				if errors.Is(err, jwtauth.ErrNoTokenFound) || token == nil {
					common.RespondWithError(w, http.StatusUnauthorized, "Authorization token required")
				} else {
					common.RespondWithError(w, http.StatusUnauthorized, "Invalid token: "+err.Error())
				}
				return
			}

			if token == nil {
				common.RespondWithError(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			userID, err := security.GetUserIDFromClaims(claims)
			if err != nil {
				common.RespondWithError(w, http.StatusUnauthorized, "Invalid token claims: "+err.Error())
				return
			}
			jti, err := security.GetJTIFromClaims(claims)
			if err != nil {
				common.RespondWithError(w, http.StatusUnauthorized, "Invalid token claims: "+err.Error())
				return
			}

			revoked, err := sessions.Revoked(r.Context(), jti)
			if err != nil {
				common.RespondWithError(w, http.StatusInternalServerError, "Failed to check session")
				return
			}
			if revoked {
				common.RespondWithError(w, http.StatusUnauthorized, "Session is no longer valid")
				return
			}

			identity, err := resolver.Resolve(r.Context(), userID)
			if err != nil {
				if errors.Is(err, common.ErrNotFound) {
					common.RespondWithError(w, http.StatusUnauthorized, "Session is no longer valid")
				} else {
					common.RespondWithError(w, http.StatusInternalServerError, "Failed to resolve identity")
				}
				return
			}

			ctx := context.WithValue(r.Context(), IdentityCtxKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetIdentityFromContext returns the resolved identity for the request.
func GetIdentityFromContext(ctx context.Context) (*model.Identity, bool) {
	identity, ok := ctx.Value(IdentityCtxKey).(*model.Identity)
	return identity, ok
}
