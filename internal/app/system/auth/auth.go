// Package auth carries the request identity for the API.
//
// Identity comes from a bearer token in the Authorization header. The
// middleware verifies the token and stores an Identity in the request
// context; handlers read it back with CurrentUser. Routes that mount
// RequireAuth reject unauthenticated requests with 401 before the handler
// runs.
package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/cinehubdev/cinehub/internal/app/system/httpjson"
)

// Identity is the authenticated caller, as decoded from a bearer token.
type Identity struct {
	UserID      string
	DisplayName string
}

type ctxKey string

const identityKey ctxKey = "identity"

// CurrentUser returns the authenticated identity for the request, if any.
func CurrentUser(r *http.Request) (*Identity, bool) {
	id, ok := r.Context().Value(identityKey).(*Identity)
	return id, ok && id != nil
}

// RequireAuth verifies the Authorization: Bearer header with the given
// TokenManager and stores the resulting Identity in the request context.
// Missing or invalid tokens end the request with 401 {"error": ...}.
func RequireAuth(tm *TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				httpjson.Error(w, http.StatusUnauthorized, "authentication required")
				return
			}
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				httpjson.Error(w, http.StatusUnauthorized, "invalid authorization header")
				return
			}
			claims, err := tm.Verify(parts[1])
			if err != nil {
				httpjson.Error(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}
			id := &Identity{UserID: claims.UserID, DisplayName: claims.DisplayName}
			next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), id)))
		})
	}
}

func withIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// WithTestUser injects an identity directly into the request context,
// bypassing token verification. Test helper only.
func WithTestUser(r *http.Request, id *Identity) *http.Request {
	return r.WithContext(withIdentity(r.Context(), id))
}
