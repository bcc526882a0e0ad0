package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ratepoint/service-core/internal/apperr"
)

// Principal identifies the authenticated caller for the rest of the request.
type Principal struct {
	UserID string
	Role   string
}

type principalContextKey struct{}

// PrincipalFrom returns the authenticated principal stored by Require.
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalContextKey{}).(Principal)
	return p, ok
}

// WithPrincipal stores a principal in ctx. Exposed for handler tests.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalContextKey{}, p)
}

// Require returns a middleware gating a route on a verified bearer token
// plus the IsAuthorized role policy. No roles means any authenticated user.
func Require(issuer *Issuer, roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeError(w, apperr.Unauthenticated("missing bearer token"))
				return
			}
			claims, err := issuer.Verify(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				writeError(w, err)
				return
			}
			if !IsAuthorized(claims.Role, roles) {
				writeError(w, apperr.Forbidden("insufficient role"))
				return
			}
			p := Principal{UserID: claims.Subject, Role: claims.Role}
			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
		})
	}
}

func writeError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apperr.Status(err))
	_ = json.NewEncoder(w).Encode(map[string]string{"message": apperr.PublicMessage(err)})
}
