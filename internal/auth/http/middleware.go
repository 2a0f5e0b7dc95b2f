package http

import (
	"context"
	"net/http"

	authdomain "github.com/epakhin/teamdeck/authd/internal/auth/domain"
	"github.com/epakhin/teamdeck/authd/internal/auth/service"
	commonhttp "github.com/epakhin/teamdeck/authd/internal/common/http"
	"github.com/epakhin/teamdeck/authd/internal/common/logger"
)

type contextKey string

const claimsKey contextKey = "access_claims"

// RequireAuth authenticates the Authorization header and stores the access
// claims on the request context. Malformed headers map to 400, rejected
// credentials to 401.
func RequireAuth(bearer *service.BearerAuthenticator, log *logger.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := bearer.Authenticate(r.Header.Get("Authorization"))
			if err != nil {
				log.Warnf("bearer auth failed path=%s: %v", r.URL.Path, err)
				commonhttp.WriteDomainError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRoles gates a route on role membership. It must run after
// RequireAuth.
func RequireRoles(log *logger.Logger, allowedRoles ...string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok || !service.IsAllowed(claims, allowedRoles) {
				log.Warnf("role check failed path=%s", r.URL.Path)
				commonhttp.WriteErrorEnvelope(w, http.StatusForbidden, commonhttp.CodeForbidden, "insufficient role", "")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func ClaimsFromContext(ctx context.Context) (*authdomain.AccessClaims, bool) {
	claims, ok := ctx.Value(claimsKey).(authdomain.AccessClaims)
	if !ok {
		return nil, false
	}
	return &claims, true
}
