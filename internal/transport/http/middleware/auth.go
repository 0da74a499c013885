package middleware

import (
	"net/http"
	"strings"

	"github.com/tourplace/auth-service/internal/infrastructure/security"
	"github.com/tourplace/auth-service/internal/logger"
)

type TokenVerifier interface {
	Verify(token string) (security.Claims, error)
}

type WriteErrFunc func(http.ResponseWriter, *http.Request, error)

// Authenticate reads Authorization: Bearer <token> and, when the token
// verifies, injects the caller's Principal into the request context.
//
// It never rejects: a missing, malformed or invalid token leaves the
// request anonymous and lets the route guards decide. Verification
// failures are logged and swallowed here.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := r.Header.Get("Authorization")
			if h == "" {
				next.ServeHTTP(w, r)
				return
			}

			parts := strings.SplitN(h, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				next.ServeHTTP(w, r)
				return
			}

			raw := strings.TrimSpace(parts[1])
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := verifier.Verify(raw)
			if err != nil || strings.TrimSpace(claims.UserID) == "" {
				l := logger.WithCtx(r.Context())
				l.Debug().Err(err).Msg("bearer token rejected")
				next.ServeHTTP(w, r)
				return
			}

			ctx := WithPrincipal(r.Context(), Principal{
				UserID:    claims.UserID,
				Email:     claims.Email,
				Role:      claims.Role,
				Authority: AuthorityForRole(claims.Role),
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
