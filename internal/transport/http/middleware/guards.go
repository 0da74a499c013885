package middleware

import (
	"net/http"

	"github.com/tourplace/auth-service/internal/domain"
)

// RequireAuth rejects anonymous requests. Assumes Authenticate has run.
func RequireAuth(writeErr WriteErrFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := PrincipalFromContext(r.Context()); !ok {
				writeErr(w, r, domain.ErrTokenMissing())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuthority rejects callers whose principal does not carry the
// given authority, e.g. "ROLE_ADMIN". Anonymous callers get 401, known
// callers without the authority get 403.
func RequireAuthority(authority string, writeErr WriteErrFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFromContext(r.Context())
			if !ok {
				writeErr(w, r, domain.ErrTokenMissing())
				return
			}
			if p.Authority != authority {
				writeErr(w, r, domain.ErrInsufficientRole(authority))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
