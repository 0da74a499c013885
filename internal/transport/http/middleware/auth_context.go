package middleware

import (
	"context"
	"strings"
)

// Principal is the authenticated caller, as placed in the request context
// by Authenticate.
type Principal struct {
	UserID    string
	Email     string
	Role      string
	Authority string // "ROLE_USER", "ROLE_ADMIN"
}

// AuthorityForRole derives the authority tag carried by a role.
func AuthorityForRole(role string) string {
	return "ROLE_" + strings.ToUpper(role)
}

type ctxKey string

const ctxPrincipal ctxKey = "principal"

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, ctxPrincipal, p)
}

func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(ctxPrincipal).(Principal)
	return p, ok && p.UserID != ""
}
