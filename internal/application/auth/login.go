package auth

import (
	"context"

	"github.com/tourplace/auth-service/internal/domain"
)

// Login authenticates a user and issues a bearer token.
// IMPORTANT: an unknown email and a wrong password are indistinguishable to
// the caller (avoid user enumeration); a disabled account rejects with its
// own code but the same 401.
func (s *Service) Login(ctx context.Context, email, password string) (TokenResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return TokenResult{}, domain.ErrInvalidCredentials()
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		// Hide not-found behind invalid credentials.
		return TokenResult{}, domain.ErrInvalidCredentials()
	}

	if !u.Enabled {
		return TokenResult{}, domain.ErrAccountDisabled()
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return TokenResult{}, domain.ErrInvalidCredentials()
	}

	return s.issueToken(u)
}
