package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/tourplace/auth-service/internal/domain"
)

// VerifyOTP completes registration: it checks the challenge, creates the
// user and issues the first bearer token.
//
// The store's email uniqueness is the authority for concurrent duplicates:
// when two verifications race, exactly one Create succeeds and the loser
// gets user_already_exists. The welcome mail is sent before the challenge
// is consumed, so a delivery failure surfaces and leaves the flow
// retryable.
func (s *Service) VerifyOTP(ctx context.Context, email, otp string) (TokenResult, error) {
	email = normalizeEmail(email)
	if email == "" || otp == "" {
		return TokenResult{}, domain.ErrMissingField("email/otp")
	}

	ch, ok, err := s.challenges.Get(ctx, email)
	if err != nil {
		return TokenResult{}, err
	}
	if !ok || ch.Code != otp {
		return TokenResult{}, domain.ErrOTPInvalid()
	}
	if !ch.HasRegistrationData() {
		return TokenResult{}, domain.ErrRegistrationExpired()
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return TokenResult{}, err
	}
	if exists {
		return TokenResult{}, domain.ErrUserAlreadyExists()
	}

	hash, err := s.hasher.Hash(ch.Password)
	if err != nil {
		return TokenResult{}, domain.ErrHashFailed(err)
	}

	created, err := s.users.Create(ctx, domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		FullName:     ch.FullName,
		PasswordHash: hash,
		Role:         string(domain.RoleUser),
		Enabled:      true,
	})
	if err != nil {
		// A uniqueness rejection means a concurrent verification won.
		if domain.Is(err, "email_already_registered") {
			return TokenResult{}, domain.ErrUserAlreadyExists()
		}
		return TokenResult{}, err
	}

	if err := s.notifier.SendWelcome(ctx, created.Email, created.FullName); err != nil {
		return TokenResult{}, err
	}

	_ = s.challenges.Remove(ctx, email)

	return s.issueToken(created)
}
