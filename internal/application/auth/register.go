package auth

import (
	"context"

	"github.com/tourplace/auth-service/internal/domain"
)

// Register starts the two-phase registration: it parks the registration data
// behind a fresh OTP challenge and mails the code. No user record exists
// until the OTP is verified.
func (s *Service) Register(ctx context.Context, email, fullName, password string) error {
	email = normalizeEmail(email)
	if email == "" || fullName == "" || password == "" {
		return domain.ErrMissingField("email/fullName/password")
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		return domain.ErrEmailAlreadyRegistered()
	}

	code, err := s.newCode()
	if err != nil {
		return domain.ErrRandomFailed(err)
	}

	// Overwrites any prior challenge for this email, so a re-register
	// invalidates the previous code.
	if err := s.challenges.Put(ctx, email, code, s.otpTTL, ChallengePayload{
		FullName: fullName,
		Password: password,
	}); err != nil {
		return err
	}

	return s.notifier.SendOTP(ctx, email, code)
}

// ResendOTP re-runs the challenge step with fresh registration data.
// Semantics are identical to Register: the old challenge is replaced.
func (s *Service) ResendOTP(ctx context.Context, email, fullName, password string) error {
	return s.Register(ctx, email, fullName, password)
}
