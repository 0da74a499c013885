package auth

import (
	"context"

	"github.com/tourplace/auth-service/internal/domain"
)

// ChangePassword changes the password for an authenticated user after
// confirming the old one.
func (s *Service) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	if userID == "" {
		return domain.ErrTokenMissing()
	}
	if oldPassword == "" || newPassword == "" {
		return domain.ErrMissingField("password")
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.hasher.Compare(u.PasswordHash, oldPassword); err != nil {
		return domain.ErrInvalidCredentials()
	}

	newHash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return domain.ErrHashFailed(err)
	}

	return s.users.UpdatePassword(ctx, userID, newHash)
}

// ForgotPassword starts the reset flow. The account must exist and be
// enabled before any code is generated; a disabled account never receives
// a reset OTP.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return domain.ErrMissingField("email")
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if !u.Enabled {
		return domain.ErrAccountDisabled()
	}

	code, err := s.newCode()
	if err != nil {
		return domain.ErrRandomFailed(err)
	}

	// Reset challenges carry no payload; the new password arrives with the
	// reset call itself.
	if err := s.challenges.Put(ctx, email, code, s.otpTTL, ChallengePayload{}); err != nil {
		return err
	}

	return s.notifier.SendPasswordResetOTP(ctx, email, code)
}

// ResetPassword consumes the reset challenge and persists the new hash.
// Verify is one-shot: a matching code is deleted before this returns.
func (s *Service) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	email = normalizeEmail(email)
	if email == "" || otp == "" || newPassword == "" {
		return domain.ErrMissingField("email/otp/newPassword")
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if !u.Enabled {
		return domain.ErrAccountDisabled()
	}

	ok, err := s.challenges.Verify(ctx, email, otp)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrOTPInvalid()
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return domain.ErrHashFailed(err)
	}

	return s.users.UpdatePassword(ctx, u.ID, hash)
}
