package auth

import "context"

// OTPStatus reports the countdown for the live challenge of an email, for
// client-side resend timers. No challenge (or an expired one) reads as
// zero seconds.
type OTPStatus struct {
	HasOTP           bool
	RemainingSeconds int64
}

func (s *Service) OTPStatus(ctx context.Context, email string) (OTPStatus, error) {
	secs, err := s.challenges.RemainingSeconds(ctx, normalizeEmail(email))
	if err != nil {
		return OTPStatus{}, err
	}
	return OTPStatus{
		HasOTP:           secs > 0,
		RemainingSeconds: secs,
	}, nil
}
