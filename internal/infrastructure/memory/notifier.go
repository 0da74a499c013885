package memory

import (
	"context"

	"github.com/rs/zerolog/log"
)

// NoopNotifier logs mail it would have sent and succeeds. Used when no SMTP
// or broker is configured, typically in development.
type NoopNotifier struct{}

func NewNoopNotifier() NoopNotifier { return NoopNotifier{} }

func (NoopNotifier) SendOTP(ctx context.Context, email, code string) error {
	log.Debug().Str("email", email).Str("code", code).Msg("noop notifier: registration otp")
	return nil
}

func (NoopNotifier) SendWelcome(ctx context.Context, email, fullName string) error {
	log.Debug().Str("email", email).Str("full_name", fullName).Msg("noop notifier: welcome")
	return nil
}

func (NoopNotifier) SendPasswordResetOTP(ctx context.Context, email, code string) error {
	log.Debug().Str("email", email).Str("code", code).Msg("noop notifier: password reset otp")
	return nil
}
