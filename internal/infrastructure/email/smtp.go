package email

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/wneessen/go-mail"

	"github.com/tourplace/auth-service/internal/domain"
)

// SMTPNotifier delivers auth mail directly over SMTP. Each send dials a
// fresh connection; volume is low enough that pooling is not worth it.
type SMTPNotifier struct {
	lg zerolog.Logger

	host     string
	port     int
	user     string
	pass     string
	from     string
	insecure bool

	timeout time.Duration
	otpTTL  time.Duration
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Timeout  time.Duration
	Insecure bool

	// OTPTTL is quoted in the mail body so the recipient knows how long
	// the code stays valid.
	OTPTTL time.Duration
}

func NewSMTPNotifier(cfg SMTPConfig, lg zerolog.Logger) *SMTPNotifier {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.OTPTTL <= 0 {
		cfg.OTPTTL = 2 * time.Minute
	}
	return &SMTPNotifier{
		lg:       lg.With().Str("component", "smtp_notifier").Logger(),
		host:     cfg.Host,
		port:     cfg.Port,
		user:     cfg.Username,
		pass:     cfg.Password,
		from:     cfg.From,
		insecure: cfg.Insecure,
		timeout:  cfg.Timeout,
		otpTTL:   cfg.OTPTTL,
	}
}

func (s *SMTPNotifier) SendOTP(ctx context.Context, email, code string) error {
	subject := "OTP Verification Code"
	body := fmt.Sprintf("Your OTP for registration is: %s\nIt is valid for %d minutes.", code, int(s.otpTTL.Minutes()))
	return s.send(ctx, email, subject, body)
}

func (s *SMTPNotifier) SendWelcome(ctx context.Context, email, fullName string) error {
	subject := "Welcome to TourPlace"
	body := fmt.Sprintf("Hello %s,\n\nWelcome! Your account has been created successfully.", fullName)
	return s.send(ctx, email, subject, body)
}

func (s *SMTPNotifier) SendPasswordResetOTP(ctx context.Context, email, code string) error {
	subject := "Password Reset Code"
	body := fmt.Sprintf("Your password reset code is: %s\nIt is valid for %d minutes.", code, int(s.otpTTL.Minutes()))
	return s.send(ctx, email, subject, body)
}

func (s *SMTPNotifier) send(ctx context.Context, to, subject, body string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	m := mail.NewMsg()
	if err := m.From(s.from); err != nil {
		return domain.ErrEmailDeliveryFailed(fmt.Errorf("invalid from address: %w", err))
	}
	if err := m.To(to); err != nil {
		return domain.ErrEmailDeliveryFailed(fmt.Errorf("invalid to address: %w", err))
	}
	m.Subject(subject)
	m.SetBodyString(mail.TypeTextPlain, body)

	tlsPolicy := mail.TLSMandatory
	if s.insecure {
		tlsPolicy = mail.TLSOpportunistic
	}

	opts := []mail.Option{
		mail.WithPort(s.port),
		mail.WithTLSPolicy(tlsPolicy),
	}
	if s.user != "" {
		opts = append(opts, mail.WithSMTPAuth(mail.SMTPAuthPlain), mail.WithUsername(s.user), mail.WithPassword(s.pass))
	}

	c, err := mail.NewClient(s.host, opts...)
	if err != nil {
		return domain.ErrEmailDeliveryFailed(fmt.Errorf("smtp client init: %w", err))
	}

	if err := c.DialAndSendWithContext(ctx, m); err != nil {
		s.lg.Error().Err(err).Str("to", to).Str("subject", subject).Msg("smtp send failed")
		return domain.ErrEmailDeliveryFailed(err)
	}

	s.lg.Info().Str("to", to).Str("subject", subject).Msg("smtp send ok")
	return nil
}
