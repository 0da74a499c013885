package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/tourplace/auth-service/internal/domain"
)

const (
	// OTPLength is the number of decimal digits in a challenge code.
	OTPLength = 6
	// DefaultOTPTTL bounds every challenge, registration and reset alike.
	DefaultOTPTTL = 2 * time.Minute
	// DefaultAccessTTL is the bearer token lifetime.
	DefaultAccessTTL = 24 * time.Hour
)

type Service struct {
	users      UserRepo
	hasher     PasswordHasher
	signer     TokenIssuer
	challenges ChallengeStore
	notifier   Notifier

	accessTTL time.Duration
	otpTTL    time.Duration

	newCode func() (string, error)
}

type Config struct {
	AccessTTL time.Duration
	OTPTTL    time.Duration
}

func NewService(
	users UserRepo,
	hasher PasswordHasher,
	signer TokenIssuer,
	challenges ChallengeStore,
	notifier Notifier,
	cfg Config,
) *Service {
	accessTTL := cfg.AccessTTL
	if accessTTL <= 0 {
		accessTTL = DefaultAccessTTL
	}
	otpTTL := cfg.OTPTTL
	if otpTTL <= 0 {
		otpTTL = DefaultOTPTTL
	}
	return &Service{
		users:      users,
		hasher:     hasher,
		signer:     signer,
		challenges: challenges,
		notifier:   notifier,
		accessTTL:  accessTTL,
		otpTTL:     otpTTL,
		newCode:    NewOTPCode,
	}
}

// WithCodeGenerator replaces the OTP source, for deterministic tests.
func (s *Service) WithCodeGenerator(fn func() (string, error)) *Service {
	if fn != nil {
		s.newCode = fn
	}
	return s
}

// TokenResult is the common token output for handlers/DTO mapping.
type TokenResult struct {
	User        domain.User
	AccessToken string
	TokenType   string // "Bearer"
	ExpiresIn   int64  // seconds
}

func (s *Service) issueToken(u domain.User) (TokenResult, error) {
	tok, err := s.signer.Issue(u.ID, u.Email, u.Role, s.accessTTL)
	if err != nil {
		return TokenResult{}, domain.ErrTokenSignFailed(err)
	}
	return TokenResult{
		User:        u,
		AccessToken: tok,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.accessTTL.Seconds()),
	}, nil
}

// NewOTPCode draws a uniform 6-digit code from crypto/rand, zero-padded.
func NewOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
