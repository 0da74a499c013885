package auth

import (
	"context"
	"time"

	"github.com/tourplace/auth-service/internal/domain"
)

/*
UserRepo
--------
Persistence port for users.
Only describes WHAT the auth service needs, not HOW it's stored.
The email uniqueness constraint of the backing store is the single
authority for the duplicate-registration race: Create must reject a
second insert for the same email.
*/
type UserRepo interface {
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByID(ctx context.Context, id string) (domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, u domain.User) (domain.User, error)

	UpdatePassword(ctx context.Context, userID string, newHash string) error
	UpdateStatus(ctx context.Context, userID string, enabled bool) (domain.User, error)
	UpdateRole(ctx context.Context, userID string, role string) (domain.User, error)

	// ListRegularUsers returns every non-admin user, for the admin console.
	ListRegularUsers(ctx context.Context) ([]domain.User, error)
}

/*
PasswordHasher
--------------
Abstracts bcrypt / argon2.
*/
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error // nil if match
}

/*
TokenIssuer
-----------
Issues signed bearer tokens (JWT). Verification lives with the request
authenticator; the service only ever signs.
*/
type TokenIssuer interface {
	Issue(userID, email, role string, ttl time.Duration) (string, error)
}

/*
ChallengeStore
--------------
Short-lived, single-slot OTP challenges keyed by email, shared by the
registration and password-reset flows. At most one live challenge per
email; Put overwrites. Get applies lazy expiry. Verify is one-shot:
a matching code deletes the challenge before returning true.
*/
type Challenge struct {
	Code      string
	ExpiresAt time.Time

	// Registration payload; both empty for a password-reset challenge.
	FullName string
	Password string
}

// HasRegistrationData reports whether the challenge was created by the
// registration flow and still carries the data needed to create the user.
func (c Challenge) HasRegistrationData() bool {
	return c.FullName != "" && c.Password != ""
}

type ChallengePayload struct {
	FullName string
	Password string
}

type ChallengeStore interface {
	Put(ctx context.Context, email, code string, ttl time.Duration, payload ChallengePayload) error
	Get(ctx context.Context, email string) (Challenge, bool, error)
	Verify(ctx context.Context, email, code string) (bool, error)
	Remove(ctx context.Context, email string) error
	RemainingSeconds(ctx context.Context, email string) (int64, error)
}

/*
Notifier
--------
Outbound email, fire-and-forget: a failure surfaces to the caller as a
dependency error, there is no retry. Backed by SMTP or by the message
broker (email worker sends on our behalf).
*/
type Notifier interface {
	SendOTP(ctx context.Context, email, code string) error
	SendWelcome(ctx context.Context, email, fullName string) error
	SendPasswordResetOTP(ctx context.Context, email, code string) error
}
