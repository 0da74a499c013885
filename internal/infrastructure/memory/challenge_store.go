package memory

import (
	"context"
	"sync"
	"time"

	"github.com/tourplace/auth-service/internal/application/auth"
)

// ChallengeStore holds OTP challenges in process memory. A restart drops
// every pending registration/reset, which is acceptable: the client retries.
//
// Entries are immutable *auth.Challenge values inside a sync.Map, so
// operations on distinct emails never contend. Verify removes the exact
// entry it read (CompareAndDelete), so a concurrent Put can never have its
// fresh code consumed by a verify that matched the superseded one.
type ChallengeStore struct {
	entries sync.Map // email -> *auth.Challenge

	now func() time.Time
}

func NewChallengeStore() *ChallengeStore {
	return &ChallengeStore{now: time.Now}
}

// WithClock replaces the time source, for expiry tests.
func (s *ChallengeStore) WithClock(now func() time.Time) *ChallengeStore {
	if now != nil {
		s.now = now
	}
	return s
}

func (s *ChallengeStore) Put(ctx context.Context, email, code string, ttl time.Duration, payload auth.ChallengePayload) error {
	s.entries.Store(email, &auth.Challenge{
		Code:      code,
		ExpiresAt: s.now().Add(ttl),
		FullName:  payload.FullName,
		Password:  payload.Password,
	})
	return nil
}

func (s *ChallengeStore) Get(ctx context.Context, email string) (auth.Challenge, bool, error) {
	ch, ok := s.load(email)
	if !ok {
		return auth.Challenge{}, false, nil
	}
	return *ch, true, nil
}

func (s *ChallengeStore) Verify(ctx context.Context, email, code string) (bool, error) {
	ch, ok := s.load(email)
	if !ok || ch.Code != code {
		return false, nil
	}
	// One-shot: only consume the challenge we actually compared against.
	return s.entries.CompareAndDelete(email, ch), nil
}

func (s *ChallengeStore) Remove(ctx context.Context, email string) error {
	s.entries.Delete(email)
	return nil
}

func (s *ChallengeStore) RemainingSeconds(ctx context.Context, email string) (int64, error) {
	ch, ok := s.load(email)
	if !ok {
		return 0, nil
	}
	secs := int64(ch.ExpiresAt.Sub(s.now()).Seconds())
	if secs < 0 {
		secs = 0
	}
	return secs, nil
}

// load returns the live challenge for email, deleting it lazily when the
// deadline has passed.
func (s *ChallengeStore) load(email string) (*auth.Challenge, bool) {
	v, ok := s.entries.Load(email)
	if !ok {
		return nil, false
	}
	ch := v.(*auth.Challenge)
	if !s.now().Before(ch.ExpiresAt) {
		s.entries.CompareAndDelete(email, ch)
		return nil, false
	}
	return ch, true
}
