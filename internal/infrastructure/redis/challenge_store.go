package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/tourplace/auth-service/internal/application/auth"
	"github.com/tourplace/auth-service/internal/domain"
)

// ChallengeStore keeps OTP challenges in Redis so pending registrations
// survive a process restart and are shared across replicas. Expiry rides on
// the key TTL.
type ChallengeStore struct {
	rdb    *goredis.Client
	prefix string // e.g. "otp:"
}

func NewChallengeStore(c *Client) *ChallengeStore {
	var rdb *goredis.Client
	if c != nil {
		rdb = c.rdb
	}
	return &ChallengeStore{
		rdb:    rdb,
		prefix: "otp:",
	}
}

type challengeRecord struct {
	Code     string `json:"code"`
	FullName string `json:"full_name,omitempty"`
	Password string `json:"password,omitempty"`
}

func (s *ChallengeStore) Put(ctx context.Context, email, code string, ttl time.Duration, payload auth.ChallengePayload) error {
	if s.rdb == nil {
		return errors.New("redis challenge store not configured")
	}
	if ttl <= 0 {
		return domain.ErrMissingField("ttl")
	}

	raw, err := json.Marshal(challengeRecord{
		Code:     code,
		FullName: payload.FullName,
		Password: payload.Password,
	})
	if err != nil {
		return fmt.Errorf("otp put: %w", err)
	}
	// overwrite is fine (resend generates a new code anyway)
	return s.rdb.Set(ctx, s.key(email), raw, ttl).Err()
}

func (s *ChallengeStore) Get(ctx context.Context, email string) (auth.Challenge, bool, error) {
	if s.rdb == nil {
		return auth.Challenge{}, false, errors.New("redis challenge store not configured")
	}

	key := s.key(email)
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return auth.Challenge{}, false, nil
		}
		return auth.Challenge{}, false, fmt.Errorf("otp get: %w", err)
	}

	var rec challengeRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return auth.Challenge{}, false, fmt.Errorf("otp get: %w", err)
	}

	ttl, err := s.rdb.TTL(ctx, key).Result()
	if err != nil {
		return auth.Challenge{}, false, fmt.Errorf("otp get: %w", err)
	}

	ch := auth.Challenge{
		Code:     rec.Code,
		FullName: rec.FullName,
		Password: rec.Password,
	}
	if ttl > 0 {
		ch.ExpiresAt = time.Now().Add(ttl)
	}
	return ch, true, nil
}

func (s *ChallengeStore) Verify(ctx context.Context, email, code string) (bool, error) {
	if s.rdb == nil {
		return false, errors.New("redis challenge store not configured")
	}

	// Atomic compare + delete against the stored JSON record.
	const lua = `
local raw = redis.call("GET", KEYS[1])
if not raw then
  return 0
end
local rec = cjson.decode(raw)
if rec.code ~= ARGV[1] then
  return 0
end
redis.call("DEL", KEYS[1])
return 1
`
	res, err := s.rdb.Eval(ctx, lua, []string{s.key(email)}, code).Int64()
	if err != nil {
		return false, fmt.Errorf("otp verify: %w", err)
	}
	return res == 1, nil
}

func (s *ChallengeStore) Remove(ctx context.Context, email string) error {
	if s.rdb == nil {
		return errors.New("redis challenge store not configured")
	}
	return s.rdb.Del(ctx, s.key(email)).Err()
}

func (s *ChallengeStore) RemainingSeconds(ctx context.Context, email string) (int64, error) {
	if s.rdb == nil {
		return 0, errors.New("redis challenge store not configured")
	}

	ttl, err := s.rdb.TTL(ctx, s.key(email)).Result()
	if err != nil {
		return 0, fmt.Errorf("otp ttl: %w", err)
	}
	// -2 missing key, -1 no expiry; neither counts as a live challenge
	if ttl <= 0 {
		return 0, nil
	}
	return int64(ttl.Seconds()), nil
}

func (s *ChallengeStore) key(email string) string {
	return s.prefix + email
}
