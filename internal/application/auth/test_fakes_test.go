package auth

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/tourplace/auth-service/internal/domain"
)

/*
Fakes for ports
*/

type fakeUserRepo struct {
	mu sync.Mutex

	byID    map[string]domain.User
	byEmail map[string]domain.User

	// injected errors (if set, method returns error)
	existsErr    error
	getByIDErr   error
	createErr    error
	updatePwdErr error

	updatedPwd []struct{ id, hash string }
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    map[string]domain.User{},
		byEmail: map[string]domain.User{},
	}
}

func (f *fakeUserRepo) seed(u domain.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.byEmail[email]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getByIDErr != nil {
		return domain.User{}, f.getByIDErr
	}
	u, ok := f.byID[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (f *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.existsErr != nil {
		return false, f.existsErr
	}
	_, ok := f.byEmail[email]
	return ok, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return domain.User{}, f.createErr
	}
	// email uniqueness is the store's authority
	if _, ok := f.byEmail[u.Email]; ok {
		return domain.User{}, domain.ErrEmailAlreadyRegistered()
	}
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u
	return u, nil
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, userID string, newHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.updatePwdErr != nil {
		return f.updatePwdErr
	}
	u, ok := f.byID[userID]
	if !ok {
		return domain.ErrUserNotFound()
	}
	u.PasswordHash = newHash
	f.byID[userID] = u
	f.byEmail[u.Email] = u
	f.updatedPwd = append(f.updatedPwd, struct{ id, hash string }{userID, newHash})
	return nil
}

func (f *fakeUserRepo) UpdateStatus(ctx context.Context, userID string, enabled bool) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.byID[userID]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	u.Enabled = enabled
	f.byID[userID] = u
	f.byEmail[u.Email] = u
	return u, nil
}

func (f *fakeUserRepo) UpdateRole(ctx context.Context, userID string, role string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.byID[userID]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	u.Role = role
	f.byID[userID] = u
	f.byEmail[u.Email] = u
	return u, nil
}

func (f *fakeUserRepo) ListRegularUsers(ctx context.Context) ([]domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []domain.User
	for _, u := range f.byID {
		if u.Role == string(domain.RoleUser) {
			out = append(out, u)
		}
	}
	return out, nil
}

// fakeHasher marks hashes as "h(<pw>)" so tests can assert without bcrypt.
type fakeHasher struct {
	hashFn func(pw string) (string, error)
}

func (f *fakeHasher) Hash(pw string) (string, error) {
	if f.hashFn != nil {
		return f.hashFn(pw)
	}
	return "h(" + pw + ")", nil
}

func (f *fakeHasher) Compare(hash string, pw string) error {
	if hash == "h("+pw+")" {
		return nil
	}
	return errors.New("mismatch")
}

type fakeSigner struct {
	signErr error
	issued  []struct{ userID, email, role string }
	mu      sync.Mutex
}

func (f *fakeSigner) Issue(userID, email, role string, ttl time.Duration) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.signErr != nil {
		return "", f.signErr
	}
	f.issued = append(f.issued, struct{ userID, email, role string }{userID, email, role})
	return "tok-" + userID, nil
}

// fakeChallengeStore implements the single-slot semantics with a movable
// clock for expiry tests.
type fakeChallengeStore struct {
	mu      sync.Mutex
	entries map[string]Challenge
	now     time.Time
}

func newFakeChallengeStore() *fakeChallengeStore {
	return &fakeChallengeStore{
		entries: map[string]Challenge{},
		now:     time.Now(),
	}
}

func (f *fakeChallengeStore) advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func (f *fakeChallengeStore) Put(ctx context.Context, email, code string, ttl time.Duration, payload ChallengePayload) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[email] = Challenge{
		Code:      code,
		ExpiresAt: f.now.Add(ttl),
		FullName:  payload.FullName,
		Password:  payload.Password,
	}
	return nil
}

func (f *fakeChallengeStore) Get(ctx context.Context, email string) (Challenge, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch, ok := f.entries[email]
	if !ok || !f.now.Before(ch.ExpiresAt) {
		delete(f.entries, email)
		return Challenge{}, false, nil
	}
	return ch, true, nil
}

func (f *fakeChallengeStore) Verify(ctx context.Context, email, code string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch, ok := f.entries[email]
	if !ok || !f.now.Before(ch.ExpiresAt) || ch.Code != code {
		return false, nil
	}
	delete(f.entries, email)
	return true, nil
}

func (f *fakeChallengeStore) Remove(ctx context.Context, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entries, email)
	return nil
}

func (f *fakeChallengeStore) RemainingSeconds(ctx context.Context, email string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch, ok := f.entries[email]
	if !ok {
		return 0, nil
	}
	secs := int64(ch.ExpiresAt.Sub(f.now).Seconds())
	if secs < 0 {
		secs = 0
	}
	return secs, nil
}

type sentMail struct {
	kind  string // "otp", "welcome", "reset"
	email string
	code  string
	name  string
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []sentMail

	otpErr     error
	welcomeErr error
	resetErr   error
}

func (f *fakeNotifier) SendOTP(ctx context.Context, email, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.otpErr != nil {
		return f.otpErr
	}
	f.sent = append(f.sent, sentMail{kind: "otp", email: email, code: code})
	return nil
}

func (f *fakeNotifier) SendWelcome(ctx context.Context, email, fullName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.welcomeErr != nil {
		return f.welcomeErr
	}
	f.sent = append(f.sent, sentMail{kind: "welcome", email: email, name: fullName})
	return nil
}

func (f *fakeNotifier) SendPasswordResetOTP(ctx context.Context, email, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.resetErr != nil {
		return f.resetErr
	}
	f.sent = append(f.sent, sentMail{kind: "reset", email: email, code: code})
	return nil
}

func (f *fakeNotifier) byKind(kind string) []sentMail {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []sentMail
	for _, m := range f.sent {
		if m.kind == kind {
			out = append(out, m)
		}
	}
	return out
}

/*
Wiring helper
*/

func newSvcForTest(t *testing.T) (*Service, *fakeUserRepo, *fakeHasher, *fakeSigner, *fakeChallengeStore, *fakeNotifier) {
	t.Helper()

	users := newFakeUserRepo()
	hasher := &fakeHasher{}
	signer := &fakeSigner{}
	challenges := newFakeChallengeStore()
	notifier := &fakeNotifier{}

	svc := NewService(users, hasher, signer, challenges, notifier, Config{})
	return svc, users, hasher, signer, challenges, notifier
}

func requireErrCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error code=%q, got nil", code)
	}
	if !domain.Is(err, code) {
		t.Fatalf("expected code=%q, got err=%v", code, err)
	}
}
