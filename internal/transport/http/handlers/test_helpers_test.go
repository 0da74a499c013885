package http_handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tourplace/auth-service/internal/application/auth"
	"github.com/tourplace/auth-service/internal/domain"
	"github.com/tourplace/auth-service/internal/infrastructure/memory"
	"github.com/tourplace/auth-service/internal/transport/http/middleware"
)

// -------------------------
// Test wiring (pure unit)
// -------------------------

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", domain.ErrMissingField("password")
	}
	return "hash:" + password, nil
}

func (fakeHasher) Compare(hash, password string) error {
	if hash != "hash:"+password {
		return domain.ErrInvalidCredentials()
	}
	return nil
}

type fakeSigner struct{}

func (fakeSigner) Issue(userID, email, role string, ttl time.Duration) (string, error) {
	return "tok-" + userID, nil
}

type sentMail struct {
	kind  string // "otp", "welcome", "reset"
	email string
	code  string
}

type recordingNotifier struct {
	sent []sentMail
}

func (n *recordingNotifier) SendOTP(_ context.Context, email, code string) error {
	n.sent = append(n.sent, sentMail{kind: "otp", email: email, code: code})
	return nil
}

func (n *recordingNotifier) SendWelcome(_ context.Context, email, _ string) error {
	n.sent = append(n.sent, sentMail{kind: "welcome", email: email})
	return nil
}

func (n *recordingNotifier) SendPasswordResetOTP(_ context.Context, email, code string) error {
	n.sent = append(n.sent, sentMail{kind: "reset", email: email, code: code})
	return nil
}

type testEnv struct {
	svc      *auth.Service
	users    *memory.UserRepo
	notifier *recordingNotifier
}

// newTestEnv wires a service on in-memory stores with a fixed OTP.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	users := memory.NewUserRepo()
	notifier := &recordingNotifier{}

	svc := auth.NewService(
		users,
		fakeHasher{},
		fakeSigner{},
		memory.NewChallengeStore(),
		notifier,
		auth.Config{
			AccessTTL: 24 * time.Hour,
			OTPTTL:    2 * time.Minute,
		},
	).WithCodeGenerator(func() (string, error) { return "123456", nil })

	return &testEnv{svc: svc, users: users, notifier: notifier}
}

func (e *testEnv) seedUser(t *testing.T, id, email, password, role string, enabled bool) domain.User {
	t.Helper()

	u, err := e.users.Create(context.Background(), domain.User{
		ID:           id,
		Email:        email,
		PasswordHash: "hash:" + password,
		FullName:     "Seeded User",
		Role:         role,
		Enabled:      enabled,
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

// -------------------------
// Request / response helpers
// -------------------------

func mustJSONBody(t *testing.T, v any) io.Reader {
	t.Helper()

	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("json marshal: %v", err)
	}
	return bytes.NewReader(b)
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Payload json.RawMessage `json:"payload"`
}

func decodeEnvelope(t *testing.T, body *bytes.Buffer) envelope {
	t.Helper()

	var env envelope
	if err := json.Unmarshal(body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v; body=%s", err, body.String())
	}
	return env
}

func decodePayload(t *testing.T, body *bytes.Buffer, out any) envelope {
	t.Helper()

	env := decodeEnvelope(t, body)
	if len(env.Payload) == 0 {
		t.Fatalf("expected payload in response; body=%s", body.String())
	}
	if err := json.Unmarshal(env.Payload, out); err != nil {
		t.Fatalf("decode payload: %v; body=%s", err, body.String())
	}
	return env
}

// withPrincipal injects an authenticated caller into the request context.
func withPrincipal(req *http.Request, userID, role string) *http.Request {
	ctx := middleware.WithPrincipal(req.Context(), middleware.Principal{
		UserID:    userID,
		Email:     userID + "@example.com",
		Role:      role,
		Authority: middleware.AuthorityForRole(role),
	})
	return req.WithContext(ctx)
}

// withURLParam injects a chi URL param (e.g. /users/{id}) into the request context.
func withURLParam(req *http.Request, key, val string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, val)

	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	return req.WithContext(ctx)
}
