package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appCtx "github.com/tourplace/auth-service/internal/pkg/context"
)

func TestRequestID_GeneratesWhenAbsent(t *testing.T) {
	var got string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = appCtx.GetRequestID(r.Context())
	})

	rr := httptest.NewRecorder()
	RequestID(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotEmpty(t, got)
	_, err := uuid.Parse(got)
	assert.NoError(t, err, "generated request id should be a uuid")
	assert.Equal(t, got, rr.Header().Get(HeaderXRequestID), "same id must be echoed to the client")
}

func TestRequestID_PropagatesIncomingHeader(t *testing.T) {
	var got string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = appCtx.GetRequestID(r.Context())
	})

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderXRequestID, "req-123")
	RequestID(next).ServeHTTP(rr, req)

	assert.Equal(t, "req-123", got)
	assert.Equal(t, "req-123", rr.Header().Get(HeaderXRequestID))
}
