package http_handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tourplace/auth-service/internal/transport/http/dto"
)

func TestUsersHandler_List_ExcludesAdmins(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "a1", "admin@example.com", "long-enough-pw", "admin", true)
	env.seedUser(t, "u1", "ada@example.com", "long-enough-pw", "user", true)
	env.seedUser(t, "u2", "grace@example.com", "long-enough-pw", "user", false)
	h := NewUsersHandler(env.svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	req = withPrincipal(req, "a1", "admin")
	rr := httptest.NewRecorder()

	h.List(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rr.Code, rr.Body.String())
	}

	var views []dto.UserView
	decodePayload(t, rr.Body, &views)
	if len(views) != 2 {
		t.Fatalf("expected 2 regular users, got %d: %+v", len(views), views)
	}
	for _, v := range views {
		if v.Role != "user" {
			t.Fatalf("admin leaked into the listing: %+v", v)
		}
	}
}

func TestUsersHandler_Get(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "u1", "ada@example.com", "long-enough-pw", "user", true)
	h := NewUsersHandler(env.svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/u1", nil)
	req = withPrincipal(req, "a1", "admin")
	req = withURLParam(req, "id", "u1")
	rr := httptest.NewRecorder()

	h.Get(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rr.Code, rr.Body.String())
	}

	var view dto.UserView
	decodePayload(t, rr.Body, &view)
	if view.ID != "u1" || view.Email != "ada@example.com" {
		t.Fatalf("unexpected view: %+v", view)
	}
}

func TestUsersHandler_Get_NotFound(t *testing.T) {
	env := newTestEnv(t)
	h := NewUsersHandler(env.svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/missing", nil)
	req = withPrincipal(req, "a1", "admin")
	req = withURLParam(req, "id", "missing")
	rr := httptest.NewRecorder()

	h.Get(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d; body=%s", rr.Code, rr.Body.String())
	}
}

func TestUsersHandler_SetStatus(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "a1", "admin@example.com", "long-enough-pw", "admin", true)
	env.seedUser(t, "u1", "ada@example.com", "long-enough-pw", "user", true)
	h := NewUsersHandler(env.svc)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/users/u1/status", mustJSONBody(t, map[string]any{
		"enabled": false,
	}))
	req = withPrincipal(req, "a1", "admin")
	req = withURLParam(req, "id", "u1")
	rr := httptest.NewRecorder()

	h.SetStatus(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rr.Code, rr.Body.String())
	}

	var view dto.UserView
	decodePayload(t, rr.Body, &view)
	if view.Enabled {
		t.Fatalf("expected disabled user, got %+v", view)
	}
}

func TestUsersHandler_SetStatus_SelfDisableForbidden(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "a1", "admin@example.com", "long-enough-pw", "admin", true)
	h := NewUsersHandler(env.svc)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/users/a1/status", mustJSONBody(t, map[string]any{
		"enabled": false,
	}))
	req = withPrincipal(req, "a1", "admin")
	req = withURLParam(req, "id", "a1")
	rr := httptest.NewRecorder()

	h.SetStatus(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d; body=%s", rr.Code, rr.Body.String())
	}
}

func TestUsersHandler_SetStatus_MissingEnabled(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "a1", "admin@example.com", "long-enough-pw", "admin", true)
	env.seedUser(t, "u1", "ada@example.com", "long-enough-pw", "user", true)
	h := NewUsersHandler(env.svc)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/users/u1/status", mustJSONBody(t, map[string]any{}))
	req = withPrincipal(req, "a1", "admin")
	req = withURLParam(req, "id", "u1")
	rr := httptest.NewRecorder()

	h.SetStatus(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d; body=%s", rr.Code, rr.Body.String())
	}
}

func TestUsersHandler_SetRole(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "a1", "admin@example.com", "long-enough-pw", "admin", true)
	env.seedUser(t, "u1", "ada@example.com", "long-enough-pw", "user", true)
	h := NewUsersHandler(env.svc)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/users/u1/role", mustJSONBody(t, map[string]any{
		"role": "ADMIN",
	}))
	req = withPrincipal(req, "a1", "admin")
	req = withURLParam(req, "id", "u1")
	rr := httptest.NewRecorder()

	h.SetRole(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rr.Code, rr.Body.String())
	}

	var view dto.UserView
	decodePayload(t, rr.Body, &view)
	if view.Role != "admin" {
		t.Fatalf("expected promoted admin, got %+v", view)
	}
}

func TestUsersHandler_SetRole_OwnRoleForbidden(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "a1", "admin@example.com", "long-enough-pw", "admin", true)
	h := NewUsersHandler(env.svc)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/users/a1/role", mustJSONBody(t, map[string]any{
		"role": "user",
	}))
	req = withPrincipal(req, "a1", "admin")
	req = withURLParam(req, "id", "a1")
	rr := httptest.NewRecorder()

	h.SetRole(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d; body=%s", rr.Code, rr.Body.String())
	}
}

func TestUsersHandler_SetRole_InvalidRole(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "a1", "admin@example.com", "long-enough-pw", "admin", true)
	env.seedUser(t, "u1", "ada@example.com", "long-enough-pw", "user", true)
	h := NewUsersHandler(env.svc)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/users/u1/role", mustJSONBody(t, map[string]any{
		"role": "superuser",
	}))
	req = withPrincipal(req, "a1", "admin")
	req = withURLParam(req, "id", "u1")
	rr := httptest.NewRecorder()

	h.SetRole(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d; body=%s", rr.Code, rr.Body.String())
	}
}
