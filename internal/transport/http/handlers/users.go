package http_handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tourplace/auth-service/internal/application/auth"
	"github.com/tourplace/auth-service/internal/domain"
	"github.com/tourplace/auth-service/internal/logger"
	"github.com/tourplace/auth-service/internal/transport/http/dto"
	"github.com/tourplace/auth-service/internal/transport/http/middleware"
	"github.com/tourplace/auth-service/internal/transport/http/response"
)

// UsersHandler serves the admin user-management endpoints.
type UsersHandler struct {
	svc *auth.Service
}

func NewUsersHandler(svc *auth.Service) *UsersHandler {
	return &UsersHandler{svc: svc}
}

func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListUsers(r.Context())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, "Users", dto.NewUserViews(users))
}

func (h *UsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.WriteError(w, r, domain.ErrMissingField("id"))
		return
	}

	u, err := h.svc.UserByID(r.Context(), id)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, "User", dto.NewUserView(u))
}

func (h *UsersHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrTokenMissing())
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.WriteError(w, r, domain.ErrMissingField("id"))
		return
	}

	var req dto.SetUserStatusRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	u, err := h.svc.SetUserStatus(r.Context(), p.UserID, id, *req.Enabled)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	lg := logger.WithCtx(r.Context())
	lg.Info().
		Str("actor_id", p.UserID).
		Str("user_id", u.ID).
		Bool("enabled", u.Enabled).
		Msg("user_status_changed")

	response.OK(w, "User status updated", dto.NewUserView(u))
}

func (h *UsersHandler) SetRole(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrTokenMissing())
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.WriteError(w, r, domain.ErrMissingField("id"))
		return
	}

	var req dto.SetUserRoleRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	u, err := h.svc.SetUserRole(r.Context(), p.UserID, id, req.Role)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	lg := logger.WithCtx(r.Context())
	lg.Info().
		Str("actor_id", p.UserID).
		Str("user_id", u.ID).
		Str("role", u.Role).
		Msg("user_role_changed")

	response.OK(w, "User role updated", dto.NewUserView(u))
}
