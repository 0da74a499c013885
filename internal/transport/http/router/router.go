package router

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type HealthHandler interface {
	Healthz(w http.ResponseWriter, r *http.Request)
}

type AuthHandler interface {
	// Registration
	Register(w http.ResponseWriter, r *http.Request)
	VerifyOTP(w http.ResponseWriter, r *http.Request)
	ResendOTP(w http.ResponseWriter, r *http.Request)
	OTPStatus(w http.ResponseWriter, r *http.Request)

	// Sessions
	Login(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	Profile(w http.ResponseWriter, r *http.Request)
	ChangePassword(w http.ResponseWriter, r *http.Request)

	// Password reset
	ForgotPassword(w http.ResponseWriter, r *http.Request)
	ResetPassword(w http.ResponseWriter, r *http.Request)
}

type UsersHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	SetStatus(w http.ResponseWriter, r *http.Request)
	SetRole(w http.ResponseWriter, r *http.Request)
}

type Deps struct {
	Health HealthHandler
	Auth   AuthHandler
	Users  UsersHandler

	// Applied to every route; never rejects by itself.
	AuthenticateMW func(http.Handler) http.Handler
	RequestIDMW    func(http.Handler) http.Handler

	RequireAuthMW  func(http.Handler) http.Handler
	RequireAdminMW func(http.Handler) http.Handler
}

func New(deps Deps) (http.Handler, error) {
	if deps.Health == nil {
		return nil, fmt.Errorf("nil Health handler")
	}
	if deps.Auth == nil {
		return nil, fmt.Errorf("nil Auth handler")
	}
	if deps.Users == nil {
		return nil, fmt.Errorf("nil Users handler")
	}
	if deps.AuthenticateMW == nil {
		return nil, fmt.Errorf("nil Authenticate middleware")
	}
	if deps.RequestIDMW == nil {
		return nil, fmt.Errorf("nil RequestID middleware")
	}
	if deps.RequireAuthMW == nil {
		return nil, fmt.Errorf("nil RequireAuth middleware")
	}
	if deps.RequireAdminMW == nil {
		return nil, fmt.Errorf("nil RequireAdmin middleware")
	}

	r := chi.NewRouter()
	r.Use(deps.RequestIDMW)
	r.Use(deps.AuthenticateMW)

	r.Get("/healthz", deps.Health.Healthz)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			// --- Registration ---
			r.Post("/register", deps.Auth.Register)
			r.Post("/verify-otp", deps.Auth.VerifyOTP)
			r.Post("/resend-otp", deps.Auth.ResendOTP)
			r.Post("/otp-status", deps.Auth.OTPStatus)

			// --- Sessions ---
			r.Post("/login", deps.Auth.Login)
			r.With(deps.RequireAuthMW).Post("/logout", deps.Auth.Logout)
			r.With(deps.RequireAuthMW).Get("/profile", deps.Auth.Profile)
			r.With(deps.RequireAuthMW).Put("/profile/password", deps.Auth.ChangePassword)

			// --- Password reset ---
			r.Post("/forgot-password", deps.Auth.ForgotPassword)
			r.Post("/reset-password", deps.Auth.ResetPassword)
		})

		// --- Admin user management ---
		r.Route("/users", func(r chi.Router) {
			r.Use(deps.RequireAuthMW)
			r.Use(deps.RequireAdminMW)

			r.Get("/", deps.Users.List)
			r.Get("/{id}", deps.Users.Get)
			r.Put("/{id}/status", deps.Users.SetStatus)
			r.Put("/{id}/role", deps.Users.SetRole)
		})
	})

	return r, nil
}
