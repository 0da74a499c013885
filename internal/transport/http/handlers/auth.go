package http_handlers

import (
	"net/http"

	"github.com/tourplace/auth-service/internal/application/auth"
	"github.com/tourplace/auth-service/internal/domain"
	"github.com/tourplace/auth-service/internal/logger"
	"github.com/tourplace/auth-service/internal/transport/http/dto"
	"github.com/tourplace/auth-service/internal/transport/http/middleware"
	"github.com/tourplace/auth-service/internal/transport/http/response"
)

type AuthHandler struct {
	svc *auth.Service
}

func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	if err := h.svc.Register(r.Context(), req.Email, req.FullName, req.Password); err != nil {
		response.WriteError(w, r, err)
		return
	}

	lg := logger.WithCtx(r.Context())
	lg.Info().
		Str("email", req.Email).
		Msg("otp_issued")

	response.OK(w, "OTP sent to email", nil)
}

func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req dto.VerifyOTPRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	res, err := h.svc.VerifyOTP(r.Context(), req.Email, req.OTP)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	lg := logger.WithCtx(r.Context())
	lg.Info().
		Str("user_id", res.User.ID).
		Str("email", res.User.Email).
		Msg("user_registered")

	response.OK(w, "Registration complete", authData(res))
}

func (h *AuthHandler) ResendOTP(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	if err := h.svc.ResendOTP(r.Context(), req.Email, req.FullName, req.Password); err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, "OTP resent to email", nil)
}

func (h *AuthHandler) OTPStatus(w http.ResponseWriter, r *http.Request) {
	var req dto.OTPStatusRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	st, err := h.svc.OTPStatus(r.Context(), req.Email)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, "OTP status", dto.OTPStatusData{
		HasOTP:           st.HasOTP,
		RemainingSeconds: st.RemainingSeconds,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	res, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	lg := logger.WithCtx(r.Context())
	lg.Info().
		Str("user_id", res.User.ID).
		Msg("user_logged_in")

	response.OK(w, "Login successful", authData(res))
}

// Logout acknowledges the call. Tokens are stateless, so there is no server
// side session to clear; the client drops the token.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if p, ok := middleware.PrincipalFromContext(r.Context()); ok {
		lg := logger.WithCtx(r.Context())
		lg.Info().
			Str("user_id", p.UserID).
			Msg("user_logged_out")
	}
	response.OK(w, "Logged out", nil)
}

func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrTokenMissing())
		return
	}

	u, err := h.svc.GetUserByID(r.Context(), p.UserID)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, "Profile", dto.NewUserView(u))
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrTokenMissing())
		return
	}

	var req dto.PasswordChangeRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	if err := h.svc.ChangePassword(r.Context(), p.UserID, req.OldPassword, req.NewPassword); err != nil {
		response.WriteError(w, r, err)
		return
	}

	lg := logger.WithCtx(r.Context())
	lg.Info().
		Str("user_id", p.UserID).
		Msg("password_changed")

	response.OK(w, "Password updated", nil)
}

func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req dto.ForgotPasswordRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	if err := h.svc.ForgotPassword(r.Context(), req.Email); err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, "Password reset OTP sent to email", nil)
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req dto.ResetPasswordRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	if err := h.svc.ResetPassword(r.Context(), req.Email, req.OTP, req.NewPassword); err != nil {
		response.WriteError(w, r, err)
		return
	}

	lg := logger.WithCtx(r.Context())
	lg.Info().
		Str("email", req.Email).
		Msg("password_reset")

	response.OK(w, "Password reset successful", nil)
}

func authData(res auth.TokenResult) dto.AuthData {
	return dto.AuthData{
		User: dto.NewUserView(res.User),
		Token: dto.TokenView{
			AccessToken: res.AccessToken,
			TokenType:   res.TokenType,
			ExpiresIn:   res.ExpiresIn,
		},
	}
}
