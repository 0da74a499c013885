package dto

import (
	"time"

	"github.com/tourplace/auth-service/internal/domain"
)

// UserView is the standard user payload for auth responses. Password hash
// never leaves the service.
type UserView struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	Role      string    `json:"role"`
	Enabled   bool      `json:"enabled"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewUserView(u domain.User) UserView {
	return UserView{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      u.Role,
		Enabled:   u.Enabled,
		CreatedAt: u.CreatedAt,
	}
}

func NewUserViews(us []domain.User) []UserView {
	out := make([]UserView, 0, len(us))
	for _, u := range us {
		out = append(out, NewUserView(u))
	}
	return out
}

// TokenView is the bearer token payload returned by login and verify-otp.
type TokenView struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"` // "Bearer"
	ExpiresIn   int64  `json:"expiresIn"` // seconds
}

// AuthData is returned by login and verify-otp.
type AuthData struct {
	User  UserView  `json:"user"`
	Token TokenView `json:"token"`
}

// OTPStatusData is returned by otp-status.
type OTPStatusData struct {
	HasOTP           bool  `json:"hasOtp"`
	RemainingSeconds int64 `json:"remainingSeconds"`
}
