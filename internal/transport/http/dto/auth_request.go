package dto

import (
	"strings"

	"github.com/tourplace/auth-service/internal/domain"
)

// -------- Registration --------

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"fullName" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

func (r *RegisterRequest) Validate() error {
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	r.FullName = strings.TrimSpace(r.FullName)
	return checkStruct(r)
}

type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required"`
}

func (r *VerifyOTPRequest) Validate() error {
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	r.OTP = strings.TrimSpace(r.OTP)
	return checkStruct(r)
}

type OTPStatusRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (r *OTPStatusRequest) Validate() error {
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	return checkStruct(r)
}

// -------- Login --------

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() error {
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	return checkStruct(r)
}

// -------- Password change (authenticated) --------

type PasswordChangeRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

func (r *PasswordChangeRequest) Validate() error {
	return checkStruct(r)
}

// -------- Password reset --------

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (r *ForgotPasswordRequest) Validate() error {
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	return checkStruct(r)
}

type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	OTP         string `json:"otp" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

func (r *ResetPasswordRequest) Validate() error {
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	r.OTP = strings.TrimSpace(r.OTP)
	return checkStruct(r)
}

// -------- Admin --------

type SetUserStatusRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}

func (r *SetUserStatusRequest) Validate() error {
	return checkStruct(r)
}

type SetUserRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

func (r *SetUserRoleRequest) Validate() error {
	r.Role = strings.TrimSpace(strings.ToLower(r.Role))
	if err := checkStruct(r); err != nil {
		return err
	}
	if !domain.IsValidRole(r.Role) {
		return domain.ErrInvalidRole(r.Role)
	}
	return nil
}
