package domain

type Role string

const (
	// Regular account, created by OTP-verified registration.
	RoleUser Role = "user"
	// Admin accounts manage other users (status, role) and privileged data.
	RoleAdmin Role = "admin"
)

func IsValidRole(r string) bool {
	return r == string(RoleUser) || r == string(RoleAdmin)
}
