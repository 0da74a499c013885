package domain

import "time"

// User is the identity record owned by the external user store.
// Enabled gates login and password recovery; a disabled user keeps their
// record but cannot authenticate.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	FullName     string
	Role         string
	Enabled      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
