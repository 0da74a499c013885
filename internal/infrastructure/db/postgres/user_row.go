package postgres

import "time"

type userRow struct {
	ID           string
	Email        string
	PasswordHash string
	FullName     string
	Role         string
	Enabled      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
