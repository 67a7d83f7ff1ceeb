package domain

import "time"

// Identity is the auth-side account. A User profile shares its ID once the
// account has been activated.
type Identity struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
