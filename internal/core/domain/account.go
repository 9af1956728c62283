package domain

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Account models a registered customer of the virtual office.
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SessionClaims is the identity embedded in a signed session token.
type SessionClaims struct {
	AccountID string
	Email     string
	Name      string
	Role      string
	ExpiresAt time.Time
}
