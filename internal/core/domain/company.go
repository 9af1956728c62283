package domain

import "time"

// Company is the office an account sets up after subscribing. Each owner has
// at most one.
type Company struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Name      string    `json:"name"`
	Website   string    `json:"website,omitempty"`
	Size      string    `json:"size"`
	LogoURL   string    `json:"logo_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
