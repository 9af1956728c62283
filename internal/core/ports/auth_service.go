package ports

import (
	"context"

	"github.com/teamify/office-api/internal/core/domain"
)

// AuthService is the credential store: registration, login and session
// verification.
type AuthService interface {
	Register(ctx context.Context, email, password, name string) (*domain.Account, error)
	// Authenticate returns a signed session token for the account.
	Authenticate(ctx context.Context, email, password string) (string, *domain.Account, error)
	VerifySession(token string) (*domain.SessionClaims, error)
	UpdateProfile(ctx context.Context, accountID, name string) (*domain.Account, error)
	// IssueSession signs a fresh session token carrying the account's
	// current profile.
	IssueSession(account *domain.Account) (string, error)
}

// PasswordResetService issues and redeems one-time password reset tokens.
type PasswordResetService interface {
	// RequestReset never reports whether the email exists.
	RequestReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}
