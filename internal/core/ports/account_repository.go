package ports

import (
	"context"

	"github.com/teamify/office-api/internal/core/domain"
)

// AccountRepository persists accounts and their password hashes.
type AccountRepository interface {
	// Create inserts the account. Returns domain.ErrDuplicateAccount when the
	// email is already registered.
	Create(ctx context.Context, account *domain.Account) error
	// FindByEmail returns domain.ErrNotFound when no account has the email.
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	UpdateName(ctx context.Context, id, name string) error
	UpdatePasswordHash(ctx context.Context, id, hash string) error
}
