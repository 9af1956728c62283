package ports

import (
	"context"

	"github.com/teamify/office-api/internal/core/domain"
)

// EntitlementService derives the onboarding state of an account.
type EntitlementService interface {
	Resolve(ctx context.Context, accountID string) (*domain.Entitlement, error)
}
