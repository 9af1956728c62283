package ports

import (
	"context"

	"github.com/teamify/office-api/internal/core/domain"
)

// SetupStatusRepository persists the per-account onboarding milestones. Every
// method is a single atomic statement; concurrent callers never produce more
// than one row per account.
type SetupStatusRepository interface {
	// Ensure creates the row with both flags false unless it already exists,
	// then returns the stored row.
	Ensure(ctx context.Context, accountID string) (*domain.SetupStatus, error)
	MarkSubscriptionComplete(ctx context.Context, accountID string) error
	MarkOfficeSetupComplete(ctx context.Context, accountID string) error
}
