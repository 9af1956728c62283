package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/teamify/office-api/internal/core/domain"
)

type SetupStatusRepository struct {
	db *sql.DB
}

func NewSetupStatusRepository(db *sql.DB) *SetupStatusRepository {
	return &SetupStatusRepository{db: db}
}

func (r *SetupStatusRepository) Ensure(ctx context.Context, accountID string) (*domain.SetupStatus, error) {
	now := toNanos(time.Now())
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO setup_status (account_id, created_at, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(account_id) DO NOTHING`,
		accountID, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("ensure setup status: %w", err)
	}

	var st domain.SetupStatus
	var hasSub, hasOffice int
	var createdAt, updatedAt int64
	err = r.db.QueryRowContext(ctx,
		`SELECT account_id, has_completed_subscription, has_completed_office_setup, created_at, updated_at
		 FROM setup_status WHERE account_id = ?`,
		accountID,
	).Scan(&st.AccountID, &hasSub, &hasOffice, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("get setup status: %w", err)
	}
	st.HasCompletedSubscription = hasSub != 0
	st.HasCompletedOfficeSetup = hasOffice != 0
	st.CreatedAt = fromNanos(createdAt)
	st.UpdatedAt = fromNanos(updatedAt)
	return &st, nil
}

func (r *SetupStatusRepository) MarkSubscriptionComplete(ctx context.Context, accountID string) error {
	return r.mark(ctx, "has_completed_subscription", accountID)
}

func (r *SetupStatusRepository) MarkOfficeSetupComplete(ctx context.Context, accountID string) error {
	return r.mark(ctx, "has_completed_office_setup", accountID)
}

// mark upserts the row with column set; column is one of two constants above.
func (r *SetupStatusRepository) mark(ctx context.Context, column, accountID string) error {
	now := toNanos(time.Now())
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO setup_status (account_id, `+column+`, created_at, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(account_id) DO UPDATE SET `+column+` = 1, updated_at = excluded.updated_at`,
		accountID, boolToInt(true), now, now,
	)
	if err != nil {
		return fmt.Errorf("mark %s: %w", column, err)
	}
	return nil
}
