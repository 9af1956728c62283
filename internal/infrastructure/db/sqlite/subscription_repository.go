package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/teamify/office-api/internal/core/domain"
)

type SubscriptionRepository struct {
	db *sql.DB
}

func NewSubscriptionRepository(db *sql.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

const subscriptionCols = `id, account_id, plan_id, plan_name, billing_cycle, status, payment_method, payment_id, start_date, end_date, created_at`

func scanSubscription(scanner interface{ Scan(...any) error }) (*domain.Subscription, error) {
	var sub domain.Subscription
	var cycle string
	var paymentID sql.NullString
	var startDate, createdAt int64
	var endDate sql.NullInt64
	err := scanner.Scan(
		&sub.ID, &sub.AccountID, &sub.PlanID, &sub.PlanName, &cycle, &sub.Status,
		&sub.PaymentMethod, &paymentID, &startDate, &endDate, &createdAt,
	)
	if err != nil {
		return nil, err
	}
	sub.BillingCycle = domain.BillingCycle(cycle)
	sub.PaymentID = paymentID.String
	sub.StartDate = fromNanos(startDate)
	sub.CreatedAt = fromNanos(createdAt)
	if endDate.Valid {
		end := fromNanos(endDate.Int64)
		sub.EndDate = &end
	}
	return &sub, nil
}

func (r *SubscriptionRepository) Create(ctx context.Context, sub *domain.Subscription) error {
	var endDate sql.NullInt64
	if sub.EndDate != nil {
		endDate = sql.NullInt64{Int64: toNanos(*sub.EndDate), Valid: true}
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO subscriptions (`+subscriptionCols+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sub.ID, sub.AccountID, sub.PlanID, sub.PlanName, string(sub.BillingCycle), sub.Status,
		sub.PaymentMethod, nullString(sub.PaymentID), toNanos(sub.StartDate), endDate, toNanos(sub.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert subscription: %w", err)
	}
	return nil
}

func (r *SubscriptionRepository) FindActive(ctx context.Context, accountID string, now time.Time) (*domain.Subscription, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+subscriptionCols+` FROM subscriptions
		 WHERE account_id = ? AND status = ? AND (end_date IS NULL OR end_date > ?)
		 ORDER BY created_at DESC, rowid DESC LIMIT 1`,
		accountID, domain.SubscriptionActive, toNanos(now),
	)
	sub, err := scanSubscription(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get active subscription: %w", err)
	}
	return sub, nil
}

func (r *SubscriptionRepository) ListByAccount(ctx context.Context, accountID string) ([]*domain.Subscription, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+subscriptionCols+` FROM subscriptions WHERE account_id = ? ORDER BY created_at DESC, rowid DESC`,
		accountID,
	)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []*domain.Subscription
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("scan subscription: %w", err)
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}
