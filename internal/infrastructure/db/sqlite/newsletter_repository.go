package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/teamify/office-api/internal/core/domain"
)

type NewsletterRepository struct {
	db *sql.DB
}

func NewNewsletterRepository(db *sql.DB) *NewsletterRepository {
	return &NewsletterRepository{db: db}
}

func (r *NewsletterRepository) Add(ctx context.Context, s *domain.NewsletterSubscriber) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO newsletter_subscribers (id, email, created_at) VALUES (?, ?, ?)
		 ON CONFLICT(email) DO NOTHING`,
		s.ID, s.Email, toNanos(s.CreatedAt),
	)
	if err != nil {
		return false, fmt.Errorf("insert newsletter subscriber: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert newsletter subscriber: rows affected: %w", err)
	}
	return n > 0, nil
}

func (r *NewsletterRepository) List(ctx context.Context) ([]*domain.NewsletterSubscriber, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, email, created_at FROM newsletter_subscribers ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list newsletter subscribers: %w", err)
	}
	defer rows.Close()

	var out []*domain.NewsletterSubscriber
	for rows.Next() {
		var s domain.NewsletterSubscriber
		var createdAt int64
		if err := rows.Scan(&s.ID, &s.Email, &createdAt); err != nil {
			return nil, fmt.Errorf("scan newsletter subscriber: %w", err)
		}
		s.CreatedAt = fromNanos(createdAt)
		out = append(out, &s)
	}
	return out, rows.Err()
}
