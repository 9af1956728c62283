package ports

import (
	"context"

	"github.com/teamify/office-api/internal/core/domain"
)

type NewsletterRepository interface {
	// Add inserts the subscriber. added is false when the email was already
	// subscribed; that case is not an error.
	Add(ctx context.Context, sub *domain.NewsletterSubscriber) (added bool, err error)
	List(ctx context.Context) ([]*domain.NewsletterSubscriber, error)
}
