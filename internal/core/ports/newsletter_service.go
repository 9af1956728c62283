package ports

import (
	"context"

	"github.com/teamify/office-api/internal/core/domain"
)

type NewsletterService interface {
	Subscribe(ctx context.Context, email string) (added bool, err error)
	List(ctx context.Context) ([]*domain.NewsletterSubscriber, error)
}
