package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/teamify/office-api/internal/core/domain"
	"github.com/teamify/office-api/internal/core/ports"
)

type NewsletterService struct {
	repo ports.NewsletterRepository
	log  zerolog.Logger
}

func NewNewsletterService(repo ports.NewsletterRepository, log zerolog.Logger) *NewsletterService {
	return &NewsletterService{repo: repo, log: log}
}

func (s *NewsletterService) Subscribe(ctx context.Context, email string) (bool, error) {
	email = normalizeEmail(email)
	if !validateEmail(email) {
		return false, domain.NewValidationError("please provide a valid email address")
	}

	added, err := s.repo.Add(ctx, &domain.NewsletterSubscriber{
		ID:        uuid.NewString(),
		Email:     email,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return false, err
	}
	if added {
		s.log.Info().Msg("newsletter subscriber added")
	}
	return added, nil
}

func (s *NewsletterService) List(ctx context.Context) ([]*domain.NewsletterSubscriber, error) {
	return s.repo.List(ctx)
}
