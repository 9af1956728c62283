package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/teamify/office-api/internal/core/domain"
	"github.com/teamify/office-api/internal/core/ports"
)

type CompanyService struct {
	repo          ports.CompanyRepository
	subscriptions ports.SubscriptionService
	log           zerolog.Logger
	now           func() time.Time
}

func NewCompanyService(repo ports.CompanyRepository, subscriptions ports.SubscriptionService, log zerolog.Logger) *CompanyService {
	return &CompanyService{repo: repo, subscriptions: subscriptions, log: log, now: time.Now}
}

// Save upserts the owner's company. The bool result is true when a new
// company was created.
func (s *CompanyService) Save(ctx context.Context, in ports.SaveCompanyInput) (*domain.Company, bool, error) {
	if _, err := s.subscriptions.RequireActive(ctx, in.OwnerID); err != nil {
		return nil, false, err
	}

	name := strings.TrimSpace(in.Name)
	size := strings.TrimSpace(in.Size)
	var msgs []string
	if name == "" {
		msgs = append(msgs, "company name is required")
	}
	if size == "" {
		msgs = append(msgs, "company size is required")
	}
	if len(msgs) > 0 {
		return nil, false, domain.NewValidationError(strings.Join(msgs, "; "))
	}

	now := s.now().UTC()
	company := &domain.Company{
		ID:        uuid.NewString(),
		OwnerID:   in.OwnerID,
		Name:      name,
		Website:   strings.TrimSpace(in.Website),
		Size:      size,
		LogoURL:   strings.TrimSpace(in.LogoURL),
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Upsert(ctx, company)
	if err != nil {
		s.log.Error().Err(err).Str("owner_id", in.OwnerID).Msg("failed to save company")
		return nil, false, err
	}

	s.log.Info().
		Str("owner_id", in.OwnerID).
		Str("company_id", company.ID).
		Bool("created", created).
		Msg("company saved")

	return company, created, nil
}

func (s *CompanyService) Get(ctx context.Context, ownerID string) (*domain.Company, error) {
	return s.repo.FindByOwner(ctx, ownerID)
}

// Delete removes the company when ownerID owns it. A company that does not
// exist and one owned by someone else both report domain.ErrNotFound.
func (s *CompanyService) Delete(ctx context.Context, ownerID, companyID string) error {
	if _, err := s.subscriptions.RequireActive(ctx, ownerID); err != nil {
		return err
	}
	if companyID == "" {
		return domain.NewValidationError("invalid company id")
	}

	if err := s.repo.Delete(ctx, companyID, ownerID); err != nil {
		return err
	}

	s.log.Info().Str("owner_id", ownerID).Str("company_id", companyID).Msg("company deleted")
	return nil
}
