package ports

import (
	"context"

	"github.com/teamify/office-api/internal/core/domain"
)

// SaveCompanyInput carries the company-setup wizard fields.
type SaveCompanyInput struct {
	OwnerID string
	Name    string
	Website string
	Size    string
	LogoURL string
}

type CompanyService interface {
	// Save creates or updates the owner's company. Requires an active
	// subscription.
	Save(ctx context.Context, in SaveCompanyInput) (*domain.Company, bool, error)
	Get(ctx context.Context, ownerID string) (*domain.Company, error)
	Delete(ctx context.Context, ownerID, companyID string) error
}
