package ports

import (
	"context"

	"github.com/teamify/office-api/internal/core/domain"
)

// CompanyRepository persists companies, one per owner.
type CompanyRepository interface {
	// Upsert creates the owner's company or updates the existing one in
	// place. created reports which of the two happened; company.ID is set to
	// the stored id either way.
	Upsert(ctx context.Context, company *domain.Company) (created bool, err error)
	// FindByOwner returns domain.ErrNotFound when the owner has no company.
	FindByOwner(ctx context.Context, ownerID string) (*domain.Company, error)
	// Delete removes the company only when it belongs to ownerID. Returns
	// domain.ErrNotFound otherwise.
	Delete(ctx context.Context, id, ownerID string) error
}
