package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/teamify/office-api/internal/core/domain"
)

type CompanyRepository struct {
	db *sql.DB
}

func NewCompanyRepository(db *sql.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

const companyCols = `id, owner_id, name, website, size, logo_url, created_at, updated_at`

func scanCompany(scanner interface{ Scan(...any) error }) (*domain.Company, error) {
	var c domain.Company
	var website, logoURL sql.NullString
	var createdAt, updatedAt int64
	if err := scanner.Scan(&c.ID, &c.OwnerID, &c.Name, &website, &c.Size, &logoURL, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	c.Website = website.String
	c.LogoURL = logoURL.String
	c.CreatedAt = fromNanos(createdAt)
	c.UpdatedAt = fromNanos(updatedAt)
	return &c, nil
}

// Upsert inserts or updates the owner's company in one statement; the unique
// owner_id constraint keeps one company per owner.
func (r *CompanyRepository) Upsert(ctx context.Context, c *domain.Company) (bool, error) {
	row := r.db.QueryRowContext(ctx,
		`INSERT INTO companies (`+companyCols+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(owner_id) DO UPDATE SET
		   name = excluded.name,
		   website = excluded.website,
		   size = excluded.size,
		   logo_url = excluded.logo_url,
		   updated_at = excluded.updated_at
		 RETURNING id, created_at`,
		c.ID, c.OwnerID, c.Name, nullString(c.Website), c.Size, nullString(c.LogoURL),
		toNanos(c.CreatedAt), toNanos(c.UpdatedAt),
	)

	var storedID string
	var createdAt int64
	if err := row.Scan(&storedID, &createdAt); err != nil {
		return false, fmt.Errorf("upsert company: %w", err)
	}

	created := storedID == c.ID
	c.ID = storedID
	c.CreatedAt = fromNanos(createdAt)
	return created, nil
}

func (r *CompanyRepository) FindByOwner(ctx context.Context, ownerID string) (*domain.Company, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+companyCols+` FROM companies WHERE owner_id = ?`, ownerID)
	c, err := scanCompany(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get company by owner: %w", err)
	}
	return c, nil
}

func (r *CompanyRepository) Delete(ctx context.Context, id, ownerID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM companies WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete company: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete company: rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
