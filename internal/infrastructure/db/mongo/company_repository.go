package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/teamify/office-api/internal/core/domain"
)

type CompanyRepository struct {
	coll *mongo.Collection
}

func NewCompanyRepository(db *mongo.Database) *CompanyRepository {
	return &CompanyRepository{coll: db.Collection(collCompanies)}
}

type companyDoc struct {
	ID        string `bson:"_id"`
	OwnerID   string `bson:"owner_id"`
	Name      string `bson:"name"`
	Website   string `bson:"website,omitempty"`
	Size      string `bson:"size"`
	LogoURL   string `bson:"logo_url,omitempty"`
	CreatedAt int64  `bson:"created_at"`
	UpdatedAt int64  `bson:"updated_at"`
}

func (d companyDoc) toDomain() *domain.Company {
	return &domain.Company{
		ID:        d.ID,
		OwnerID:   d.OwnerID,
		Name:      d.Name,
		Website:   d.Website,
		Size:      d.Size,
		LogoURL:   d.LogoURL,
		CreatedAt: nanosToTime(d.CreatedAt),
		UpdatedAt: nanosToTime(d.UpdatedAt),
	}
}

// Upsert writes the owner's company. Two concurrent first inserts race on the
// unique owner_id index; the loser retries once and lands on the update path.
func (r *CompanyRepository) Upsert(ctx context.Context, c *domain.Company) (bool, error) {
	filter := bson.M{"owner_id": c.OwnerID}
	update := bson.M{
		"$set": bson.M{
			"name":       c.Name,
			"website":    c.Website,
			"size":       c.Size,
			"logo_url":   c.LogoURL,
			"updated_at": toNanos(c.UpdatedAt),
		},
		"$setOnInsert": bson.M{
			"_id":        c.ID,
			"created_at": toNanos(c.CreatedAt),
		},
	}
	opts := options.Update().SetUpsert(true)

	res, err := r.coll.UpdateOne(ctx, filter, update, opts)
	if mongo.IsDuplicateKeyError(err) {
		res, err = r.coll.UpdateOne(ctx, filter, update, opts)
	}
	if err != nil {
		return false, fmt.Errorf("upsert company: %w", err)
	}

	stored, err := r.FindByOwner(ctx, c.OwnerID)
	if err != nil {
		return false, err
	}
	c.ID = stored.ID
	c.CreatedAt = stored.CreatedAt
	return res.UpsertedCount > 0, nil
}

func (r *CompanyRepository) FindByOwner(ctx context.Context, ownerID string) (*domain.Company, error) {
	var doc companyDoc
	if err := r.coll.FindOne(ctx, bson.M{"owner_id": ownerID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find company: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *CompanyRepository) Delete(ctx context.Context, id, ownerID string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id, "owner_id": ownerID})
	if err != nil {
		return fmt.Errorf("delete company: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
