package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/teamify/office-api/internal/core/domain"
)

const (
	fieldHasSubscription = "has_completed_subscription"
	fieldHasOfficeSetup  = "has_completed_office_setup"
)

// SetupStatusRepository keys documents by account id so _id uniqueness
// guarantees one row per account.
type SetupStatusRepository struct {
	coll *mongo.Collection
}

func NewSetupStatusRepository(db *mongo.Database) *SetupStatusRepository {
	return &SetupStatusRepository{coll: db.Collection(collSetupStatus)}
}

type setupDoc struct {
	AccountID                string `bson:"_id"`
	HasCompletedSubscription bool   `bson:"has_completed_subscription"`
	HasCompletedOfficeSetup  bool   `bson:"has_completed_office_setup"`
	CreatedAt                int64  `bson:"created_at"`
	UpdatedAt                int64  `bson:"updated_at"`
}

func (r *SetupStatusRepository) Ensure(ctx context.Context, accountID string) (*domain.SetupStatus, error) {
	now := toNanos(time.Now())
	update := bson.M{"$setOnInsert": bson.M{
		fieldHasSubscription: false,
		fieldHasOfficeSetup:  false,
		"created_at":         now,
		"updated_at":         now,
	}}
	if err := r.upsert(ctx, accountID, update); err != nil {
		return nil, fmt.Errorf("ensure setup status: %w", err)
	}

	var doc setupDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": accountID}).Decode(&doc); err != nil {
		return nil, fmt.Errorf("find setup status: %w", err)
	}
	return &domain.SetupStatus{
		AccountID:                doc.AccountID,
		HasCompletedSubscription: doc.HasCompletedSubscription,
		HasCompletedOfficeSetup:  doc.HasCompletedOfficeSetup,
		CreatedAt:                nanosToTime(doc.CreatedAt),
		UpdatedAt:                nanosToTime(doc.UpdatedAt),
	}, nil
}

func (r *SetupStatusRepository) MarkSubscriptionComplete(ctx context.Context, accountID string) error {
	return r.mark(ctx, accountID, fieldHasSubscription, fieldHasOfficeSetup)
}

func (r *SetupStatusRepository) MarkOfficeSetupComplete(ctx context.Context, accountID string) error {
	return r.mark(ctx, accountID, fieldHasOfficeSetup, fieldHasSubscription)
}

func (r *SetupStatusRepository) mark(ctx context.Context, accountID, field, other string) error {
	now := toNanos(time.Now())
	update := bson.M{
		"$set":         bson.M{field: true, "updated_at": now},
		"$setOnInsert": bson.M{other: false, "created_at": now},
	}
	if err := r.upsert(ctx, accountID, update); err != nil {
		return fmt.Errorf("mark %s: %w", field, err)
	}
	return nil
}

// upsert retries once on a duplicate key: two concurrent upserts on a missing
// document can both attempt the insert, and the retry then matches.
func (r *SetupStatusRepository) upsert(ctx context.Context, accountID string, update bson.M) error {
	filter := bson.M{"_id": accountID}
	opts := options.Update().SetUpsert(true)

	_, err := r.coll.UpdateOne(ctx, filter, update, opts)
	if mongo.IsDuplicateKeyError(err) {
		_, err = r.coll.UpdateOne(ctx, filter, update, opts)
	}
	return err
}
