package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/teamify/office-api/internal/core/domain"
)

type NewsletterRepository struct {
	coll *mongo.Collection
}

func NewNewsletterRepository(db *mongo.Database) *NewsletterRepository {
	return &NewsletterRepository{coll: db.Collection(collNewsletter)}
}

type newsletterDoc struct {
	ID        string `bson:"_id"`
	Email     string `bson:"email"`
	CreatedAt int64  `bson:"created_at"`
}

func (r *NewsletterRepository) Add(ctx context.Context, s *domain.NewsletterSubscriber) (bool, error) {
	update := bson.M{"$setOnInsert": bson.M{
		"_id":        s.ID,
		"created_at": toNanos(s.CreatedAt),
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"email": s.Email}, update, options.Update().SetUpsert(true))
	if mongo.IsDuplicateKeyError(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("add newsletter subscriber: %w", err)
	}
	return res.UpsertedCount > 0, nil
}

func (r *NewsletterRepository) List(ctx context.Context) ([]*domain.NewsletterSubscriber, error) {
	opts := options.Find().SetSort(newestFirst)
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list newsletter subscribers: %w", err)
	}
	defer cur.Close(ctx)

	var docs []newsletterDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode newsletter subscribers: %w", err)
	}

	out := make([]*domain.NewsletterSubscriber, 0, len(docs))
	for _, d := range docs {
		out = append(out, &domain.NewsletterSubscriber{ID: d.ID, Email: d.Email, CreatedAt: nanosToTime(d.CreatedAt)})
	}
	return out, nil
}
