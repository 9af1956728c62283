package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/teamify/office-api/internal/core/domain"
)

type SubscriptionRepository struct {
	coll *mongo.Collection
}

func NewSubscriptionRepository(db *mongo.Database) *SubscriptionRepository {
	return &SubscriptionRepository{coll: db.Collection(collSubscriptions)}
}

// EndDate is stored as null rather than omitted so the active filter can
// match it with a single equality.
type subscriptionDoc struct {
	ID            string `bson:"_id"`
	AccountID     string `bson:"account_id"`
	PlanID        string `bson:"plan_id"`
	PlanName      string `bson:"plan_name"`
	BillingCycle  string `bson:"billing_cycle"`
	Status        string `bson:"status"`
	PaymentMethod string `bson:"payment_method"`
	PaymentID     string `bson:"payment_id,omitempty"`
	StartDate     int64  `bson:"start_date"`
	EndDate       *int64 `bson:"end_date"`
	CreatedAt     int64  `bson:"created_at"`
}

func subscriptionToDoc(s *domain.Subscription) subscriptionDoc {
	doc := subscriptionDoc{
		ID:            s.ID,
		AccountID:     s.AccountID,
		PlanID:        s.PlanID,
		PlanName:      s.PlanName,
		BillingCycle:  string(s.BillingCycle),
		Status:        s.Status,
		PaymentMethod: s.PaymentMethod,
		PaymentID:     s.PaymentID,
		StartDate:     toNanos(s.StartDate),
		CreatedAt:     toNanos(s.CreatedAt),
	}
	if s.EndDate != nil {
		end := toNanos(*s.EndDate)
		doc.EndDate = &end
	}
	return doc
}

func (d subscriptionDoc) toDomain() *domain.Subscription {
	s := &domain.Subscription{
		ID:            d.ID,
		AccountID:     d.AccountID,
		PlanID:        d.PlanID,
		PlanName:      d.PlanName,
		BillingCycle:  domain.BillingCycle(d.BillingCycle),
		Status:        d.Status,
		PaymentMethod: d.PaymentMethod,
		PaymentID:     d.PaymentID,
		StartDate:     nanosToTime(d.StartDate),
		CreatedAt:     nanosToTime(d.CreatedAt),
	}
	if d.EndDate != nil {
		end := nanosToTime(*d.EndDate)
		s.EndDate = &end
	}
	return s
}

func (r *SubscriptionRepository) Create(ctx context.Context, s *domain.Subscription) error {
	if _, err := r.coll.InsertOne(ctx, subscriptionToDoc(s)); err != nil {
		return fmt.Errorf("insert subscription: %w", err)
	}
	return nil
}

func activeFilter(accountID string, now time.Time) bson.M {
	return bson.M{
		"account_id": accountID,
		"status":     domain.SubscriptionActive,
		"$or": bson.A{
			bson.M{"end_date": nil},
			bson.M{"end_date": bson.M{"$gt": toNanos(now)}},
		},
	}
}

func (r *SubscriptionRepository) FindActive(ctx context.Context, accountID string, now time.Time) (*domain.Subscription, error) {
	opts := options.FindOne().SetSort(newestFirst)

	var doc subscriptionDoc
	if err := r.coll.FindOne(ctx, activeFilter(accountID, now), opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find active subscription: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *SubscriptionRepository) ListByAccount(ctx context.Context, accountID string) ([]*domain.Subscription, error) {
	opts := options.Find().SetSort(newestFirst)

	cur, err := r.coll.Find(ctx, bson.M{"account_id": accountID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	defer cur.Close(ctx)

	var docs []subscriptionDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode subscriptions: %w", err)
	}

	subs := make([]*domain.Subscription, 0, len(docs))
	for _, d := range docs {
		subs = append(subs, d.toDomain())
	}
	return subs, nil
}
