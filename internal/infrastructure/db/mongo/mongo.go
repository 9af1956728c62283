package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/teamify/office-api/internal/core/ports"
)

const (
	defaultTimeout = 10 * time.Second

	collAccounts      = "accounts"
	collSubscriptions = "subscriptions"
	collCompanies     = "companies"
	collSetupStatus   = "setup_status"
	collNewsletter    = "newsletter_subscribers"
)

// newestFirst orders by creation time, breaking ties on _id so equal
// timestamps still yield one stable winner.
var newestFirst = bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}

// Config captures the minimal settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect establishes a MongoDB client, verifies connectivity with a ping, and
// returns both the client and the selected database. A default timeout is
// applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(cfg.Database)
	return client, db, nil
}

// Store is the MongoDB implementation of ports.Store.
type Store struct {
	client        *mongo.Client
	db            *mongo.Database
	accounts      *AccountRepository
	subscriptions *SubscriptionRepository
	companies     *CompanyRepository
	setup         *SetupStatusRepository
	newsletter    *NewsletterRepository
}

var _ ports.Store = (*Store)(nil)

// Open connects to MongoDB, creates the indexes the repositories rely on for
// uniqueness, and returns the store.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	client, db, err := Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if err := EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return &Store{
		client:        client,
		db:            db,
		accounts:      NewAccountRepository(db),
		subscriptions: NewSubscriptionRepository(db),
		companies:     NewCompanyRepository(db),
		setup:         NewSetupStatusRepository(db),
		newsletter:    NewNewsletterRepository(db),
	}, nil
}

// EnsureIndexes creates the unique and lookup indexes for every collection.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	unique := options.Index().SetUnique(true)
	indexes := map[string][]mongo.IndexModel{
		collAccounts: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		},
		collSubscriptions: {
			{Keys: bson.D{{Key: "account_id", Value: 1}, {Key: "created_at", Value: -1}}},
		},
		collCompanies: {
			{Keys: bson.D{{Key: "owner_id", Value: 1}}, Options: unique},
		},
		collNewsletter: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		},
	}

	for coll, models := range indexes {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", coll, err)
		}
	}
	return nil
}

func (s *Store) Accounts() ports.AccountRepository           { return s.accounts }
func (s *Store) Subscriptions() ports.SubscriptionRepository { return s.subscriptions }
func (s *Store) Companies() ports.CompanyRepository          { return s.companies }
func (s *Store) SetupStatus() ports.SetupStatusRepository    { return s.setup }
func (s *Store) Newsletter() ports.NewsletterRepository      { return s.newsletter }

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func toNanos(t time.Time) int64 {
	return t.UTC().UnixNano()
}

func nanosToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(0, ts).UTC()
}
