// Package sqlite implements the repositories on an embedded SQLite database.
// Timestamps are stored as Unix nanoseconds so ordering and the strict
// end-date comparison are plain integer comparisons.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/pressly/goose/v3"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/teamify/office-api/internal/core/ports"
)

//go:embed migrations/*.sql
var migrations embed.FS

const dsnPragmas = "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"

// Store owns the database handle and hands out repositories bound to it.
type Store struct {
	db            *sql.DB
	accounts      *AccountRepository
	subscriptions *SubscriptionRepository
	companies     *CompanyRepository
	setup         *SetupStatusRepository
	newsletter    *NewsletterRepository
}

var _ ports.Store = (*Store)(nil)

// Open opens (creating if needed) the database at path and applies pending
// migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", "file:"+path+dsnPragmas)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	if err := runMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{
		db:            db,
		accounts:      NewAccountRepository(db),
		subscriptions: NewSubscriptionRepository(db),
		companies:     NewCompanyRepository(db),
		setup:         NewSetupStatusRepository(db),
		newsletter:    NewNewsletterRepository(db),
	}, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	return nil
}

func (s *Store) Accounts() ports.AccountRepository           { return s.accounts }
func (s *Store) Subscriptions() ports.SubscriptionRepository { return s.subscriptions }
func (s *Store) Companies() ports.CompanyRepository          { return s.companies }
func (s *Store) SetupStatus() ports.SetupStatusRepository    { return s.setup }
func (s *Store) Newsletter() ports.NewsletterRepository      { return s.newsletter }

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close(context.Context) error {
	return s.db.Close()
}

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE || se.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}

func toNanos(t time.Time) int64 {
	return t.UTC().UnixNano()
}

func fromNanos(n int64) time.Time {
	if n == 0 {
		return time.Time{}
	}
	return time.Unix(0, n).UTC()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
