package ports

import "context"

// Store bundles the repositories of one storage backend together with its
// lifecycle.
type Store interface {
	Accounts() AccountRepository
	Subscriptions() SubscriptionRepository
	Companies() CompanyRepository
	SetupStatus() SetupStatusRepository
	Newsletter() NewsletterRepository
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
