package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/teamify/office-api/internal/core/domain"
	"github.com/teamify/office-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubAccountRepo struct {
	mu      sync.Mutex
	byEmail map[string]*domain.Account
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{byEmail: make(map[string]*domain.Account)}
}

func (r *stubAccountRepo) Create(_ context.Context, a *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byEmail[a.Email]; exists {
		return domain.ErrDuplicateAccount
	}
	clone := *a
	r.byEmail[a.Email] = &clone
	return nil
}

func (r *stubAccountRepo) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *stubAccountRepo) FindByID(_ context.Context, id string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.byEmail {
		if a.ID == id {
			clone := *a
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *stubAccountRepo) UpdateName(_ context.Context, id, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.byEmail {
		if a.ID == id {
			a.Name = name
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *stubAccountRepo) UpdatePasswordHash(_ context.Context, id, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.byEmail {
		if a.ID == id {
			a.PasswordHash = hash
			return nil
		}
	}
	return domain.ErrNotFound
}

type stubSubscriptionRepo struct {
	mu        sync.Mutex
	subs      []*domain.Subscription
	createErr error
	findErr   error
}

func (r *stubSubscriptionRepo) Create(_ context.Context, s *domain.Subscription) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *s
	r.subs = append(r.subs, &clone)
	return nil
}

// FindActive mirrors the SQL query: newest first, strict end > now.
func (r *stubSubscriptionRepo) FindActive(_ context.Context, accountID string, now time.Time) (*domain.Subscription, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	subs, _ := r.ListByAccount(context.Background(), accountID)
	for _, s := range subs {
		if s.IsActive(now) {
			return s, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *stubSubscriptionRepo) ListByAccount(_ context.Context, accountID string) ([]*domain.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Subscription
	for _, s := range r.subs {
		if s.AccountID == accountID {
			clone := *s
			out = append(out, &clone)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type stubCompanyRepo struct {
	byOwner map[string]*domain.Company
	findErr error
}

func newStubCompanyRepo() *stubCompanyRepo {
	return &stubCompanyRepo{byOwner: make(map[string]*domain.Company)}
}

func (r *stubCompanyRepo) Upsert(_ context.Context, c *domain.Company) (bool, error) {
	if existing, ok := r.byOwner[c.OwnerID]; ok {
		c.ID = existing.ID
		c.CreatedAt = existing.CreatedAt
		clone := *c
		r.byOwner[c.OwnerID] = &clone
		return false, nil
	}
	clone := *c
	r.byOwner[c.OwnerID] = &clone
	return true, nil
}

func (r *stubCompanyRepo) FindByOwner(_ context.Context, ownerID string) (*domain.Company, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	c, ok := r.byOwner[ownerID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCompanyRepo) Delete(_ context.Context, id, ownerID string) error {
	c, ok := r.byOwner[ownerID]
	if !ok || c.ID != id {
		return domain.ErrNotFound
	}
	delete(r.byOwner, ownerID)
	return nil
}

type stubSetupRepo struct {
	mu         sync.Mutex
	rows       map[string]*domain.SetupStatus
	markSubs   int
	markOffice int
	markErr    error
}

func newStubSetupRepo() *stubSetupRepo {
	return &stubSetupRepo{rows: make(map[string]*domain.SetupStatus)}
}

func (r *stubSetupRepo) Ensure(_ context.Context, accountID string) (*domain.SetupStatus, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[accountID]
	if !ok {
		row = &domain.SetupStatus{AccountID: accountID}
		r.rows[accountID] = row
	}
	clone := *row
	return &clone, nil
}

func (r *stubSetupRepo) MarkSubscriptionComplete(ctx context.Context, accountID string) error {
	if r.markErr != nil {
		return r.markErr
	}
	_, _ = r.Ensure(ctx, accountID)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.markSubs++
	r.rows[accountID].HasCompletedSubscription = true
	return nil
}

func (r *stubSetupRepo) MarkOfficeSetupComplete(ctx context.Context, accountID string) error {
	if r.markErr != nil {
		return r.markErr
	}
	_, _ = r.Ensure(ctx, accountID)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.markOffice++
	r.rows[accountID].HasCompletedOfficeSetup = true
	return nil
}

type stubResetTokens struct {
	tokens map[string]string
}

func newStubResetTokens() *stubResetTokens {
	return &stubResetTokens{tokens: make(map[string]string)}
}

func (s *stubResetTokens) Save(_ context.Context, token, accountID string, _ time.Duration) error {
	s.tokens[token] = accountID
	return nil
}

func (s *stubResetTokens) Consume(_ context.Context, token string) (string, error) {
	id, ok := s.tokens[token]
	if !ok {
		return "", domain.ErrInvalidResetToken
	}
	delete(s.tokens, token)
	return id, nil
}

type stubMailQueue struct {
	sent []ports.MailMessage
}

func (q *stubMailQueue) Enqueue(msg ports.MailMessage) {
	q.sent = append(q.sent, msg)
}

type stubNewsletterRepo struct {
	emails map[string]bool
}

func (r *stubNewsletterRepo) Add(_ context.Context, s *domain.NewsletterSubscriber) (bool, error) {
	if r.emails[s.Email] {
		return false, nil
	}
	r.emails[s.Email] = true
	return true, nil
}

func (r *stubNewsletterRepo) List(_ context.Context) ([]*domain.NewsletterSubscriber, error) {
	var out []*domain.NewsletterSubscriber
	for e := range r.emails {
		out = append(out, &domain.NewsletterSubscriber{Email: e})
	}
	return out, nil
}

// fixedClock returns a now func pinned to t.
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
