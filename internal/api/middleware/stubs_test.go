package middleware

import (
	"context"
	"time"

	"github.com/teamify/office-api/internal/core/domain"
)

// stubAuth accepts exactly the tokens in sessions.
type stubAuth struct {
	sessions map[string]*domain.SessionClaims
}

func (s *stubAuth) Register(context.Context, string, string, string) (*domain.Account, error) {
	return nil, nil
}

func (s *stubAuth) Authenticate(context.Context, string, string) (string, *domain.Account, error) {
	return "", nil, nil
}

func (s *stubAuth) VerifySession(token string) (*domain.SessionClaims, error) {
	claims, ok := s.sessions[token]
	if !ok {
		return nil, domain.ErrInvalidSession
	}
	return claims, nil
}

func (s *stubAuth) UpdateProfile(context.Context, string, string) (*domain.Account, error) {
	return nil, nil
}

func (s *stubAuth) IssueSession(*domain.Account) (string, error) {
	return "", nil
}

type stubResolver struct {
	ent   *domain.Entitlement
	err   error
	calls int
}

func (s *stubResolver) Resolve(_ context.Context, accountID string) (*domain.Entitlement, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	ent := *s.ent
	ent.AccountID = accountID
	return &ent, nil
}

type stubLimiter struct {
	allow bool
	err   error
	keys  []string
}

func (s *stubLimiter) Allow(_ context.Context, key string, _ int, _ time.Duration) (bool, error) {
	s.keys = append(s.keys, key)
	return s.allow, s.err
}

func aliceAuth() *stubAuth {
	return &stubAuth{sessions: map[string]*domain.SessionClaims{
		"good-token": {AccountID: "acc-1", Email: "alice@example.com", Name: "Alice", Role: domain.RoleUser},
	}}
}
