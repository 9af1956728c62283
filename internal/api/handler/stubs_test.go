package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/teamify/office-api/internal/core/domain"
	"github.com/teamify/office-api/internal/core/ports"
)

type stubAuthService struct {
	registerFn     func(ctx context.Context, email, password, name string) (*domain.Account, error)
	authenticateFn func(ctx context.Context, email, password string) (string, *domain.Account, error)
	sessions       map[string]*domain.SessionClaims
	updateFn       func(ctx context.Context, accountID, name string) (*domain.Account, error)
	issueErr       error
	issued         *domain.Account
}

func (s *stubAuthService) Register(ctx context.Context, email, password, name string) (*domain.Account, error) {
	return s.registerFn(ctx, email, password, name)
}

func (s *stubAuthService) Authenticate(ctx context.Context, email, password string) (string, *domain.Account, error) {
	return s.authenticateFn(ctx, email, password)
}

func (s *stubAuthService) VerifySession(token string) (*domain.SessionClaims, error) {
	claims, ok := s.sessions[token]
	if !ok {
		return nil, domain.ErrInvalidSession
	}
	return claims, nil
}

func (s *stubAuthService) UpdateProfile(ctx context.Context, accountID, name string) (*domain.Account, error) {
	return s.updateFn(ctx, accountID, name)
}

func (s *stubAuthService) IssueSession(account *domain.Account) (string, error) {
	if s.issueErr != nil {
		return "", s.issueErr
	}
	s.issued = account
	return "session-for-" + account.ID, nil
}

type stubResolver struct {
	ent *domain.Entitlement
	err error
}

func (s *stubResolver) Resolve(context.Context, string) (*domain.Entitlement, error) {
	return s.ent, s.err
}

type stubPasswordService struct {
	requested []string
	resetErr  error
}

func (s *stubPasswordService) RequestReset(_ context.Context, email string) error {
	s.requested = append(s.requested, email)
	return nil
}

func (s *stubPasswordService) ResetPassword(context.Context, string, string) error {
	return s.resetErr
}

type stubSubscriptionService struct {
	createFn  func(ctx context.Context, in ports.CreateSubscriptionInput) (*domain.Subscription, error)
	overview  *ports.SubscriptionOverview
	activeErr error
}

func (s *stubSubscriptionService) Create(ctx context.Context, in ports.CreateSubscriptionInput) (*domain.Subscription, error) {
	return s.createFn(ctx, in)
}

func (s *stubSubscriptionService) Overview(context.Context, string) (*ports.SubscriptionOverview, error) {
	return s.overview, nil
}

func (s *stubSubscriptionService) RequireActive(context.Context, string) (*domain.Subscription, error) {
	if s.activeErr != nil {
		return nil, s.activeErr
	}
	return &domain.Subscription{ID: "sub-1"}, nil
}

type stubCompanyService struct {
	saveFn    func(ctx context.Context, in ports.SaveCompanyInput) (*domain.Company, bool, error)
	company   *domain.Company
	deleteErr error
	deleted   []string
}

func (s *stubCompanyService) Save(ctx context.Context, in ports.SaveCompanyInput) (*domain.Company, bool, error) {
	return s.saveFn(ctx, in)
}

func (s *stubCompanyService) Get(context.Context, string) (*domain.Company, error) {
	if s.company == nil {
		return nil, domain.ErrNotFound
	}
	return s.company, nil
}

func (s *stubCompanyService) Delete(_ context.Context, ownerID, companyID string) error {
	s.deleted = append(s.deleted, ownerID+"/"+companyID)
	return s.deleteErr
}

type stubNewsletterService struct {
	seen map[string]bool
}

func (s *stubNewsletterService) Subscribe(_ context.Context, email string) (bool, error) {
	if s.seen == nil {
		s.seen = map[string]bool{}
	}
	if s.seen[email] {
		return false, nil
	}
	s.seen[email] = true
	return true, nil
}

func (s *stubNewsletterService) List(context.Context) ([]*domain.NewsletterSubscriber, error) {
	return nil, nil
}

// newContext builds an echo context with the validator the router installs.
func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// withSession injects claims the way the Session middleware does.
func withSession(c echo.Context, accountID string) {
	c.Set("session_claims", &domain.SessionClaims{AccountID: accountID, Email: accountID + "@example.com", Role: domain.RoleUser})
	c.Set("role", domain.RoleUser)
}
