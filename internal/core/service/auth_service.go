package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/teamify/office-api/internal/core/domain"
	"github.com/teamify/office-api/internal/core/ports"
)

const (
	// PasswordCost is the bcrypt work factor for stored passwords.
	PasswordCost      = bcrypt.DefaultCost
	MinPasswordLength = 8
	MinNameLength     = 2
)

// AuthService implements registration, login and session verification.
type AuthService struct {
	repo     ports.AccountRepository
	sessions *SessionIssuer
	log      zerolog.Logger
	now      func() time.Time

	dummyOnce sync.Once
	dummyHash []byte
}

func NewAuthService(repo ports.AccountRepository, sessions *SessionIssuer, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, sessions: sessions, log: log, now: time.Now}
}

func (s *AuthService) Register(ctx context.Context, email, password, name string) (*domain.Account, error) {
	email = normalizeEmail(email)
	name = strings.TrimSpace(name)
	if err := validateSignup(email, password, name); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	account := &domain.Account{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, account); err != nil {
		if !errors.Is(err, domain.ErrDuplicateAccount) {
			s.log.Error().Err(err).Msg("failed to create account")
		}
		return nil, err
	}

	s.log.Info().Str("account_id", account.ID).Msg("account registered")
	return account, nil
}

// Authenticate checks the credentials and issues a session token. An unknown
// email and a wrong password both yield domain.ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (string, *domain.Account, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	account, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Burn the same hashing time as a real comparison.
			_ = bcrypt.CompareHashAndPassword(s.placeholderHash(), []byte(password))
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.sessions.Issue(account)
	if err != nil {
		return "", nil, err
	}

	s.log.Info().Str("account_id", account.ID).Msg("login succeeded")
	return token, account, nil
}

func (s *AuthService) VerifySession(token string) (*domain.SessionClaims, error) {
	return s.sessions.Verify(token)
}

func (s *AuthService) UpdateProfile(ctx context.Context, accountID, name string) (*domain.Account, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.NewValidationError("name is required")
	}

	if err := s.repo.UpdateName(ctx, accountID, name); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, accountID)
}

func (s *AuthService) IssueSession(account *domain.Account) (string, error) {
	return s.sessions.Issue(account)
}

func (s *AuthService) placeholderHash() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte(uuid.NewString()), PasswordCost)
	})
	return s.dummyHash
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

var fields = validator.New()

func validateEmail(email string) bool {
	return fields.Var(email, "required,email") == nil
}

func validateSignup(email, password, name string) error {
	var msgs []string
	if !validateEmail(email) {
		msgs = append(msgs, "email must be a valid email")
	}
	if len(password) < MinPasswordLength {
		msgs = append(msgs, "password must be at least 8 characters")
	}
	if len([]rune(name)) < MinNameLength {
		msgs = append(msgs, "name must be at least 2 characters")
	}
	if len(msgs) > 0 {
		return domain.NewValidationError(strings.Join(msgs, "; "))
	}
	return nil
}
