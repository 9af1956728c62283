package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/teamify/office-api/internal/core/domain"
	"github.com/teamify/office-api/internal/core/ports"
)

const defaultResetTTL = time.Hour

// PasswordService handles forgotten passwords.
type PasswordService struct {
	accounts ports.AccountRepository
	tokens   ports.ResetTokenStore
	mail     ports.MailQueue
	ttl      time.Duration
	appURL   string
	log      zerolog.Logger
}

func NewPasswordService(
	accounts ports.AccountRepository,
	tokens ports.ResetTokenStore,
	mail ports.MailQueue,
	ttl time.Duration,
	appURL string,
	log zerolog.Logger,
) *PasswordService {
	if ttl <= 0 {
		ttl = defaultResetTTL
	}
	return &PasswordService{
		accounts: accounts,
		tokens:   tokens,
		mail:     mail,
		ttl:      ttl,
		appURL:   appURL,
		log:      log,
	}
}

// RequestReset mails a reset link when the account exists. Unknown emails
// are silently ignored.
func (s *PasswordService) RequestReset(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if !validateEmail(email) {
		return domain.NewValidationError("email must be a valid email")
	}

	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.log.Debug().Msg("password reset requested for unknown email")
			return nil
		}
		return err
	}

	token := uuid.NewString()
	if err := s.tokens.Save(ctx, token, account.ID, s.ttl); err != nil {
		return fmt.Errorf("save reset token: %w", err)
	}

	s.mail.Enqueue(ports.MailMessage{
		To:      account.Email,
		Subject: "Reset your Teamify password",
		Body: fmt.Sprintf("Hi %s,\n\nUse the link below to choose a new password. It expires in %s.\n\n%s\n",
			account.Name, s.ttl, s.resetLink(token)),
	})

	s.log.Info().Str("account_id", account.ID).Msg("password reset requested")
	return nil
}

// ResetPassword redeems token and stores the new password hash. Tokens are
// single use.
func (s *PasswordService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < MinPasswordLength {
		return domain.NewValidationError("password must be at least 8 characters")
	}
	if token == "" {
		return domain.ErrInvalidResetToken
	}

	accountID, err := s.tokens.Consume(ctx, token)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), PasswordCost)
	if err != nil {
		return err
	}

	if err := s.accounts.UpdatePasswordHash(ctx, accountID, string(hash)); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrInvalidResetToken
		}
		return err
	}

	s.log.Info().Str("account_id", accountID).Msg("password reset completed")
	return nil
}

func (s *PasswordService) resetLink(token string) string {
	return s.appURL + "/reset-password?token=" + url.QueryEscape(token)
}
