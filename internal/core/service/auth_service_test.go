package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/teamify/office-api/internal/core/domain"
)

func newAuthSvc(repo *stubAccountRepo) *AuthService {
	return NewAuthService(repo, NewSessionIssuer("secret", time.Hour), zerolog.Nop())
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newAuthSvc(repo)

	account, err := svc.Register(context.Background(), "Alice@Example.com ", "pass1234", "Alice")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if account.ID == "" {
		t.Fatalf("expected account id")
	}
	if account.Email != "alice@example.com" {
		t.Fatalf("expected normalised email, got %q", account.Email)
	}
	if account.Role != domain.RoleUser {
		t.Fatalf("unexpected role: %s", account.Role)
	}

	stored, err := repo.FindByID(context.Background(), account.ID)
	if err != nil {
		t.Fatalf("account not retrievable: %v", err)
	}
	if stored.PasswordHash == "pass1234" {
		t.Fatalf("expected password to be hashed")
	}
	if cost, _ := bcrypt.Cost([]byte(stored.PasswordHash)); cost != 10 {
		t.Fatalf("expected bcrypt cost 10, got %d", cost)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("pass1234")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc := newAuthSvc(newStubAccountRepo())

	first, err := svc.Register(context.Background(), "bob@example.com", "password1", "Bob")
	if err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(context.Background(), "BOB@example.com", "password2", "Bobby"); !errors.Is(err, domain.ErrDuplicateAccount) {
		t.Fatalf("expected ErrDuplicateAccount, got %v", err)
	}
	if first.ID == "" {
		t.Fatalf("first account lost its id")
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := newAuthSvc(newStubAccountRepo())

	cases := []struct {
		name, email, password, fullName string
	}{
		{"bad email", "not-an-email", "password1", "Bob"},
		{"short password", "bob@example.com", "short", "Bob"},
		{"short name", "bob@example.com", "password1", "B"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.email, tc.password, tc.fullName)
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestAuthService_Authenticate_Success(t *testing.T) {
	svc := newAuthSvc(newStubAccountRepo())

	registered, err := svc.Register(context.Background(), "carol@example.com", "s3cretpass", "Carol")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, account, err := svc.Authenticate(context.Background(), "carol@example.com", "s3cretpass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if account.ID != registered.ID {
		t.Fatalf("unexpected account: %+v", account)
	}

	claims, err := svc.VerifySession(token)
	if err != nil {
		t.Fatalf("token invalid: %v", err)
	}
	if claims.AccountID != registered.ID || claims.Email != "carol@example.com" || claims.Name != "Carol" || claims.Role != domain.RoleUser {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuthService_Authenticate_WrongPasswordAndUnknownEmailLookAlike(t *testing.T) {
	svc := newAuthSvc(newStubAccountRepo())
	_, _ = svc.Register(context.Background(), "dave@example.com", "goodpass", "Dave")

	_, _, wrongPass := svc.Authenticate(context.Background(), "dave@example.com", "badpass1")
	_, _, unknown := svc.Authenticate(context.Background(), "ghost@example.com", "goodpass")

	if wrongPass != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", wrongPass)
	}
	if unknown != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", unknown)
	}
}

func TestAuthService_UpdateProfile(t *testing.T) {
	svc := newAuthSvc(newStubAccountRepo())
	acc, _ := svc.Register(context.Background(), "erin@example.com", "password1", "Erin")

	updated, err := svc.UpdateProfile(context.Background(), acc.ID, "  Erin Smith ")
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if updated.Name != "Erin Smith" {
		t.Fatalf("unexpected name %q", updated.Name)
	}

	token, err := svc.IssueSession(updated)
	if err != nil {
		t.Fatalf("issue session: %v", err)
	}
	claims, err := svc.VerifySession(token)
	if err != nil {
		t.Fatalf("verify session: %v", err)
	}
	if claims.Name != "Erin Smith" || claims.AccountID != acc.ID {
		t.Fatalf("reissued session carries stale profile: %+v", claims)
	}

	if _, err := svc.UpdateProfile(context.Background(), acc.ID, " "); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if _, err := svc.UpdateProfile(context.Background(), "missing", "Name"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
