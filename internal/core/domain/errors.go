package domain

import "errors"

var (
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrDuplicateAccount     = errors.New("account with this email already exists")
	ErrInvalidSession       = errors.New("invalid or expired session")
	ErrSubscriptionRequired = errors.New("subscription required")
	ErrValidation           = errors.New("validation failed")
	ErrNotFound             = errors.New("resource not found")
	ErrForbidden            = errors.New("access forbidden")
	ErrInvalidResetToken    = errors.New("invalid or expired reset token")
	ErrRateLimited          = errors.New("too many attempts")
)

// ValidationError carries the field messages of a rejected request. It
// unwraps to ErrValidation.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError returns a ValidationError with the given message.
func NewValidationError(msg string) error {
	return &ValidationError{Message: msg}
}
