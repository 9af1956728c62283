// Package mail holds Mailer implementations.
package mail

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/teamify/office-api/internal/core/ports"
)

// LogMailer records outgoing mail in the application log instead of sending
// it. Bodies are written at debug level only since they carry reset links.
type LogMailer struct {
	log zerolog.Logger
}

var _ ports.Mailer = (*LogMailer)(nil)

func NewLogMailer(log zerolog.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) Send(_ context.Context, msg ports.MailMessage) error {
	m.log.Info().Str("subject", msg.Subject).Msg("mail sent")
	m.log.Debug().Str("to", msg.To).Str("body", msg.Body).Msg("mail body")
	return nil
}
