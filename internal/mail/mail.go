// Package mail delivers the verification emails.
package mail

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/cycle-ledger/backend/internal/config"
	"github.com/rs/zerolog/log"
	gomail "github.com/wneessen/go-mail"
)

// Message is a plain text email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers messages.
type Sender interface {
	Send(ctx context.Context, m Message) error
}

// New returns an SMTP sender if SMTP is configured, otherwise a sender
// that only logs messages.
func New(c config.SMTP) Sender {
	if !c.Enabled() {
		log.Warn().Msg("SMTP_HOST is not set, emails will only be logged")
		return LogSender{}
	}

	return &SMTPSender{config: c}
}

// SMTPSender sends mail over SMTP.
type SMTPSender struct {
	config config.SMTP
}

func (s *SMTPSender) Send(ctx context.Context, m Message) error {
	msg := gomail.NewMsg()
	if err := msg.From(s.config.From); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}

	if err := msg.To(m.To); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}

	msg.Subject(m.Subject)
	msg.SetBodyString(gomail.TypeTextPlain, m.Body)

	opts := []gomail.Option{
		gomail.WithPort(s.config.Port),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
	}

	if s.config.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(s.config.Username),
			gomail.WithPassword(s.config.Password),
		)
	}

	client, err := gomail.NewClient(s.config.Host, opts...)
	if err != nil {
		return fmt.Errorf("could not create SMTP client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("could not send email: %w", err)
	}

	log.Info().Str("to", m.To).Str("subject", m.Subject).Msg("Mail sent")
	return nil
}

// LogSender writes messages to the log instead of sending them.
type LogSender struct{}

func (LogSender) Send(_ context.Context, m Message) error {
	log.Info().Str("to", m.To).Str("subject", m.Subject).Str("body", m.Body).Msg("Mail not sent, SMTP is disabled")
	return nil
}

// VerificationMessage returns the email asking a user to verify the address.
func VerificationMessage(baseURL *url.URL, to, username, token string) Message {
	link := strings.TrimRight(baseURL.String(), "/") + "/auth/verify/" + url.PathEscape(token)

	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", username)
	b.WriteString("please confirm your email address for Cycle Ledger by opening this link:\n\n")
	b.WriteString(link + "\n\n")
	b.WriteString("If you did not register, you can ignore this message.\n")

	return Message{
		To:      to,
		Subject: "Please verify your email address",
		Body:    b.String(),
	}
}
