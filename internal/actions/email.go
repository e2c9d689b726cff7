package actions

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	log "log/slog"
	"net/mail"
	"strings"
)

type Email struct {
	From    string
	To      string
	Subject string
	Body    string
}

// Mailer delivers a fully formed email.
type Mailer interface {
	SendEmail(ctx context.Context, e Email) error
}

func ValidateAddress(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("address is empty")
	}
	if _, err := mail.ParseAddress(s); err != nil {
		return fmt.Errorf("invalid address %q: %w", s, err)
	}
	return nil
}

// RFC822 renders the message as a plain-text RFC 5322 message.
func (e Email) RFC822() []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", e.From)
	fmt.Fprintf(&b, "To: %s\r\n", e.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", headerSafe(e.Subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(e.Body, "\n", "\r\n"))
	return []byte(b.String())
}

// Raw is the base64url form Gmail expects.
func (e Email) Raw() string {
	return base64.URLEncoding.EncodeToString(e.RFC822())
}

func headerSafe(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}

// LogMailer only records the message; used when no mail backend is set up.
type LogMailer struct{}

func (LogMailer) SendEmail(_ context.Context, e Email) error {
	if err := ValidateAddress(e.To); err != nil {
		return err
	}
	log.Info("Email sent", "to", e.To, "subject", e.Subject, "bytes", len(e.RFC822()))
	return nil
}
