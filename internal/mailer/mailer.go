// Package mailer is the outbound email sink. The rest of the system
// treats it as best effort: a failed send is logged by the caller, never
// propagated to the user.
package mailer

import (
	"context"
	"fmt"
	"net/smtp"
)

type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

type SMTPMailer struct {
	host      string
	port      int
	auth      smtp.Auth
	fromName  string
	fromEmail string
}

// NewSMTP returns a plain-text SMTP sender. Auth is skipped when no
// username is configured (local relay).
func NewSMTP(host string, port int, user, pass, fromName, fromEmail string) *SMTPMailer {
	var auth smtp.Auth
	if user != "" {
		auth = smtp.PlainAuth("", user, pass, host)
	}
	return &SMTPMailer{host: host, port: port, auth: auth, fromName: fromName, fromEmail: fromEmail}
}

func (m *SMTPMailer) Send(_ context.Context, to, subject, body string) error {
	msg := []byte(fmt.Sprintf(
		"From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n%s\r\n",
		m.fromName, m.fromEmail, to, subject, body))
	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	if err := smtp.SendMail(addr, m.auth, m.fromEmail, []string{to}, msg); err != nil {
		return fmt.Errorf("smtp send to %s via %s: %w", to, m.host, err)
	}
	return nil
}

// Noop is used when no SMTP host is configured.
type Noop struct{}

func (Noop) Send(context.Context, string, string, string) error { return nil }
