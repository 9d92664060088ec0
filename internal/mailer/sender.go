// Package mailer delivers the emails requested by the API through queue
// events: verification links after signup and reset links for forgotten
// passwords.  It runs as its own worker process (cmd/mailer) so SMTP
// latency and outages never sit inside an HTTP request.
package mailer

import (
	"fmt"
	"strings"

	"github.com/wneessen/go-mail"

	"github.com/iliyamo/blog-auth-api/internal/config"
	"github.com/iliyamo/blog-auth-api/internal/queue"
)

// Sender sends templated emails over SMTP.
type Sender struct {
	cfg config.MailConfig
}

// NewSender creates a Sender from the mail configuration.
func NewSender(cfg config.MailConfig) *Sender {
	cfg.AppURL = strings.TrimSuffix(cfg.AppURL, "/")
	return &Sender{cfg: cfg}
}

// Send dispatches one email event to its template.
func (s *Sender) Send(event queue.EmailEvent) error {
	switch event.Kind {
	case queue.EmailKindVerification:
		body := fmt.Sprintf(`<p>Click <a href="%s">here</a> to verify your email</p>`, s.VerificationURL(event.Token))
		return s.send(event.Email, "Verified Email", body)
	case queue.EmailKindReset:
		body := fmt.Sprintf(`<p>Click <a href="%s">here</a> to reset your password</p>`, s.ResetURL(event.Token))
		return s.send(event.Email, "Link for reset password", body)
	default:
		return fmt.Errorf("unknown email event kind %q", event.Kind)
	}
}

// VerificationURL builds the link a user clicks to confirm their email.
func (s *Sender) VerificationURL(token string) string {
	return s.cfg.AppURL + "/api/auth/verified-email/" + token
}

// ResetURL builds the link a user clicks to reset their password.
func (s *Sender) ResetURL(token string) string {
	return s.cfg.AppURL + "/api/auth/reset-password/" + token
}

func (s *Sender) send(to, subject, htmlBody string) error {
	msg := mail.NewMsg()
	if err := msg.From(s.cfg.From); err != nil {
		return fmt.Errorf("setting from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("setting to address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	opts := []mail.Option{mail.WithPort(s.cfg.Port)}
	if s.cfg.Username != "" && s.cfg.Password != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.Username),
			mail.WithPassword(s.cfg.Password),
		)
	}

	client, err := mail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("creating mail client: %w", err)
	}
	if err := client.DialAndSend(msg); err != nil {
		return fmt.Errorf("sending email: %w", err)
	}
	return nil
}
