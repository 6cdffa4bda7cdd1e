package services

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
)

// Mailer delivers a single HTML email. Delivery is best-effort: callers
// dispatch through NotifyAsync and never block a response on the outcome.
type Mailer interface {
	Send(to, subject, html string) error
}

var Mail Mailer = &SMTPMailer{}

// SetMailer swaps the active mailer. Used by tests.
func SetMailer(m Mailer) {
	Mail = m
}

type SMTPMailer struct{}

func (s *SMTPMailer) Send(to, subject, html string) error {
	from := os.Getenv("FROM_EMAIL")

	message := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n%s",
		from,
		to,
		subject,
		html,
	)

	auth := smtp.PlainAuth(
		"",
		from,
		os.Getenv("FROM_EMAIL_PASSWORD"),
		os.Getenv("SMTP_HOST"),
	)

	if err := smtp.SendMail(os.Getenv("SMTP_ADDRESS"), auth, from, []string{to}, []byte(message)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// NotifyAsync sends an email on its own goroutine. Failures are logged and
// swallowed so the triggering request's outcome is never affected.
func NotifyAsync(to, subject, html string) {
	mailer := Mail
	go func() {
		if err := mailer.Send(to, subject, html); err != nil {
			log.Println("Email sending failed:", err)
		}
	}()
}

// AdminEmail is the notification address for admin alerts.
func AdminEmail() string {
	return os.Getenv("ADMIN_EMAIL")
}
