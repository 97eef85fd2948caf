// Package mailer delivers the platform's transactional emails over SMTP.
package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Mailer sends account emails. Implementations must be safe for
// concurrent use.
type Mailer interface {
	SendVerification(to, userID, token string) error
	SendPasswordReset(to, userID, token string) error
}

// SMTPMailer sends mail through a single SMTP account.
type SMTPMailer struct {
	dialer       *gomail.Dialer
	sender       string
	clientDomain string
}

func NewSMTPMailer(host string, port int, username, password, sender, clientDomain string) *SMTPMailer {
	return &SMTPMailer{
		dialer:       gomail.NewDialer(host, port, username, password),
		sender:       sender,
		clientDomain: clientDomain,
	}
}

// SendVerification mails the account-activation link. The link targets
// the web client, which calls the verify endpoint on the user's behalf.
func (m *SMTPMailer) SendVerification(to, userID, token string) error {
	link := fmt.Sprintf("%s/users/%s/verify/%s", m.clientDomain, userID, token)
	body := fmt.Sprintf(verificationTemplate, link)
	return m.send(to, "Verify your Eduvia account", body)
}

// SendPasswordReset mails the password-reset link.
func (m *SMTPMailer) SendPasswordReset(to, userID, token string) error {
	link := fmt.Sprintf("%s/reset-password/%s/%s", m.clientDomain, userID, token)
	body := fmt.Sprintf(resetTemplate, link)
	return m.send(to, "Reset your Eduvia password", body)
}

func (m *SMTPMailer) send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.sender)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("sending mail to %s: %w", to, err)
	}
	return nil
}

const verificationTemplate = `<div style="font-family:sans-serif;max-width:520px;margin:0 auto">
  <h2>Welcome to Eduvia</h2>
  <p>Confirm your email address to activate your account.</p>
  <p><a href="%s" style="display:inline-block;padding:10px 24px;background:#2563eb;color:#fff;border-radius:6px;text-decoration:none">Verify email</a></p>
  <p>If you did not create an account, you can ignore this message.</p>
</div>`

const resetTemplate = `<div style="font-family:sans-serif;max-width:520px;margin:0 auto">
  <h2>Password reset</h2>
  <p>We received a request to reset your Eduvia password.</p>
  <p><a href="%s" style="display:inline-block;padding:10px 24px;background:#2563eb;color:#fff;border-radius:6px;text-decoration:none">Choose a new password</a></p>
  <p>If you did not request this, your account is still secure and no action is needed.</p>
</div>`
