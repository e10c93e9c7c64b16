// Package mail dispatches transactional email over SMTP via gomail.
package mail

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Config captures the SMTP settings for outbound mail.
type Config struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

// SMTPMailer sends mail through a plain SMTP dialer. Each send dials a
// fresh connection; volume is far too low to warrant pooling.
type SMTPMailer struct {
	cfg Config
}

func NewSMTPMailer(cfg Config) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// SendPasswordReset mails the redemption link carrying the raw reset
// token. The token appears only in this message, never in logs or
// responses.
func (m *SMTPMailer) SendPasswordReset(to, resetURL string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Reset your TailorMate password")
	msg.SetBody("text/html", fmt.Sprintf(
		`<p>A password reset was requested for your account.</p>
<p><a href=%q>Set a new password</a></p>
<p>The link expires in 30 minutes. If you did not request this, ignore this email.</p>`,
		resetURL,
	))

	d := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.User, m.cfg.Pass)
	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("send reset mail: %w", err)
	}
	return nil
}
