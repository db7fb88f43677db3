package main

import (
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"github.com/kelwa413/portfolio/internal/config"
)

// mailer delivers contact form messages.
type mailer interface {
	Send(name, email, message string) error
}

type contactForm struct {
	FullName string `form:"fullName" binding:"required,max=200"`
	Email    string `form:"email" binding:"required,email"`
	Message  string `form:"message" binding:"required,max=5000"`
}

var headerSafe = strings.NewReplacer("\r", " ", "\n", " ")

type smtpMailer struct {
	cfg config.Config
	log *slog.Logger
}

func (m *smtpMailer) Send(name, email, message string) error {
	if !m.cfg.SMTPConfigured() {
		return fmt.Errorf("SMTP credentials not configured")
	}

	subject := fmt.Sprintf("Portfolio Contact: %s", headerSafe.Replace(name))
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Message:
%s

---
Sent from your portfolio contact form
`, name, email, message)

	msg := []byte("To: " + m.cfg.ToEmail + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"From: " + m.cfg.SMTPUser + "\r\n" +
		"Reply-To: " + email + "\r\n" +
		"\r\n" +
		body + "\r\n")

	auth := smtp.PlainAuth("", m.cfg.SMTPUser, m.cfg.SMTPPass, m.cfg.SMTPHost)
	addr := m.cfg.SMTPHost + ":" + m.cfg.SMTPPort
	if err := smtp.SendMail(addr, auth, m.cfg.SMTPUser, []string{m.cfg.ToEmail}, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}

	m.log.Info("contact email sent", "from", email)
	return nil
}
