package notifications

import (
	"fmt"
	"net/smtp"

	"github.com/you/draftly/domain"
)

// SMTPServiceImpl implements domain.NotificationService
type SMTPServiceImpl struct {
	addr string
	auth smtp.Auth
	from string
}

// NewSMTPService creates a new SMTP notification service
func NewSMTPService(host string, port int, username, password, from string) domain.NotificationService {
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}

	return &SMTPServiceImpl{
		addr: fmt.Sprintf("%s:%d", host, port),
		auth: auth,
		from: from,
	}
}

// SendEmail implements domain.NotificationService
func (s *SMTPServiceImpl) SendEmail(to, subject, body string) error {
	// If the sender is not configured, log instead of sending
	if s.from == "" {
		fmt.Printf("[MOCK EMAIL] To: %s, Subject: %s, Body: %s\n", to, subject, body)
		return nil
	}

	msg := []byte(fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n",
		s.from, to, subject, body))

	if err := smtp.SendMail(s.addr, s.auth, s.from, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
