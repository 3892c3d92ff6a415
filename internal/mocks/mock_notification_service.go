package mocks

import "github.com/you/draftly/domain"

// MockNotificationService implements domain.NotificationService interface for testing
type MockNotificationService struct {
	SendEmailFunc func(to, subject, body string) error

	// SentEmails records every send for assertions
	SentEmails []SentEmail
}

// SentEmail captures one SendEmail call
type SentEmail struct {
	To      string
	Subject string
	Body    string
}

// NewMockNotificationService creates a new MockNotificationService with default behaviors
func NewMockNotificationService() *MockNotificationService {
	return &MockNotificationService{}
}

// SendEmail sends an email
func (m *MockNotificationService) SendEmail(to, subject, body string) error {
	m.SentEmails = append(m.SentEmails, SentEmail{To: to, Subject: subject, Body: body})
	if m.SendEmailFunc != nil {
		return m.SendEmailFunc(to, subject, body)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.NotificationService = (*MockNotificationService)(nil)
