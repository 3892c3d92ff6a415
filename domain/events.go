package domain

import "time"

// AuditEventType defines the type of audit event
type AuditEventType string

const (
	// Account lifecycle events
	UserRegistrationEvent  AuditEventType = "USER_REGISTERED"
	UserLoginEvent         AuditEventType = "USER_LOGIN"
	UserLoginFailureEvent  AuditEventType = "USER_LOGIN_FAILED"
	UserLogoutEvent        AuditEventType = "USER_LOGOUT"
	EmailVerifiedEvent     AuditEventType = "EMAIL_VERIFIED"
	EmailVerifyFailedEvent AuditEventType = "EMAIL_VERIFY_FAILED"

	// Password reset events
	ResetRequestedEvent  AuditEventType = "PASSWORD_RESET_REQUESTED"
	ResetCompletedEvent  AuditEventType = "PASSWORD_RESET_COMPLETED"
	SessionsRevokedEvent AuditEventType = "SESSIONS_REVOKED"

	// API key events
	APIKeyAddedEvent    AuditEventType = "API_KEY_ADDED"
	APIKeyDeletedEvent  AuditEventType = "API_KEY_DELETED"
	APIKeyRevealedEvent AuditEventType = "API_KEY_REVEALED"

	// Throttling events
	RateLimitedEvent AuditEventType = "RATE_LIMITED"
)

// AuditEvent represents a business event that occurred in the system.
// Secret material (passwords, codes, plaintext keys) never goes in here.
type AuditEvent struct {
	EventType AuditEventType `json:"event_type"`
	UserID    uint           `json:"user_id"`
	Email     string         `json:"email,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
	IPAddress string         `json:"ip_address,omitempty"`
	UserAgent string         `json:"user_agent,omitempty"`
	SessionID string         `json:"session_id,omitempty"`
	ErrorMsg  string         `json:"error_msg,omitempty"`
	Success   bool           `json:"success"`
}

// NewAuditEvent creates a new audit event with common fields populated
func NewAuditEvent(eventType AuditEventType, userID uint) *AuditEvent {
	return &AuditEvent{
		EventType: eventType,
		UserID:    userID,
		Timestamp: time.Now().UTC(),
		Success:   true,
	}
}

// WithError sets error information on the audit event
func (e *AuditEvent) WithError(err error) *AuditEvent {
	e.Success = false
	if err != nil {
		e.ErrorMsg = err.Error()
	}
	return e
}

// WithEmail sets the email field
func (e *AuditEvent) WithEmail(email string) *AuditEvent {
	e.Email = email
	return e
}

// WithClient sets client information
func (e *AuditEvent) WithClient(ipAddress, userAgent string) *AuditEvent {
	e.IPAddress = ipAddress
	e.UserAgent = userAgent
	return e
}

// WithSession sets the session field
func (e *AuditEvent) WithSession(sessionID string) *AuditEvent {
	e.SessionID = sessionID
	return e
}
