package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/you/draftly/domain"
)

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	userRepo    domain.UserRepository
	sessionRepo domain.SessionRepository
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
	otpSvc      domain.OTPService
	notifySvc   domain.NotificationService
	accessTTL   time.Duration
	refreshTTL  time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo domain.UserRepository,
	sessionRepo domain.SessionRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	otpSvc domain.OTPService,
	notifySvc domain.NotificationService,
	accessTTL, refreshTTL time.Duration,
) domain.AuthService {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		otpSvc:      otpSvc,
		notifySvc:   notifySvc,
		accessTTL:   accessTTL,
		refreshTTL:  refreshTTL,
	}
}

// Register implements domain.AuthService. A new account gets a pending
// verification code by email and an immediate session + token pair.
func (s *AuthServiceImpl) Register(ctx context.Context, email, password, userAgent, ipAddress string) (*domain.AuthResult, error) {
	existingUser, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existingUser != nil {
		return nil, domain.ErrUserAlreadyExists
	}

	hashedPassword, err := s.passwordSvc.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: hashedPassword,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.issueVerificationCode(ctx, user); err != nil {
		return nil, err
	}

	return s.openSession(ctx, user, userAgent, ipAddress)
}

// Login implements domain.AuthService. Unknown email and wrong password
// both surface as ErrInvalidCredentials; nothing distinguishes them.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password, userAgent, ipAddress string) (*domain.AuthResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if !s.passwordSvc.Verify(user.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}

	return s.openSession(ctx, user, userAgent, ipAddress)
}

// Refresh implements domain.AuthService. The old session is rotated out
// and a brand-new pair is issued; there is no renewed-in-place state.
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken, userAgent, ipAddress string) (*domain.AuthResult, error) {
	claims, err := s.tokenSvc.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}

	session, err := s.sessionRepo.FindByID(ctx, claims.SessionID)
	if err != nil {
		return nil, domain.ErrSessionNotFound
	}

	if session.ExpiresAt.Before(time.Now()) {
		return nil, domain.ErrSessionExpired
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	if err := s.sessionRepo.Delete(ctx, session.ID); err != nil {
		return nil, fmt.Errorf("failed to rotate session: %w", err)
	}

	return s.openSession(ctx, user, userAgent, ipAddress)
}

// Logout implements domain.AuthService
func (s *AuthServiceImpl) Logout(ctx context.Context, sessionID string) error {
	return s.sessionRepo.Delete(ctx, sessionID)
}

// VerifyEmail implements domain.AuthService. The code is consumed on
// success; a stale or wrong code leaves it in place for retry until expiry.
func (s *AuthServiceImpl) VerifyEmail(ctx context.Context, email, code string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return domain.ErrUserNotFound
	}

	if user.OTPCode == nil {
		return domain.ErrOTPNotSet
	}

	if s.otpSvc.IsExpired(user.OTPExpiresAt) {
		return domain.ErrOTPExpired
	}

	if !s.otpSvc.VerifyCode(code, *user.OTPCode) {
		return domain.ErrOTPInvalid
	}

	return s.userRepo.MarkEmailVerified(ctx, user.ID)
}

// ResendOTP implements domain.AuthService. Each send overwrites the
// previous code, so only one code is ever live per user.
func (s *AuthServiceImpl) ResendOTP(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return domain.ErrUserNotFound
	}

	return s.issueVerificationCode(ctx, user)
}

// ForgotPassword implements domain.AuthService. Whether the email exists
// is not disclosed; an unknown address is a silent no-op.
func (s *AuthServiceImpl) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil
	}

	token, err := s.otpSvc.GenerateResetToken()
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	expiresAt := s.otpSvc.ResetTokenExpiry(time.Now())
	user.ResetToken = &token
	user.ResetTokenExpiresAt = &expiresAt
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	body := fmt.Sprintf("We received a request to reset your password.\n\nYour reset token: %s\n\nIt expires in %d minutes. If you did not request this, ignore this email.",
		token, int(time.Until(expiresAt).Minutes())+1)
	return s.notifySvc.SendEmail(user.Email, "Reset your password", body)
}

// ResetPassword implements domain.AuthService. The token is single use and
// a successful reset revokes every existing session for the account.
func (s *AuthServiceImpl) ResetPassword(ctx context.Context, token, newPassword string) error {
	user, err := s.userRepo.FindByResetToken(ctx, token)
	if err != nil {
		return domain.ErrResetTokenInvalid
	}

	if s.otpSvc.IsExpired(user.ResetTokenExpiresAt) {
		return domain.ErrResetTokenExpired
	}

	hashedPassword, err := s.passwordSvc.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.PasswordHash = hashedPassword
	user.ResetToken = nil
	user.ResetTokenExpiresAt = nil
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	// Broad invalidation on purpose: a reset means the old credential may
	// be compromised, so every outstanding session dies with it.
	if err := s.sessionRepo.DeleteByUser(ctx, user.ID); err != nil {
		return fmt.Errorf("failed to revoke sessions: %w", err)
	}

	return nil
}

// GetUserProfile implements domain.AuthService
func (s *AuthServiceImpl) GetUserProfile(ctx context.Context, userID uint) (*domain.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

func (s *AuthServiceImpl) issueVerificationCode(ctx context.Context, user *domain.User) error {
	code, err := s.otpSvc.GenerateCode()
	if err != nil {
		return fmt.Errorf("failed to generate otp: %w", err)
	}

	expiresAt := s.otpSvc.CodeExpiry(time.Now())
	user.OTPCode = &code
	user.OTPExpiresAt = &expiresAt
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to store otp: %w", err)
	}

	body := fmt.Sprintf("Your verification code is: %s\n\nIt expires in %d minutes.", code, int(time.Until(expiresAt).Minutes())+1)
	return s.notifySvc.SendEmail(user.Email, "Verify your email", body)
}

func (s *AuthServiceImpl) openSession(ctx context.Context, user *domain.User, userAgent, ipAddress string) (*domain.AuthResult, error) {
	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		UserAgent: userAgent,
		IPAddress: ipAddress,
		ExpiresAt: time.Now().Add(s.refreshTTL),
		CreatedAt: time.Now(),
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	accessToken, refreshToken, err := s.tokenSvc.GenerateTokenPair(user.ID, user.Email, session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	return &domain.AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		SessionID:    session.ID,
		ExpiresIn:    int64(s.accessTTL.Seconds()),
	}, nil
}
