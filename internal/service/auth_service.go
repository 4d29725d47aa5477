package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nazzeldevelopment/nazzel-jean-website/internal/adapter"
	"github.com/nazzeldevelopment/nazzel-jean-website/internal/credential"
	"github.com/nazzeldevelopment/nazzel-jean-website/internal/domain"
	"github.com/nazzeldevelopment/nazzel-jean-website/pkg/logger"
	"github.com/nazzeldevelopment/nazzel-jean-website/pkg/metrics"
)

const (
	VerificationCodeTTL = 10 * time.Minute
	ResetCodeTTL        = 10 * time.Minute
	SessionTTL          = 7 * 24 * time.Hour
	MaxFailedLogins     = 5
	LockoutDuration     = 5 * time.Minute
	MinimumAge          = 13
)

const forgotPasswordMessage = "If the email exists, a reset code has been sent."

// authService implements domain.AuthService on top of the user and session stores.
type authService struct {
	users     domain.UserRepository
	sessions  domain.SessionRepository
	notifier  domain.Notifier
	recaptcha adapter.RecaptchaAdapter
	throttle  domain.Throttle
	log       *logger.Logger
	now       func() time.Time
	hash      func(string) (string, error)
}

// NewAuthService wires the account lifecycle. throttle limits forgot-password requests per email.
func NewAuthService(
	users domain.UserRepository,
	sessions domain.SessionRepository,
	notifier domain.Notifier,
	recaptcha adapter.RecaptchaAdapter,
	throttle domain.Throttle,
	log *logger.Logger,
	opts ...Option,
) domain.AuthService {
	o := buildOptions(opts)
	return &authService{
		users:     users,
		sessions:  sessions,
		notifier:  notifier,
		recaptcha: recaptcha,
		throttle:  throttle,
		log:       log.WithComponent("auth"),
		now:       o.now,
		hash:      o.hash,
	}
}

func (s *authService) Signup(ctx context.Context, req domain.SignupRequest) (*domain.SignupResponse, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if req.Username == "" || req.Email == "" || req.Password == "" || req.DateOfBirth == "" ||
		req.RelationshipStatus == "" || !req.AgreedToTerms {
		metrics.SignupsTotal.WithLabelValues("invalid").Inc()
		return nil, domain.NewBadRequest("All fields are required")
	}
	if !domain.ValidRelationshipStatus(req.RelationshipStatus) {
		metrics.SignupsTotal.WithLabelValues("invalid").Inc()
		return nil, domain.NewBadRequest("Invalid relationship status")
	}

	if s.recaptcha.Enabled() {
		if req.RecaptchaToken == "" {
			metrics.SignupsTotal.WithLabelValues("captcha").Inc()
			return nil, domain.NewBadRequest("reCAPTCHA verification required")
		}
		ok, err := s.recaptcha.Verify(ctx, req.RecaptchaToken)
		if err != nil {
			s.log.Warn("reCAPTCHA verification error", zap.Error(err))
		}
		if !ok {
			metrics.SignupsTotal.WithLabelValues("captcha").Inc()
			return nil, domain.NewBadRequest("reCAPTCHA verification failed")
		}
	}

	now := s.now()
	dob, err := credential.ParseDateOfBirth(req.DateOfBirth)
	if err != nil {
		metrics.SignupsTotal.WithLabelValues("invalid").Inc()
		return nil, domain.NewBadRequest("Invalid date of birth")
	}
	if credential.CalculateAge(dob, now) < MinimumAge {
		metrics.SignupsTotal.WithLabelValues("underage").Inc()
		return nil, domain.NewBadRequest("You must be at least 13 years old to sign up")
	}

	if _, err := s.users.GetUserByEmail(ctx, req.Email); err == nil {
		metrics.SignupsTotal.WithLabelValues("duplicate").Inc()
		return nil, domain.NewBadRequest("Email already registered")
	} else if !domain.IsNotFound(err) {
		return nil, storeError(err)
	}
	if _, err := s.users.GetUserByUsername(ctx, req.Username); err == nil {
		metrics.SignupsTotal.WithLabelValues("duplicate").Inc()
		return nil, domain.NewBadRequest("Username already taken")
	} else if !domain.IsNotFound(err) {
		return nil, storeError(err)
	}

	hashed, err := s.hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	code := credential.GenerateOTP()
	expiry := now.Add(VerificationCodeTTL)
	user := &domain.User{
		ID:                     uuid.NewString(),
		Username:               req.Username,
		Email:                  req.Email,
		Password:               hashed,
		DateOfBirth:            dob.Format(time.DateOnly),
		RelationshipStatus:     req.RelationshipStatus,
		Role:                   domain.RoleMember,
		VerificationCode:       code,
		VerificationCodeExpiry: &expiry,
		AgreedToTerms:          true,
		LastSeen:               now,
		CreatedAt:              now,
		UpdatedAt:              now,
	}
	if err := s.users.SaveUser(ctx, user); err != nil {
		return nil, storeError(err)
	}
	metrics.SignupsTotal.WithLabelValues("success").Inc()
	s.log.Info("user signed up", zap.String("user_id", user.ID), zap.String("username", user.Username))

	s.notifier.SendVerification(user.Email, user.Username, code)
	s.notifier.AdminLog("New signup", fmt.Sprintf("User %s signed up with %s.", user.Username, user.Email))

	return &domain.SignupResponse{
		Success: true,
		Message: "Account created! Please check your email for verification code and member role confirmation.",
		UserID:  user.ID,
	}, nil
}

func (s *authService) VerifyEmail(ctx context.Context, req domain.VerifyEmailRequest) error {
	req.UserID = strings.TrimSpace(req.UserID)
	req.Code = strings.TrimSpace(req.Code)
	if req.UserID == "" || req.Code == "" {
		return domain.NewBadRequest("User ID and code are required")
	}
	user, err := s.users.GetUserByID(ctx, req.UserID)
	if err != nil {
		if domain.IsNotFound(err) {
			return domain.NewNotFound("User not found")
		}
		return storeError(err)
	}
	if user.IsVerified {
		return domain.NewBadRequest("Email already verified")
	}
	if user.VerificationCode == "" {
		return domain.NewBadRequest("No verification code found")
	}
	now := s.now()
	if user.VerificationCodeExpiry == nil || now.After(*user.VerificationCodeExpiry) {
		return domain.NewBadRequest("Verification code expired")
	}
	if user.VerificationCode != req.Code {
		return domain.NewBadRequest("Invalid verification code")
	}

	user.IsVerified = true
	user.VerificationCode = ""
	user.VerificationCodeExpiry = nil
	user.UpdatedAt = now
	if err := s.users.SaveUser(ctx, user); err != nil {
		return storeError(err)
	}
	s.log.Info("email verified", zap.String("user_id", user.ID))
	s.notifier.SendWelcome(user.Email, user.Username)
	return nil
}

func (s *authService) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	identifier := strings.TrimSpace(req.UsernameOrEmail)
	if identifier == "" || req.Password == "" {
		metrics.LoginAttemptsTotal.WithLabelValues("invalid").Inc()
		return nil, domain.NewBadRequest("Username/email and password are required")
	}

	user, err := s.findLoginUser(ctx, identifier)
	if err != nil {
		if domain.IsNotFound(err) {
			metrics.LoginAttemptsTotal.WithLabelValues("invalid").Inc()
			return nil, domain.NewUnauthorized("Invalid credentials")
		}
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return nil, storeError(err)
	}

	now := s.now()
	if remaining := user.LockedFor(now); remaining > 0 {
		metrics.LoginAttemptsTotal.WithLabelValues("locked").Inc()
		seconds := int(math.Ceil(remaining.Seconds()))
		return nil, domain.NewLocked(fmt.Sprintf("Account locked. Try again in %d seconds.", seconds), seconds)
	}
	if !user.IsVerified {
		metrics.LoginAttemptsTotal.WithLabelValues("unverified").Inc()
		return nil, domain.NewForbidden("Please verify your email first")
	}

	if !credential.VerifyPassword(req.Password, user.Password) {
		return nil, s.recordFailedLogin(ctx, user, now)
	}

	user.FailedLoginAttempts = 0
	user.AccountLockedUntil = nil
	user.IsOnline = true
	user.LastSeen = now
	user.UpdatedAt = now
	if err := s.users.SaveUser(ctx, user); err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return nil, storeError(err)
	}

	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Token:     credential.GenerateToken(),
		ExpiresAt: now.Add(SessionTTL),
		CreatedAt: now,
	}
	if err := s.sessions.SaveSession(ctx, session); err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return nil, storeError(err)
	}
	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	s.log.Info("user logged in", zap.String("user_id", user.ID))
	s.notifier.AdminLog("User login", fmt.Sprintf("User %s logged in.", user.Username))

	return &domain.LoginResponse{
		Success: true,
		Message: "Login successful",
		Token:   session.Token,
		User: domain.LoginUser{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
			Role:     user.Role,
		},
	}, nil
}

// findLoginUser looks the identifier up as an email when it contains "@",
// otherwise as a username, then tries the other lookup.
func (s *authService) findLoginUser(ctx context.Context, identifier string) (*domain.User, error) {
	lookups := []func(context.Context, string) (*domain.User, error){s.users.GetUserByUsername, s.users.GetUserByEmail}
	if strings.Contains(identifier, "@") {
		lookups[0], lookups[1] = lookups[1], lookups[0]
	}
	var err error
	for _, lookup := range lookups {
		var user *domain.User
		user, err = lookup(ctx, identifier)
		if err == nil {
			return user, nil
		}
		if !domain.IsNotFound(err) {
			return nil, err
		}
	}
	return nil, err
}

func (s *authService) recordFailedLogin(ctx context.Context, user *domain.User, now time.Time) error {
	user.FailedLoginAttempts++
	user.UpdatedAt = now
	locked := user.FailedLoginAttempts >= MaxFailedLogins
	if locked {
		until := now.Add(LockoutDuration)
		user.AccountLockedUntil = &until
		user.FailedLoginAttempts = 0
	}
	if err := s.users.SaveUser(ctx, user); err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return storeError(err)
	}
	if locked {
		metrics.LoginAttemptsTotal.WithLabelValues("locked").Inc()
		s.log.Warn("account locked after failed logins", zap.String("user_id", user.ID))
		return domain.NewLocked("Too many failed attempts. Account locked for 5 minutes.", int(LockoutDuration.Seconds()))
	}
	metrics.LoginAttemptsTotal.WithLabelValues("invalid").Inc()
	return domain.NewUnauthorized("Invalid credentials")
}

func (s *authService) Logout(ctx context.Context, token string) error {
	session, err := s.sessions.GetSessionByToken(ctx, token)
	if err != nil && !domain.IsNotFound(err) {
		return storeError(err)
	}
	if err := s.sessions.DeleteSession(ctx, token); err != nil && !domain.IsNotFound(err) {
		return storeError(err)
	}
	if session != nil {
		if err := s.users.UpdateUserOnlineStatus(ctx, session.UserID, false, s.now()); err != nil {
			s.log.Warn("failed to mark user offline on logout", zap.String("user_id", session.UserID), zap.Error(err))
		}
	}
	return nil
}

// ForgotPassword never reveals whether the email exists. Every outcome past
// input validation, including store failures, returns nil.
func (s *authService) ForgotPassword(ctx context.Context, req domain.ForgotPasswordRequest) error {
	email := strings.TrimSpace(req.Email)
	if email == "" {
		return domain.NewBadRequest("Email is required")
	}

	allowed, err := s.throttle.Allow(ctx, strings.ToLower(email))
	if err != nil {
		s.log.Warn("forgot-password throttle unavailable", zap.Error(err))
		return nil
	}
	if !allowed {
		s.log.Info("forgot-password throttled")
		return nil
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if !domain.IsNotFound(err) {
			s.log.Warn("forgot-password lookup failed", zap.Error(err))
		}
		return nil
	}

	now := s.now()
	code := credential.GenerateOTP()
	expiry := now.Add(ResetCodeTTL)
	user.ResetPasswordCode = code
	user.ResetPasswordCodeExpiry = &expiry
	user.UpdatedAt = now
	if err := s.users.SaveUser(ctx, user); err != nil {
		s.log.Warn("failed to store reset code", zap.String("user_id", user.ID), zap.Error(err))
		return nil
	}
	s.notifier.SendPasswordReset(user.Email, user.Username, code)
	s.notifier.AdminLog("Password reset requested", fmt.Sprintf("Reset requested for %s.", user.Email))
	return nil
}

func (s *authService) ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error {
	email := strings.TrimSpace(req.Email)
	code := strings.TrimSpace(req.Code)
	if email == "" || code == "" || req.NewPassword == "" {
		return domain.NewBadRequest("All fields are required")
	}
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if domain.IsNotFound(err) {
			return domain.NewBadRequest("Invalid request")
		}
		return storeError(err)
	}
	if user.ResetPasswordCode == "" {
		return domain.NewBadRequest("No reset code found")
	}
	now := s.now()
	if user.ResetPasswordCodeExpiry == nil || now.After(*user.ResetPasswordCodeExpiry) {
		return domain.NewBadRequest("Reset code expired")
	}
	if user.ResetPasswordCode != code {
		return domain.NewBadRequest("Invalid reset code")
	}

	hashed, err := s.hash(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = hashed
	user.ResetPasswordCode = ""
	user.ResetPasswordCodeExpiry = nil
	user.FailedLoginAttempts = 0
	user.AccountLockedUntil = nil
	user.UpdatedAt = now
	if err := s.users.SaveUser(ctx, user); err != nil {
		return storeError(err)
	}
	s.log.Info("password reset", zap.String("user_id", user.ID))
	s.notifier.SendPasswordChanged(user.Email, user.Username)
	s.notifier.AdminLog("Password reset completed", fmt.Sprintf("Password was reset for %s.", user.Email))
	return nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.NewUnauthorized("Unauthorized")
	}
	session, err := s.sessions.GetSessionByToken(ctx, token)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewUnauthorized("Invalid session")
		}
		return nil, storeError(err)
	}
	if !s.now().Before(session.ExpiresAt) {
		return nil, domain.NewUnauthorized("Invalid session")
	}
	user, err := s.users.GetUserByID(ctx, session.UserID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewUnauthorized("Invalid session")
		}
		return nil, storeError(err)
	}
	return user, nil
}
