package domain

import (
	"context"
	"time"
)

type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
	RoleGuest  Role = "guest"
)

var RelationshipStatuses = []string{"Single", "In a Relationship", "Complicated", "Married", "Engaged"}

func ValidRelationshipStatus(status string) bool {
	for _, s := range RelationshipStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type User struct {
	ID                      string     `json:"id" bson:"id"`
	Username                string     `json:"username" bson:"username"`
	Email                   string     `json:"email" bson:"email"`
	Password                string     `json:"-" bson:"password"` // argon2id encoded
	DateOfBirth             string     `json:"dateOfBirth" bson:"dateOfBirth"`
	RelationshipStatus      string     `json:"relationshipStatus,omitempty" bson:"relationshipStatus,omitempty"`
	IsVerified              bool       `json:"isVerified" bson:"isVerified"`
	Role                    Role       `json:"role" bson:"role"`
	VerificationCode        string     `json:"-" bson:"verificationCode,omitempty"`
	VerificationCodeExpiry  *time.Time `json:"-" bson:"verificationCodeExpiry,omitempty"`
	ResetPasswordCode       string     `json:"-" bson:"resetPasswordCode,omitempty"`
	ResetPasswordCodeExpiry *time.Time `json:"-" bson:"resetPasswordCodeExpiry,omitempty"`
	FailedLoginAttempts     int        `json:"-" bson:"failedLoginAttempts"`
	AccountLockedUntil      *time.Time `json:"-" bson:"accountLockedUntil,omitempty"`
	AgreedToTerms           bool       `json:"agreedToTerms" bson:"agreedToTerms"`
	Location                string     `json:"location,omitempty" bson:"location,omitempty"`
	Bio                     string     `json:"bio,omitempty" bson:"bio,omitempty"`
	PostCount               int        `json:"postCount" bson:"postCount"`
	IsOnline                bool       `json:"isOnline" bson:"isOnline"`
	LastSeen                time.Time  `json:"lastSeen" bson:"lastSeen"`
	CreatedAt               time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt               time.Time  `json:"updatedAt" bson:"updatedAt"`
}

// PublicProfile is the subset of a user visible to other members.
type PublicProfile struct {
	ID                 string    `json:"id"`
	Username           string    `json:"username"`
	Role               Role      `json:"role"`
	RelationshipStatus string    `json:"relationshipStatus,omitempty"`
	Location           string    `json:"location,omitempty"`
	Bio                string    `json:"bio,omitempty"`
	PostCount          int       `json:"postCount"`
	IsOnline           bool      `json:"isOnline"`
	LastSeen           time.Time `json:"lastSeen"`
	CreatedAt          time.Time `json:"createdAt"`
}

func (u *User) Public() PublicProfile {
	return PublicProfile{
		ID:                 u.ID,
		Username:           u.Username,
		Role:               u.Role,
		RelationshipStatus: u.RelationshipStatus,
		Location:           u.Location,
		Bio:                u.Bio,
		PostCount:          u.PostCount,
		IsOnline:           u.IsOnline,
		LastSeen:           u.LastSeen,
		CreatedAt:          u.CreatedAt,
	}
}

// LockedFor returns the remaining lockout at now, or zero when the account is open.
func (u *User) LockedFor(now time.Time) time.Duration {
	if u.AccountLockedUntil == nil || !now.Before(*u.AccountLockedUntil) {
		return 0
	}
	return u.AccountLockedUntil.Sub(now)
}

type Session struct {
	ID        string    `json:"id" bson:"id"`
	UserID    string    `json:"userId" bson:"userId"`
	Token     string    `json:"token" bson:"token"`
	ExpiresAt time.Time `json:"expiresAt" bson:"expiresAt"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

type SignupRequest struct {
	Username           string `json:"username"`
	Email              string `json:"email"`
	Password           string `json:"password"`
	DateOfBirth        string `json:"dateOfBirth"`
	RelationshipStatus string `json:"relationshipStatus"`
	AgreedToTerms      bool   `json:"agreedToTerms"`
	RecaptchaToken     string `json:"recaptchaToken,omitempty"`
}

type SignupResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

type VerifyEmailRequest struct {
	UserID string `json:"userId"`
	Code   string `json:"code"`
}

type LoginRequest struct {
	UsernameOrEmail string `json:"usernameOrEmail"`
	Password        string `json:"password"`
}

type LoginUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

type LoginResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	Token   string    `json:"token"`
	User    LoginUser `json:"user"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"newPassword"`
}

type UpdateProfileRequest struct {
	Location           *string `json:"location,omitempty"`
	Bio                *string `json:"bio,omitempty"`
	RelationshipStatus *string `json:"relationshipStatus,omitempty"`
}

type OnlineStatusRequest struct {
	IsOnline bool `json:"isOnline"`
}

type UserRepository interface {
	GetUsers(ctx context.Context) ([]*User, error)
	SaveUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, id string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	GetOnlineUsers(ctx context.Context) ([]*User, error)
	UpdateUserOnlineStatus(ctx context.Context, userID string, isOnline bool, lastSeen time.Time) error
}

type SessionRepository interface {
	SaveSession(ctx context.Context, session *Session) error
	// GetSessionByToken only returns sessions that have not expired.
	GetSessionByToken(ctx context.Context, token string) (*Session, error)
	DeleteSession(ctx context.Context, token string) error
	DeleteExpiredSessions(ctx context.Context) (int64, error)
}

type AuthService interface {
	Signup(ctx context.Context, req SignupRequest) (*SignupResponse, error)
	VerifyEmail(ctx context.Context, req VerifyEmailRequest) error
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Logout(ctx context.Context, token string) error
	ForgotPassword(ctx context.Context, req ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error
	Authenticate(ctx context.Context, token string) (*User, error)
}

type UserService interface {
	GetProfile(ctx context.Context, userID string) (*PublicProfile, error)
	UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (*User, error)
	GetOnlineUsers(ctx context.Context) ([]PublicProfile, error)
	SetOnline(ctx context.Context, userID string, isOnline bool) error
	GetStats(ctx context.Context) (*Stats, error)
	PurgeExpiredSessions(ctx context.Context) (int64, error)
}
