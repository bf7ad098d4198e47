package identity

import (
	"time"

	"github.com/eyedist/backend/internal/application"
	"github.com/eyedist/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// LoginInput contains login credentials
type LoginInput struct {
	Email    string
	Password string
	IP       string
}

// LoginResult contains the tokens and the logged-in user
type LoginResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
	User                  UserResponse
}

// RefreshTokenInput contains the refresh token
type RefreshTokenInput struct {
	RefreshToken string
}

// LogoutInput identifies the tokens to revoke. RefreshToken is optional.
type LogoutInput struct {
	AccessTokenID  string
	AccessTokenTTL time.Duration
	RefreshToken   string
}

// ChangePasswordInput contains password change data
type ChangePasswordInput struct {
	UserID      uuid.UUID
	OldPassword string
	NewPassword string
}

// CreateUserRequest creates a login account (admin only)
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=200"`
	Email    string `json:"email" binding:"required,email,max=200"`
	Phone    string `json:"phone" binding:"max=20"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Role     string `json:"role" binding:"required,oneof=admin manager salesman distributor staff"`
}

// UpdateUserRequest edits an account; nil fields are kept
type UpdateUserRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=200"`
	Email    *string `json:"email" binding:"omitempty,email,max=200"`
	Phone    *string `json:"phone" binding:"omitempty,max=20"`
	Role     *string `json:"role" binding:"omitempty,oneof=admin manager salesman distributor staff"`
	Active   *bool   `json:"active"`
	Password *string `json:"password" binding:"omitempty,min=8,max=72"`
}

// UpdateProfileRequest lets a user edit their own name and phone
type UpdateProfileRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=200"`
	Phone string `json:"phone" binding:"max=20"`
}

// UserListFilter holds the query parameters of the user list
type UserListFilter struct {
	application.ListQuery
	Role   string `form:"role" binding:"omitempty,oneof=admin manager salesman distributor staff"`
	Active *bool  `form:"active"`
}

// UserResponse represents a user in API responses. The password hash is
// never exposed.
type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone,omitempty"`
	Role        string     `json:"role"`
	Active      bool       `json:"active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Version     int        `json:"version"`
}

func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Phone:       u.Phone,
		Role:        u.Role.String(),
		Active:      u.Active,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
		Version:     u.Version,
	}
}
