package identity

import (
	"regexp"
	"time"

	"github.com/eyedist/backend/internal/domain/shared"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

var (
	hasLetter = regexp.MustCompile(`[a-zA-Z]`)
	hasNumber = regexp.MustCompile(`[0-9]`)
)

// User is a login account. Every owned record points back at a user.
type User struct {
	shared.BaseAggregateRoot
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	Role         Role
	Active       bool
	LastLoginAt  *time.Time
}

// NewUser creates an active user with a hashed password
func NewUser(name, email, password string, role Role) (*User, error) {
	name, err := shared.RequireText("INVALID_NAME", "Name", name, 200)
	if err != nil {
		return nil, err
	}
	email, err = shared.NormalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if email == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Invalid role")
	}
	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Email:             email,
		PasswordHash:      hash,
		Role:              role,
		Active:            true,
	}
	user.AddDomainEvent(NewUserCreatedEvent(user))
	return user, nil
}

// UpdateProfile changes the name and phone
func (u *User) UpdateProfile(name, phone string) error {
	name, err := shared.RequireText("INVALID_NAME", "Name", name, 200)
	if err != nil {
		return err
	}
	phone, err = shared.NormalizePhone(phone)
	if err != nil {
		return err
	}
	u.Name = name
	u.Phone = phone
	u.Touch()
	return nil
}

// ChangeEmail sets a new login email
func (u *User) ChangeEmail(email string) error {
	email, err := shared.NormalizeEmail(email)
	if err != nil {
		return err
	}
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	u.Email = email
	u.Touch()
	return nil
}

// ChangeRole assigns a different role
func (u *User) ChangeRole(role Role) error {
	if !role.IsValid() {
		return shared.NewDomainError("INVALID_ROLE", "Invalid role")
	}
	if u.Role == role {
		return nil
	}
	old := u.Role
	u.Role = role
	u.Touch()
	u.AddDomainEvent(NewUserRoleChangedEvent(u, old))
	return nil
}

// ChangePassword verifies the current password before setting a new one
func (u *User) ChangePassword(oldPassword, newPassword string) error {
	if !u.VerifyPassword(oldPassword) {
		return shared.NewDomainError("INVALID_PASSWORD", "Current password is incorrect")
	}
	return u.SetPassword(newPassword)
}

// SetPassword replaces the password without checking the old one (admin reset)
func (u *User) SetPassword(newPassword string) error {
	hash, err := hashPassword(newPassword)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	u.Touch()
	return nil
}

// VerifyPassword checks a plaintext password against the stored hash
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// Activate re-enables login
func (u *User) Activate() {
	if u.Active {
		return
	}
	u.Active = true
	u.Touch()
}

// Deactivate blocks login without deleting the account or its records
func (u *User) Deactivate() error {
	if !u.Active {
		return shared.NewDomainError("ALREADY_DEACTIVATED", "User is already deactivated")
	}
	u.Active = false
	u.Touch()
	u.AddDomainEvent(NewUserDeactivatedEvent(u))
	return nil
}

// RecordLogin stamps the last successful login
func (u *User) RecordLogin() {
	now := time.Now()
	u.LastLoginAt = &now
	u.UpdatedAt = now
}

// CanLogin reports whether the account may authenticate
func (u *User) CanLogin() bool {
	return u.Active
}

// IsSelf reports whether id is this user
func (u *User) IsSelf(id uuid.UUID) bool {
	return u.ID == id
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 72 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 72 characters")
	}
	if !hasLetter.MatchString(password) || !hasNumber.MatchString(password) {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must contain at least one letter and one number")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	if err := validatePassword(password); err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}
	return string(hash), nil
}
