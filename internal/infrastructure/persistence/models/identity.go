package models

import (
	"time"

	"github.com/eyedist/backend/internal/domain/identity"
)

// UserModel is the persistence model for identity.User
type UserModel struct {
	AggregateModel
	Name         string        `gorm:"type:varchar(100);not null"`
	Email        string        `gorm:"type:varchar(200);not null;uniqueIndex"`
	Phone        string        `gorm:"type:varchar(30)"`
	PasswordHash string        `gorm:"type:varchar(255);not null"`
	Role         identity.Role `gorm:"type:varchar(20);not null;index"`
	Active       bool          `gorm:"not null;default:true"`
	LastLoginAt  *time.Time
}

func (UserModel) TableName() string { return "users" }

func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseAggregateRoot: m.toAggregate(),
		Name:              m.Name,
		Email:             m.Email,
		Phone:             m.Phone,
		PasswordHash:      m.PasswordHash,
		Role:              m.Role,
		Active:            m.Active,
		LastLoginAt:       m.LastLoginAt,
	}
}

func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{
		Name:         u.Name,
		Email:        u.Email,
		Phone:        u.Phone,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		Active:       u.Active,
		LastLoginAt:  u.LastLoginAt,
	}
	m.fromAggregate(u.BaseAggregateRoot)
	return m
}
