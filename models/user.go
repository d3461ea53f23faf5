package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a user in the system (customer, admin, or worker)
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Name         string         `gorm:"not null" json:"name"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"` // never serialized
	Phone        string         `json:"phone"`
	Address      string         `json:"address"`
	Role         string         `gorm:"not null;default:'customer'" json:"role"` // "customer", "admin" or "worker"
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}
