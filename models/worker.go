package models

import (
	"time"

	"gorm.io/gorm"
)

// Worker is a staff record. A worker may optionally be linked to a login
// account in the users table.
type Worker struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	UserID       *uint          `gorm:"index" json:"user_id"` // nullable, set when the worker has a login
	User         *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Name         string         `gorm:"not null" json:"name"`
	Role         string         `gorm:"not null" json:"role"` // tailor, cutter, finisher, ...
	SalaryType   string         `gorm:"not null;default:'fixed'" json:"salary_type"`
	SalaryAmount float64        `json:"salary_amount"`
	Phone        string         `json:"phone"`
	Address      string         `json:"address"`
	Status       string         `gorm:"not null;default:'active'" json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Worker model
func (Worker) TableName() string {
	return "workers"
}

// Assignment links a worker to an order they are producing.
type Assignment struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	WorkerID     uint       `gorm:"not null;index" json:"worker_id"`
	Worker       Worker     `gorm:"foreignKey:WorkerID" json:"-"`
	OrderID      uint       `gorm:"not null;index" json:"order_id"`
	Order        Order      `gorm:"foreignKey:OrderID" json:"-"`
	Status       string     `gorm:"not null;default:'assigned'" json:"status"` // assigned, in_progress, completed
	Progress     int        `gorm:"not null;default:0" json:"progress"`        // 0-100
	AssignedDate *time.Time `json:"assigned_date"`
	Notes        string     `json:"notes"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// TableName specifies the table name for the Assignment model
func (Assignment) TableName() string {
	return "assignments"
}
