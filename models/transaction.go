package models

import "time"

// Transaction is a payment ledger entry linked to an order. It is distinct
// from a database transaction.
type Transaction struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	OrderID       uint      `gorm:"not null;index" json:"order_id"`
	Order         Order     `gorm:"foreignKey:OrderID" json:"-"`
	UserID        uint      `gorm:"not null;index" json:"user_id"`
	User          User      `gorm:"foreignKey:UserID" json:"-"`
	Type          string    `gorm:"not null" json:"type"` // "payment"
	Amount        float64   `gorm:"not null" json:"amount"`
	PaymentMethod string    `gorm:"not null" json:"payment_method"`
	CreatedAt     time.Time `json:"created_at"`
}

// TableName specifies the table name for the Transaction model
func (Transaction) TableName() string {
	return "transactions"
}
