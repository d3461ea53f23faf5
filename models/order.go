package models

import (
	"time"

	"gorm.io/gorm"
)

// Order represents an order header. Standard orders carry line items and a
// payment ledger row created in the same transaction; custom orders carry a
// linked measurement record instead.
type Order struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	UserID          uint           `gorm:"not null;index" json:"user_id"`
	User            User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	OrderNumber     string         `gorm:"uniqueIndex;not null" json:"order_number"`
	TotalAmount     float64        `gorm:"not null" json:"total_amount"`
	Status          string         `gorm:"not null;default:'pending';index" json:"status"` // pending, processing, completed, cancelled
	PaymentStatus   string         `gorm:"not null;default:'pending'" json:"payment_status"`
	OrderType       string         `gorm:"not null;default:'standard'" json:"order_type"` // "standard" or "custom"
	DeliveryAddress string         `json:"delivery_address"`
	Notes           string         `json:"notes"`
	DeliveryDate    *time.Time     `json:"delivery_date"`
	PaymentMethod   string         `json:"payment_method"` // cod, card, bkash, nagad
	Items           []OrderItem    `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// OrderItem is one line of an order. Price is captured at purchase time and
// never follows later catalog changes.
type OrderItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `gorm:"not null;index" json:"order_id"`
	ProductID uint      `gorm:"not null;index" json:"product_id"`
	Product   Product   `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity  int       `gorm:"not null;check:quantity > 0" json:"quantity"`
	Price     float64   `gorm:"not null" json:"price"`
	Size      string    `json:"size"`
	Color     string    `json:"color"`
	Fabric    string    `json:"fabric"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}
