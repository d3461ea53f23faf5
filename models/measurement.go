package models

import "time"

// Measurement captures the raw measurement map of a custom tailoring order.
// Values are in inches.
type Measurement struct {
	ID           uint               `gorm:"primaryKey" json:"id"`
	UserID       uint               `gorm:"not null;index" json:"user_id"`
	OrderID      uint               `gorm:"not null;index" json:"order_id"`
	GarmentType  string             `gorm:"not null" json:"garment_type"`
	Measurements map[string]float64 `gorm:"serializer:json" json:"measurements"`
	Notes        string             `json:"notes"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// TableName specifies the table name for the Measurement model
func (Measurement) TableName() string {
	return "measurements"
}
