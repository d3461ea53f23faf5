package models

import (
	"time"

	"gorm.io/gorm"
)

// Product represents a catalog item. Variant axes (sizes, colors, fabrics)
// and image keys are stored as JSON-serialized string slices so the same
// model works on both the postgres and sqlite drivers.
type Product struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Name          string         `gorm:"not null" json:"name"`
	CategoryID    uint           `gorm:"not null;index" json:"category_id"`
	Category      Category       `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Description   string         `gorm:"type:text" json:"description"`
	Price         float64        `gorm:"not null;check:price > 0" json:"price"`
	DiscountPrice *float64       `json:"discount_price"` // nullable, wins over Price when set
	Stock         int            `gorm:"not null;default:0;check:stock >= 0" json:"stock"`
	Images        []string       `gorm:"serializer:json" json:"images"`
	Size          []string       `gorm:"serializer:json" json:"size"`
	Color         []string       `gorm:"serializer:json" json:"color"`
	Fabric        []string       `gorm:"serializer:json" json:"fabric"`
	Status        string         `gorm:"not null;default:'active';index" json:"status"` // "active" or "inactive"
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// EffectivePrice returns the discount price when present, the list price otherwise.
func (p *Product) EffectivePrice() float64 {
	if p.DiscountPrice != nil {
		return *p.DiscountPrice
	}
	return p.Price
}
