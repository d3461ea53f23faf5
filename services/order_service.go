package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/stitchhouse/stitchhouse-api/models"
	"github.com/stitchhouse/stitchhouse-api/utils"
	"gorm.io/gorm"
)

var (
	// ErrProductNotFound is returned when a line item references a product
	// that does not exist (or is no longer visible).
	ErrProductNotFound = errors.New("product not found")
	// ErrInsufficientStock is returned when a line item's quantity exceeds
	// the product's available stock.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrOrderNumberExhausted is returned when order number generation keeps
	// colliding with existing orders.
	ErrOrderNumberExhausted = errors.New("could not generate a unique order number")
)

const orderNumberAttempts = 3

// OrderLineItem is a single product+variant+quantity request within an order.
type OrderLineItem struct {
	ProductID uint
	Quantity  int
	Size      string
	Color     string
	Fabric    string
}

// PlaceOrderInput carries everything needed to place a standard order.
type PlaceOrderInput struct {
	UserID          uint
	Items           []OrderLineItem
	DeliveryAddress string
	Notes           string
	DeliveryDate    *time.Time
	PaymentMethod   string
}

// CustomOrderInput carries a bespoke tailoring request.
type CustomOrderInput struct {
	UserID         uint
	GarmentType    string
	Measurements   map[string]float64
	Notes          string
	DeliveryDate   *time.Time
	EstimatedPrice float64
}

// PlaceOrder validates the cart against live stock and prices, computes the
// total, and atomically persists the order header, its line items and a
// payment ledger row while decrementing stock. On any failure the whole
// transaction is rolled back and no partial state remains observable.
func PlaceOrder(db *gorm.DB, in PlaceOrderInput) (*models.Order, error) {
	var order models.Order

	err := db.Transaction(func(tx *gorm.DB) error {
		var total float64
		items := make([]models.OrderItem, 0, len(in.Items))

		for _, line := range in.Items {
			var product models.Product
			if err := tx.First(&product, line.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("product %d: %w", line.ProductID, ErrProductNotFound)
				}
				return err
			}

			if product.Stock < line.Quantity {
				return fmt.Errorf("product %d: %w", line.ProductID, ErrInsufficientStock)
			}

			price := product.EffectivePrice()
			total += price * float64(line.Quantity)
			items = append(items, models.OrderItem{
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				Price:     price,
				Size:      line.Size,
				Color:     line.Color,
				Fabric:    line.Fabric,
			})

			// The stock >= quantity predicate re-checks availability at
			// write time, so two concurrent placements cannot both succeed
			// on a stale read.
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", line.ProductID, line.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", line.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("product %d: %w", line.ProductID, ErrInsufficientStock)
			}
		}

		order = models.Order{
			UserID:          in.UserID,
			TotalAmount:     total,
			Status:          "pending",
			PaymentStatus:   "pending",
			OrderType:       "standard",
			DeliveryAddress: in.DeliveryAddress,
			Notes:           in.Notes,
			DeliveryDate:    in.DeliveryDate,
			PaymentMethod:   in.PaymentMethod,
		}
		if err := createWithOrderNumber(tx, &order, utils.StandardOrderPrefix); err != nil {
			return err
		}

		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
		order.Items = items

		ledger := models.Transaction{
			OrderID:       order.ID,
			UserID:        in.UserID,
			Type:          "payment",
			Amount:        total,
			PaymentMethod: in.PaymentMethod,
		}
		return tx.Create(&ledger).Error
	})
	if err != nil {
		return nil, err
	}

	return &order, nil
}

// PlaceCustomOrder persists a custom tailoring request: an order row with
// order_type=custom plus a linked measurement record, atomic together.
// Custom orders never touch stock.
func PlaceCustomOrder(db *gorm.DB, in CustomOrderInput) (*models.Order, error) {
	var order models.Order

	err := db.Transaction(func(tx *gorm.DB) error {
		order = models.Order{
			UserID:        in.UserID,
			TotalAmount:   in.EstimatedPrice,
			Status:        "pending",
			PaymentStatus: "pending",
			OrderType:     "custom",
			Notes:         in.Notes,
			DeliveryDate:  in.DeliveryDate,
		}
		if err := createWithOrderNumber(tx, &order, utils.CustomOrderPrefix); err != nil {
			return err
		}

		measurement := models.Measurement{
			UserID:       in.UserID,
			OrderID:      order.ID,
			GarmentType:  in.GarmentType,
			Measurements: in.Measurements,
			Notes:        in.Notes,
		}
		return tx.Create(&measurement).Error
	})
	if err != nil {
		return nil, err
	}

	return &order, nil
}

// createWithOrderNumber inserts the order, regenerating the order number on
// the rare suffix collision. The number is checked before insert so a
// duplicate never aborts the surrounding transaction.
func createWithOrderNumber(tx *gorm.DB, order *models.Order, prefix string) error {
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		number := utils.GenerateOrderNumber(prefix)

		var count int64
		if err := tx.Model(&models.Order{}).Where("order_number = ?", number).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		order.OrderNumber = number
		return tx.Create(order).Error
	}
	return ErrOrderNumberExhausted
}
