package controllers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stitchhouse/stitchhouse-api/config"
	"github.com/stitchhouse/stitchhouse-api/middleware"
	"github.com/stitchhouse/stitchhouse-api/models"
	"github.com/stitchhouse/stitchhouse-api/services"
)

// OrderItemRequest is one cart line in an order request
type OrderItemRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Fabric    string `json:"fabric"`
}

// CreateOrderRequest represents the request body for placing a standard order
type CreateOrderRequest struct {
	Items           []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	DeliveryAddress string             `json:"delivery_address"`
	Notes           string             `json:"notes"`
	DeliveryDate    *time.Time         `json:"delivery_date"`
	PaymentMethod   string             `json:"payment_method" binding:"omitempty,oneof=cod card bkash nagad"`
}

// CreateCustomOrderRequest represents a bespoke tailoring request
type CreateCustomOrderRequest struct {
	GarmentType       string             `json:"garment_type" binding:"required"`
	Measurements      map[string]float64 `json:"measurements" binding:"required"`
	Notes             string             `json:"notes"`
	DeliveryDate      *time.Time         `json:"delivery_date"`
	FabricPreference  string             `json:"fabric_preference"`
	DesignDescription string             `json:"design_description"`
	EstimatedPrice    float64            `json:"estimated_price" binding:"omitempty,min=0"`
}

// UpdateOrderStatusRequest updates order and/or payment status (admin)
type UpdateOrderStatusRequest struct {
	Status        *string `json:"status" binding:"omitempty,oneof=pending processing completed cancelled"`
	PaymentStatus *string `json:"payment_status" binding:"omitempty,oneof=pending paid refunded"`
}

// CreateOrder handles POST /orders - places a standard order (customers only)
func CreateOrder(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract user information",
			},
		})
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "cod"
	}

	items := make([]services.OrderLineItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, services.OrderLineItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Size:      item.Size,
			Color:     item.Color,
			Fabric:    item.Fabric,
		})
	}

	order, err := services.PlaceOrder(config.GetDB(), services.PlaceOrderInput{
		UserID:          user.ID,
		Items:           items,
		DeliveryAddress: req.DeliveryAddress,
		Notes:           req.Notes,
		DeliveryDate:    req.DeliveryDate,
		PaymentMethod:   paymentMethod,
	})
	if err != nil {
		status := http.StatusBadRequest
		code := "ORDER_FAILED"
		switch {
		case errors.Is(err, services.ErrProductNotFound):
			code = "PRODUCT_NOT_FOUND"
		case errors.Is(err, services.ErrInsufficientStock):
			code = "INSUFFICIENT_STOCK"
		default:
			log.Printf("Create order error: %v", err)
		}
		c.JSON(status, gin.H{
			"success": false,
			"error": gin.H{
				"code":    code,
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":      true,
		"message":      "Order created successfully",
		"order":        order,
		"order_number": order.OrderNumber,
	})
}

// CreateCustomOrder handles POST /orders/custom (customers only)
func CreateCustomOrder(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract user information",
			},
		})
		return
	}

	var req CreateCustomOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	notes := req.Notes
	if req.DesignDescription != "" {
		notes = appendNote(notes, "Design: "+req.DesignDescription)
	}
	if req.FabricPreference != "" {
		notes = appendNote(notes, "Fabric preference: "+req.FabricPreference)
	}

	order, err := services.PlaceCustomOrder(config.GetDB(), services.CustomOrderInput{
		UserID:         user.ID,
		GarmentType:    req.GarmentType,
		Measurements:   req.Measurements,
		Notes:          notes,
		DeliveryDate:   req.DeliveryDate,
		EstimatedPrice: req.EstimatedPrice,
	})
	if err != nil {
		log.Printf("Create custom order error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":      true,
		"message":      "Custom order created successfully",
		"order":        order,
		"order_number": order.OrderNumber,
	})
}

// GetOrders handles GET /orders - the caller's orders, newest first
func GetOrders(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract user information",
			},
		})
		return
	}

	db := config.GetDB()
	query := db.Where("user_id = ?", user.ID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	err := query.
		Preload("Items").
		Preload("Items.Product").
		Order("created_at DESC, id DESC").
		Find(&orders).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch orders",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"orders":  orders,
	})
}

// GetOrderByID handles GET /orders/:id - owner or admin only
func GetOrderByID(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract user information",
			},
		})
		return
	}

	db := config.GetDB()
	query := db.Preload("Items").Preload("Items.Product")
	if user.Role != "admin" {
		query = query.Where("user_id = ?", user.ID)
	}

	var order models.Order
	if err := query.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_FOUND",
				"message": "Order not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"order":   order,
	})
}

// UpdateOrderStatus handles PUT /orders/:id/status (admin)
func UpdateOrderStatus(c *gin.Context) {
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	updates := map[string]interface{}{}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.PaymentStatus != nil {
		updates["payment_status"] = *req.PaymentStatus
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "No updates provided",
			},
		})
		return
	}

	db := config.GetDB()
	var order models.Order
	if err := db.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_FOUND",
				"message": "Order not found",
			},
		})
		return
	}

	if err := db.Model(&order).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update order",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Order updated successfully",
		"order":   order,
	})
}

func appendNote(notes, extra string) string {
	if notes == "" {
		return extra
	}
	return notes + "\n" + extra
}
