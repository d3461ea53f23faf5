package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stitchhouse/stitchhouse-api/config"
	"github.com/stitchhouse/stitchhouse-api/models"
)

// GetSalesReport handles GET /reports/sales - filtered order listing with
// summary statistics computed from the result set
func GetSalesReport(c *gin.Context) {
	db := config.GetDB()

	query := db.Model(&models.Order{}).
		Preload("User").
		Preload("Items").
		Preload("Items.Product")

	if start, ok := parseDateParam(c, "start_date"); ok {
		query = query.Where("created_at >= ?", start)
	}
	if end, ok := parseDateParam(c, "end_date"); ok {
		query = query.Where("created_at <= ?", end)
	}
	if customerID := c.Query("customer_id"); customerID != "" {
		query = query.Where("user_id = ?", customerID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	if err := query.Order("created_at DESC, id DESC").Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to generate sales report",
			},
		})
		return
	}

	var totalSales float64
	for _, order := range orders {
		totalSales += order.TotalAmount
	}
	averageOrder := 0.0
	if len(orders) > 0 {
		averageOrder = totalSales / float64(len(orders))
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"orders":  orders,
		"summary": gin.H{
			"totalOrders":  len(orders),
			"totalSales":   totalSales,
			"averageOrder": averageOrder,
		},
	})
}

// paymentRow flattens a ledger entry with its user and order context
type paymentRow struct {
	ID            uint      `json:"id"`
	OrderID       uint      `json:"order_id"`
	UserID        uint      `json:"user_id"`
	Type          string    `json:"type"`
	Amount        float64   `json:"amount"`
	PaymentMethod string    `json:"payment_method"`
	CreatedAt     time.Time `json:"created_at"`
	UserName      string    `json:"user_name"`
	UserEmail     string    `json:"user_email"`
	OrderNumber   string    `json:"order_number"`
}

// GetPaymentsReport handles GET /reports/payments
func GetPaymentsReport(c *gin.Context) {
	db := config.GetDB()

	query := db.Model(&models.Transaction{}).
		Select("transactions.id, transactions.order_id, transactions.user_id, transactions.type, transactions.amount, transactions.payment_method, transactions.created_at, users.name AS user_name, users.email AS user_email, orders.order_number").
		Joins("LEFT JOIN users ON users.id = transactions.user_id").
		Joins("LEFT JOIN orders ON orders.id = transactions.order_id")

	if start, ok := parseDateParam(c, "start_date"); ok {
		query = query.Where("transactions.created_at >= ?", start)
	}
	if end, ok := parseDateParam(c, "end_date"); ok {
		query = query.Where("transactions.created_at <= ?", end)
	}
	if userID := c.Query("user_id"); userID != "" {
		query = query.Where("transactions.user_id = ?", userID)
	}

	var transactions []paymentRow
	if err := query.Order("transactions.created_at DESC").Scan(&transactions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to generate payment report",
			},
		})
		return
	}

	var totalAmount float64
	for _, t := range transactions {
		totalAmount += t.Amount
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"transactions": transactions,
		"summary": gin.H{
			"totalTransactions": len(transactions),
			"totalAmount":       totalAmount,
		},
	})
}

// inventoryRow is a product annotated with its stock classification
type inventoryRow struct {
	models.Product
	StockStatus string `json:"stock_status"`
}

// GetInventoryReport handles GET /reports/inventory - active products sorted
// by stock, classified Out of Stock / Low Stock (<=10) / In Stock
func GetInventoryReport(c *gin.Context) {
	db := config.GetDB()

	var products []models.Product
	err := db.Preload("Category").
		Where("status = ?", "active").
		Order("stock ASC").
		Find(&products).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to generate inventory report",
			},
		})
		return
	}

	rows := make([]inventoryRow, 0, len(products))
	var outOfStock, lowStock, inStock int
	var totalStockValue float64
	for _, p := range products {
		status := classifyStock(p.Stock)
		switch status {
		case "Out of Stock":
			outOfStock++
		case "Low Stock":
			lowStock++
		default:
			inStock++
		}
		totalStockValue += p.Price * float64(p.Stock)
		rows = append(rows, inventoryRow{Product: p, StockStatus: status})
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"products": rows,
		"summary": gin.H{
			"totalProducts":   len(rows),
			"outOfStock":      outOfStock,
			"lowStock":        lowStock,
			"inStock":         inStock,
			"totalStockValue": totalStockValue,
		},
	})
}

func classifyStock(stock int) string {
	switch {
	case stock == 0:
		return "Out of Stock"
	case stock <= 10:
		return "Low Stock"
	default:
		return "In Stock"
	}
}

// workerPerformanceRow aggregates a worker's assignment outcomes
type workerPerformanceRow struct {
	ID              uint     `json:"id"`
	Name            string   `json:"name"`
	Role            string   `json:"role"`
	Status          string   `json:"status"`
	AssignedOrders  int      `json:"assigned_orders"`
	CompletedOrders int      `json:"completed_orders"`
	AvgProgress     *float64 `json:"avg_progress"`
}

// GetWorkersReport handles GET /reports/workers - per-worker assigned and
// completed counts with optional assigned-date bounds
func GetWorkersReport(c *gin.Context) {
	db := config.GetDB()

	// Date bounds live in the join condition so workers with no matching
	// assignments still appear with zero counts.
	join := "LEFT JOIN assignments a ON a.worker_id = w.id"
	args := []interface{}{}
	if start, ok := parseDateParam(c, "start_date"); ok {
		join += " AND a.assigned_date >= ?"
		args = append(args, start)
	}
	if end, ok := parseDateParam(c, "end_date"); ok {
		join += " AND a.assigned_date <= ?"
		args = append(args, end)
	}

	sql := `
		SELECT w.id, w.name, w.role, w.status,
		       COUNT(DISTINCT a.order_id) AS assigned_orders,
		       COUNT(DISTINCT CASE WHEN a.status = 'completed' THEN a.order_id END) AS completed_orders,
		       AVG(CASE WHEN a.status = 'completed' THEN a.progress END) AS avg_progress
		FROM workers w ` + join + `
		WHERE w.deleted_at IS NULL
		GROUP BY w.id, w.name, w.role, w.status, w.created_at
		ORDER BY w.created_at DESC`

	var workers []workerPerformanceRow
	if err := db.Raw(sql, args...).Scan(&workers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to generate worker report",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"workers": workers,
	})
}

// parseDateParam reads a date query parameter as YYYY-MM-DD or RFC3339.
func parseDateParam(c *gin.Context, name string) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	return time.Time{}, false
}
