package controllers

import (
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stitchhouse/stitchhouse-api/config"
	"github.com/stitchhouse/stitchhouse-api/models"
)

// GetDashboardStats handles GET /admin/dashboard
func GetDashboardStats(c *gin.Context) {
	db := config.GetDB()

	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.Add(24 * time.Hour)

	var totalSales float64
	var todaySales float64
	var totalOrders, totalCustomers, totalProducts, pendingOrders int64

	queries := []error{
		db.Model(&models.Order{}).Select("COALESCE(SUM(total_amount), 0)").Scan(&totalSales).Error,
		db.Model(&models.Order{}).Count(&totalOrders).Error,
		db.Model(&models.User{}).Where("role = ?", "customer").Count(&totalCustomers).Error,
		db.Model(&models.Product{}).Where("status = ?", "active").Count(&totalProducts).Error,
		db.Model(&models.Order{}).
			Select("COALESCE(SUM(total_amount), 0)").
			Where("created_at >= ? AND created_at < ?", todayStart, todayEnd).
			Scan(&todaySales).Error,
		db.Model(&models.Order{}).Where("status = ?", "pending").Count(&pendingOrders).Error,
	}
	for _, err := range queries {
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to fetch dashboard stats",
				},
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stats": gin.H{
			"totalSales":     totalSales,
			"totalOrders":    totalOrders,
			"totalCustomers": totalCustomers,
			"totalProducts":  totalProducts,
			"todaySales":     todaySales,
			"pendingOrders":  pendingOrders,
		},
	})
}

// GetRecentOrders handles GET /admin/orders/recent - the 10 newest orders
func GetRecentOrders(c *gin.Context) {
	db := config.GetDB()

	var orders []models.Order
	err := db.Preload("User").
		Order("created_at DESC, id DESC").
		Limit(10).
		Find(&orders).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch recent orders",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"orders":  orders,
	})
}

// salesBucket is one point of the sales chart
type salesBucket struct {
	Date       time.Time `json:"date"`
	OrderCount int       `json:"order_count"`
	TotalSales float64   `json:"total_sales"`
}

// GetSalesChart handles GET /admin/reports/sales?period=day|week|month|year.
// Orders from the last year are bucketed by the requested period; the
// bucketing happens here rather than in SQL so the query works on every
// supported driver.
func GetSalesChart(c *gin.Context) {
	period := c.DefaultQuery("period", "month")

	db := config.GetDB()
	var orders []models.Order
	err := db.Select("created_at", "total_amount").
		Where("created_at >= ?", time.Now().AddDate(-1, 0, 0)).
		Find(&orders).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch sales report",
			},
		})
		return
	}

	buckets := map[time.Time]*salesBucket{}
	for _, order := range orders {
		key := truncateToPeriod(order.CreatedAt, period)
		b, ok := buckets[key]
		if !ok {
			b = &salesBucket{Date: key}
			buckets[key] = b
		}
		b.OrderCount++
		b.TotalSales += order.TotalAmount
	}

	data := make([]salesBucket, 0, len(buckets))
	for _, b := range buckets {
		data = append(data, *b)
	}
	sort.Slice(data, func(i, j int) bool { return data[i].Date.Before(data[j].Date) })

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

// truncateToPeriod maps a timestamp onto its day/week/month/year bucket.
// Weeks start on Monday.
func truncateToPeriod(t time.Time, period string) time.Time {
	switch period {
	case "day":
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	case "week":
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	case "year":
		return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
	default: // month
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	}
}

// GetCustomers handles GET /admin/customers - paginated customer listing
// with optional name/email/phone search
func GetCustomers(c *gin.Context) {
	db := config.GetDB()

	query := db.Model(&models.User{}).Where("role = ?", "customer")
	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name LIKE ? OR email LIKE ? OR phone LIKE ?", pattern, pattern, pattern)
	}

	page, limit := parsePagination(c, 1, 20)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch customers",
			},
		})
		return
	}

	var customers []models.User
	err := query.
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&customers).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch customers",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"customers":  customers,
		"pagination": paginationMeta(page, limit, total),
	})
}
