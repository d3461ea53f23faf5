package controllers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stitchhouse/stitchhouse-api/config"
	"github.com/stitchhouse/stitchhouse-api/models"
	"github.com/stitchhouse/stitchhouse-api/services"
	"gorm.io/gorm"
)

// CreateWorkerRequest represents the request body for creating a worker.
// When email and password are both present a login account is created in
// the same transaction.
type CreateWorkerRequest struct {
	Name         string  `json:"name" binding:"required"`
	Role         string  `json:"role" binding:"required"`
	SalaryType   string  `json:"salary_type" binding:"omitempty,oneof=fixed hourly per_piece"`
	SalaryAmount float64 `json:"salary_amount" binding:"omitempty,min=0"`
	Phone        string  `json:"phone"`
	Address      string  `json:"address"`
	Email        string  `json:"email" binding:"omitempty,email"`
	Password     string  `json:"password" binding:"omitempty,min=6"`
}

// UpdateWorkerRequest represents the allow-listed fields a worker update may touch
type UpdateWorkerRequest struct {
	Name         *string  `json:"name"`
	Role         *string  `json:"role"`
	SalaryType   *string  `json:"salary_type" binding:"omitempty,oneof=fixed hourly per_piece"`
	SalaryAmount *float64 `json:"salary_amount" binding:"omitempty,min=0"`
	Phone        *string  `json:"phone"`
	Address      *string  `json:"address"`
	Status       *string  `json:"status" binding:"omitempty,oneof=active inactive"`
}

// GetWorkers handles GET /workers (admin)
func GetWorkers(c *gin.Context) {
	db := config.GetDB()

	var workers []models.Worker
	if err := db.Preload("User").Order("created_at DESC, id DESC").Find(&workers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch workers",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"workers": workers,
	})
}

// CreateWorker handles POST /workers (admin). The worker row and the
// optional login account are created atomically.
func CreateWorker(c *gin.Context) {
	var req CreateWorkerRequest
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

	salaryType := req.SalaryType
	if salaryType == "" {
		salaryType = "fixed"
	}

	db := config.GetDB()
	var worker models.Worker

	err := db.Transaction(func(tx *gorm.DB) error {
		var userID *uint

		if req.Email != "" && req.Password != "" {
			hash, err := services.HashPassword(req.Password)
			if err != nil {
				return err
			}
			account := models.User{
				Name:         req.Name,
				Email:        req.Email,
				PasswordHash: hash,
				Phone:        req.Phone,
				Address:      req.Address,
				Role:         "worker",
			}
			if err := tx.Create(&account).Error; err != nil {
				return err
			}
			userID = &account.ID
		}

		worker = models.Worker{
			UserID:       userID,
			Name:         req.Name,
			Role:         req.Role,
			SalaryType:   salaryType,
			SalaryAmount: req.SalaryAmount,
			Phone:        req.Phone,
			Address:      req.Address,
			Status:       "active",
		}
		return tx.Create(&worker).Error
	})
	if err != nil {
		log.Printf("Create worker error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create worker",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Worker created successfully",
		"worker":  worker,
	})
}

// UpdateWorker handles PUT /workers/:id (admin)
func UpdateWorker(c *gin.Context) {
	var req UpdateWorkerRequest
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
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Role != nil {
		updates["role"] = *req.Role
	}
	if req.SalaryType != nil {
		updates["salary_type"] = *req.SalaryType
	}
	if req.SalaryAmount != nil {
		updates["salary_amount"] = *req.SalaryAmount
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "No fields to update",
			},
		})
		return
	}

	db := config.GetDB()
	var worker models.Worker
	if err := db.First(&worker, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "WORKER_NOT_FOUND",
				"message": "Worker not found",
			},
		})
		return
	}

	if err := db.Model(&worker).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update worker",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Worker updated successfully",
		"worker":  worker,
	})
}

// DeleteWorker handles DELETE /workers/:id (admin)
func DeleteWorker(c *gin.Context) {
	db := config.GetDB()

	res := db.Delete(&models.Worker{}, c.Param("id"))
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete worker",
			},
		})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "WORKER_NOT_FOUND",
				"message": "Worker not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Worker deleted successfully",
	})
}

// assignmentRow flattens an assignment with its order and customer context
type assignmentRow struct {
	ID           uint       `json:"id"`
	WorkerID     uint       `json:"worker_id"`
	OrderID      uint       `json:"order_id"`
	Status       string     `json:"status"`
	Progress     int        `json:"progress"`
	AssignedDate *time.Time `json:"assigned_date"`
	Notes        string     `json:"notes"`
	CreatedAt    time.Time  `json:"created_at"`
	OrderNumber  string     `json:"order_number"`
	TotalAmount  float64    `json:"total_amount"`
	OrderStatus  string     `json:"order_status"`
	CustomerName string     `json:"customer_name"`
}

// GetWorkerAssignments handles GET /workers/:id/assignments (admin)
func GetWorkerAssignments(c *gin.Context) {
	db := config.GetDB()

	var assignments []assignmentRow
	err := db.Model(&models.Assignment{}).
		Select("assignments.id, assignments.worker_id, assignments.order_id, assignments.status, assignments.progress, assignments.assigned_date, assignments.notes, assignments.created_at, orders.order_number, orders.total_amount, orders.status AS order_status, users.name AS customer_name").
		Joins("LEFT JOIN orders ON orders.id = assignments.order_id").
		Joins("LEFT JOIN users ON users.id = orders.user_id").
		Where("assignments.worker_id = ?", c.Param("id")).
		Order("assignments.created_at DESC").
		Scan(&assignments).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch assignments",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"assignments": assignments,
	})
}
