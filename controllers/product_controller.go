package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/stitchhouse/stitchhouse-api/config"
	"github.com/stitchhouse/stitchhouse-api/models"
)

// CreateProductRequest represents the request body for creating a product
type CreateProductRequest struct {
	Name          string   `json:"name" binding:"required"`
	CategoryID    uint     `json:"category_id" binding:"required"`
	Description   string   `json:"description"`
	Price         float64  `json:"price" binding:"required,gt=0"`
	DiscountPrice *float64 `json:"discount_price"`
	Stock         int      `json:"stock" binding:"min=0"`
	Images        []string `json:"images"`
	Size          []string `json:"size"`
	Color         []string `json:"color"`
	Fabric        []string `json:"fabric"`
}

// UpdateProductRequest represents the allow-listed fields a product update
// may touch. Arbitrary request keys are never mapped to columns.
type UpdateProductRequest struct {
	Name          *string   `json:"name"`
	CategoryID    *uint     `json:"category_id"`
	Description   *string   `json:"description"`
	Price         *float64  `json:"price" binding:"omitempty,gt=0"`
	DiscountPrice *float64  `json:"discount_price"`
	Stock         *int      `json:"stock" binding:"omitempty,min=0"`
	Size          *[]string `json:"size"`
	Color         *[]string `json:"color"`
	Fabric        *[]string `json:"fabric"`
	Status        *string   `json:"status" binding:"omitempty,oneof=active inactive"`
}

// GetProducts handles GET /products - filtered, paginated catalog listing
func GetProducts(c *gin.Context) {
	db := config.GetDB()

	query := db.Model(&models.Product{}).Where("products.status = ?", "active")

	if category := c.Query("category"); category != "" {
		query = query.
			Joins("JOIN categories ON categories.id = products.category_id").
			Where("categories.name = ?", category)
	}

	if minPrice := c.Query("minPrice"); minPrice != "" {
		if v, err := strconv.ParseFloat(minPrice, 64); err == nil {
			query = query.Where("products.price >= ?", v)
		}
	}

	if maxPrice := c.Query("maxPrice"); maxPrice != "" {
		if v, err := strconv.ParseFloat(maxPrice, 64); err == nil {
			query = query.Where("products.price <= ?", v)
		}
	}

	// Variant sets are stored as JSON arrays; membership checks match the
	// quoted element in the serialized form.
	if size := c.Query("size"); size != "" {
		query = query.Where("products.size LIKE ?", `%"`+size+`"%`)
	}
	if color := c.Query("color"); color != "" {
		query = query.Where("products.color LIKE ?", `%"`+color+`"%`)
	}
	if fabric := c.Query("fabric"); fabric != "" {
		query = query.Where("products.fabric LIKE ?", `%"`+fabric+`"%`)
	}

	if search := c.Query("search"); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(products.name) LIKE ? OR LOWER(products.description) LIKE ?", pattern, pattern)
	}

	page, limit := parsePagination(c, 1, 12)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch products",
			},
		})
		return
	}

	var products []models.Product
	err := query.
		Preload("Category").
		Order("products.created_at DESC, products.id DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&products).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch products",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"products":   products,
		"pagination": paginationMeta(page, limit, total),
	})
}

// GetProductByID handles GET /products/:id
func GetProductByID(c *gin.Context) {
	db := config.GetDB()

	var product models.Product
	err := db.Preload("Category").
		Where("status = ?", "active").
		First(&product, c.Param("id")).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PRODUCT_NOT_FOUND",
				"message": "Product not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"product": product,
	})
}

// CreateProduct handles POST /products (admin)
func CreateProduct(c *gin.Context) {
	var req CreateProductRequest
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

	product := models.Product{
		Name:          req.Name,
		CategoryID:    req.CategoryID,
		Description:   req.Description,
		Price:         req.Price,
		DiscountPrice: req.DiscountPrice,
		Stock:         req.Stock,
		Images:        req.Images,
		Size:          req.Size,
		Color:         req.Color,
		Fabric:        req.Fabric,
		Status:        "active",
	}

	db := config.GetDB()
	if err := db.Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create product",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Product created successfully",
		"product": product,
	})
}

// UpdateProduct handles PUT /products/:id (admin)
func UpdateProduct(c *gin.Context) {
	var req UpdateProductRequest
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

	db := config.GetDB()
	var product models.Product
	if err := db.First(&product, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PRODUCT_NOT_FOUND",
				"message": "Product not found",
			},
		})
		return
	}

	changed := false
	if req.Name != nil {
		product.Name = *req.Name
		changed = true
	}
	if req.CategoryID != nil {
		product.CategoryID = *req.CategoryID
		changed = true
	}
	if req.Description != nil {
		product.Description = *req.Description
		changed = true
	}
	if req.Price != nil {
		product.Price = *req.Price
		changed = true
	}
	if req.DiscountPrice != nil {
		product.DiscountPrice = req.DiscountPrice
		changed = true
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
		changed = true
	}
	if req.Size != nil {
		product.Size = *req.Size
		changed = true
	}
	if req.Color != nil {
		product.Color = *req.Color
		changed = true
	}
	if req.Fabric != nil {
		product.Fabric = *req.Fabric
		changed = true
	}
	if req.Status != nil {
		product.Status = *req.Status
		changed = true
	}

	if !changed {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "No fields to update",
			},
		})
		return
	}

	if err := db.Save(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update product",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product updated successfully",
		"product": product,
	})
}

// DeleteProduct handles DELETE /products/:id (admin) - soft delete via
// status flip; the row stays for order history.
func DeleteProduct(c *gin.Context) {
	db := config.GetDB()

	res := db.Model(&models.Product{}).
		Where("id = ? AND status = ?", c.Param("id"), "active").
		Update("status", "inactive")
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete product",
			},
		})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PRODUCT_NOT_FOUND",
				"message": "Product not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product deleted successfully",
	})
}

// GetCategories handles GET /products/categories/all
func GetCategories(c *gin.Context) {
	db := config.GetDB()

	var categories []models.Category
	if err := db.Order("name").Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch categories",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"categories": categories,
	})
}

// parsePagination reads 1-indexed page and limit query parameters.
func parsePagination(c *gin.Context, defaultPage, defaultLimit int) (int, int) {
	page := defaultPage
	if v, err := strconv.Atoi(c.Query("page")); err == nil && v > 0 {
		page = v
	}
	limit := defaultLimit
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		limit = v
	}
	return page, limit
}

// paginationMeta builds the shared pagination envelope.
func paginationMeta(page, limit int, total int64) gin.H {
	pages := (total + int64(limit) - 1) / int64(limit)
	return gin.H{
		"page":  page,
		"limit": limit,
		"total": total,
		"pages": pages,
	}
}
