package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/stitchhouse/stitchhouse-api/config"
	"github.com/stitchhouse/stitchhouse-api/controllers"
	"github.com/stitchhouse/stitchhouse-api/middleware"
	"github.com/stitchhouse/stitchhouse-api/models"
	"github.com/stitchhouse/stitchhouse-api/services"
)

func main() {
	log.Println("Starting StitchHouse Tailoring API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	err = db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.Transaction{},
		&models.Worker{},
		&models.Assignment{},
		&models.Measurement{},
		&models.ActivityLog{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Initialize S3 storage for product images when configured
	if cfg.AWSS3Bucket != "" {
		if _, err := services.InitS3Service(); err != nil {
			log.Fatalf("Failed to initialize S3 service: %v", err)
		}
	} else {
		log.Println("AWS_S3_BUCKET not set, image uploads disabled")
	}

	// Initialize Gin router
	router := setupRouter()

	// Start server
	addr := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRouter() *gin.Engine {
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	router.GET("/health", healthCheck)

	auth := router.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.GET("/profile", middleware.RequireAuth("customer", "admin", "worker"), controllers.GetProfile)
		auth.PUT("/profile", middleware.RequireAuth("customer", "admin", "worker"), controllers.UpdateProfile)
	}

	products := router.Group("/products")
	{
		products.GET("", controllers.GetProducts)
		products.GET("/categories/all", controllers.GetCategories)
		products.GET("/:id", controllers.GetProductByID)
		products.POST("", middleware.RequireAuth("admin"), controllers.CreateProduct)
		products.PUT("/:id", middleware.RequireAuth("admin"), controllers.UpdateProduct)
		products.DELETE("/:id", middleware.RequireAuth("admin"), controllers.DeleteProduct)
		products.POST("/:id/images", middleware.RequireAuth("admin"), controllers.UploadProductImage)
	}

	orders := router.Group("/orders")
	{
		orders.GET("", middleware.RequireAuth("customer", "admin"), controllers.GetOrders)
		orders.GET("/:id", middleware.RequireAuth("customer", "admin"), controllers.GetOrderByID)
		orders.POST("", middleware.RequireAuth("customer"), controllers.CreateOrder)
		orders.POST("/custom", middleware.RequireAuth("customer"), controllers.CreateCustomOrder)
		orders.PUT("/:id/status", middleware.RequireAuth("admin"), controllers.UpdateOrderStatus)
	}

	admin := router.Group("/admin", middleware.RequireAuth("admin"))
	{
		admin.GET("/dashboard", controllers.GetDashboardStats)
		admin.GET("/orders/recent", controllers.GetRecentOrders)
		admin.GET("/reports/sales", controllers.GetSalesChart)
		admin.GET("/customers", controllers.GetCustomers)
	}

	reports := router.Group("/reports", middleware.RequireAuth("admin"))
	{
		reports.GET("/sales", controllers.GetSalesReport)
		reports.GET("/payments", controllers.GetPaymentsReport)
		reports.GET("/inventory", controllers.GetInventoryReport)
		reports.GET("/workers", controllers.GetWorkersReport)
	}

	workers := router.Group("/workers", middleware.RequireAuth("admin"))
	{
		workers.GET("", controllers.GetWorkers)
		workers.POST("", controllers.CreateWorker)
		workers.PUT("/:id", controllers.UpdateWorker)
		workers.DELETE("/:id", controllers.DeleteWorker)
		workers.GET("/:id/assignments", controllers.GetWorkerAssignments)
	}

	return router
}

// healthCheck reports process and database liveness
func healthCheck(c *gin.Context) {
	db := config.GetDB()
	if db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Database not connected",
			},
		})
		return
	}

	sqlDB, err := db.DB()
	if err == nil {
		err = sqlDB.Ping()
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_CONNECTION_ERROR",
				"message": "Database connection failed",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "StitchHouse Tailoring API is running",
		"time":    time.Now().UTC(),
	})
}
