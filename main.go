package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/agrichem-solutions/agrichem-api/config"
	"github.com/agrichem-solutions/agrichem-api/controllers"
	"github.com/agrichem-solutions/agrichem-api/middleware"
	"github.com/agrichem-solutions/agrichem-api/models"
	"github.com/agrichem-solutions/agrichem-api/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := config.InitLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting AgriChem Solutions API server", zap.String("env", cfg.GoEnv))

	if err := config.ConnectDatabase(); err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	db := config.GetDB()
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}
	if err := models.Seed(db); err != nil {
		logger.Fatal("Failed to seed database", zap.Error(err))
	}
	logger.Info("Database ready")

	// Product image storage is optional; without a bucket the upload
	// endpoint reports STORAGE_ERROR and everything else works.
	if cfg.AWSS3Bucket != "" {
		if _, err := services.InitS3Service(); err != nil {
			logger.Fatal("Failed to initialize S3 service", zap.Error(err))
		}
	} else {
		logger.Warn("AWS_S3_BUCKET not set, product image uploads disabled")
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := setupRouter(logger)

	addr := ":" + cfg.Port
	logger.Info("Server is running", zap.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

// setupRouter builds the gin engine with middleware and all API routes
func setupRouter(logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))
	router.Use(cors.Default())

	router.GET("/", home)

	api := router.Group("/api")
	{
		api.GET("/health", healthCheck)

		api.GET("/products", controllers.ListProducts)
		api.POST("/products", controllers.CreateProduct)
		api.GET("/products/:id", controllers.GetProduct)
		api.PUT("/products/:id", controllers.UpdateProduct)
		api.DELETE("/products/:id", controllers.DeleteProduct)
		api.POST("/products/:id/image", controllers.UploadProductImage)

		api.GET("/services", controllers.ListServices)
		api.POST("/services/book", controllers.BookService)

		api.GET("/customers", controllers.ListCustomers)
		api.GET("/customers/:id", controllers.GetCustomer)

		api.GET("/orders", controllers.ListOrders)
		api.POST("/orders", controllers.CreateOrder)
		api.GET("/orders/:id", controllers.GetOrder)
		api.PUT("/orders/:id/status", controllers.UpdateOrderStatus)

		api.POST("/discount/validate", controllers.ValidateDiscount)

		api.GET("/stats", controllers.GetStatistics)
		api.GET("/search", controllers.Search)
	}

	return router
}

// home handles GET / - API index document
func home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "AgriChem Solutions API",
		"version": "1.0",
		"endpoints": gin.H{
			"products":  "/api/products",
			"services":  "/api/services",
			"orders":    "/api/orders",
			"customers": "/api/customers",
		},
	})
}

// healthCheck handles GET /api/health
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "AgriChem Solutions API is running",
	})
}
