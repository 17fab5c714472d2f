package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"food-ordering-api/cart"
	"food-ordering-api/config"
	"food-ordering-api/handlers"
	"food-ordering-api/rating"
	"food-ordering-api/routes"
)

func main() {
	// Set Gin mode
	mode := os.Getenv("GIN_MODE")
	if mode == "" {
		gin.SetMode(gin.DebugMode)
	}

	// Initialize database
	config.InitDB()

	// Cart persistence slot: Redis when configured, in-process otherwise
	var persister cart.Persister
	if client := config.NewRedisClient(); client != nil {
		persister = cart.NewRedisPersister(client, 7*24*time.Hour)
		log.Println("✅ Carts persisted to Redis")
	} else {
		persister = cart.NewMemoryPersister()
		log.Println("REDIS_ADDR not set, carts kept in process memory")
	}
	carts := cart.NewManager(persister)
	defer carts.Dispose()

	handlers.Setup(carts)
	handlers.SetupRatings(rating.NewService(config.DB))

	// Create Gin router with default middleware (logger + recovery)
	r := gin.Default()

	// CORS middleware for frontend integration
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Food Ordering API",
			"version": "1.0.0",
		})
	})

	// Welcome
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "🍔 Welcome to the Food Ordering API",
			"docs":    "/api/state-machine",
			"health":  "/health",
			"roles":   []string{"customer", "admin"},
		})
	})

	// Register all routes
	routes.SetupRoutes(r)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🚀 Server running on http://localhost:%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
