package routes

import (
	"github.com/gin-gonic/gin"

	"food-ordering-api/handlers"
	"food-ordering-api/middleware"
	"food-ordering-api/models"
)

func SetupRoutes(r *gin.Engine) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Auth
		public.POST("/auth/register", handlers.Register)
		public.POST("/auth/login", handlers.Login)

		// Catalog & ratings (no auth needed)
		public.GET("/foods", handlers.ListFoods)
		public.GET("/foods/:id", handlers.GetFood)
		public.GET("/foods/:id/ratings", handlers.ListRatings)

		// State machine info (great for docs/Postman)
		public.GET("/state-machine", handlers.GetStateMachineInfo)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/profile", handlers.GetProfile)
	}

	// ── Customer routes ────────────────────────────────────────────
	customer := r.Group("/api")
	customer.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleCustomer, models.RoleAdmin))
	{
		// Cart
		customer.GET("/cart", handlers.GetCart)
		customer.POST("/cart/items", handlers.AddToCart)
		customer.PUT("/cart/items/:itemId", handlers.UpdateCartItem)
		customer.DELETE("/cart/items/:itemId", handlers.RemoveCartItem)
		customer.DELETE("/cart", handlers.ClearCart)

		// Ratings
		customer.POST("/foods/:id/ratings", handlers.SubmitRating)
		customer.DELETE("/foods/:id/ratings", handlers.DeleteRating)

		// Orders
		customer.POST("/orders", handlers.Checkout)
		customer.GET("/orders", handlers.GetMyOrders)
		customer.GET("/orders/:id", handlers.GetOrderDetail)
		customer.PUT("/orders/:id/cancel", handlers.CancelOrder)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleAdmin))
	{
		admin.POST("/foods", handlers.CreateFood)
		admin.PUT("/foods/:id", handlers.UpdateFood)
		admin.DELETE("/foods/:id", handlers.DeleteFood)

		admin.GET("/orders", handlers.AdminGetAllOrders)
		admin.PUT("/orders/:id/status", handlers.AdminUpdateOrderStatus)
		admin.GET("/users", handlers.AdminGetAllUsers)
	}
}
