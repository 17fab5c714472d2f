package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"food-ordering-api/cart"
	"food-ordering-api/config"
	"food-ordering-api/middleware"
	"food-ordering-api/models"
)

// Carts and Ratings are wired once from main before routes are served.
var Carts *cart.Manager

// Setup injects the handler dependencies.
func Setup(carts *cart.Manager) {
	Carts = carts
}

func cartOwner(c *gin.Context) string {
	return strconv.FormatUint(uint64(middleware.GetUserID(c)), 10)
}

func cartResponse(s *cart.Store) gin.H {
	return gin.H{
		"items": s.Items(),
		"total": s.Total(),
		"count": s.ItemCount(),
	}
}

type AddToCartRequest struct {
	FoodID   uint `json:"food_id" binding:"required"`
	Quantity int  `json:"quantity" binding:"omitempty,min=1"`
}

// AddToCart adds a food to the caller's cart, merging quantity if the
// line already exists
func AddToCart(c *gin.Context) {
	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var food models.Food
	if err := config.DB.First(&food, req.FoodID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Food not found"})
		return
	}
	if !food.IsAvailable {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Food '" + food.Name + "' is not available"})
		return
	}

	qty := req.Quantity
	if qty == 0 {
		qty = 1
	}

	// Descriptive fields are copied in now and never re-synced; the cart
	// keeps this snapshot even if the catalog row changes later.
	item := cart.LineItem{
		ID:              strconv.FormatUint(uint64(food.ID), 10),
		Name:            food.Name,
		Description:     food.Description,
		UnitPrice:       food.Price,
		Image:           food.Image,
		RestaurantLabel: food.RestaurantLabel,
		CookTimeMinutes: food.CookTimeMinutes,
		Rating:          food.AverageRating,
		ReviewCount:     food.TotalRatings,
	}

	store := Carts.For(c.Request.Context(), cartOwner(c))
	store.AddItem(c.Request.Context(), item, qty)

	c.JSON(http.StatusOK, cartResponse(store))
}

type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// UpdateCartItem sets a line's quantity absolutely; 0 or less removes it
func UpdateCartItem(c *gin.Context) {
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	store := Carts.For(c.Request.Context(), cartOwner(c))
	store.UpdateQuantity(c.Request.Context(), c.Param("itemId"), *req.Quantity)

	c.JSON(http.StatusOK, cartResponse(store))
}

// RemoveCartItem deletes a line from the caller's cart
func RemoveCartItem(c *gin.Context) {
	store := Carts.For(c.Request.Context(), cartOwner(c))
	store.RemoveItem(c.Request.Context(), c.Param("itemId"))
	c.JSON(http.StatusOK, cartResponse(store))
}

// ClearCart empties the caller's cart
func ClearCart(c *gin.Context) {
	store := Carts.For(c.Request.Context(), cartOwner(c))
	store.Clear(c.Request.Context())
	c.JSON(http.StatusOK, cartResponse(store))
}

// GetCart returns the caller's cart with total and unit count
func GetCart(c *gin.Context) {
	store := Carts.For(c.Request.Context(), cartOwner(c))
	c.JSON(http.StatusOK, cartResponse(store))
}
