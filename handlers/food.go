package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"food-ordering-api/config"
	"food-ordering-api/models"
)

// ── Public catalog ──────────────────────────────────────────────────────────

// ListFoods returns the menu (public)
func ListFoods(c *gin.Context) {
	var foods []models.Food
	query := config.DB

	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}
	if isVeg := c.Query("is_veg"); isVeg == "true" {
		query = query.Where("is_veg = ?", true)
	}
	if available := c.Query("available"); available == "true" {
		query = query.Where("is_available = ?", true)
	}

	query.Find(&foods)
	c.JSON(http.StatusOK, gin.H{
		"count": len(foods),
		"foods": foods,
	})
}

// GetFood returns a single food with its rating aggregate
func GetFood(c *gin.Context) {
	var food models.Food
	if err := config.DB.First(&food, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Food not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"food": food})
}

// ── Admin food management ───────────────────────────────────────────────────

type CreateFoodRequest struct {
	Name            string  `json:"name" binding:"required"`
	Description     string  `json:"description"`
	Price           float64 `json:"price" binding:"required,gt=0"`
	Image           string  `json:"image"`
	Category        string  `json:"category"`
	RestaurantLabel string  `json:"restaurant_label"`
	CookTimeMinutes int     `json:"cook_time_minutes"`
	IsVeg           bool    `json:"is_veg"`
}

// CreateFood adds a new item to the catalog (admin only)
func CreateFood(c *gin.Context) {
	var req CreateFoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	food := models.Food{
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		Image:           req.Image,
		Category:        req.Category,
		RestaurantLabel: req.RestaurantLabel,
		CookTimeMinutes: req.CookTimeMinutes,
		IsVeg:           req.IsVeg,
		IsAvailable:     true,
	}
	if err := config.DB.Create(&food).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create food"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Food created", "food": food})
}

// UpdateFood updates catalog fields (admin only)
func UpdateFood(c *gin.Context) {
	var food models.Food
	if err := config.DB.First(&food, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Food not found"})
		return
	}

	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	// Only allow safe fields; the aggregate columns are derived and never
	// written through this path.
	allowed := map[string]bool{
		"name": true, "description": true, "price": true, "image": true,
		"category": true, "restaurant_label": true, "cook_time_minutes": true,
		"is_available": true, "is_veg": true,
	}
	update := map[string]interface{}{}
	for k, v := range req {
		if allowed[k] {
			update[k] = v
		}
	}
	config.DB.Model(&food).Updates(update)
	c.JSON(http.StatusOK, gin.H{"message": "Food updated", "food": food})
}

// DeleteFood removes a food and its ratings (admin only)
func DeleteFood(c *gin.Context) {
	var food models.Food
	if err := config.DB.First(&food, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Food not found"})
		return
	}
	config.DB.Where("food_id = ?", food.ID).Delete(&models.Rating{})
	config.DB.Delete(&food)
	c.JSON(http.StatusOK, gin.H{"message": "Food deleted"})
}
