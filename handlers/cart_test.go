package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"food-ordering-api/cart"
	"food-ordering-api/config"
	"food-ordering-api/models"
	"food-ordering-api/rating"
)

// fakeAuth injects claims the way middleware.AuthRequired would after
// verifying a token.
func fakeAuth(userID uint, name string, role models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Set("email", "test@example.com")
		c.Set("userName", name)
		c.Set("role", string(role))
		c.Next()
	}
}

func setupTestApp(t *testing.T) (*gin.Engine, models.Food) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Food{}, &models.Rating{},
		&models.Order{}, &models.OrderItem{}, &models.OrderStatusHistory{},
	))
	config.DB = db

	food := models.Food{
		Name:            "Ramen",
		Description:     "Tonkotsu",
		Price:           9.75,
		RestaurantLabel: "Noodle House",
		CookTimeMinutes: 15,
		IsAvailable:     true,
	}
	require.NoError(t, db.Create(&food).Error)

	Setup(cart.NewManager(cart.NewMemoryPersister()))
	SetupRatings(rating.NewService(db))

	r := gin.New()
	api := r.Group("/api", fakeAuth(1, "Tester", models.RoleCustomer))
	{
		api.GET("/cart", GetCart)
		api.POST("/cart/items", AddToCart)
		api.PUT("/cart/items/:itemId", UpdateCartItem)
		api.DELETE("/cart/items/:itemId", RemoveCartItem)
		api.DELETE("/cart", ClearCart)
		api.POST("/orders", Checkout)
		api.POST("/foods/:id/ratings", SubmitRating)
		api.DELETE("/foods/:id/ratings", DeleteRating)
		api.GET("/foods/:id/ratings", ListRatings)
	}
	return r, food
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type cartBody struct {
	Items []cart.LineItem `json:"items"`
	Total float64         `json:"total"`
	Count int             `json:"count"`
}

func decodeCart(t *testing.T, w *httptest.ResponseRecorder) cartBody {
	t.Helper()
	var body cartBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestCartFlow(t *testing.T) {
	r, food := setupTestApp(t)

	// Add twice: quantities merge
	w := doJSON(t, r, http.MethodPost, "/api/cart/items", gin.H{"food_id": food.ID, "quantity": 1})
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, r, http.MethodPost, "/api/cart/items", gin.H{"food_id": food.ID, "quantity": 2})
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeCart(t, w)
	require.Len(t, body.Items, 1)
	assert.Equal(t, 3, body.Items[0].Quantity)
	assert.Equal(t, 3, body.Count)
	assert.InDelta(t, 29.25, body.Total, 1e-9)
	assert.Equal(t, "Noodle House", body.Items[0].RestaurantLabel)

	// Absolute set
	itemID := body.Items[0].ID
	w = doJSON(t, r, http.MethodPut, "/api/cart/items/"+itemID, gin.H{"quantity": 5})
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeCart(t, w)
	assert.Equal(t, 5, body.Items[0].Quantity)

	// Quantity 0 removes the line
	w = doJSON(t, r, http.MethodPut, "/api/cart/items/"+itemID, gin.H{"quantity": 0})
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeCart(t, w)
	assert.Empty(t, body.Items)
	assert.Equal(t, 0, body.Count)
}

func TestAddToCart_DefaultQuantity(t *testing.T) {
	r, food := setupTestApp(t)

	w := doJSON(t, r, http.MethodPost, "/api/cart/items", gin.H{"food_id": food.ID})
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeCart(t, w)
	require.Len(t, body.Items, 1)
	assert.Equal(t, 1, body.Items[0].Quantity)
}

func TestAddToCart_UnknownFood(t *testing.T) {
	r, _ := setupTestApp(t)

	w := doJSON(t, r, http.MethodPost, "/api/cart/items", gin.H{"food_id": 9999})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCheckout_ClearsCart(t *testing.T) {
	r, food := setupTestApp(t)

	doJSON(t, r, http.MethodPost, "/api/cart/items", gin.H{"food_id": food.ID, "quantity": 2})

	w := doJSON(t, r, http.MethodPost, "/api/orders", gin.H{"delivery_address": "1 Main St"})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Order models.Order `json:"order"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.InDelta(t, 19.50, resp.Order.TotalPrice, 1e-9)
	require.Len(t, resp.Order.Items, 1)
	assert.Equal(t, "Ramen", resp.Order.Items[0].Name)
	assert.InDelta(t, 9.75, resp.Order.Items[0].Price, 1e-9)

	// Checkout complete means the cart is empty again
	w = doJSON(t, r, http.MethodGet, "/api/cart", nil)
	body := decodeCart(t, w)
	assert.Empty(t, body.Items)
}

func TestCheckout_EmptyCartRejected(t *testing.T) {
	r, _ := setupTestApp(t)

	w := doJSON(t, r, http.MethodPost, "/api/orders", gin.H{"delivery_address": "1 Main St"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitRating_Endpoint(t *testing.T) {
	r, food := setupTestApp(t)
	path := fmt.Sprintf("/api/foods/%d/ratings", food.ID)

	w := doJSON(t, r, http.MethodPost, path, gin.H{"rating": 4, "review": "solid"})
	require.Equal(t, http.StatusOK, w.Code)

	// Same user again: overwrite, still one rating
	w = doJSON(t, r, http.MethodPost, path, gin.H{"rating": 2})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Summary rating.Summary `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Summary.TotalRatings)
	assert.Equal(t, 2.0, resp.Summary.AverageRating)
}

func TestSubmitRating_OutOfRangeRejected(t *testing.T) {
	r, food := setupTestApp(t)
	path := fmt.Sprintf("/api/foods/%d/ratings", food.ID)

	w := doJSON(t, r, http.MethodPost, path, gin.H{"rating": 6})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, path, gin.H{"rating": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteRating_AbsentIsNotFound(t *testing.T) {
	r, food := setupTestApp(t)

	w := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/foods/%d/ratings", food.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
