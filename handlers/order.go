package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"food-ordering-api/config"
	"food-ordering-api/middleware"
	"food-ordering-api/models"
	"food-ordering-api/statemachine"
)

type CheckoutRequest struct {
	DeliveryAddress string `json:"delivery_address" binding:"required"`
	Notes           string `json:"notes"`
}

// Checkout places an order from the caller's current cart and clears the
// cart once the order is created
func Checkout(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	store := Carts.For(c.Request.Context(), cartOwner(c))
	lines := store.Items()
	if len(lines) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
		return
	}

	var orderItems []models.OrderItem
	for _, line := range lines {
		foodID, err := strconv.ParseUint(line.ID, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item in cart: " + line.ID})
			return
		}
		orderItems = append(orderItems, models.OrderItem{
			FoodID:   uint(foodID),
			Quantity: line.Quantity,
			Price:    line.UnitPrice, // snapshot taken when the line was added
			Name:     line.Name,
		})
	}

	// Estimated delivery: base 30 min plus 5 per distinct line
	estimatedTime := 30 + (5 * len(lines))

	order := models.Order{
		OrderNumber:     uuid.NewString(),
		CustomerID:      customerID,
		Status:          models.StatusPlaced,
		TotalPrice:      store.Total(),
		DeliveryAddress: req.DeliveryAddress,
		Notes:           req.Notes,
		EstimatedTime:   estimatedTime,
		Items:           orderItems,
	}

	if err := config.DB.Create(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
		return
	}

	history := models.OrderStatusHistory{
		OrderID:   order.ID,
		ToStatus:  models.StatusPlaced,
		ChangedBy: customerID,
		Note:      "Order placed by customer",
	}
	config.DB.Create(&history)

	// Checkout complete: the cart is done
	store.Clear(c.Request.Context())

	config.DB.Preload("Items.Food").First(&order, order.ID)

	c.JSON(http.StatusCreated, gin.H{
		"message":        "Order placed successfully",
		"order":          order,
		"estimated_time": estimatedTime,
	})
}

// GetMyOrders returns all orders for the logged-in customer
func GetMyOrders(c *gin.Context) {
	customerID := middleware.GetUserID(c)
	var orders []models.Order
	config.DB.Preload("Items.Food").
		Where("customer_id = ?", customerID).
		Order("created_at desc").
		Find(&orders)
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// GetOrderDetail returns a single order's full detail with history
func GetOrderDetail(c *gin.Context) {
	customerID := middleware.GetUserID(c)
	orderID := c.Param("id")

	var order models.Order
	if err := config.DB.
		Preload("Items.Food").
		Preload("StatusHistory").
		First(&order, orderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.CustomerID != customerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to you"})
		return
	}

	elapsed := time.Since(order.CreatedAt).Minutes()
	c.JSON(http.StatusOK, gin.H{
		"order":           order,
		"minutes_elapsed": int(elapsed),
	})
}

// CancelOrder cancels an order (customer can cancel PLACED or CONFIRMED)
func CancelOrder(c *gin.Context) {
	customerID := middleware.GetUserID(c)
	orderID := c.Param("id")

	var order models.Order
	if err := config.DB.First(&order, orderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.CustomerID != customerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to you"})
		return
	}

	if err := statemachine.CanTransition(order.Status, models.StatusCancelled, "customer"); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":         "Cannot cancel order",
			"reason":        err.Error(),
			"current_state": order.Status,
		})
		return
	}

	prevStatus := order.Status
	config.DB.Model(&order).Update("status", models.StatusCancelled)

	history := models.OrderStatusHistory{
		OrderID:    order.ID,
		FromStatus: prevStatus,
		ToStatus:   models.StatusCancelled,
		ChangedBy:  customerID,
		Note:       "Order cancelled by customer",
	}
	config.DB.Create(&history)

	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled successfully", "order_id": order.ID})
}
