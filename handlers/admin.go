package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"food-ordering-api/config"
	"food-ordering-api/middleware"
	"food-ordering-api/models"
	"food-ordering-api/statemachine"
)

// AdminGetAllOrders returns all orders with full detail (admin only)
func AdminGetAllOrders(c *gin.Context) {
	var orders []models.Order
	query := config.DB.Preload("Items.Food").
		Preload("Customer").Preload("StatusHistory")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if customerID := c.Query("customer_id"); customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}

	query.Order("created_at desc").Find(&orders)

	// Admin dashboard: aggregate by status
	summary := map[string]int{}
	var totalRevenue float64
	for _, o := range orders {
		summary[string(o.Status)]++
		if o.Status == models.StatusDelivered {
			totalRevenue += o.TotalPrice
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"order_summary": summary,
		"total_revenue": totalRevenue,
		"count":         len(orders),
		"orders":        orders,
	})
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
	Note   string             `json:"note"`
}

// AdminUpdateOrderStatus advances an order through the state machine
func AdminUpdateOrderStatus(c *gin.Context) {
	adminID := middleware.GetUserID(c)
	orderID := c.Param("id")

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var order models.Order
	if err := config.DB.First(&order, orderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	if err := statemachine.CanTransition(order.Status, req.Status, "admin"); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":         "Cannot update order status",
			"reason":        err.Error(),
			"current_state": order.Status,
		})
		return
	}

	prevStatus := order.Status
	config.DB.Model(&order).Update("status", req.Status)

	history := models.OrderStatusHistory{
		OrderID:    order.ID,
		FromStatus: prevStatus,
		ToStatus:   req.Status,
		ChangedBy:  adminID,
		Note:       req.Note,
	}
	config.DB.Create(&history)

	c.JSON(http.StatusOK, gin.H{
		"message":         "Order status updated",
		"order_id":        order.ID,
		"previous_status": prevStatus,
		"new_status":      req.Status,
	})
}

// AdminGetAllUsers returns all users (admin only)
func AdminGetAllUsers(c *gin.Context) {
	var users []models.User
	query := config.DB
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	query.Find(&users)
	c.JSON(http.StatusOK, gin.H{"count": len(users), "users": users})
}
