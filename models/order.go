package models

import "time"

// OrderStatus represents all possible states of an order
type OrderStatus string

const (
	StatusPlaced         OrderStatus = "PLACED"
	StatusConfirmed      OrderStatus = "CONFIRMED"
	StatusPreparing      OrderStatus = "PREPARING"
	StatusOutForDelivery OrderStatus = "OUT_FOR_DELIVERY"
	StatusDelivered      OrderStatus = "DELIVERED"
	StatusCancelled      OrderStatus = "CANCELLED"
)

type Order struct {
	ID              uint                 `json:"id" gorm:"primaryKey"`
	OrderNumber     string               `json:"order_number" gorm:"uniqueIndex;not null"`
	CustomerID      uint                 `json:"customer_id" gorm:"not null"`
	Customer        User                 `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	Status          OrderStatus          `json:"status" gorm:"not null;default:'PLACED'"`
	TotalPrice      float64              `json:"total_price"`
	DeliveryAddress string               `json:"delivery_address" gorm:"not null"`
	Notes           string               `json:"notes"`
	EstimatedTime   int                  `json:"estimated_time_minutes"`
	Items           []OrderItem          `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	StatusHistory   []OrderStatusHistory `json:"status_history,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

type OrderItem struct {
	ID       uint    `json:"id" gorm:"primaryKey"`
	OrderID  uint    `json:"order_id" gorm:"not null"`
	FoodID   uint    `json:"food_id" gorm:"not null"`
	Food     Food    `json:"food,omitempty" gorm:"foreignKey:FoodID"`
	Quantity int     `json:"quantity" gorm:"not null"`
	Price    float64 `json:"price" gorm:"not null"` // snapshot price at time of order
	Name     string  `json:"name"`                  // snapshot name
}

// OrderStatusHistory tracks every status change for the audit trail
type OrderStatusHistory struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	OrderID    uint        `json:"order_id" gorm:"not null"`
	FromStatus OrderStatus `json:"from_status"`
	ToStatus   OrderStatus `json:"to_status" gorm:"not null"`
	ChangedBy  uint        `json:"changed_by"` // user ID who triggered the transition
	Note       string      `json:"note"`
	CreatedAt  time.Time   `json:"created_at"`
}
