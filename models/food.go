package models

import "time"

type Food struct {
	ID              uint     `json:"id" gorm:"primaryKey"`
	Name            string   `json:"name" gorm:"not null"`
	Description     string   `json:"description"`
	Price           float64  `json:"price" gorm:"not null"`
	Image           string   `json:"image"`
	Category        string   `json:"category"`
	RestaurantLabel string   `json:"restaurant_label"`
	CookTimeMinutes int      `json:"cook_time_minutes"`
	IsAvailable     bool     `json:"is_available" gorm:"default:true"`
	IsVeg           bool     `json:"is_veg" gorm:"default:false"`
	Ratings         []Rating `json:"ratings,omitempty" gorm:"foreignKey:FoodID"`

	// Derived from Ratings; recomputed on every rating mutation,
	// never written independently.
	AverageRating float64 `json:"average_rating" gorm:"default:0"`
	TotalRatings  int     `json:"total_ratings" gorm:"default:0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Rating is one user's rating of one food. At most one row exists per
// (food, user) pair; a repeat submission updates the row in place.
type Rating struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	FoodID    uint      `json:"food_id" gorm:"not null;index;uniqueIndex:idx_food_user"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_food_user"`
	UserName  string    `json:"user_name"` // display snapshot at rating time
	Rating    int       `json:"rating" gorm:"not null"`
	Review    string    `json:"review"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
