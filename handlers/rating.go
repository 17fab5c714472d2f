package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"food-ordering-api/middleware"
	"food-ordering-api/rating"
)

// Ratings is wired once from main before routes are served.
var Ratings *rating.Service

// SetupRatings injects the rating service.
func SetupRatings(svc *rating.Service) {
	Ratings = svc
}

func foodIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid food id"})
		return 0, false
	}
	return uint(id), true
}

type SubmitRatingRequest struct {
	Rating int    `json:"rating" binding:"required,min=1,max=5"`
	Review string `json:"review" binding:"omitempty,max=500"`
}

// SubmitRating records the caller's rating of a food. Rating the same
// food twice updates the earlier rating instead of adding a second one.
func SubmitRating(c *gin.Context) {
	foodID, ok := foodIDParam(c)
	if !ok {
		return
	}

	var req SubmitRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	summary, err := Ratings.Submit(
		c.Request.Context(),
		foodID,
		middleware.GetUserID(c),
		middleware.GetUserName(c),
		req.Rating,
		req.Review,
	)
	if err != nil {
		switch {
		case errors.Is(err, rating.ErrFoodNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Food not found"})
		case errors.Is(err, rating.ErrInvalidRating), errors.Is(err, rating.ErrReviewTooLong):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save rating"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Rating saved",
		"summary": summary,
	})
}

// DeleteRating removes the caller's rating of a food
func DeleteRating(c *gin.Context) {
	foodID, ok := foodIDParam(c)
	if !ok {
		return
	}

	summary, err := Ratings.Delete(c.Request.Context(), foodID, middleware.GetUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, rating.ErrFoodNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Food not found"})
		case errors.Is(err, rating.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "You have not rated this food"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete rating"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Rating deleted",
		"summary": summary,
	})
}

// ListRatings returns one page of a food's ratings plus the aggregate
// summary (public)
func ListRatings(c *gin.Context) {
	foodID, ok := foodIDParam(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}
	opts := rating.ListOptions{
		Page:     page,
		PageSize: pageSize,
		SortBy:   c.Query("sort_by"),
		Order:    c.Query("order"),
	}

	records, summary, err := Ratings.List(c.Request.Context(), foodID, opts)
	if err != nil {
		if errors.Is(err, rating.ErrFoodNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Food not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list ratings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"page":      opts.Page,
		"page_size": opts.PageSize,
		"count":     len(records),
		"ratings":   records,
		"summary":   summary,
	})
}
