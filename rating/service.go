package rating

import (
	"context"
	"errors"
	"sync"
	"unicode/utf8"

	"gorm.io/gorm"

	"food-ordering-api/models"
)

var (
	ErrInvalidRating = errors.New("rating must be an integer between 1 and 5")
	ErrReviewTooLong = errors.New("review must be at most 500 characters")
	ErrFoodNotFound  = errors.New("food not found")
	ErrNotFound      = errors.New("rating not found")
)

// Summary is the derived aggregate snapshot for one food.
type Summary struct {
	AverageRating float64     `json:"average_rating"`
	TotalRatings  int         `json:"total_ratings"`
	Distribution  map[int]int `json:"distribution"`
}

// ListOptions control pagination and ordering of a ratings page.
type ListOptions struct {
	Page     int
	PageSize int
	SortBy   string // "created_at" or "rating"
	Order    string // "asc" or "desc"
}

// Service owns rating mutations for food entities. The load, mutate,
// recompute, persist cycle for one food runs under that food's mutex so
// concurrent raters cannot lose updates.
type Service struct {
	db *gorm.DB

	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

// NewService creates a rating service over db.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db, locks: make(map[uint]*sync.Mutex)}
}

func (s *Service) foodLock(foodID uint) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[foodID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[foodID] = l
	}
	return l
}

// Submit records a user's rating of a food. A repeat submission by the
// same user overwrites the existing record in place rather than adding a
// second one. Returns the refreshed aggregate.
func (s *Service) Submit(ctx context.Context, foodID, userID uint, userName string, stars int, review string) (*Summary, error) {
	if stars < 1 || stars > 5 {
		return nil, ErrInvalidRating
	}
	if utf8.RuneCountInString(review) > MaxReviewLength {
		return nil, ErrReviewTooLong
	}

	lock := s.foodLock(foodID)
	lock.Lock()
	defer lock.Unlock()

	var summary *Summary
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var food models.Food
		if err := tx.First(&food, foodID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrFoodNotFound
			}
			return err
		}

		var rec models.Rating
		err := tx.Where("food_id = ? AND user_id = ?", foodID, userID).First(&rec).Error
		switch {
		case err == nil:
			rec.Rating = stars
			rec.Review = review
			rec.UserName = userName
			if err := tx.Save(&rec).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			rec = models.Rating{
				FoodID:   foodID,
				UserID:   userID,
				UserName: userName,
				Rating:   stars,
				Review:   review,
			}
			if err := tx.Create(&rec).Error; err != nil {
				return err
			}
		default:
			return err
		}

		var err2 error
		summary, err2 = s.refreshAggregate(tx, &food)
		return err2
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// Delete removes the caller's rating of a food. Deleting a rating that
// does not exist is ErrNotFound; nothing changes in that case.
func (s *Service) Delete(ctx context.Context, foodID, userID uint) (*Summary, error) {
	lock := s.foodLock(foodID)
	lock.Lock()
	defer lock.Unlock()

	var summary *Summary
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var food models.Food
		if err := tx.First(&food, foodID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrFoodNotFound
			}
			return err
		}

		res := tx.Where("food_id = ? AND user_id = ?", foodID, userID).Delete(&models.Rating{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}

		var err error
		summary, err = s.refreshAggregate(tx, &food)
		return err
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// refreshAggregate recomputes the food's derived columns from its rating
// rows. Invoked after every mutation; the columns are never written any
// other way.
func (s *Service) refreshAggregate(tx *gorm.DB, food *models.Food) (*Summary, error) {
	var stars []int
	if err := tx.Model(&models.Rating{}).
		Where("food_id = ?", food.ID).
		Pluck("rating", &stars).Error; err != nil {
		return nil, err
	}

	avg, total := Recompute(stars)
	if err := tx.Model(food).Updates(map[string]interface{}{
		"average_rating": avg,
		"total_ratings":  total,
	}).Error; err != nil {
		return nil, err
	}

	return &Summary{
		AverageRating: avg,
		TotalRatings:  total,
		Distribution:  Distribution(stars),
	}, nil
}

// List returns one page of a food's ratings plus the aggregate summary.
func (s *Service) List(ctx context.Context, foodID uint, opts ListOptions) ([]models.Rating, *Summary, error) {
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.PageSize < 1 || opts.PageSize > 100 {
		opts.PageSize = 10
	}
	sortBy := "created_at"
	if opts.SortBy == "rating" {
		sortBy = "rating"
	}
	order := "desc"
	if opts.Order == "asc" {
		order = "asc"
	}

	var food models.Food
	if err := s.db.WithContext(ctx).First(&food, foodID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrFoodNotFound
		}
		return nil, nil, err
	}

	var stars []int
	if err := s.db.WithContext(ctx).Model(&models.Rating{}).
		Where("food_id = ?", foodID).
		Pluck("rating", &stars).Error; err != nil {
		return nil, nil, err
	}

	var records []models.Rating
	if err := s.db.WithContext(ctx).
		Where("food_id = ?", foodID).
		Order(sortBy + " " + order).
		Offset((opts.Page - 1) * opts.PageSize).
		Limit(opts.PageSize).
		Find(&records).Error; err != nil {
		return nil, nil, err
	}

	avg, total := Recompute(stars)
	return records, &Summary{
		AverageRating: avg,
		TotalRatings:  total,
		Distribution:  Distribution(stars),
	}, nil
}
