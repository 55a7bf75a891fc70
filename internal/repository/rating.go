package repository

import (
	"context"
	"errors"

	"skillswap/internal/cache"
	"skillswap/internal/models"

	"gorm.io/gorm"
)

// RatingRepository defines persistence operations for swap ratings.
type RatingRepository interface {
	GetBySwapAndRater(ctx context.Context, swapID, raterID uint) (*models.Rating, error)
	Upsert(ctx context.Context, rating *models.Rating) error
	ReceivedByUser(ctx context.Context, userID uint, limit int) ([]models.Rating, error)
	SummaryForUser(ctx context.Context, userID uint) (*models.RatingSummary, error)
}

type ratingRepository struct {
	db *gorm.DB
}

// NewRatingRepository returns a new RatingRepository implementation.
func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) GetBySwapAndRater(ctx context.Context, swapID, raterID uint) (*models.Rating, error) {
	var rating models.Rating
	if err := r.db.WithContext(ctx).
		Where("swap_request_id = ? AND rater_id = ?", swapID, raterID).
		First(&rating).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &rating, nil
}

// Upsert writes the rating under the (swap, rater) uniqueness rule: an
// existing row is updated in place, otherwise a new row is inserted. A
// concurrent insert of the same pair loses to the unique index and is
// retried as an update.
func (r *ratingRepository) Upsert(ctx context.Context, rating *models.Rating) error {
	existing, err := r.GetBySwapAndRater(ctx, rating.SwapRequestID, rating.RaterID)
	if err != nil {
		return err
	}

	if existing != nil {
		existing.Score = rating.Score
		existing.Feedback = rating.Feedback
		if err := r.db.WithContext(ctx).Save(existing).Error; err != nil {
			return models.NewInternalError(err)
		}
		*rating = *existing
		return nil
	}

	if err := r.db.WithContext(ctx).Create(rating).Error; err != nil {
		if isUniqueConstraintError(err) {
			// Lost a race with another submission of the same pair.
			return r.Upsert(ctx, rating)
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *ratingRepository) ReceivedByUser(ctx context.Context, userID uint, limit int) ([]models.Rating, error) {
	q := r.db.WithContext(ctx).
		Preload("Rater").
		Where("rated_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var ratings []models.Rating
	if err := q.Find(&ratings).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ratings, nil
}

// SummaryForUser returns the cached average score and count of the user's
// received ratings.
func (r *ratingRepository) SummaryForUser(ctx context.Context, userID uint) (*models.RatingSummary, error) {
	var summary models.RatingSummary
	key := cache.UserRatingKey(userID)

	err := cache.Aside(ctx, key, &summary, cache.RatingTTL, func() error {
		var row struct {
			Average float64
			Count   int64
		}
		if err := r.db.WithContext(ctx).
			Model(&models.Rating{}).
			Select("COALESCE(AVG(score), 0) AS average, COUNT(*) AS count").
			Where("rated_id = ?", userID).
			Scan(&row).Error; err != nil {
			return models.NewInternalError(err)
		}
		summary.Average = row.Average
		summary.Count = row.Count
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &summary, nil
}
