package repository

import (
	"context"

	"skillswap/internal/models"

	"gorm.io/gorm"
)

// AdminMessageRepository defines persistence operations for platform announcements.
type AdminMessageRepository interface {
	Create(ctx context.Context, msg *models.AdminMessage) error
	List(ctx context.Context, limit int) ([]models.AdminMessage, error)
}

type adminMessageRepository struct {
	db *gorm.DB
}

// NewAdminMessageRepository returns a new AdminMessageRepository implementation.
func NewAdminMessageRepository(db *gorm.DB) AdminMessageRepository {
	return &adminMessageRepository{db: db}
}

func (r *adminMessageRepository) Create(ctx context.Context, msg *models.AdminMessage) error {
	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *adminMessageRepository) List(ctx context.Context, limit int) ([]models.AdminMessage, error) {
	q := r.db.WithContext(ctx).
		Preload("Creator").
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var messages []models.AdminMessage
	if err := q.Find(&messages).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return messages, nil
}
