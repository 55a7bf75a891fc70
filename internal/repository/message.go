package repository

import (
	"context"

	"skillswap/internal/models"

	"gorm.io/gorm"
)

// MessageRepository defines persistence operations for swap-scoped messages.
type MessageRepository interface {
	Create(ctx context.Context, msg *models.Message) error
	ForSwap(ctx context.Context, swapID uint) ([]models.Message, error)
	MarkRead(ctx context.Context, swapID, receiverID uint) error
	UnreadCount(ctx context.Context, userID uint) (int64, error)
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository returns a new MessageRepository implementation.
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, msg *models.Message) error {
	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// ForSwap returns the swap's thread oldest-first. Creation order is the
// display order; messages are never edited or reordered.
func (r *messageRepository) ForSwap(ctx context.Context, swapID uint) ([]models.Message, error) {
	var messages []models.Message
	if err := r.db.WithContext(ctx).
		Preload("Sender").
		Where("swap_request_id = ?", swapID).
		Order("created_at ASC, id ASC").
		Find(&messages).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return messages, nil
}

// MarkRead flags every unread message addressed to the viewer in the swap's
// thread. Called as a side effect of reading the thread.
func (r *messageRepository) MarkRead(ctx context.Context, swapID, receiverID uint) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("swap_request_id = ? AND receiver_id = ? AND is_read = ?", swapID, receiverID, false).
		Update("is_read", true).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *messageRepository) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("receiver_id = ? AND is_read = ?", userID, false).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
