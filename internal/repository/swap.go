package repository

import (
	"context"
	"errors"
	"time"

	"skillswap/internal/models"

	"gorm.io/gorm"
)

// SwapPageSize is the page size for received swap-request listings.
const SwapPageSize = 10

// SwapRepository defines persistence operations for swap requests.
type SwapRepository interface {
	Create(ctx context.Context, req *models.SwapRequest) error
	GetByID(ctx context.Context, id uint) (*models.SwapRequest, error)
	HasPendingDuplicate(ctx context.Context, requesterID, receiverID, offeredSkillID, wantedSkillID uint) (bool, error)
	Received(ctx context.Context, userID uint, status models.SwapStatus, page int) ([]models.SwapRequest, int64, error)
	Sent(ctx context.Context, userID uint) ([]models.SwapRequest, error)
	TransitionFromPending(ctx context.Context, id uint, to models.SwapStatus) error
	Delete(ctx context.Context, id uint) error
	Counts(ctx context.Context) (total, pending int64, err error)
	Recent(ctx context.Context, limit int) ([]models.SwapRequest, error)
}

type swapRepository struct {
	db *gorm.DB
}

// NewSwapRepository returns a new SwapRepository implementation.
func NewSwapRepository(db *gorm.DB) SwapRepository {
	return &swapRepository{db: db}
}

func (r *swapRepository) Create(ctx context.Context, req *models.SwapRequest) error {
	if err := r.db.WithContext(ctx).Create(req).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *swapRepository) GetByID(ctx context.Context, id uint) (*models.SwapRequest, error) {
	var req models.SwapRequest
	if err := r.db.WithContext(ctx).
		Preload("Requester").
		Preload("Receiver").
		Preload("OfferedSkill").
		Preload("WantedSkill").
		First(&req, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Swap request", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &req, nil
}

func (r *swapRepository) HasPendingDuplicate(ctx context.Context, requesterID, receiverID, offeredSkillID, wantedSkillID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.SwapRequest{}).
		Where("requester_id = ? AND receiver_id = ? AND offered_skill_id = ? AND wanted_skill_id = ? AND status = ?",
			requesterID, receiverID, offeredSkillID, wantedSkillID, models.SwapStatusPending).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *swapRepository) Received(ctx context.Context, userID uint, status models.SwapStatus, page int) ([]models.SwapRequest, int64, error) {
	if page < 1 {
		page = 1
	}

	q := r.db.WithContext(ctx).
		Model(&models.SwapRequest{}).
		Where("receiver_id = ?", userID)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var requests []models.SwapRequest
	if err := q.
		Preload("Requester").
		Preload("OfferedSkill").
		Preload("WantedSkill").
		Order("created_at DESC").
		Offset((page - 1) * SwapPageSize).
		Limit(SwapPageSize).
		Find(&requests).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	return requests, total, nil
}

func (r *swapRepository) Sent(ctx context.Context, userID uint) ([]models.SwapRequest, error) {
	var requests []models.SwapRequest
	if err := r.db.WithContext(ctx).
		Preload("Receiver").
		Preload("OfferedSkill").
		Preload("WantedSkill").
		Where("requester_id = ?", userID).
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return requests, nil
}

// TransitionFromPending moves the request out of pending in one guarded
// update. The WHERE clause re-checks the status inside the statement, so of
// two concurrent transitions exactly one commits; the loser sees zero rows
// changed and gets a conflict.
func (r *swapRepository) TransitionFromPending(ctx context.Context, id uint, to models.SwapStatus) error {
	res := r.db.WithContext(ctx).
		Model(&models.SwapRequest{}).
		Where("id = ? AND status = ?", id, models.SwapStatusPending).
		Updates(map[string]interface{}{
			"status":     to,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewConflictError("This request has already been handled")
	}
	return nil
}

func (r *swapRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.SwapRequest{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *swapRepository) Counts(ctx context.Context) (int64, int64, error) {
	var total, pending int64
	if err := r.db.WithContext(ctx).Model(&models.SwapRequest{}).Count(&total).Error; err != nil {
		return 0, 0, models.NewInternalError(err)
	}
	if err := r.db.WithContext(ctx).Model(&models.SwapRequest{}).
		Where("status = ?", models.SwapStatusPending).Count(&pending).Error; err != nil {
		return 0, 0, models.NewInternalError(err)
	}
	return total, pending, nil
}

func (r *swapRepository) Recent(ctx context.Context, limit int) ([]models.SwapRequest, error) {
	var requests []models.SwapRequest
	if err := r.db.WithContext(ctx).
		Preload("Requester").
		Preload("Receiver").
		Order("created_at DESC").
		Limit(limit).
		Find(&requests).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return requests, nil
}
