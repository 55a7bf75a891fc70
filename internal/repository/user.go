// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"
	"strings"

	"skillswap/internal/cache"
	"skillswap/internal/models"

	"gorm.io/gorm"
)

// BrowsePageSize is the fixed page size for the public browse listing.
const BrowsePageSize = 6

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Browse(ctx context.Context, query, availability string, page int) ([]models.User, int64, error)
	AvailabilityOptions(ctx context.Context) ([]string, error)
	Counts(ctx context.Context) (total, banned int64, err error)
	Recent(ctx context.Context, limit int) ([]models.User, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// GetByID reads the identity record through the cache; it backs both the
// per-request session lookup and profile views.
func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	key := cache.UserKey(id)

	err := cache.Aside(ctx, key, &user, cache.UserTTL, func() error {
		if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("User", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Username already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

// Update persists the mutable profile and moderation columns. Credential and
// identity columns are never written here: cached copies of the record carry
// an empty password hash, so a whole-row save would wipe it.
func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).
		Model(user).
		Select("name", "location", "profile_photo", "availability", "is_public", "is_banned").
		Updates(*user).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Browse returns one page of public, non-banned users matching the free-text
// query against name, location, or an approved skill name, optionally
// narrowed by an availability substring. Newest registrations first.
func (r *userRepository) Browse(ctx context.Context, query, availability string, page int) ([]models.User, int64, error) {
	if page < 1 {
		page = 1
	}

	q := r.db.WithContext(ctx).Model(&models.User{}).
		Where("is_public = ? AND is_banned = ?", true, false)

	if query != "" {
		pattern := "%" + query + "%"
		skillMatch := r.db.Table("user_skills").
			Select("user_skills.user_id").
			Joins("JOIN skills ON skills.id = user_skills.skill_id").
			Where("skills.is_approved = ? AND LOWER(skills.name) LIKE LOWER(?)", true, pattern)

		q = q.Where(
			"LOWER(name) LIKE LOWER(?) OR LOWER(location) LIKE LOWER(?) OR id IN (?)",
			pattern, pattern, skillMatch,
		)
	}

	if availability != "" {
		q = q.Where("LOWER(availability) LIKE LOWER(?)", "%"+availability+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var users []models.User
	if err := q.
		Preload("Skills.Skill").
		Order("created_at DESC").
		Offset((page - 1) * BrowsePageSize).
		Limit(BrowsePageSize).
		Find(&users).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	return users, total, nil
}

// AvailabilityOptions returns the distinct availability strings of eligible
// users, cached for the browse filter dropdown.
func (r *userRepository) AvailabilityOptions(ctx context.Context) ([]string, error) {
	var options []string

	err := cache.Aside(ctx, cache.AvailabilityKey, &options, cache.AvailabilityTTL, func() error {
		if err := r.db.WithContext(ctx).
			Model(&models.User{}).
			Where("availability <> '' AND is_public = ? AND is_banned = ?", true, false).
			Distinct().
			Order("availability").
			Pluck("availability", &options).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return options, nil
}

func (r *userRepository) Counts(ctx context.Context) (int64, int64, error) {
	var total, banned int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Count(&total).Error; err != nil {
		return 0, 0, models.NewInternalError(err)
	}
	if err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("is_banned = ?", true).Count(&banned).Error; err != nil {
		return 0, 0, models.NewInternalError(err)
	}
	return total, banned, nil
}

func (r *userRepository) Recent(ctx context.Context, limit int) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	// PostgreSQL unique violation SQLSTATE 23505; SQLite reports "UNIQUE constraint failed"
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}
