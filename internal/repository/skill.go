package repository

import (
	"context"
	"errors"

	"skillswap/internal/cache"
	"skillswap/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SkillRepository defines persistence operations for the skill catalog.
type SkillRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Skill, error)
	FindOrCreate(ctx context.Context, name string) (*models.Skill, error)
	ApprovedCatalog(ctx context.Context) ([]models.SkillRef, error)
	AllNames(ctx context.Context) ([]string, error)
	Unapproved(ctx context.Context, limit int) ([]models.Skill, error)
	Approve(ctx context.Context, id uint) error
	Delete(ctx context.Context, id uint) error
}

type skillRepository struct {
	db *gorm.DB
}

// NewSkillRepository returns a new SkillRepository implementation.
func NewSkillRepository(db *gorm.DB) SkillRepository {
	return &skillRepository{db: db}
}

func (r *skillRepository) GetByID(ctx context.Context, id uint) (*models.Skill, error) {
	var skill models.Skill
	if err := r.db.WithContext(ctx).First(&skill, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Skill", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &skill, nil
}

// FindOrCreate resolves a skill name to a row, creating it (approved, no
// category) when absent. The insert goes first with a conflict-tolerant
// clause and falls back to a lookup, so concurrent writers of the same name
// converge on one row instead of racing a check-then-insert.
func (r *skillRepository) FindOrCreate(ctx context.Context, name string) (*models.Skill, error) {
	return findOrCreateSkill(r.db.WithContext(ctx), name)
}

func findOrCreateSkill(tx *gorm.DB, name string) (*models.Skill, error) {
	skill := models.Skill{Name: name, IsApproved: true}

	// DO NOTHING instead of erroring on conflict: a raised unique violation
	// would abort an enclosing transaction on Postgres, leaving no way to
	// recover with a lookup.
	res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&skill)
	if res.Error != nil {
		return nil, models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		// The name already exists (or another writer inserted it first).
		if err := tx.Where("name = ?", name).First(&skill).Error; err != nil {
			return nil, models.NewInternalError(err)
		}
	}
	return &skill, nil
}

// ApprovedCatalog returns the cached {id, name} listing of approved skills.
func (r *skillRepository) ApprovedCatalog(ctx context.Context) ([]models.SkillRef, error) {
	var refs []models.SkillRef

	err := cache.Aside(ctx, cache.SkillCatalogKey, &refs, cache.SkillCatalogTTL, func() error {
		var skills []models.Skill
		if err := r.db.WithContext(ctx).
			Where("is_approved = ?", true).
			Order("name").
			Find(&skills).Error; err != nil {
			return models.NewInternalError(err)
		}
		refs = make([]models.SkillRef, 0, len(skills))
		for _, s := range skills {
			refs = append(refs, s.Ref())
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return refs, nil
}

// AllNames returns every skill name, approved or not, for profile-edit autocomplete.
func (r *skillRepository) AllNames(ctx context.Context) ([]string, error) {
	var names []string
	if err := r.db.WithContext(ctx).
		Model(&models.Skill{}).
		Order("name").
		Pluck("name", &names).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return names, nil
}

func (r *skillRepository) Unapproved(ctx context.Context, limit int) ([]models.Skill, error) {
	var skills []models.Skill
	if err := r.db.WithContext(ctx).
		Where("is_approved = ?", false).
		Limit(limit).
		Find(&skills).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return skills, nil
}

func (r *skillRepository) Approve(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).
		Model(&models.Skill{}).
		Where("id = ?", id).
		Update("is_approved", true)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Skill", id)
	}
	return nil
}

// Delete removes the skill and every association referencing it in one
// transaction; a failure rolls both back.
func (r *skillRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var skill models.Skill
		if err := tx.First(&skill, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Skill", id)
			}
			return models.NewInternalError(err)
		}
		if err := tx.Where("skill_id = ?", id).Delete(&models.UserSkill{}).Error; err != nil {
			return models.NewInternalError(err)
		}
		if err := tx.Delete(&models.Skill{}, id).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	return err
}
