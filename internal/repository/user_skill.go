package repository

import (
	"context"
	"strings"

	"skillswap/internal/models"

	"gorm.io/gorm"
)

// UserSkillRepository defines persistence operations for a user's skill associations.
type UserSkillRepository interface {
	ReplaceForUser(ctx context.Context, userID uint, offered, wanted []string) error
	SummaryForUser(ctx context.Context, userID uint) (*models.SkillSummary, error)
	HasSkill(ctx context.Context, userID, skillID uint, role models.SkillRole) (bool, error)
	OfferedByUser(ctx context.Context, userID uint) ([]models.Skill, error)
}

type userSkillRepository struct {
	db *gorm.DB
}

// NewUserSkillRepository returns a new UserSkillRepository implementation.
func NewUserSkillRepository(db *gorm.DB) UserSkillRepository {
	return &userSkillRepository{db: db}
}

// ReplaceForUser swaps out the user's entire association set for the given
// offered and wanted skill names in one transaction: resolve each non-blank
// name (creating missing skills), delete all existing rows for the user,
// insert the fresh set. On any failure nothing is visible.
func (r *userSkillRepository) ReplaceForUser(ctx context.Context, userID uint, offered, wanted []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rows, err := resolveAssociations(tx, userID, offered, models.SkillRoleOffered, nil)
		if err != nil {
			return err
		}
		rows, err = resolveAssociations(tx, userID, wanted, models.SkillRoleWanted, rows)
		if err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", userID).Delete(&models.UserSkill{}).Error; err != nil {
			return models.NewInternalError(err)
		}
		if len(rows) > 0 {
			if err := tx.Create(&rows).Error; err != nil {
				return models.NewInternalError(err)
			}
		}
		return nil
	})
}

// resolveAssociations maps names to association rows under one role,
// skipping blanks and in-role duplicates. Skills created for earlier names
// in the same call are found, not recreated, because creation is flushed
// before the next lookup.
func resolveAssociations(tx *gorm.DB, userID uint, names []string, role models.SkillRole, rows []models.UserSkill) ([]models.UserSkill, error) {
	seen := make(map[uint]bool)
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		skill, err := findOrCreateSkill(tx, name)
		if err != nil {
			return nil, err
		}
		if seen[skill.ID] {
			continue
		}
		seen[skill.ID] = true
		rows = append(rows, models.UserSkill{
			UserID:  userID,
			SkillID: skill.ID,
			Role:    role,
		})
	}
	return rows, nil
}

// SummaryForUser returns the user's associations grouped by role as the
// compact {offered, wanted} JSON shape.
func (r *userSkillRepository) SummaryForUser(ctx context.Context, userID uint) (*models.SkillSummary, error) {
	var associations []models.UserSkill
	if err := r.db.WithContext(ctx).
		Preload("Skill").
		Where("user_id = ?", userID).
		Order("id").
		Find(&associations).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	summary := &models.SkillSummary{
		Offered: []models.SkillRef{},
		Wanted:  []models.SkillRef{},
	}
	for _, a := range associations {
		switch a.Role {
		case models.SkillRoleOffered:
			summary.Offered = append(summary.Offered, a.Skill.Ref())
		case models.SkillRoleWanted:
			summary.Wanted = append(summary.Wanted, a.Skill.Ref())
		}
	}
	return summary, nil
}

func (r *userSkillRepository) HasSkill(ctx context.Context, userID, skillID uint, role models.SkillRole) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.UserSkill{}).
		Where("user_id = ? AND skill_id = ? AND role = ?", userID, skillID, role).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// OfferedByUser returns the skills the user offers, for swap-form dropdowns.
func (r *userSkillRepository) OfferedByUser(ctx context.Context, userID uint) ([]models.Skill, error) {
	var skills []models.Skill
	if err := r.db.WithContext(ctx).
		Joins("JOIN user_skills ON user_skills.skill_id = skills.id").
		Where("user_skills.user_id = ? AND user_skills.role = ?", userID, models.SkillRoleOffered).
		Order("skills.name").
		Find(&skills).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return skills, nil
}
