package models

import "time"

// SkillRole tags a user/skill association as offered or wanted.
type SkillRole string

const (
	// SkillRoleOffered marks a skill the user can teach.
	SkillRoleOffered SkillRole = "offered"
	// SkillRoleWanted marks a skill the user wants to learn.
	SkillRoleWanted SkillRole = "wanted"
)

// UserSkill links a user to a catalog skill under a given role.
// A user may offer and want the same skill, but never hold the same
// (user, skill, role) triple twice.
type UserSkill struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_user_skill_role" json:"user_id"`
	SkillID     uint      `gorm:"not null;uniqueIndex:idx_user_skill_role" json:"skill_id"`
	Role        SkillRole `gorm:"type:varchar(20);not null;uniqueIndex:idx_user_skill_role" json:"role"`
	Proficiency string    `gorm:"size:20" json:"proficiency,omitempty"`
	CreatedAt   time.Time `json:"created_at"`

	Skill Skill `gorm:"foreignKey:SkillID" json:"skill,omitempty"`
}

// TableName specifies the table name for GORM
func (UserSkill) TableName() string {
	return "user_skills"
}
