package models

import "time"

// Skill is a named entry in the global skill catalog. Names are unique;
// lookups during profile edits find-or-create rather than duplicate.
type Skill struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"size:100;unique;not null" json:"name"`
	Category   string    `gorm:"size:50" json:"category,omitempty"`
	// No column default, same reason as User.IsPublic: an explicit false
	// must survive the insert.
	IsApproved bool      `gorm:"not null;index" json:"is_approved"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (Skill) TableName() string {
	return "skills"
}

// SkillRef is the compact {id, name} shape exposed by the catalog JSON surface.
type SkillRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// Ref returns the compact catalog representation of the skill.
func (s Skill) Ref() SkillRef {
	return SkillRef{ID: s.ID, Name: s.Name}
}

// SkillSummary groups a user's skill associations by role.
type SkillSummary struct {
	Offered []SkillRef `json:"offered"`
	Wanted  []SkillRef `json:"wanted"`
}
