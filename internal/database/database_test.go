package database

import (
	"testing"

	"skillswap/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMigrateCreatesSchema(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, Migrate(db))

	for _, table := range []string{
		"users", "skills", "user_skills", "swap_requests",
		"ratings", "messages", "admin_messages",
	} {
		assert.True(t, db.Migrator().HasTable(table), "expected table %s", table)
	}
}

func TestMigrateEnforcesUniqueConstraints(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	require.NoError(t, db.Create(&models.User{Username: "marc", Password: "x"}).Error)
	assert.Error(t, db.Create(&models.User{Username: "marc", Password: "y"}).Error,
		"duplicate username must be rejected")

	require.NoError(t, db.Create(&models.Skill{Name: "Python"}).Error)
	assert.Error(t, db.Create(&models.Skill{Name: "Python"}).Error,
		"duplicate skill name must be rejected")

	us := models.UserSkill{UserID: 1, SkillID: 1, Role: models.SkillRoleOffered}
	require.NoError(t, db.Create(&us).Error)
	dup := models.UserSkill{UserID: 1, SkillID: 1, Role: models.SkillRoleOffered}
	assert.Error(t, db.Create(&dup).Error, "duplicate (user, skill, role) must be rejected")

	wanted := models.UserSkill{UserID: 1, SkillID: 1, Role: models.SkillRoleWanted}
	assert.NoError(t, db.Create(&wanted).Error,
		"offering and wanting the same skill are distinct rows")
}
