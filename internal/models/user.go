// Package models contains data structures for the application's domain models.
package models

import "time"

// User represents a member of the skill-swap marketplace.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:80;unique;not null" json:"username"`
	Password     string    `gorm:"size:256;not null" json:"-"`
	Name         string    `gorm:"size:100" json:"name"`
	Location     string    `gorm:"size:100" json:"location"`
	ProfilePhoto string    `gorm:"size:200" json:"profile_photo"`
	Availability string    `gorm:"size:200" json:"availability"`
	// No column default: a bool default would make an explicit false
	// unstorable at insert, since GORM omits zero values for defaulted
	// columns. Callers always set the flag.
	IsPublic     bool      `gorm:"not null" json:"is_public"`
	IsAdmin      bool      `gorm:"not null;default:false" json:"is_admin"`
	IsBanned     bool      `gorm:"not null;default:false;index" json:"is_banned"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Skills []UserSkill `gorm:"foreignKey:UserID" json:"skills,omitempty"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}

// RatingSummary is the cached per-user aggregate of received ratings.
type RatingSummary struct {
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}
