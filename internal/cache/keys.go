package cache

import (
	"fmt"
	"time"
)

const (
	userKeyPrefix       = "user:%d"
	userRatingKeyPrefix = "user:%d:rating"
	SkillCatalogKey     = "skills:approved"
	AvailabilityKey     = "availability:options"
	AdminDashboardKey   = "admin:dashboard"
)

const (
	UserTTL         = 5 * time.Minute
	RatingTTL       = 5 * time.Minute
	SkillCatalogTTL = 10 * time.Minute
	AvailabilityTTL = 10 * time.Minute
	DashboardTTL    = time.Minute
)

// UserKey is the cache key for a user's identity record.
func UserKey(userID uint) string {
	return fmt.Sprintf(userKeyPrefix, userID)
}

// UserRatingKey is the cache key for a user's aggregate rating summary.
func UserRatingKey(userID uint) string {
	return fmt.Sprintf(userRatingKeyPrefix, userID)
}
