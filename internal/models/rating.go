package models

import "time"

// Rating is one party's score of the other after an accepted swap.
// At most one rating exists per (swap, rater); re-rating updates in place.
type Rating struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	SwapRequestID uint      `gorm:"not null;uniqueIndex:idx_rating_swap_rater" json:"swap_request_id"`
	RaterID       uint      `gorm:"not null;uniqueIndex:idx_rating_swap_rater" json:"rater_id"`
	RatedID       uint      `gorm:"not null;index" json:"rated_id"`
	Score         int       `gorm:"not null" json:"score"`
	Feedback      string    `gorm:"type:text" json:"feedback"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Rater     User `gorm:"foreignKey:RaterID" json:"rater,omitempty"`
	RatedUser User `gorm:"foreignKey:RatedID" json:"rated_user,omitempty"`
}

// TableName specifies the table name for GORM
func (Rating) TableName() string {
	return "ratings"
}
