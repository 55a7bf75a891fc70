package models

import "time"

// SwapStatus represents the lifecycle state of a swap request.
type SwapStatus string

const (
	// SwapStatusPending indicates the request awaits the receiver's decision.
	SwapStatusPending SwapStatus = "pending"
	// SwapStatusAccepted indicates the receiver accepted; rating and
	// messaging are unlocked and the request can no longer be deleted.
	SwapStatusAccepted SwapStatus = "accepted"
	// SwapStatusRejected indicates the receiver declined. Terminal.
	SwapStatusRejected SwapStatus = "rejected"
	// SwapStatusCompleted exists in stored data but no lifecycle
	// transition produces it; accepted is the terminal active state.
	SwapStatusCompleted SwapStatus = "completed"
)

// SwapRequest is a proposal from one user to another to exchange
// instruction in one skill for another. The requester teaches
// OfferedSkill; the receiver teaches WantedSkill.
type SwapRequest struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	RequesterID    uint       `gorm:"not null;index" json:"requester_id"`
	ReceiverID     uint       `gorm:"not null;index" json:"receiver_id"`
	OfferedSkillID uint       `gorm:"not null" json:"offered_skill_id"`
	WantedSkillID  uint       `gorm:"not null" json:"wanted_skill_id"`
	Message        string     `gorm:"type:text" json:"message"`
	Status         SwapStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	Requester    User  `gorm:"foreignKey:RequesterID" json:"requester,omitempty"`
	Receiver     User  `gorm:"foreignKey:ReceiverID" json:"receiver,omitempty"`
	OfferedSkill Skill `gorm:"foreignKey:OfferedSkillID" json:"offered_skill,omitempty"`
	WantedSkill  Skill `gorm:"foreignKey:WantedSkillID" json:"wanted_skill,omitempty"`
}

// TableName specifies the table name for GORM
func (SwapRequest) TableName() string {
	return "swap_requests"
}

// IsParty reports whether the given user is the requester or receiver.
func (r *SwapRequest) IsParty(userID uint) bool {
	return r.RequesterID == userID || r.ReceiverID == userID
}

// Counterpart returns the other participant of the swap. The caller must
// already be a party of the swap.
func (r *SwapRequest) Counterpart(userID uint) uint {
	if r.RequesterID == userID {
		return r.ReceiverID
	}
	return r.RequesterID
}
