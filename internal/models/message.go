package models

import "time"

// Message is one entry in the conversation scoped to an accepted swap.
// Messages are append-only and ordered by creation time; the receiver is
// always the other party of the swap.
type Message struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	SwapRequestID uint      `gorm:"not null;index" json:"swap_request_id"`
	SenderID      uint      `gorm:"not null" json:"sender_id"`
	ReceiverID    uint      `gorm:"not null;index" json:"receiver_id"`
	Content       string    `gorm:"type:text;not null" json:"content"`
	IsRead        bool      `gorm:"not null;default:false" json:"is_read"`
	CreatedAt     time.Time `json:"created_at"`

	Sender User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
}

// TableName specifies the table name for GORM
func (Message) TableName() string {
	return "messages"
}
