package models

import (
	"time"
)

// FollowUp is an admin request for clarification on a submitted response.
// At most one follow-up per response may be unanswered at a time.
type FollowUp struct {
	FollowUpID   int        `gorm:"primaryKey;column:follow_up_id" json:"follow_up_id"`
	ResponseID   int        `gorm:"column:response_id;index" json:"response_id"`
	Message      string     `gorm:"column:message" json:"message"`
	CreatedAt    time.Time  `gorm:"column:created_at" json:"created_at"`
	ResponseText *string    `gorm:"column:response_text" json:"response_text,omitempty"`
	RespondedAt  *time.Time `gorm:"column:responded_at" json:"responded_at,omitempty"`
}

func (FollowUp) TableName() string {
	return "follow_ups"
}

// Answered reports whether the vendor has replied to this follow-up.
func (f *FollowUp) Answered() bool {
	return f.ResponseText != nil
}
