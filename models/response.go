package models

import (
	"time"
)

// ResponseStatus is the vendor response lifecycle. DRAFT is initial,
// SUBMITTED is terminal for the normal flow, NEEDS_INFO reopens editing
// after an admin follow-up.
type ResponseStatus string

const (
	ResponseStatusDraft     ResponseStatus = "DRAFT"
	ResponseStatusSubmitted ResponseStatus = "SUBMITTED"
	ResponseStatusNeedsInfo ResponseStatus = "NEEDS_INFO"
)

// Response is uniquely identified by (questionnaire_id, vendor_email) so
// vendors can resume a draft by email.
type Response struct {
	ResponseID      int            `gorm:"primaryKey;column:response_id" json:"response_id"`
	QuestionnaireID int            `gorm:"column:questionnaire_id;index:idx_responses_questionnaire_email,unique" json:"questionnaire_id"`
	VendorName      string         `gorm:"column:vendor_name" json:"vendor_name"`
	VendorEmail     string         `gorm:"column:vendor_email;index:idx_responses_questionnaire_email,unique" json:"vendor_email"`
	Status          ResponseStatus `gorm:"column:status;default:DRAFT" json:"status"`
	SubmittedAt     *time.Time     `gorm:"column:submitted_at" json:"submitted_at,omitempty"`
	LastSavedAt     *time.Time     `gorm:"column:last_saved_at" json:"last_saved_at,omitempty"`

	// Relations
	Questionnaire Questionnaire  `gorm:"foreignKey:QuestionnaireID" json:"questionnaire,omitempty"`
	Answers       []Answer       `gorm:"foreignKey:ResponseID" json:"answers,omitempty"`
	EvidenceFiles []EvidenceFile `gorm:"foreignKey:ResponseID" json:"evidence_files,omitempty"`
	FollowUps     []FollowUp     `gorm:"foreignKey:ResponseID" json:"follow_ups,omitempty"`
}

func (Response) TableName() string {
	return "responses"
}

// Editable reports whether answers and evidence may still be mutated.
// A submitted response is locked until an admin reopens it via follow-up.
func (r *Response) Editable() bool {
	return r.Status == ResponseStatusDraft || r.Status == ResponseStatusNeedsInfo
}

// MarkSubmitted transitions DRAFT/NEEDS_INFO -> SUBMITTED. Returns false
// when the response is already submitted.
func (r *Response) MarkSubmitted(now time.Time) bool {
	if !r.Editable() {
		return false
	}
	r.Status = ResponseStatusSubmitted
	r.SubmittedAt = &now
	return true
}

// MarkNeedsInfo transitions SUBMITTED -> NEEDS_INFO when an admin requests
// clarification.
func (r *Response) MarkNeedsInfo() bool {
	if r.Status != ResponseStatusSubmitted {
		return false
	}
	r.Status = ResponseStatusNeedsInfo
	return true
}
