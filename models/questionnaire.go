package models

import (
	"time"
)

// QuestionnaireStatus tracks where a questionnaire sits in the admin
// workflow. Transitions only move forward; each transition method reports
// whether it actually fired so callers can decide what to persist.
type QuestionnaireStatus string

const (
	QuestionnaireStatusDraft      QuestionnaireStatus = "DRAFT"
	QuestionnaireStatusSent       QuestionnaireStatus = "SENT"
	QuestionnaireStatusInProgress QuestionnaireStatus = "IN_PROGRESS"
	QuestionnaireStatusSubmitted  QuestionnaireStatus = "SUBMITTED"
	QuestionnaireStatusReviewed   QuestionnaireStatus = "REVIEWED"
)

type Questionnaire struct {
	QuestionnaireID int                 `gorm:"primaryKey;column:questionnaire_id" json:"questionnaire_id"`
	CompanyName     string              `gorm:"column:company_name" json:"company_name"`
	Title           string              `gorm:"column:title" json:"title"`
	Token           string              `gorm:"column:token;unique" json:"token"`
	Status          QuestionnaireStatus `gorm:"column:status;default:DRAFT" json:"status"`
	SentAt          *time.Time          `gorm:"column:sent_at" json:"sent_at,omitempty"`
	SubmittedAt     *time.Time          `gorm:"column:submitted_at" json:"submitted_at,omitempty"`
	ReviewedAt      *time.Time          `gorm:"column:reviewed_at" json:"reviewed_at,omitempty"`
	CreateAt        *time.Time          `gorm:"column:create_at" json:"create_at"`

	// Relations
	Questions []Question `gorm:"foreignKey:QuestionnaireID" json:"questions,omitempty"`
	Responses []Response `gorm:"foreignKey:QuestionnaireID" json:"responses,omitempty"`
}

func (Questionnaire) TableName() string {
	return "questionnaires"
}

// MarkSent transitions DRAFT -> SENT when the share link goes out.
func (q *Questionnaire) MarkSent(now time.Time) bool {
	if q.Status != QuestionnaireStatusDraft {
		return false
	}
	q.Status = QuestionnaireStatusSent
	q.SentAt = &now
	return true
}

// MarkInProgress transitions SENT -> IN_PROGRESS on the first vendor draft.
func (q *Questionnaire) MarkInProgress() bool {
	if q.Status != QuestionnaireStatusSent {
		return false
	}
	q.Status = QuestionnaireStatusInProgress
	return true
}

// MarkSubmitted transitions SENT/IN_PROGRESS -> SUBMITTED when a vendor
// response is submitted.
func (q *Questionnaire) MarkSubmitted(now time.Time) bool {
	if q.Status != QuestionnaireStatusSent && q.Status != QuestionnaireStatusInProgress {
		return false
	}
	q.Status = QuestionnaireStatusSubmitted
	q.SubmittedAt = &now
	return true
}

// MarkReviewed transitions SUBMITTED -> REVIEWED.
func (q *Questionnaire) MarkReviewed(now time.Time) bool {
	if q.Status != QuestionnaireStatusSubmitted {
		return false
	}
	q.Status = QuestionnaireStatusReviewed
	q.ReviewedAt = &now
	return true
}
