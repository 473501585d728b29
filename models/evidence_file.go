package models

import (
	"time"
)

// EvidenceFile is a vendor-uploaded supporting file attached to a response.
// The disk file and the row are created and removed together; deletable only
// while the owning response is still editable.
type EvidenceFile struct {
	EvidenceID       int       `gorm:"primaryKey;column:evidence_id" json:"evidence_id"`
	QuestionnaireID  int       `gorm:"column:questionnaire_id;index" json:"questionnaire_id"`
	ResponseID       int       `gorm:"column:response_id;index" json:"response_id"`
	OriginalFilename string    `gorm:"column:original_filename" json:"original_filename"`
	StoredFilename   string    `gorm:"column:stored_filename" json:"stored_filename"`
	StoredPath       string    `gorm:"column:stored_path" json:"stored_path"`
	ContentType      string    `gorm:"column:content_type" json:"content_type"`
	SizeBytes        int64     `gorm:"column:size_bytes" json:"size_bytes"`
	UploadedAt       time.Time `gorm:"column:uploaded_at" json:"uploaded_at"`

	// Relations
	Response Response `gorm:"foreignKey:ResponseID" json:"response,omitempty"`
}

func (EvidenceFile) TableName() string {
	return "evidence_files"
}

func (f *EvidenceFile) SizeInMB() float64 {
	return float64(f.SizeBytes) / (1024 * 1024)
}
