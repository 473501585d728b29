package models

import (
	"time"
)

// QuestionBankItem is a curated, reusable question independent of any
// questionnaire. Admins maintain the bank; builders copy items into
// questionnaires at creation time.
type QuestionBankItem struct {
	ItemID   int        `gorm:"primaryKey;column:item_id" json:"item_id"`
	Category string     `gorm:"column:category" json:"category"`
	Text     string     `gorm:"column:text" json:"text"`
	IsActive bool       `gorm:"column:is_active;default:true" json:"is_active"`
	CreateAt *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt *time.Time `gorm:"column:update_at" json:"update_at"`
}

func (QuestionBankItem) TableName() string {
	return "question_bank_items"
}
