package models

// Question weights, copied from the bank item selection at build time.
const (
	WeightLow      = "LOW"
	WeightMedium   = "MEDIUM"
	WeightHigh     = "HIGH"
	WeightCritical = "CRITICAL"
)

// ValidWeight reports whether w is one of the recognized question weights.
func ValidWeight(w string) bool {
	switch w {
	case WeightLow, WeightMedium, WeightHigh, WeightCritical:
		return true
	}
	return false
}

// Question is owned by exactly one questionnaire. Order values are unique
// within a questionnaire and define the display sequence.
type Question struct {
	QuestionID      int    `gorm:"primaryKey;column:question_id" json:"question_id"`
	QuestionnaireID int    `gorm:"column:questionnaire_id;index" json:"questionnaire_id"`
	Text            string `gorm:"column:text" json:"text"`
	Order           int    `gorm:"column:display_order" json:"order"`
	Weight          string `gorm:"column:weight;default:MEDIUM" json:"weight"`
}

func (Question) TableName() string {
	return "questions"
}
