package models

// Answer choices a vendor can pick per question.
const (
	ChoiceYes     = "yes"
	ChoiceNo      = "no"
	ChoicePartial = "partial"
	ChoiceNA      = "na"
)

// ValidChoice reports whether c is a recognized answer choice.
func ValidChoice(c string) bool {
	switch c {
	case ChoiceYes, ChoiceNo, ChoicePartial, ChoiceNA:
		return true
	}
	return false
}

// Answer holds one vendor answer per (response, question); saved drafts
// upsert rows rather than appending.
type Answer struct {
	AnswerID   int     `gorm:"primaryKey;column:answer_id" json:"answer_id"`
	ResponseID int     `gorm:"column:response_id;index:idx_answers_response_question,unique" json:"response_id"`
	QuestionID int     `gorm:"column:question_id;index:idx_answers_response_question,unique" json:"question_id"`
	Choice     string  `gorm:"column:choice" json:"choice"`
	Notes      *string `gorm:"column:notes" json:"notes,omitempty"`
}

func (Answer) TableName() string {
	return "answers"
}
