package services

import (
	"fmt"
	"time"

	"vendor-assessment-api/models"

	"gorm.io/gorm"
)

type QuestionnaireService struct{ db *gorm.DB }

func NewQuestionnaireService(db *gorm.DB) *QuestionnaireService {
	return &QuestionnaireService{db: db}
}

// SelectedItem is one question-bank selection for a new questionnaire.
// Weight is optional; invalid or empty weights fall back to MEDIUM.
type SelectedItem struct {
	ItemID int    `json:"item_id"`
	Weight string `json:"weight"`
}

// Create builds a questionnaire and its ordered questions from question
// bank selections in a single transaction. An empty selection is rejected.
func (s *QuestionnaireService) Create(companyName, title string, selections []SelectedItem) (*models.Questionnaire, error) {
	if len(selections) == 0 {
		return nil, &ValidationError{Message: "Select at least one question from the bank"}
	}

	token, err := GenerateUniqueToken(s.db)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	questionnaire := &models.Questionnaire{
		CompanyName: companyName,
		Title:       title,
		Token:       token,
		Status:      models.QuestionnaireStatusDraft,
		CreateAt:    &now,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(questionnaire).Error; err != nil {
			return fmt.Errorf("failed to create questionnaire: %w", err)
		}

		for i, sel := range selections {
			var item models.QuestionBankItem
			if err := tx.First(&item, sel.ItemID).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return &ValidationError{Message: fmt.Sprintf("Question bank item %d does not exist", sel.ItemID)}
				}
				return err
			}

			weight := sel.Weight
			if !models.ValidWeight(weight) {
				weight = models.WeightMedium
			}

			question := models.Question{
				QuestionnaireID: questionnaire.QuestionnaireID,
				Text:            item.Text,
				Order:           i + 1,
				Weight:          weight,
			}
			if err := tx.Create(&question).Error; err != nil {
				return fmt.Errorf("failed to create question: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return questionnaire, nil
}

// FindByToken loads a questionnaire with its questions in display order.
func (s *QuestionnaireService) FindByToken(token string) (*models.Questionnaire, error) {
	var questionnaire models.Questionnaire
	err := s.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("display_order")
	}).Where("token = ?", token).First(&questionnaire).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, &NotFoundError{Resource: "Questionnaire"}
		}
		return nil, err
	}
	return &questionnaire, nil
}

// AddQuestions appends bank items (or an ad-hoc question text) to an
// existing questionnaire, continuing the order sequence.
func (s *QuestionnaireService) AddQuestions(questionnaireID int, itemIDs []int, customText string) error {
	var questionnaire models.Questionnaire
	if err := s.db.First(&questionnaire, questionnaireID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return &NotFoundError{Resource: "Questionnaire"}
		}
		return err
	}

	if len(itemIDs) == 0 && customText == "" {
		return &ValidationError{Message: "Nothing to add"}
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var maxOrder int
		row := tx.Model(&models.Question{}).
			Where("questionnaire_id = ?", questionnaireID).
			Select("COALESCE(MAX(display_order), 0)").Row()
		if err := row.Scan(&maxOrder); err != nil {
			return err
		}

		for _, itemID := range itemIDs {
			var item models.QuestionBankItem
			if err := tx.First(&item, itemID).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return &ValidationError{Message: fmt.Sprintf("Question bank item %d does not exist", itemID)}
				}
				return err
			}
			maxOrder++
			question := models.Question{
				QuestionnaireID: questionnaireID,
				Text:            item.Text,
				Order:           maxOrder,
				Weight:          models.WeightMedium,
			}
			if err := tx.Create(&question).Error; err != nil {
				return err
			}
		}

		if customText != "" {
			maxOrder++
			question := models.Question{
				QuestionnaireID: questionnaireID,
				Text:            customText,
				Order:           maxOrder,
				Weight:          models.WeightMedium,
			}
			if err := tx.Create(&question).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// RemoveQuestion deletes a question and closes the gap in the order
// sequence so order values stay unique and dense.
func (s *QuestionnaireService) RemoveQuestion(questionnaireID, questionID int) error {
	var question models.Question
	err := s.db.Where("question_id = ? AND questionnaire_id = ?", questionID, questionnaireID).
		First(&question).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return &NotFoundError{Resource: "Question"}
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&question).Error; err != nil {
			return err
		}
		return tx.Model(&models.Question{}).
			Where("questionnaire_id = ? AND display_order > ?", questionnaireID, question.Order).
			UpdateColumn("display_order", gorm.Expr("display_order - 1")).Error
	})
}

// MarkSent records that the share link went out to the vendor.
func (s *QuestionnaireService) MarkSent(questionnaireID int) error {
	return s.transition(questionnaireID, func(q *models.Questionnaire) bool {
		return q.MarkSent(time.Now())
	})
}

// MarkReviewed closes out a submitted questionnaire.
func (s *QuestionnaireService) MarkReviewed(questionnaireID int) error {
	var questionnaire models.Questionnaire
	if err := s.db.First(&questionnaire, questionnaireID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return &NotFoundError{Resource: "Questionnaire"}
		}
		return err
	}
	if !questionnaire.MarkReviewed(time.Now()) {
		return &ConflictError{Message: "Only submitted questionnaires can be marked reviewed"}
	}
	return s.db.Save(&questionnaire).Error
}

func (s *QuestionnaireService) transition(questionnaireID int, fn func(*models.Questionnaire) bool) error {
	var questionnaire models.Questionnaire
	if err := s.db.First(&questionnaire, questionnaireID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return &NotFoundError{Resource: "Questionnaire"}
		}
		return err
	}
	if !fn(&questionnaire) {
		return nil
	}
	return s.db.Save(&questionnaire).Error
}
