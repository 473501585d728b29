package services

import (
	"fmt"
	"sort"
	"time"

	"vendor-assessment-api/models"

	"gorm.io/gorm"
)

type ResponseService struct{ db *gorm.DB }

func NewResponseService(db *gorm.DB) *ResponseService {
	return &ResponseService{db: db}
}

// AnswerInput is one submitted answer keyed by question id in the request
// payload. Choices outside yes/no/partial/na are dropped, not rejected,
// so a stale form cannot block a draft save.
type AnswerInput struct {
	Choice string `json:"choice"`
	Notes  string `json:"notes"`
}

// SaveDraft finds or creates the response for (token, vendor email) and
// upserts the provided answers. Drafts have no completeness requirement.
func (s *ResponseService) SaveDraft(token, vendorName, vendorEmail string, answers map[int]AnswerInput) (*models.Response, error) {
	questionnaire, response, err := s.findOrCreateResponse(token, vendorName, vendorEmail)
	if err != nil {
		return nil, err
	}
	if !response.Editable() {
		return nil, &ConflictError{Message: "This response has already been submitted and can no longer be edited"}
	}

	now := time.Now()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{"last_saved_at": now}
		if vendorName != "" {
			updates["vendor_name"] = vendorName
		}

		// The status predicate repeats the Editable check inside the
		// transaction, so a submit landing in between makes this touch a
		// no-op and the whole save rolls back instead of mutating a
		// submitted response.
		result := tx.Model(&models.Response{}).
			Where("response_id = ? AND status IN ?", response.ResponseID,
				[]models.ResponseStatus{models.ResponseStatusDraft, models.ResponseStatusNeedsInfo}).
			Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return &ConflictError{Message: "This response has already been submitted and can no longer be edited"}
		}

		return s.upsertAnswers(tx, questionnaire.QuestionnaireID, response.ResponseID, answers)
	})
	if err != nil {
		return nil, err
	}

	// First vendor activity moves the questionnaire out of SENT.
	if questionnaire.MarkInProgress() {
		if err := s.db.Save(questionnaire).Error; err != nil {
			return nil, err
		}
	}

	response.LastSavedAt = &now
	if vendorName != "" {
		response.VendorName = vendorName
	}
	return response, nil
}

// LoadDraft returns the existing response with answers for (token, email),
// or nil when the vendor has not started yet.
func (s *ResponseService) LoadDraft(token, vendorEmail string) (*models.Response, error) {
	questionnaire, err := s.questionnaireByToken(token)
	if err != nil {
		return nil, err
	}

	var response models.Response
	err = s.db.Preload("Answers").
		Where("questionnaire_id = ? AND vendor_email = ?", questionnaire.QuestionnaireID, vendorEmail).
		First(&response).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &response, nil
}

// Submit upserts the provided answers and locks the response. Every
// question must end up answered; otherwise a ValidationError lists the
// missing question ids. A conditional status update inside the transaction
// guards against double submission: submit wins over any concurrent draft
// save, and the second of two racing submits gets a ConflictError.
func (s *ResponseService) Submit(token, vendorName, vendorEmail string, answers map[int]AnswerInput) (*models.Response, error) {
	questionnaire, response, err := s.findOrCreateResponse(token, vendorName, vendorEmail)
	if err != nil {
		return nil, err
	}
	if !response.Editable() {
		return nil, &ConflictError{Message: "This response has already been submitted"}
	}

	now := time.Now()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.upsertAnswers(tx, questionnaire.QuestionnaireID, response.ResponseID, answers); err != nil {
			return err
		}

		missing, err := s.missingQuestionIDs(tx, questionnaire.QuestionnaireID, response.ResponseID)
		if err != nil {
			return err
		}
		if len(missing) > 0 {
			return &ValidationError{
				Message:            "Please answer all questions before submitting",
				MissingQuestionIDs: missing,
			}
		}

		updates := map[string]interface{}{
			"status":        models.ResponseStatusSubmitted,
			"submitted_at":  now,
			"last_saved_at": now,
		}
		if vendorName != "" {
			updates["vendor_name"] = vendorName
		}

		// Re-check the status in the same statement that flips it, so two
		// racing submits cannot both succeed.
		result := tx.Model(&models.Response{}).
			Where("response_id = ? AND status IN ?", response.ResponseID,
				[]models.ResponseStatus{models.ResponseStatusDraft, models.ResponseStatusNeedsInfo}).
			Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return &ConflictError{Message: "This response has already been submitted"}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if questionnaire.MarkSubmitted(now) {
		if err := s.db.Save(questionnaire).Error; err != nil {
			return nil, err
		}
	}

	response.Status = models.ResponseStatusSubmitted
	response.SubmittedAt = &now
	response.LastSavedAt = &now
	return response, nil
}

// RequestFollowUp opens an admin clarification request against a submitted
// response and moves it to NEEDS_INFO. Only one follow-up may be open.
func (s *ResponseService) RequestFollowUp(responseID int, message string) (*models.FollowUp, error) {
	if message == "" {
		return nil, &ValidationError{Message: "Follow-up message is required"}
	}

	var response models.Response
	if err := s.db.First(&response, responseID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, &NotFoundError{Resource: "Response"}
		}
		return nil, err
	}

	var openCount int64
	err := s.db.Model(&models.FollowUp{}).
		Where("response_id = ? AND response_text IS NULL", responseID).
		Count(&openCount).Error
	if err != nil {
		return nil, err
	}
	if openCount > 0 {
		return nil, &ConflictError{Message: "A follow-up is already awaiting a vendor reply"}
	}

	if !response.MarkNeedsInfo() {
		return nil, &ConflictError{Message: "Follow-ups can only be requested on submitted responses"}
	}

	followUp := &models.FollowUp{
		ResponseID: responseID,
		Message:    message,
		CreatedAt:  time.Now(),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(followUp).Error; err != nil {
			return err
		}
		return tx.Model(&models.Response{}).
			Where("response_id = ?", responseID).
			Update("status", models.ResponseStatusNeedsInfo).Error
	})
	if err != nil {
		return nil, err
	}
	return followUp, nil
}

// RespondFollowUp records the vendor's reply. When the last open follow-up
// is answered the response returns to SUBMITTED.
func (s *ResponseService) RespondFollowUp(token string, followUpID int, vendorEmail, responseText string) error {
	if responseText == "" {
		return &ValidationError{Message: "Response cannot be empty"}
	}

	questionnaire, err := s.questionnaireByToken(token)
	if err != nil {
		return err
	}

	var followUp models.FollowUp
	if err := s.db.First(&followUp, followUpID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return &NotFoundError{Resource: "Follow-up"}
		}
		return err
	}

	var response models.Response
	err = s.db.Where("response_id = ? AND questionnaire_id = ?", followUp.ResponseID, questionnaire.QuestionnaireID).
		First(&response).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return &NotFoundError{Resource: "Response"}
		}
		return err
	}
	if response.VendorEmail != vendorEmail {
		return &PermissionError{Message: "Not authorized to answer this follow-up"}
	}
	if followUp.Answered() {
		return &ConflictError{Message: "This follow-up has already been answered"}
	}

	now := time.Now()
	return s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.FollowUp{}).
			Where("follow_up_id = ?", followUpID).
			Updates(map[string]interface{}{
				"response_text": responseText,
				"responded_at":  now,
			}).Error
		if err != nil {
			return err
		}

		var stillOpen int64
		err = tx.Model(&models.FollowUp{}).
			Where("response_id = ? AND response_text IS NULL", response.ResponseID).
			Count(&stillOpen).Error
		if err != nil {
			return err
		}
		if stillOpen == 0 {
			return tx.Model(&models.Response{}).
				Where("response_id = ?", response.ResponseID).
				Update("status", models.ResponseStatusSubmitted).Error
		}
		return nil
	})
}

func (s *ResponseService) questionnaireByToken(token string) (*models.Questionnaire, error) {
	var questionnaire models.Questionnaire
	if err := s.db.Where("token = ?", token).First(&questionnaire).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, &NotFoundError{Resource: "Questionnaire"}
		}
		return nil, err
	}
	return &questionnaire, nil
}

func (s *ResponseService) findOrCreateResponse(token, vendorName, vendorEmail string) (*models.Questionnaire, *models.Response, error) {
	if vendorEmail == "" {
		return nil, nil, &ValidationError{Message: "Vendor email is required"}
	}

	questionnaire, err := s.questionnaireByToken(token)
	if err != nil {
		return nil, nil, err
	}

	var response models.Response
	err = s.db.Where("questionnaire_id = ? AND vendor_email = ?", questionnaire.QuestionnaireID, vendorEmail).
		First(&response).Error
	if err == nil {
		return questionnaire, &response, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, nil, err
	}

	name := vendorName
	if name == "" {
		name = "Draft"
	}
	response = models.Response{
		QuestionnaireID: questionnaire.QuestionnaireID,
		VendorName:      name,
		VendorEmail:     vendorEmail,
		Status:          models.ResponseStatusDraft,
	}
	if err := s.db.Create(&response).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to create response: %w", err)
	}
	return questionnaire, &response, nil
}

// upsertAnswers writes one answer row per question, replacing any earlier
// choice for the same (response, question). Answers for questions outside
// the questionnaire and invalid choices are skipped.
func (s *ResponseService) upsertAnswers(tx *gorm.DB, questionnaireID, responseID int, answers map[int]AnswerInput) error {
	if len(answers) == 0 {
		return nil
	}

	var questions []models.Question
	if err := tx.Where("questionnaire_id = ?", questionnaireID).Find(&questions).Error; err != nil {
		return err
	}
	known := make(map[int]bool, len(questions))
	for _, q := range questions {
		known[q.QuestionID] = true
	}

	// Deterministic write order keeps the SQL trace stable.
	ids := make([]int, 0, len(answers))
	for id := range answers {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, questionID := range ids {
		input := answers[questionID]
		if !known[questionID] || !models.ValidChoice(input.Choice) {
			continue
		}

		var notes *string
		if input.Notes != "" {
			n := input.Notes
			notes = &n
		}

		var existing models.Answer
		err := tx.Where("response_id = ? AND question_id = ?", responseID, questionID).
			First(&existing).Error
		switch err {
		case nil:
			err = tx.Model(&existing).Updates(map[string]interface{}{
				"choice": input.Choice,
				"notes":  notes,
			}).Error
		case gorm.ErrRecordNotFound:
			err = tx.Create(&models.Answer{
				ResponseID: responseID,
				QuestionID: questionID,
				Choice:     input.Choice,
				Notes:      notes,
			}).Error
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *ResponseService) missingQuestionIDs(tx *gorm.DB, questionnaireID, responseID int) ([]int, error) {
	var questions []models.Question
	err := tx.Where("questionnaire_id = ?", questionnaireID).
		Order("display_order").Find(&questions).Error
	if err != nil {
		return nil, err
	}

	var answered []models.Answer
	if err := tx.Where("response_id = ? AND choice <> ''", responseID).Find(&answered).Error; err != nil {
		return nil, err
	}
	byQuestion := make(map[int]bool, len(answered))
	for _, a := range answered {
		byQuestion[a.QuestionID] = true
	}

	var missing []int
	for _, q := range questions {
		if !byQuestion[q.QuestionID] {
			missing = append(missing, q.QuestionID)
		}
	}
	return missing, nil
}
