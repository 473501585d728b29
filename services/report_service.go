package services

import (
	"time"

	"vendor-assessment-api/models"

	"gorm.io/gorm"
)

// ReportService is the read-only aggregation layer behind the admin
// dashboards. It never mutates state.
type ReportService struct{ db *gorm.DB }

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

// QuestionnaireSummary is one row of the responses overview.
type QuestionnaireSummary struct {
	Questionnaire models.Questionnaire            `json:"questionnaire"`
	TotalByStatus map[models.ResponseStatus]int64 `json:"total_by_status"`
	Total         int64                           `json:"total"`
}

// ResponseProgress pairs a response with its completion percentage.
type ResponseProgress struct {
	Response          models.Response `json:"response"`
	AnsweredQuestions int             `json:"answered_questions"`
	TotalQuestions    int             `json:"total_questions"`
	CompletionPercent float64         `json:"completion_percent"`
}

// ExportDocument is the print-friendly rendering of one submission.
type ExportDocument struct {
	Questionnaire     models.Questionnaire  `json:"questionnaire"`
	Response          models.Response       `json:"response"`
	Questions         []models.Question     `json:"questions"`
	AnswersByQuestion map[int]models.Answer `json:"answers_by_question"`
	AnsweredQuestions int                   `json:"answered_questions"`
	CompletionPercent float64               `json:"completion_percent"`
	EvidenceFiles     []models.EvidenceFile `json:"evidence_files"`
	FollowUps         []models.FollowUp     `json:"follow_ups"`
	GeneratedAt       time.Time             `json:"generated_at"`
}

// DashboardStats feeds the admin landing page.
type DashboardStats struct {
	Questionnaires     int64                           `json:"questionnaires"`
	Responses          int64                           `json:"responses"`
	ResponsesByStatus  map[models.ResponseStatus]int64 `json:"responses_by_status"`
	EvidenceFiles      int64                           `json:"evidence_files"`
	EvidenceSizeBytes  int64                           `json:"evidence_size_bytes"`
	OpenFollowUps      int64                           `json:"open_follow_ups"`
	QuestionBankActive int64                           `json:"question_bank_active"`
}

// Overview lists every questionnaire with its response counts per status.
func (s *ReportService) Overview() ([]QuestionnaireSummary, error) {
	var questionnaires []models.Questionnaire
	if err := s.db.Order("create_at DESC").Find(&questionnaires).Error; err != nil {
		return nil, err
	}

	summaries := make([]QuestionnaireSummary, 0, len(questionnaires))
	for _, q := range questionnaires {
		summary := QuestionnaireSummary{
			Questionnaire: q,
			TotalByStatus: make(map[models.ResponseStatus]int64),
		}

		var rows []struct {
			Status models.ResponseStatus
			Count  int64
		}
		err := s.db.Model(&models.Response{}).
			Select("status, COUNT(*) AS count").
			Where("questionnaire_id = ?", q.QuestionnaireID).
			Group("status").Scan(&rows).Error
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			summary.TotalByStatus[row.Status] = row.Count
			summary.Total += row.Count
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// QuestionnaireResponses lists responses for one questionnaire with
// completion percentages, optionally filtered by status. Unknown status
// filters are ignored rather than rejected.
func (s *ReportService) QuestionnaireResponses(questionnaireID int, statusFilter string) (*models.Questionnaire, []ResponseProgress, error) {
	var questionnaire models.Questionnaire
	if err := s.db.First(&questionnaire, questionnaireID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, &NotFoundError{Resource: "Questionnaire"}
		}
		return nil, nil, err
	}

	var totalQuestions int64
	err := s.db.Model(&models.Question{}).
		Where("questionnaire_id = ?", questionnaireID).Count(&totalQuestions).Error
	if err != nil {
		return nil, nil, err
	}

	query := s.db.Preload("Answers").
		Where("questionnaire_id = ?", questionnaireID).
		Order("last_saved_at DESC")
	switch models.ResponseStatus(statusFilter) {
	case models.ResponseStatusDraft, models.ResponseStatusSubmitted, models.ResponseStatusNeedsInfo:
		query = query.Where("status = ?", statusFilter)
	}

	var responses []models.Response
	if err := query.Find(&responses).Error; err != nil {
		return nil, nil, err
	}

	progress := make([]ResponseProgress, 0, len(responses))
	for _, r := range responses {
		answered := countAnswered(r.Answers)
		progress = append(progress, ResponseProgress{
			Response:          r,
			AnsweredQuestions: answered,
			TotalQuestions:    int(totalQuestions),
			CompletionPercent: percent(answered, int(totalQuestions)),
		})
	}
	return &questionnaire, progress, nil
}

// Export assembles the full picture of one submission: questionnaire,
// ordered questions, answers, evidence and the follow-up thread.
func (s *ReportService) Export(responseID int) (*ExportDocument, error) {
	var response models.Response
	if err := s.db.Preload("Answers").First(&response, responseID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, &NotFoundError{Resource: "Submission"}
		}
		return nil, err
	}

	var questionnaire models.Questionnaire
	if err := s.db.First(&questionnaire, response.QuestionnaireID).Error; err != nil {
		return nil, err
	}

	var questions []models.Question
	err := s.db.Where("questionnaire_id = ?", questionnaire.QuestionnaireID).
		Order("display_order").Find(&questions).Error
	if err != nil {
		return nil, err
	}

	answersByQuestion := make(map[int]models.Answer, len(response.Answers))
	for _, a := range response.Answers {
		answersByQuestion[a.QuestionID] = a
	}

	var evidence []models.EvidenceFile
	err = s.db.Where("response_id = ?", responseID).
		Order("uploaded_at DESC").Find(&evidence).Error
	if err != nil {
		return nil, err
	}

	var followUps []models.FollowUp
	err = s.db.Where("response_id = ?", responseID).
		Order("created_at DESC").Find(&followUps).Error
	if err != nil {
		return nil, err
	}

	answered := countAnswered(response.Answers)
	return &ExportDocument{
		Questionnaire:     questionnaire,
		Response:          response,
		Questions:         questions,
		AnswersByQuestion: answersByQuestion,
		AnsweredQuestions: answered,
		CompletionPercent: percent(answered, len(questions)),
		EvidenceFiles:     evidence,
		FollowUps:         followUps,
		GeneratedAt:       time.Now().UTC(),
	}, nil
}

// Stats aggregates the totals shown on the admin landing page.
func (s *ReportService) Stats() (*DashboardStats, error) {
	stats := &DashboardStats{
		ResponsesByStatus: make(map[models.ResponseStatus]int64),
	}

	if err := s.db.Model(&models.Questionnaire{}).Count(&stats.Questionnaires).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Response{}).Count(&stats.Responses).Error; err != nil {
		return nil, err
	}

	var rows []struct {
		Status models.ResponseStatus
		Count  int64
	}
	err := s.db.Model(&models.Response{}).
		Select("status, COUNT(*) AS count").Group("status").Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		stats.ResponsesByStatus[row.Status] = row.Count
	}

	if err := s.db.Model(&models.EvidenceFile{}).Count(&stats.EvidenceFiles).Error; err != nil {
		return nil, err
	}
	err = s.db.Model(&models.EvidenceFile{}).
		Select("COALESCE(SUM(size_bytes), 0)").Scan(&stats.EvidenceSizeBytes).Error
	if err != nil {
		return nil, err
	}

	err = s.db.Model(&models.FollowUp{}).
		Where("response_text IS NULL").Count(&stats.OpenFollowUps).Error
	if err != nil {
		return nil, err
	}

	err = s.db.Model(&models.QuestionBankItem{}).
		Where("is_active = ?", true).Count(&stats.QuestionBankActive).Error
	if err != nil {
		return nil, err
	}

	return stats, nil
}

func countAnswered(answers []models.Answer) int {
	n := 0
	for _, a := range answers {
		if a.Choice != "" {
			n++
		}
	}
	return n
}

func percent(answered, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(answered) / float64(total) * 100
}
