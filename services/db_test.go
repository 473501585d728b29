package services

import (
	"testing"
	"time"

	"vendor-assessment-api/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory sqlite database with the full
// schema migrated. MaxOpenConns is pinned to 1 so every query sees the
// same in-memory database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	err = db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.QuestionBankItem{},
		&models.Questionnaire{},
		&models.Question{},
		&models.Response{},
		&models.Answer{},
		&models.EvidenceFile{},
		&models.FollowUp{},
	)
	if err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}

	return db
}

// seedBankItems creates n active question bank items and returns their ids.
func seedBankItems(t *testing.T, db *gorm.DB, n int) []int {
	t.Helper()

	texts := []string{
		"Do you encrypt customer data at rest?",
		"Do you enforce MFA for administrative access?",
		"Do you have a documented incident response plan?",
		"Are backups tested for restorability?",
		"Do you hold a current SOC 2 Type II report?",
	}

	ids := make([]int, 0, n)
	now := time.Now()
	for i := 0; i < n; i++ {
		item := models.QuestionBankItem{
			Category: "Security",
			Text:     texts[i%len(texts)],
			IsActive: true,
			CreateAt: &now,
		}
		if err := db.Create(&item).Error; err != nil {
			t.Fatalf("failed to seed bank item: %v", err)
		}
		ids = append(ids, item.ItemID)
	}
	return ids
}

// seedQuestionnaire builds a questionnaire with n questions through the
// real builder and returns it with questions loaded.
func seedQuestionnaire(t *testing.T, db *gorm.DB, n int) *models.Questionnaire {
	t.Helper()

	itemIDs := seedBankItems(t, db, n)
	selections := make([]SelectedItem, len(itemIDs))
	for i, id := range itemIDs {
		selections[i] = SelectedItem{ItemID: id}
	}

	questionnaire, err := NewQuestionnaireService(db).Create("Acme Corp", "Annual Security Review", selections)
	if err != nil {
		t.Fatalf("failed to create questionnaire: %v", err)
	}

	loaded, err := NewQuestionnaireService(db).FindByToken(questionnaire.Token)
	if err != nil {
		t.Fatalf("failed to reload questionnaire: %v", err)
	}
	return loaded
}

// answerAll builds a complete answer map for the questionnaire's questions.
func answerAll(q *models.Questionnaire, choice string) map[int]AnswerInput {
	answers := make(map[int]AnswerInput, len(q.Questions))
	for _, question := range q.Questions {
		answers[question.QuestionID] = AnswerInput{Choice: choice}
	}
	return answers
}
