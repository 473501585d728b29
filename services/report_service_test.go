package services

import (
	"testing"

	"vendor-assessment-api/models"
)

func TestOverviewCountsResponsesByStatus(t *testing.T) {
	db := newTestDB(t)
	questionnaire := seedQuestionnaire(t, db, 2)
	rsvc := NewResponseService(db)

	if _, err := rsvc.SaveDraft(questionnaire.Token, "Acme", "draft@acme.test", nil); err != nil {
		t.Fatalf("SaveDraft returned error: %v", err)
	}
	_, err := rsvc.Submit(questionnaire.Token, "Bolt", "done@bolt.test",
		answerAll(questionnaire, models.ChoiceYes))
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	summaries, err := NewReportService(db).Overview()
	if err != nil {
		t.Fatalf("Overview returned error: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("expected 1 questionnaire, got %d", len(summaries))
	}

	summary := summaries[0]
	if summary.Total != 2 {
		t.Fatalf("expected 2 responses total, got %d", summary.Total)
	}
	if summary.TotalByStatus[models.ResponseStatusDraft] != 1 {
		t.Fatalf("expected 1 draft, got %d", summary.TotalByStatus[models.ResponseStatusDraft])
	}
	if summary.TotalByStatus[models.ResponseStatusSubmitted] != 1 {
		t.Fatalf("expected 1 submitted, got %d", summary.TotalByStatus[models.ResponseStatusSubmitted])
	}
}

func TestQuestionnaireResponsesCompletionAndFilter(t *testing.T) {
	db := newTestDB(t)
	questionnaire := seedQuestionnaire(t, db, 4)
	rsvc := NewResponseService(db)

	// One vendor answers half the questions, another submits everything.
	partial := map[int]AnswerInput{
		questionnaire.Questions[0].QuestionID: {Choice: models.ChoiceYes},
		questionnaire.Questions[1].QuestionID: {Choice: models.ChoiceNo},
	}
	if _, err := rsvc.SaveDraft(questionnaire.Token, "Acme", "half@acme.test", partial); err != nil {
		t.Fatalf("SaveDraft returned error: %v", err)
	}
	_, err := rsvc.Submit(questionnaire.Token, "Bolt", "full@bolt.test",
		answerAll(questionnaire, models.ChoicePartial))
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	svc := NewReportService(db)
	_, progress, err := svc.QuestionnaireResponses(questionnaire.QuestionnaireID, "")
	if err != nil {
		t.Fatalf("QuestionnaireResponses returned error: %v", err)
	}
	if len(progress) != 2 {
		t.Fatalf("expected 2 responses, got %d", len(progress))
	}

	byEmail := make(map[string]ResponseProgress, len(progress))
	for _, p := range progress {
		byEmail[p.Response.VendorEmail] = p
	}
	if got := byEmail["half@acme.test"].CompletionPercent; got != 50 {
		t.Fatalf("expected 50%% completion, got %v", got)
	}
	if got := byEmail["full@bolt.test"].CompletionPercent; got != 100 {
		t.Fatalf("expected 100%% completion, got %v", got)
	}

	// Status filter narrows the list; an unknown filter is ignored.
	_, progress, err = svc.QuestionnaireResponses(questionnaire.QuestionnaireID, string(models.ResponseStatusSubmitted))
	if err != nil {
		t.Fatalf("filtered QuestionnaireResponses returned error: %v", err)
	}
	if len(progress) != 1 || progress[0].Response.VendorEmail != "full@bolt.test" {
		t.Fatalf("expected only the submitted response, got %+v", progress)
	}

	_, progress, err = svc.QuestionnaireResponses(questionnaire.QuestionnaireID, "BOGUS")
	if err != nil {
		t.Fatalf("bogus-filter QuestionnaireResponses returned error: %v", err)
	}
	if len(progress) != 2 {
		t.Fatalf("expected unknown filter to be ignored, got %d responses", len(progress))
	}
}

func TestQuestionnaireResponsesUnknownID(t *testing.T) {
	db := newTestDB(t)

	_, _, err := NewReportService(db).QuestionnaireResponses(9999, "")
	if _, ok := err.(*NotFoundError); !ok {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestExportAssemblesFullSubmission(t *testing.T) {
	db := newTestDB(t)
	questionnaire := seedQuestionnaire(t, db, 3)
	rsvc := NewResponseService(db)
	esvc, _ := newTestEvidenceService(t, db)

	if _, err := esvc.Upload(questionnaire.Token, "Acme", "vendor@acme.test",
		"soc2.pdf", "application/pdf", []byte("report")); err != nil {
		t.Fatalf("Upload returned error: %v", err)
	}
	submitted, err := rsvc.Submit(questionnaire.Token, "Acme", "vendor@acme.test",
		answerAll(questionnaire, models.ChoiceYes))
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	followUp, err := rsvc.RequestFollowUp(submitted.ResponseID, "Please attach the bridge letter")
	if err != nil {
		t.Fatalf("RequestFollowUp returned error: %v", err)
	}

	doc, err := NewReportService(db).Export(submitted.ResponseID)
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}

	if doc.Questionnaire.QuestionnaireID != questionnaire.QuestionnaireID {
		t.Fatalf("wrong questionnaire in export: %d", doc.Questionnaire.QuestionnaireID)
	}
	if len(doc.Questions) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(doc.Questions))
	}
	for i, q := range doc.Questions {
		if q.Order != i+1 {
			t.Fatalf("expected questions in display order, got %d at position %d", q.Order, i)
		}
		if _, ok := doc.AnswersByQuestion[q.QuestionID]; !ok {
			t.Fatalf("missing answer for question %d", q.QuestionID)
		}
	}
	if doc.AnsweredQuestions != 3 || doc.CompletionPercent != 100 {
		t.Fatalf("expected complete submission, got %d answered at %v%%",
			doc.AnsweredQuestions, doc.CompletionPercent)
	}
	if len(doc.EvidenceFiles) != 1 || doc.EvidenceFiles[0].OriginalFilename != "soc2.pdf" {
		t.Fatalf("expected the uploaded evidence file, got %+v", doc.EvidenceFiles)
	}
	if len(doc.FollowUps) != 1 || doc.FollowUps[0].FollowUpID != followUp.FollowUpID {
		t.Fatalf("expected the follow-up thread, got %+v", doc.FollowUps)
	}
	if doc.GeneratedAt.IsZero() {
		t.Fatal("expected generated_at to be set")
	}
}

func TestExportUnknownSubmission(t *testing.T) {
	db := newTestDB(t)

	_, err := NewReportService(db).Export(424242)
	if _, ok := err.(*NotFoundError); !ok {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestDashboardStats(t *testing.T) {
	db := newTestDB(t)
	questionnaire := seedQuestionnaire(t, db, 2)
	rsvc := NewResponseService(db)
	esvc, _ := newTestEvidenceService(t, db)

	if _, err := esvc.Upload(questionnaire.Token, "Acme", "vendor@acme.test",
		"policy.pdf", "application/pdf", []byte("12345678")); err != nil {
		t.Fatalf("Upload returned error: %v", err)
	}
	submitted, err := rsvc.Submit(questionnaire.Token, "Acme", "vendor@acme.test",
		answerAll(questionnaire, models.ChoiceYes))
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if _, err := rsvc.RequestFollowUp(submitted.ResponseID, "Clarify scope"); err != nil {
		t.Fatalf("RequestFollowUp returned error: %v", err)
	}

	stats, err := NewReportService(db).Stats()
	if err != nil {
		t.Fatalf("Stats returned error: %v", err)
	}

	if stats.Questionnaires != 1 {
		t.Fatalf("expected 1 questionnaire, got %d", stats.Questionnaires)
	}
	if stats.Responses != 1 {
		t.Fatalf("expected 1 response, got %d", stats.Responses)
	}
	if stats.ResponsesByStatus[models.ResponseStatusNeedsInfo] != 1 {
		t.Fatalf("expected 1 NEEDS_INFO response, got %+v", stats.ResponsesByStatus)
	}
	if stats.EvidenceFiles != 1 || stats.EvidenceSizeBytes != 8 {
		t.Fatalf("expected 1 evidence file of 8 bytes, got %d files / %d bytes",
			stats.EvidenceFiles, stats.EvidenceSizeBytes)
	}
	if stats.OpenFollowUps != 1 {
		t.Fatalf("expected 1 open follow-up, got %d", stats.OpenFollowUps)
	}
	if stats.QuestionBankActive != 2 {
		t.Fatalf("expected 2 active bank items, got %d", stats.QuestionBankActive)
	}
}
