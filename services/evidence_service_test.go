package services

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"vendor-assessment-api/config"
	"vendor-assessment-api/models"

	"gorm.io/gorm"
)

func newTestEvidenceService(t *testing.T, db *gorm.DB) (*EvidenceService, string) {
	t.Helper()

	root := t.TempDir()
	cfg := config.EvidenceConfig{
		AllowedExtensions: map[string]bool{
			"pdf": true, "docx": true, "xlsx": true,
			"png": true, "jpg": true, "jpeg": true,
		},
		MaxFileSize: 10 * 1024 * 1024,
		UploadRoot:  root,
	}
	return NewEvidenceService(db, cfg), root
}

func TestValidateUploadRejectsBadExtension(t *testing.T) {
	svc, _ := newTestEvidenceService(t, newTestDB(t))

	err := svc.ValidateUpload("malware.exe", 100)
	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError for .exe, got %v", err)
	}
}

func TestValidateUploadRejectsOversizedFile(t *testing.T) {
	svc, _ := newTestEvidenceService(t, newTestDB(t))

	if err := svc.ValidateUpload("report.pdf", 9*1024*1024); err != nil {
		t.Fatalf("expected 9MB pdf to pass, got %v", err)
	}
	err := svc.ValidateUpload("report.pdf", 11*1024*1024)
	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError for 11MB file, got %v", err)
	}
}

func TestUploadStoresFileAndRecord(t *testing.T) {
	db := newTestDB(t)
	questionnaire := seedQuestionnaire(t, db, 1)
	svc, root := newTestEvidenceService(t, db)

	content := bytes.Repeat([]byte("a"), 64)
	evidence, err := svc.Upload(questionnaire.Token, "Acme Corp", "vendor@acme.test",
		"SOC2 Report (2026).pdf", "application/pdf", content)
	if err != nil {
		t.Fatalf("Upload returned error: %v", err)
	}

	if evidence.OriginalFilename != "SOC2 Report 2026.pdf" {
		t.Fatalf("expected sanitized original filename, got %q", evidence.OriginalFilename)
	}
	if evidence.SizeBytes != int64(len(content)) {
		t.Fatalf("expected size %d, got %d", len(content), evidence.SizeBytes)
	}

	data, err := os.ReadFile(evidence.StoredPath)
	if err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
	if !bytes.Equal(data, content) {
		t.Fatal("stored file content does not match upload")
	}

	wantPrefix := filepath.Join(root, strconv.Itoa(questionnaire.QuestionnaireID)) + string(os.PathSeparator)
	if !strings.HasPrefix(evidence.StoredPath, wantPrefix) {
		t.Fatalf("expected stored path under %s, got %s", wantPrefix, evidence.StoredPath)
	}

	// Uploading creates a draft response implicitly.
	var response models.Response
	if err := db.First(&response, evidence.ResponseID).Error; err != nil {
		t.Fatalf("failed to load response: %v", err)
	}
	if response.Status != models.ResponseStatusDraft {
		t.Fatalf("expected implicit DRAFT response, got %s", response.Status)
	}
}

func TestUploadAfterSubmitRejected(t *testing.T) {
	db := newTestDB(t)
	questionnaire := seedQuestionnaire(t, db, 1)
	svc, _ := newTestEvidenceService(t, db)

	_, err := NewResponseService(db).Submit(questionnaire.Token, "Acme", "vendor@acme.test",
		answerAll(questionnaire, models.ChoiceYes))
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	_, err = svc.Upload(questionnaire.Token, "Acme", "vendor@acme.test",
		"late.pdf", "application/pdf", []byte("x"))
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
}

func TestListReturnsFilesAndEmptyForUnknownVendor(t *testing.T) {
	db := newTestDB(t)
	questionnaire := seedQuestionnaire(t, db, 1)
	svc, _ := newTestEvidenceService(t, db)

	for _, name := range []string{"first.pdf", "second.pdf"} {
		if _, err := svc.Upload(questionnaire.Token, "Acme", "vendor@acme.test",
			name, "application/pdf", []byte("x")); err != nil {
			t.Fatalf("Upload %s returned error: %v", name, err)
		}
	}

	files, err := svc.List(questionnaire.Token, "vendor@acme.test")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(files))
	}

	files, err = svc.List(questionnaire.Token, "nobody@acme.test")
	if err != nil {
		t.Fatalf("List for unknown vendor returned error: %v", err)
	}
	if len(files) != 0 {
		t.Fatalf("expected no files for unknown vendor, got %d", len(files))
	}
}

func TestDeleteRemovesExactlyOneFileAndRecord(t *testing.T) {
	db := newTestDB(t)
	questionnaire := seedQuestionnaire(t, db, 1)
	svc, _ := newTestEvidenceService(t, db)

	first, err := svc.Upload(questionnaire.Token, "Acme", "vendor@acme.test",
		"keep.pdf", "application/pdf", []byte("keep"))
	if err != nil {
		t.Fatalf("Upload returned error: %v", err)
	}
	second, err := svc.Upload(questionnaire.Token, "Acme", "vendor@acme.test",
		"drop.pdf", "application/pdf", []byte("drop"))
	if err != nil {
		t.Fatalf("Upload returned error: %v", err)
	}

	if err := svc.Delete(questionnaire.Token, second.EvidenceID, "vendor@acme.test"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	if _, err := os.Stat(second.StoredPath); !os.IsNotExist(err) {
		t.Fatalf("expected deleted file to be gone, stat err: %v", err)
	}
	if _, err := os.Stat(first.StoredPath); err != nil {
		t.Fatalf("expected kept file to remain: %v", err)
	}

	var count int64
	if err := db.Model(&models.EvidenceFile{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 remaining record, got %d", count)
	}
}

func TestDeleteOwnershipAndLifecycleGuards(t *testing.T) {
	db := newTestDB(t)
	questionnaire := seedQuestionnaire(t, db, 1)
	svc, _ := newTestEvidenceService(t, db)

	evidence, err := svc.Upload(questionnaire.Token, "Acme", "vendor@acme.test",
		"report.pdf", "application/pdf", []byte("x"))
	if err != nil {
		t.Fatalf("Upload returned error: %v", err)
	}

	err = svc.Delete(questionnaire.Token, evidence.EvidenceID, "other@vendor.test")
	var permission *PermissionError
	if !errors.As(err, &permission) {
		t.Fatalf("expected PermissionError for wrong email, got %v", err)
	}

	_, err = NewResponseService(db).Submit(questionnaire.Token, "Acme", "vendor@acme.test",
		answerAll(questionnaire, models.ChoiceYes))
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	err = svc.Delete(questionnaire.Token, evidence.EvidenceID, "vendor@acme.test")
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError after submit, got %v", err)
	}

	if _, err := os.Stat(evidence.StoredPath); err != nil {
		t.Fatalf("expected file to survive rejected deletes: %v", err)
	}
}
