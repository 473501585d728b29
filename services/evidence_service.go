package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"vendor-assessment-api/config"
	"vendor-assessment-api/models"
	"vendor-assessment-api/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EvidenceService stores vendor evidence files on disk under
// {UploadRoot}/{questionnaire_id}/{response_id}/ and keeps the DB row and
// the file in lockstep: neither outlives the other.
type EvidenceService struct {
	db  *gorm.DB
	cfg config.EvidenceConfig
}

func NewEvidenceService(db *gorm.DB, cfg config.EvidenceConfig) *EvidenceService {
	return &EvidenceService{db: db, cfg: cfg}
}

// ValidateUpload checks the filename extension and size against the
// configured limits before anything touches the disk.
func (s *EvidenceService) ValidateUpload(filename string, size int64) error {
	ext := utils.FileExtension(filename)
	if !s.cfg.AllowedExtensions[ext] {
		return &ValidationError{Message: "File type not allowed"}
	}
	if size > s.cfg.MaxFileSize {
		return &ValidationError{Message: fmt.Sprintf("File too large. Maximum size is %dMB", s.cfg.MaxFileSize/(1024*1024))}
	}
	return nil
}

// Upload validates and stores a file for the vendor's response,
// creating a draft response if none exists yet. The file is written first;
// if the DB insert fails the file is removed again.
func (s *EvidenceService) Upload(token, vendorName, vendorEmail, filename, contentType string, content []byte) (*models.EvidenceFile, error) {
	if err := s.ValidateUpload(filename, int64(len(content))); err != nil {
		return nil, err
	}

	responses := NewResponseService(s.db)
	questionnaire, response, err := responses.findOrCreateResponse(token, vendorName, vendorEmail)
	if err != nil {
		return nil, err
	}
	if !response.Editable() {
		return nil, &ConflictError{Message: "Cannot upload files after submission"}
	}

	dir := filepath.Join(s.cfg.UploadRoot,
		strconv.Itoa(questionnaire.QuestionnaireID), strconv.Itoa(response.ResponseID))
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	safeName := utils.SanitizeFilename(filename)
	storedFilename := fmt.Sprintf("%s_%s", uuid.NewString()[:8], safeName)
	storedPath := filepath.Join(dir, storedFilename)

	if err := os.WriteFile(storedPath, content, 0o644); err != nil {
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	if contentType == "" {
		contentType = "application/octet-stream"
	}

	evidence := &models.EvidenceFile{
		QuestionnaireID:  questionnaire.QuestionnaireID,
		ResponseID:       response.ResponseID,
		OriginalFilename: safeName,
		StoredFilename:   storedFilename,
		StoredPath:       storedPath,
		ContentType:      contentType,
		SizeBytes:        int64(len(content)),
		UploadedAt:       time.Now(),
	}

	if err := s.db.Create(evidence).Error; err != nil {
		// Compensate so a failed insert leaves no orphaned file behind.
		os.Remove(storedPath)
		return nil, fmt.Errorf("failed to save evidence record: %w", err)
	}

	return evidence, nil
}

// List returns the vendor's evidence files for (token, email), newest first.
func (s *EvidenceService) List(token, vendorEmail string) ([]models.EvidenceFile, error) {
	responses := NewResponseService(s.db)
	questionnaire, err := responses.questionnaireByToken(token)
	if err != nil {
		return nil, err
	}

	var response models.Response
	err = s.db.Where("questionnaire_id = ? AND vendor_email = ?", questionnaire.QuestionnaireID, vendorEmail).
		First(&response).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return []models.EvidenceFile{}, nil
		}
		return nil, err
	}

	var files []models.EvidenceFile
	err = s.db.Where("response_id = ?", response.ResponseID).
		Order("uploaded_at DESC").Find(&files).Error
	if err != nil {
		return nil, err
	}
	return files, nil
}

// Get loads one evidence record by id.
func (s *EvidenceService) Get(evidenceID int) (*models.EvidenceFile, error) {
	var evidence models.EvidenceFile
	if err := s.db.First(&evidence, evidenceID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, &NotFoundError{Resource: "File"}
		}
		return nil, err
	}
	return &evidence, nil
}

// Delete removes an evidence file and its record together. The caller's
// email must own the response and the response must still be editable.
func (s *EvidenceService) Delete(token string, evidenceID int, vendorEmail string) error {
	if vendorEmail == "" {
		return &ValidationError{Message: "Email is required"}
	}

	responses := NewResponseService(s.db)
	questionnaire, err := responses.questionnaireByToken(token)
	if err != nil {
		return err
	}

	var evidence models.EvidenceFile
	err = s.db.Where("evidence_id = ? AND questionnaire_id = ?", evidenceID, questionnaire.QuestionnaireID).
		First(&evidence).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return &NotFoundError{Resource: "File"}
		}
		return err
	}

	var response models.Response
	if err := s.db.First(&response, evidence.ResponseID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return &NotFoundError{Resource: "Response"}
		}
		return err
	}
	if response.VendorEmail != vendorEmail {
		return &PermissionError{Message: "Not authorized to delete this file"}
	}
	if !response.Editable() {
		return &ConflictError{Message: "Cannot delete files after submission"}
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&evidence).Error; err != nil {
			return err
		}
		if err := os.Remove(evidence.StoredPath); err != nil && !os.IsNotExist(err) {
			// Rolls the row delete back so file and record stay paired.
			return fmt.Errorf("failed to remove stored file: %w", err)
		}
		return nil
	})
}
