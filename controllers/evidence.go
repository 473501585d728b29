package controllers

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"vendor-assessment-api/config"
	"vendor-assessment-api/services"

	"github.com/gin-gonic/gin"
)

var evidenceCfg config.EvidenceConfig

// InitEvidence hands the upload configuration to this package. Called
// once from main after the environment is loaded.
func InitEvidence(cfg config.EvidenceConfig) {
	evidenceCfg = cfg
}

func evidenceService() *services.EvidenceService {
	return services.NewEvidenceService(config.DB, evidenceCfg)
}

// UploadEvidence stores a multipart evidence file against the vendor's response
func UploadEvidence(c *gin.Context) {
	token := c.Param("token")

	vendorEmail := c.PostForm("vendor_email")
	if vendorEmail == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "vendor_email is required"})
		return
	}
	vendorName := c.PostForm("vendor_name")

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
		return
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
		return
	}

	evidence, err := evidenceService().Upload(
		token, vendorName, vendorEmail,
		file.Filename, file.Header.Get("Content-Type"), content,
	)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"file": gin.H{
			"id":          evidence.EvidenceID,
			"filename":    evidence.OriginalFilename,
			"size":        evidence.SizeBytes,
			"uploaded_at": evidence.UploadedAt,
		},
	})
}

// GetEvidenceList returns the vendor's uploaded files for a questionnaire
func GetEvidenceList(c *gin.Context) {
	token := c.Param("token")
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email query parameter is required"})
		return
	}

	files, err := evidenceService().List(token, email)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	list := make([]gin.H, 0, len(files))
	for _, f := range files {
		list = append(list, gin.H{
			"id":          f.EvidenceID,
			"filename":    f.OriginalFilename,
			"size":        f.SizeBytes,
			"uploaded_at": f.UploadedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{"files": list})
}

// DownloadEvidence streams the stored file with its original name
func DownloadEvidence(c *gin.Context) {
	evidenceID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid evidence id"})
		return
	}

	evidence, err := evidenceService().Get(evidenceID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", evidence.OriginalFilename))
	c.Header("Content-Type", evidence.ContentType)

	c.File(evidence.StoredPath)
}

// DeleteEvidence removes a file and its record while the response is a draft
func DeleteEvidence(c *gin.Context) {
	token := c.Param("token")
	evidenceID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid evidence id"})
		return
	}

	vendorEmail := c.Query("vendor_email")

	if err := evidenceService().Delete(token, evidenceID, vendorEmail); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
