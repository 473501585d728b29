package controllers

import (
	"fmt"
	"net/http"
	"os"
	"strconv"

	"vendor-assessment-api/config"
	"vendor-assessment-api/models"
	"vendor-assessment-api/services"
	"vendor-assessment-api/utils"

	"github.com/gin-gonic/gin"
)

func baseURL() string {
	base := os.Getenv("BASE_URL")
	if base == "" {
		base = "http://localhost:8080"
	}
	return base
}

func vendorURL(token string) string {
	return fmt.Sprintf("%s/api/v1/vendor/%s", baseURL(), token)
}

// CreateQuestionnaire builds a questionnaire from question bank selections
func CreateQuestionnaire(c *gin.Context) {
	var req struct {
		CompanyName string                  `json:"company_name" binding:"required"`
		Title       string                  `json:"title" binding:"required"`
		Selections  []services.SelectedItem `json:"selections"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := services.NewQuestionnaireService(config.DB)
	questionnaire, err := svc.Create(
		utils.SanitizeInput(req.CompanyName),
		utils.SanitizeInput(req.Title),
		req.Selections,
	)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":       "Questionnaire created",
		"questionnaire": questionnaire,
		"share_url":     vendorURL(questionnaire.Token),
	})
}

// GetQuestionnaires lists all questionnaires with response counts (tracker)
func GetQuestionnaires(c *gin.Context) {
	svc := services.NewReportService(config.DB)
	summaries, err := svc.Overview()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch questionnaires"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"questionnaires": summaries,
		"total":          len(summaries),
	})
}

// ShareQuestionnaire returns the vendor-facing link for a questionnaire
func ShareQuestionnaire(c *gin.Context) {
	questionnaireID := c.Param("id")

	var questionnaire models.Questionnaire
	if err := config.DB.First(&questionnaire, questionnaireID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Questionnaire not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":     questionnaire.Token,
		"share_url": vendorURL(questionnaire.Token),
	})
}

// SendQuestionnaire emails the share link to a vendor contact
func SendQuestionnaire(c *gin.Context) {
	questionnaireID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid questionnaire id"})
		return
	}

	var req struct {
		ContactEmail string `json:"contact_email" binding:"required,email"`
		ContactName  string `json:"contact_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var questionnaire models.Questionnaire
	if err := config.DB.First(&questionnaire, questionnaireID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Questionnaire not found"})
		return
	}

	name := utils.SanitizeInput(req.ContactName)
	if name == "" {
		name = questionnaire.CompanyName
	}

	shareURL := vendorURL(questionnaire.Token)
	subject := fmt.Sprintf("Security questionnaire: %s", questionnaire.Title)
	html := fmt.Sprintf(
		`<p>Hello %s,</p>
<p>You have been asked to complete the security questionnaire <strong>%s</strong>.</p>
<p><a href="%s">Open the questionnaire</a></p>
<p>You can save a draft at any time and resume later with your email address.</p>`,
		name, questionnaire.Title, shareURL)

	// Sending the link moves a draft questionnaire to SENT. Recorded before
	// the mail goes out so a late failure cannot leave a delivered mail
	// behind an error response; re-sends are a no-op transition.
	svc := services.NewQuestionnaireService(config.DB)
	if err := svc.MarkSent(questionnaireID); err != nil {
		respondServiceError(c, err)
		return
	}

	if err := config.SendMail([]string{req.ContactEmail}, subject, html); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Questionnaire sent",
		"share_url": shareURL,
	})
}

// AddQuestionnaireQuestions appends bank items or a custom question
func AddQuestionnaireQuestions(c *gin.Context) {
	questionnaireID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid questionnaire id"})
		return
	}

	var req struct {
		ItemIDs    []int  `json:"item_ids"`
		CustomText string `json:"custom_text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := services.NewQuestionnaireService(config.DB)
	if err := svc.AddQuestions(questionnaireID, req.ItemIDs, utils.SanitizeInput(req.CustomText)); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Questions added"})
}

// RemoveQuestionnaireQuestion deletes a question and re-packs the order
func RemoveQuestionnaireQuestion(c *gin.Context) {
	questionnaireID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid questionnaire id"})
		return
	}
	questionID, err := strconv.Atoi(c.Param("question_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid question id"})
		return
	}

	svc := services.NewQuestionnaireService(config.DB)
	if err := svc.RemoveQuestion(questionnaireID, questionID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Question removed"})
}

// ReviewQuestionnaire marks a submitted questionnaire as reviewed
func ReviewQuestionnaire(c *gin.Context) {
	questionnaireID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid questionnaire id"})
		return
	}

	svc := services.NewQuestionnaireService(config.DB)
	if err := svc.MarkReviewed(questionnaireID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Questionnaire marked as reviewed"})
}
