package controllers

import (
	"net/http"
	"strconv"

	"vendor-assessment-api/config"
	"vendor-assessment-api/services"
	"vendor-assessment-api/utils"

	"github.com/gin-gonic/gin"
)

// GetResponsesOverview lists every questionnaire with response counts by status
func GetResponsesOverview(c *gin.Context) {
	svc := services.NewReportService(config.DB)
	summaries, err := svc.Overview()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch responses"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"questionnaires": summaries})
}

// GetQuestionnaireResponses lists a questionnaire's responses with
// completion percentages; ?status= filters by lifecycle state
func GetQuestionnaireResponses(c *gin.Context) {
	questionnaireID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid questionnaire id"})
		return
	}

	svc := services.NewReportService(config.DB)
	questionnaire, responses, err := svc.QuestionnaireResponses(questionnaireID, c.Query("status"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"questionnaire": questionnaire,
		"responses":     responses,
		"status_filter": c.Query("status"),
	})
}

// RequestFollowUp opens an admin clarification request against a response
func RequestFollowUp(c *gin.Context) {
	responseID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid response id"})
		return
	}

	var req struct {
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := services.NewResponseService(config.DB)
	followUp, err := svc.RequestFollowUp(responseID, utils.SanitizeInput(req.Message))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Follow-up requested",
		"follow_up": followUp,
	})
}

// ExportSubmission returns the print-friendly document for one submission
func ExportSubmission(c *gin.Context) {
	submissionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission id"})
		return
	}

	svc := services.NewReportService(config.DB)
	document, err := svc.Export(submissionID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, document)
}
