package controllers

import (
	"net/http"
	"strconv"

	"vendor-assessment-api/config"
	"vendor-assessment-api/models"
	"vendor-assessment-api/services"
	"vendor-assessment-api/utils"

	"github.com/gin-gonic/gin"
)

// vendorAnswersRequest is the shared payload for draft saves and submits.
// Answers are keyed by question id (JSON object keys are strings).
type vendorAnswersRequest struct {
	VendorName  string                          `json:"vendor_name"`
	VendorEmail string                          `json:"vendor_email" binding:"required,email"`
	Answers     map[string]services.AnswerInput `json:"answers"`
}

func (r *vendorAnswersRequest) answersByQuestionID() map[int]services.AnswerInput {
	answers := make(map[int]services.AnswerInput, len(r.Answers))
	for key, input := range r.Answers {
		questionID, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		answers[questionID] = input
	}
	return answers
}

// GetVendorForm returns the questionnaire and its questions for the vendor
// page. With ?email= it also includes that vendor's existing response.
func GetVendorForm(c *gin.Context) {
	token := c.Param("token")

	svc := services.NewQuestionnaireService(config.DB)
	questionnaire, err := svc.FindByToken(token)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	body := gin.H{
		"questionnaire": gin.H{
			"title":        questionnaire.Title,
			"company_name": questionnaire.CompanyName,
			"status":       questionnaire.Status,
		},
		"questions": questionnaire.Questions,
	}

	if email := c.Query("email"); email != "" {
		responses := services.NewResponseService(config.DB)
		existing, err := responses.LoadDraft(token, email)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		if existing != nil {
			body["existing_response"] = existing
		}
	}

	c.JSON(http.StatusOK, body)
}

// SaveDraft persists answers without a completeness requirement
func SaveDraft(c *gin.Context) {
	token := c.Param("token")

	var req vendorAnswersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := services.NewResponseService(config.DB)
	response, err := svc.SaveDraft(token, utils.SanitizeInput(req.VendorName), req.VendorEmail, req.answersByQuestionID())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Draft saved",
		"status":        response.Status,
		"last_saved_at": response.LastSavedAt,
	})
}

// SubmitResponse finalizes the response; every question must be answered
func SubmitResponse(c *gin.Context) {
	token := c.Param("token")

	var req vendorAnswersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if utils.SanitizeInput(req.VendorName) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Company name is required"})
		return
	}

	svc := services.NewResponseService(config.DB)
	response, err := svc.Submit(token, utils.SanitizeInput(req.VendorName), req.VendorEmail, req.answersByQuestionID())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Questionnaire submitted",
		"status":       response.Status,
		"submitted_at": response.SubmittedAt,
	})
}

// CheckDraft reports whether a draft exists for (token, email) and
// returns its answers for form pre-fill
func CheckDraft(c *gin.Context) {
	token := c.Param("token")
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email query parameter is required"})
		return
	}

	svc := services.NewResponseService(config.DB)
	response, err := svc.LoadDraft(token, email)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if response == nil {
		c.JSON(http.StatusOK, gin.H{"found": false})
		return
	}

	answers := make(map[string]gin.H, len(response.Answers))
	for _, a := range response.Answers {
		notes := ""
		if a.Notes != nil {
			notes = *a.Notes
		}
		answers[strconv.Itoa(a.QuestionID)] = gin.H{
			"choice": a.Choice,
			"notes":  notes,
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"found":         true,
		"status":        response.Status,
		"vendor_name":   response.VendorName,
		"last_saved_at": response.LastSavedAt,
		"answers":       answers,
	})
}

// RespondFollowUp records a vendor reply to an admin follow-up
func RespondFollowUp(c *gin.Context) {
	token := c.Param("token")
	followUpID, err := strconv.Atoi(c.Param("followup_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid follow-up id"})
		return
	}

	var req struct {
		VendorEmail  string `json:"vendor_email" binding:"required,email"`
		ResponseText string `json:"response_text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := services.NewResponseService(config.DB)
	err = svc.RespondFollowUp(token, followUpID, req.VendorEmail, utils.SanitizeInput(req.ResponseText))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Follow-up answered"})
}

// GetVendorFollowUps lists the follow-up thread for the vendor's response
func GetVendorFollowUps(c *gin.Context) {
	token := c.Param("token")
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email query parameter is required"})
		return
	}

	svc := services.NewResponseService(config.DB)
	response, err := svc.LoadDraft(token, email)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if response == nil {
		c.JSON(http.StatusOK, gin.H{"follow_ups": []models.FollowUp{}})
		return
	}

	var followUps []models.FollowUp
	err = config.DB.Where("response_id = ?", response.ResponseID).
		Order("created_at DESC").Find(&followUps).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch follow-ups"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"follow_ups": followUps})
}
