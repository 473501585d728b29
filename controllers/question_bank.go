package controllers

import (
	"net/http"
	"time"

	"vendor-assessment-api/config"
	"vendor-assessment-api/models"
	"vendor-assessment-api/utils"

	"github.com/gin-gonic/gin"
)

// GetQuestionBank returns all bank items grouped by category
func GetQuestionBank(c *gin.Context) {
	var items []models.QuestionBankItem
	if err := config.DB.Order("category, item_id").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch question bank"})
		return
	}

	grouped := make(map[string][]models.QuestionBankItem)
	for _, item := range items {
		grouped[item.Category] = append(grouped[item.Category], item)
	}

	c.JSON(http.StatusOK, gin.H{
		"grouped":     grouped,
		"total_count": len(items),
	})
}

// CreateQuestionBankItem adds a question to the bank
func CreateQuestionBankItem(c *gin.Context) {
	var req struct {
		Category string `json:"category" binding:"required"`
		Text     string `json:"text" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Category and question text are required"})
		return
	}

	req.Category = utils.SanitizeInput(req.Category)
	req.Text = utils.SanitizeInput(req.Text)
	if req.Category == "" || req.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Category and question text are required"})
		return
	}

	now := time.Now()
	item := models.QuestionBankItem{
		Category: req.Category,
		Text:     req.Text,
		IsActive: true,
		CreateAt: &now,
		UpdateAt: &now,
	}

	if err := config.DB.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create question"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Question created",
		"item":    item,
	})
}

// UpdateQuestionBankItem edits category/text of a bank item
func UpdateQuestionBankItem(c *gin.Context) {
	itemID := c.Param("id")

	var item models.QuestionBankItem
	if err := config.DB.First(&item, itemID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
		return
	}

	var req struct {
		Category *string `json:"category"`
		Text     *string `json:"text"`
		IsActive *bool   `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Category != nil {
		category := utils.SanitizeInput(*req.Category)
		if category == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Category cannot be empty"})
			return
		}
		updates["category"] = category
	}
	if req.Text != nil {
		text := utils.SanitizeInput(*req.Text)
		if text == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Question text cannot be empty"})
			return
		}
		updates["text"] = text
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	updates["update_at"] = time.Now()

	if err := config.DB.Model(&item).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update question"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Question updated",
		"item":    item,
	})
}

// ToggleQuestionBankItem flips the active flag
func ToggleQuestionBankItem(c *gin.Context) {
	itemID := c.Param("id")

	var item models.QuestionBankItem
	if err := config.DB.First(&item, itemID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
		return
	}

	now := time.Now()
	item.IsActive = !item.IsActive
	item.UpdateAt = &now

	if err := config.DB.Save(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update question"})
		return
	}

	status := "deactivated"
	if item.IsActive {
		status = "activated"
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Question " + status,
		"item":    item,
	})
}
