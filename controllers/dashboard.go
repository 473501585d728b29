package controllers

import (
	"net/http"
	"time"

	"vendor-assessment-api/config"
	"vendor-assessment-api/services"

	"github.com/gin-gonic/gin"
)

// GetDashboardStats returns totals for the admin landing page
func GetDashboardStats(c *gin.Context) {
	svc := services.NewReportService(config.DB)
	stats, err := svc.Stats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dashboard stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats":        stats,
		"current_date": time.Now().Format("2006-01-02"),
	})
}
