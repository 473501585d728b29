package routes

import (
	"vendor-assessment-api/controllers"
	"vendor-assessment-api/middleware"
	"vendor-assessment-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			// Authentication
			public.POST("/login", controllers.Login)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Vendor Assessment API is running",
				})
			})

			// Vendor-facing routes, authenticated by questionnaire token
			vendor := public.Group("/vendor/:token")
			{
				vendor.GET("", controllers.GetVendorForm)
				vendor.POST("/draft", controllers.SaveDraft)
				vendor.POST("/submit", controllers.SubmitResponse)
				vendor.GET("/check-draft", controllers.CheckDraft)

				vendor.POST("/evidence", controllers.UploadEvidence)
				vendor.GET("/evidence", controllers.GetEvidenceList)
				vendor.DELETE("/evidence/:id", controllers.DeleteEvidence)

				vendor.GET("/followups", controllers.GetVendorFollowUps)
				vendor.POST("/followups/:followup_id", controllers.RespondFollowUp)
			}

			// Evidence download is shared by vendors and admins
			public.GET("/evidence/:id", controllers.DownloadEvidence)
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// Profile
			protected.GET("/profile", controllers.GetProfile)
			protected.PUT("/change-password", controllers.ChangePassword)

			// Question bank curation
			questionBank := protected.Group("/question-bank")
			questionBank.Use(middleware.RequireRole(models.RoleAnalyst, models.RoleAdmin))
			{
				questionBank.GET("", controllers.GetQuestionBank)
				questionBank.POST("", controllers.CreateQuestionBankItem)
				questionBank.PUT("/:id", controllers.UpdateQuestionBankItem)
				questionBank.POST("/:id/toggle", controllers.ToggleQuestionBankItem)
			}

			// Questionnaire builder
			questionnaires := protected.Group("/questionnaires")
			{
				questionnaires.POST("", controllers.CreateQuestionnaire)
				questionnaires.GET("", controllers.GetQuestionnaires)
				questionnaires.GET("/:id/share", controllers.ShareQuestionnaire)
				questionnaires.POST("/:id/send", controllers.SendQuestionnaire)
				questionnaires.POST("/:id/questions", controllers.AddQuestionnaireQuestions)
				questionnaires.DELETE("/:id/questions/:question_id", controllers.RemoveQuestionnaireQuestion)
				questionnaires.POST("/:id/review", controllers.ReviewQuestionnaire)
			}

			// Response review
			responses := protected.Group("/responses")
			{
				responses.GET("", controllers.GetResponsesOverview)
				responses.GET("/:id", controllers.GetQuestionnaireResponses)
				responses.POST("/:id/followups", controllers.RequestFollowUp)
			}

			// Export
			protected.GET("/submissions/:id/export", controllers.ExportSubmission)

			// Dashboard
			protected.GET("/dashboard/stats", controllers.GetDashboardStats)
		}
	}
}
