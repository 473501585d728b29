package controllers

import (
	"errors"
	"net/http"

	"vendor-assessment-api/services"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps typed service errors onto HTTP statuses.
// Anything unrecognized is a 500 with a generic message so internals
// never leak to vendors.
func respondServiceError(c *gin.Context, err error) {
	var notFound *services.NotFoundError
	var validation *services.ValidationError
	var conflict *services.ConflictError
	var permission *services.PermissionError

	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
	case errors.As(err, &validation):
		body := gin.H{"error": validation.Message}
		if len(validation.MissingQuestionIDs) > 0 {
			body["missing_question_ids"] = validation.MissingQuestionIDs
		}
		c.JSON(http.StatusBadRequest, body)
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, gin.H{"error": conflict.Error()})
	case errors.As(err, &permission):
		c.JSON(http.StatusForbidden, gin.H{"error": permission.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
