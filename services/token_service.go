package services

import (
	"fmt"
	"strings"

	"vendor-assessment-api/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	tokenLength     = 8
	tokenMaxRetries = 5
)

// GenerateUniqueToken returns a short unguessable token for vendor-facing
// URLs, collision-checked against existing questionnaires.
func GenerateUniqueToken(db *gorm.DB) (string, error) {
	for i := 0; i < tokenMaxRetries; i++ {
		token := newToken()

		var count int64
		if err := db.Model(&models.Questionnaire{}).Where("token = ?", token).Count(&count).Error; err != nil {
			return "", fmt.Errorf("failed to check token uniqueness: %w", err)
		}
		if count == 0 {
			return token, nil
		}
	}
	return "", fmt.Errorf("could not generate a unique token after %d attempts", tokenMaxRetries)
}

func newToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:tokenLength]
}
