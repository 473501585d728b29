// Seeds the schema, a default admin user and the starter question bank.
// cmd/seed/main.go
package main

import (
	"log"
	"os"
	"time"

	"vendor-assessment-api/config"
	"vendor-assessment-api/models"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

var starterBank = []models.QuestionBankItem{
	{Category: "Access Control", Text: "Do you enforce multi-factor authentication for all administrative access?"},
	{Category: "Access Control", Text: "Are access rights reviewed at least quarterly?"},
	{Category: "Access Control", Text: "Is access revoked within 24 hours of employee termination?"},
	{Category: "Data Protection", Text: "Is customer data encrypted at rest?"},
	{Category: "Data Protection", Text: "Is data encrypted in transit using TLS 1.2 or higher?"},
	{Category: "Data Protection", Text: "Do you maintain a data retention and disposal policy?"},
	{Category: "Incident Response", Text: "Do you have a documented incident response plan?"},
	{Category: "Incident Response", Text: "Are customers notified of security incidents within 72 hours?"},
	{Category: "Business Continuity", Text: "Are backups tested for restorability at least annually?"},
	{Category: "Business Continuity", Text: "Do you maintain a disaster recovery plan with defined RTO/RPO targets?"},
	{Category: "Compliance", Text: "Do you hold a current SOC 2 Type II report?"},
	{Category: "Compliance", Text: "Are penetration tests performed by an independent party at least annually?"},
	{Category: "Vendor Management", Text: "Do you assess the security posture of your own subprocessors?"},
}

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Initialize database
	config.InitDB()

	err := config.DB.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.QuestionBankItem{},
		&models.Questionnaire{},
		&models.Question{},
		&models.Response{},
		&models.Answer{},
		&models.EvidenceFile{},
		&models.FollowUp{},
	)
	if err != nil {
		log.Fatal("Failed to migrate schema:", err)
	}

	now := time.Now()

	for _, role := range []models.Role{
		{RoleID: models.RoleAnalyst, Role: "analyst"},
		{RoleID: models.RoleAdmin, Role: "admin"},
	} {
		var existing models.Role
		if err := config.DB.Where("role_id = ?", role.RoleID).First(&existing).Error; err == nil {
			continue
		}
		role.CreateAt = &now
		if err := config.DB.Create(&role).Error; err != nil {
			log.Fatal("Failed to seed roles:", err)
		}
	}

	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@example.com"
	}
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "changeme123"
		log.Println("ADMIN_PASSWORD not set, using the default; change it after first login")
	}

	var admin models.User
	if err := config.DB.Where("email = ?", adminEmail).First(&admin).Error; err != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal("Failed to hash admin password:", err)
		}
		admin = models.User{
			FullName: "Administrator",
			Email:    adminEmail,
			Password: string(hashed),
			RoleID:   models.RoleAdmin,
			CreateAt: &now,
		}
		if err := config.DB.Create(&admin).Error; err != nil {
			log.Fatal("Failed to create admin user:", err)
		}
		log.Printf("Created admin user %s", adminEmail)
	}

	seeded := 0
	for _, item := range starterBank {
		var existing models.QuestionBankItem
		if err := config.DB.Where("category = ? AND text = ?", item.Category, item.Text).
			First(&existing).Error; err == nil {
			continue
		}
		item.IsActive = true
		item.CreateAt = &now
		if err := config.DB.Create(&item).Error; err != nil {
			log.Fatal("Failed to seed question bank:", err)
		}
		seeded++
	}

	log.Printf("Seed complete: %d new question bank items", seeded)
}
