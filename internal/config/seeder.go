package config

import (
	"log"

	"projectgate/internal/adapters/persistence/models"
	"projectgate/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder provisions demo accounts and projects for local development. The
// users and projects tables are owned by the main site in every other
// environment.
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedUsers(); err != nil {
		return err
	}
	if err := s.seedProjects(); err != nil {
		return err
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedUsers seeds a dev admin and a dev member account
func (s *Seeder) seedUsers() error {
	var count int64
	s.db.Model(&models.User{}).Count(&count)
	if count > 0 {
		return nil
	}

	adminHash, err := password.Hash("admin123456")
	if err != nil {
		return err
	}
	memberHash, err := password.Hash("member123456")
	if err != nil {
		return err
	}

	users := []*models.User{
		{
			Username: "admin",
			Email:    "admin@projectgate.dev",
			Password: adminHash,
			Role:     "ADMIN",
			IsActive: true,
		},
		{
			Username: "demo",
			Email:    "demo@projectgate.dev",
			Password: memberHash,
			Role:     "USER",
			IsActive: true,
		},
	}

	for _, user := range users {
		if err := s.db.Create(user).Error; err != nil {
			return err
		}
		log.Printf("✅ Seeded user: %s (%s)", user.Username, user.Role)
	}
	return nil
}

// seedProjects seeds sample gated projects
func (s *Seeder) seedProjects() error {
	var count int64
	s.db.Model(&models.Project{}).Count(&count)
	if count > 0 {
		return nil
	}

	projects := []*models.Project{
		{
			Title:       "E-Commerce Starter Kit",
			Slug:        "ecommerce-starter-kit",
			Description: "Full storefront with cart, checkout and admin dashboard",
			Price:       2000,
			Currency:    "USD",
			DemoURL:     "https://demo.projectgate.dev/ecommerce",
			DownloadURL: "https://files.projectgate.dev/ecommerce-starter-kit.zip",
			IsPublished: true,
		},
		{
			Title:       "Analytics Dashboard",
			Slug:        "analytics-dashboard",
			Description: "Realtime charts and reporting widgets",
			Price:       1500,
			Currency:    "USD",
			DemoURL:     "https://demo.projectgate.dev/analytics",
			DownloadURL: "https://files.projectgate.dev/analytics-dashboard.zip",
			IsPublished: true,
		},
	}

	for _, project := range projects {
		if err := s.db.Create(project).Error; err != nil {
			return err
		}
		log.Printf("✅ Seeded project: %s", project.Title)
	}
	return nil
}
