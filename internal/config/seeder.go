package config

import (
	"log"

	"infrapulse-api/internal/adapters/persistence/models"
	"infrapulse-api/internal/core/domain"
	"infrapulse-api/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
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

	if err := s.seedSystemAdmin(); err != nil {
		log.Printf("⚠️ System admin seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedSystemAdmin seeds the default system admin account.
// For development/testing only; in production create the account
// through a secure process and rotate this password immediately.
func (s *Seeder) seedSystemAdmin() error {
	var count int64
	s.db.Model(&models.Staff{}).Where("role = ?", domain.RoleSystemAdmin.String()).Count(&count)
	if count > 0 {
		return nil // system admin already exists
	}

	hashedPassword, err := password.Hash("admin123456")
	if err != nil {
		return err
	}

	admin := &models.Staff{
		StaffName:     "System Administrator",
		Email:         "admin@infrapulse.net",
		LoginID:       "sysadmin",
		Password:      hashedPassword,
		Role:          domain.RoleSystemAdmin.String(),
		EmailVerified: true,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Println("🌱 Seeded default system admin (login_id: sysadmin)")
	return nil
}
