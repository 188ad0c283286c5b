package services

import (
	"testing"
	"time"

	"infrapulse-api/internal/adapters/persistence/models"
	"infrapulse-api/internal/core/domain"
	"infrapulse-api/internal/pkg/password"
	"infrapulse-api/internal/pkg/token"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:svc_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestTokenService() *token.Service {
	return token.NewService("test-secret", "infrapulse-test", time.Hour, 15*time.Minute)
}

// newForeignTokenService signs with a different secret so its tokens
// must fail signature checks against the test service
func newForeignTokenService() *token.Service {
	return token.NewService("other-secret", "infrapulse-test", time.Hour, 15*time.Minute)
}

// fakeMailer captures outbound emails for assertions
type fakeMailer struct {
	verifications []sentMail
	credentials   []sentMail
	reminders     []sentMail
}

type sentMail struct {
	To      string
	Payload string
}

func (m *fakeMailer) SendVerification(to, link string) error {
	m.verifications = append(m.verifications, sentMail{To: to, Payload: link})
	return nil
}

func (m *fakeMailer) SendCredentials(to, loginID string) error {
	m.credentials = append(m.credentials, sentMail{To: to, Payload: loginID})
	return nil
}

func (m *fakeMailer) SendInspectionReminder(to, matterName, milestone string) error {
	m.reminders = append(m.reminders, sentMail{To: to, Payload: matterName + "/" + milestone})
	return nil
}

func seedStaff(t *testing.T, db *gorm.DB, loginID, email, plainPassword string, role domain.Role, company string) *models.Staff {
	t.Helper()
	hash, err := password.Hash(plainPassword)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	staff := &models.Staff{
		StaffName:   "Staff " + loginID,
		Email:       email,
		LoginID:     loginID,
		Password:    hash,
		CompanyName: company,
		Role:        role.String(),
	}
	if err := db.Create(staff).Error; err != nil {
		t.Fatalf("seed staff: %v", err)
	}
	return staff
}
