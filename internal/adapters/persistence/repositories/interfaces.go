package repositories

import (
	"context"
	"time"

	"infrapulse-api/internal/adapters/persistence/models"
)

// StaffRepository defines staff data access
type StaffRepository interface {
	Create(ctx context.Context, staff *models.Staff) error
	GetByID(ctx context.Context, id uint) (*models.Staff, error)
	GetByLoginID(ctx context.Context, loginID string) (*models.Staff, error)
	GetByEmail(ctx context.Context, email string) (*models.Staff, error)
	List(ctx context.Context, companyName string, offset, limit int) ([]*models.Staff, int64, error)
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error
	StageCredentialChange(ctx context.Context, id uint, fields map[string]interface{}, pendingHash, verificationToken string) error
	ConsumeVerificationToken(ctx context.Context, email, verificationToken string) (int64, error)
	ExistsByLoginID(ctx context.Context, loginID string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	SoftDelete(ctx context.Context, id uint) error
	CountByRole(ctx context.Context, role string) (int64, error)
	CountPendingVerification(ctx context.Context, companyName string) (int64, error)
}

// MatterRepository defines construction matter data access
type MatterRepository interface {
	Create(ctx context.Context, matter *models.Matter) error
	GetByMatterNo(ctx context.Context, matterNo string) (*models.Matter, error)
	ListByCompany(ctx context.Context, companyName string, offset, limit int) ([]*models.Matter, int64, error)
	Update(ctx context.Context, matter *models.Matter) error
	UpdateNotificationFlags(ctx context.Context, matterNo string, flags map[string]interface{}) (int64, error)
	ListDeliveredBefore(ctx context.Context, cutoff time.Time) ([]*models.Matter, error)
	MarkReminderSent(ctx context.Context, id uint, column string, at time.Time) error
	CountByCompany(ctx context.Context, companyName string) (int64, error)
	CountDueWithin(ctx context.Context, companyName string, window time.Duration) (int64, error)
}

// HomeownerRepository defines homeowner data access
type HomeownerRepository interface {
	Create(ctx context.Context, owner *models.Homeowner) error
	List(ctx context.Context) ([]*models.Homeowner, error)
}
