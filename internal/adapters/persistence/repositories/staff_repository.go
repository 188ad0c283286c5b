package repositories

import (
	"context"

	"infrapulse-api/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// staffRepository implements StaffRepository interface
type staffRepository struct {
	db *gorm.DB
}

// NewStaffRepository creates a new staff repository
func NewStaffRepository(db *gorm.DB) StaffRepository {
	return &staffRepository{db: db}
}

// Create creates a new staff record
func (r *staffRepository) Create(ctx context.Context, staff *models.Staff) error {
	return r.db.WithContext(ctx).Create(staff).Error
}

// GetByID gets a staff record by ID
func (r *staffRepository) GetByID(ctx context.Context, id uint) (*models.Staff, error) {
	var staff models.Staff
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&staff).Error
	if err != nil {
		return nil, err
	}
	return &staff, nil
}

// GetByLoginID gets a staff record by login ID
func (r *staffRepository) GetByLoginID(ctx context.Context, loginID string) (*models.Staff, error) {
	var staff models.Staff
	err := r.db.WithContext(ctx).Where("login_id = ?", loginID).First(&staff).Error
	if err != nil {
		return nil, err
	}
	return &staff, nil
}

// GetByEmail gets a staff record by email
func (r *staffRepository) GetByEmail(ctx context.Context, email string) (*models.Staff, error) {
	var staff models.Staff
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&staff).Error
	if err != nil {
		return nil, err
	}
	return &staff, nil
}

// List lists staff of a company, role-ordered, with pagination
func (r *staffRepository) List(ctx context.Context, companyName string, offset, limit int) ([]*models.Staff, int64, error) {
	var staff []*models.Staff
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Staff{})
	if companyName != "" {
		query = query.Where("company_name = ?", companyName)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("role ASC").Offset(offset).Limit(limit).Find(&staff).Error; err != nil {
		return nil, 0, err
	}

	return staff, total, nil
}

// UpdateFields updates non-secret columns of a staff record
func (r *staffRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.Staff{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// StageCredentialChange writes the non-secret fields together with the
// staging columns in one UPDATE so a record is never half staged.
func (r *staffRepository) StageCredentialChange(ctx context.Context, id uint, fields map[string]interface{}, pendingHash, verificationToken string) error {
	updates := make(map[string]interface{}, len(fields)+3)
	for k, v := range fields {
		updates[k] = v
	}
	updates["pending_password"] = pendingHash
	updates["verification_token"] = verificationToken
	updates["email_verified"] = false

	return r.db.WithContext(ctx).Model(&models.Staff{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// ConsumeVerificationToken promotes the staged password in a single
// conditional UPDATE. The WHERE clause matches the stored token value,
// so a consumed or superseded token affects zero rows and only the
// first of two concurrent attempts can succeed.
func (r *staffRepository) ConsumeVerificationToken(ctx context.Context, email, verificationToken string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Staff{}).
		Where("email = ? AND verification_token = ?", email, verificationToken).
		Updates(map[string]interface{}{
			"password":           gorm.Expr("pending_password"),
			"pending_password":   nil,
			"verification_token": nil,
			"email_verified":     true,
		})
	return res.RowsAffected, res.Error
}

// ExistsByLoginID checks if a login ID is taken
func (r *staffRepository) ExistsByLoginID(ctx context.Context, loginID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Staff{}).Where("login_id = ?", loginID).Count(&count).Error
	return count > 0, err
}

// ExistsByEmail checks if an email is taken
func (r *staffRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Staff{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// SoftDelete soft deletes a staff record
func (r *staffRepository) SoftDelete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Staff{}, id).Error
}

// CountByRole counts staff records holding a role
func (r *staffRepository) CountByRole(ctx context.Context, role string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Staff{}).Where("role = ?", role).Count(&count).Error
	return count, err
}

// CountPendingVerification counts records with a staged credential change
func (r *staffRepository) CountPendingVerification(ctx context.Context, companyName string) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.Staff{}).Where("verification_token IS NOT NULL")
	if companyName != "" {
		query = query.Where("company_name = ?", companyName)
	}
	err := query.Count(&count).Error
	return count, err
}
