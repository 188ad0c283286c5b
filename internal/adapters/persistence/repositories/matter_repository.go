package repositories

import (
	"context"
	"time"

	"infrapulse-api/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// matterRepository implements MatterRepository interface
type matterRepository struct {
	db *gorm.DB
}

// NewMatterRepository creates a new matter repository
func NewMatterRepository(db *gorm.DB) MatterRepository {
	return &matterRepository{db: db}
}

// Create registers a new construction matter
func (r *matterRepository) Create(ctx context.Context, matter *models.Matter) error {
	return r.db.WithContext(ctx).Create(matter).Error
}

// GetByMatterNo gets a matter by its matter number
func (r *matterRepository) GetByMatterNo(ctx context.Context, matterNo string) (*models.Matter, error) {
	var matter models.Matter
	err := r.db.WithContext(ctx).Where("matter_no = ?", matterNo).First(&matter).Error
	if err != nil {
		return nil, err
	}
	return &matter, nil
}

// ListByCompany lists matters of a company with pagination
func (r *matterRepository) ListByCompany(ctx context.Context, companyName string, offset, limit int) ([]*models.Matter, int64, error) {
	var matters []*models.Matter
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Matter{})
	if companyName != "" {
		query = query.Where("company_name = ?", companyName)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("matter_no ASC").Offset(offset).Limit(limit).Find(&matters).Error; err != nil {
		return nil, 0, err
	}

	return matters, total, nil
}

// Update saves a full matter record
func (r *matterRepository) Update(ctx context.Context, matter *models.Matter) error {
	return r.db.WithContext(ctx).Save(matter).Error
}

// UpdateNotificationFlags updates the inspection notification flags of a matter
func (r *matterRepository) UpdateNotificationFlags(ctx context.Context, matterNo string, flags map[string]interface{}) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Matter{}).
		Where("matter_no = ?", matterNo).
		Updates(flags)
	return res.RowsAffected, res.Error
}

// ListDeliveredBefore lists matters delivered before the cutoff date
// that still have at least one enabled, unsent inspection milestone.
func (r *matterRepository) ListDeliveredBefore(ctx context.Context, cutoff time.Time) ([]*models.Matter, error) {
	var matters []*models.Matter
	err := r.db.WithContext(ctx).
		Where("delivery_expected_date IS NOT NULL AND delivery_expected_date <= ?", cutoff).
		Where(
			r.db.Where("six_months = ? AND six_months_sent_at IS NULL", true).
				Or("one_year = ? AND one_year_sent_at IS NULL", true).
				Or("three_years = ? AND three_years_sent_at IS NULL", true).
				Or("ten_years = ? AND ten_years_sent_at IS NULL", true),
		).
		Find(&matters).Error
	if err != nil {
		return nil, err
	}
	return matters, nil
}

// MarkReminderSent records that a milestone reminder went out so the
// daily job does not send it again.
func (r *matterRepository) MarkReminderSent(ctx context.Context, id uint, column string, at time.Time) error {
	return r.db.WithContext(ctx).Model(&models.Matter{}).
		Where("id = ?", id).
		Update(column, at).Error
}

// CountByCompany counts matters of a company
func (r *matterRepository) CountByCompany(ctx context.Context, companyName string) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.Matter{})
	if companyName != "" {
		query = query.Where("company_name = ?", companyName)
	}
	err := query.Count(&count).Error
	return count, err
}

// CountDueWithin counts matters with an inspection milestone falling in
// the coming window, measured from the delivery date.
func (r *matterRepository) CountDueWithin(ctx context.Context, companyName string, window time.Duration) (int64, error) {
	matters, err := r.ListDeliveredBefore(ctx, time.Now())
	if err != nil {
		return 0, err
	}

	horizon := time.Now().Add(window)
	var count int64
	for _, m := range matters {
		if companyName != "" && m.CompanyName != companyName {
			continue
		}
		for _, due := range milestoneDueDates(m) {
			if due.After(time.Now()) && due.Before(horizon) {
				count++
				break
			}
		}
	}
	return count, nil
}

// milestoneDueDates returns the due dates of the enabled milestones
func milestoneDueDates(m *models.Matter) []time.Time {
	if m.DeliveryExpectedDate == nil {
		return nil
	}
	d := *m.DeliveryExpectedDate
	var dues []time.Time
	if m.SixMonths {
		dues = append(dues, d.AddDate(0, 6, 0))
	}
	if m.OneYear {
		dues = append(dues, d.AddDate(1, 0, 0))
	}
	if m.ThreeYears {
		dues = append(dues, d.AddDate(3, 0, 0))
	}
	if m.TenYears {
		dues = append(dues, d.AddDate(10, 0, 0))
	}
	return dues
}
