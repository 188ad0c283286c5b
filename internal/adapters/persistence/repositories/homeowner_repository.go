package repositories

import (
	"context"

	"infrapulse-api/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// homeownerRepository implements HomeownerRepository interface
type homeownerRepository struct {
	db *gorm.DB
}

// NewHomeownerRepository creates a new homeowner repository
func NewHomeownerRepository(db *gorm.DB) HomeownerRepository {
	return &homeownerRepository{db: db}
}

// Create registers a new homeowner
func (r *homeownerRepository) Create(ctx context.Context, owner *models.Homeowner) error {
	return r.db.WithContext(ctx).Create(owner).Error
}

// List lists all homeowners
func (r *homeownerRepository) List(ctx context.Context) ([]*models.Homeowner, error) {
	var owners []*models.Homeowner
	err := r.db.WithContext(ctx).Find(&owners).Error
	if err != nil {
		return nil, err
	}
	return owners, nil
}
