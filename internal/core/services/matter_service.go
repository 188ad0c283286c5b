package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"infrapulse-api/internal/adapters/persistence/models"
	"infrapulse-api/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

// Matter errors
var (
	ErrMatterNotFound = errors.New("matter not found")
)

// MatterService handles construction matter business logic
type MatterService struct {
	matterRepo repositories.MatterRepository
}

// NewMatterService creates a new matter service
func NewMatterService(matterRepo repositories.MatterRepository) *MatterService {
	return &MatterService{matterRepo: matterRepo}
}

// RegisterMatterInput represents a matter registration request
type RegisterMatterInput struct {
	MatterNo             string     `json:"matter_no" validate:"required"`
	MatterName           string     `json:"matter_name" validate:"required"`
	OwnerName            string     `json:"owner_name"`
	ArchitectureType     string     `json:"architecture_type"`
	Address              string     `json:"address"`
	Telephone            string     `json:"telephone"`
	Email                string     `json:"email" validate:"omitempty,email"`
	DeliveryExpectedDate *time.Time `json:"delivery_expected_date"`
}

// UpdateMatterInput represents a matter update request
type UpdateMatterInput struct {
	MatterNo                 string     `json:"matter_no" validate:"required"`
	MatterName               string     `json:"matter_name" validate:"required"`
	OwnerName                string     `json:"owner_name"`
	ArchitectureType         string     `json:"architecture_type"`
	Telephone                string     `json:"telephone"`
	Email                    string     `json:"email" validate:"omitempty,email"`
	DeliveryExpectedDate     *time.Time `json:"delivery_expected_date"`
	SixMonths                bool       `json:"six_months"`
	OneYear                  bool       `json:"one_year"`
	ThreeYears               bool       `json:"three_years"`
	TenYears                 bool       `json:"ten_years"`
	Period                   string     `json:"period"`
	ConfirmationNotification bool       `json:"confirmation_notification"`
}

// NotificationFlags represents the inspection milestone toggles
type NotificationFlags struct {
	SixMonths  bool `json:"six_months"`
	OneYear    bool `json:"one_year"`
	ThreeYears bool `json:"three_years"`
	TenYears   bool `json:"ten_years"`
}

// Register registers a new construction matter for a company
func (s *MatterService) Register(ctx context.Context, companyName string, input *RegisterMatterInput) (*models.Matter, error) {
	matter := &models.Matter{
		MatterNo:             input.MatterNo,
		MatterName:           input.MatterName,
		OwnerName:            input.OwnerName,
		ArchitectureType:     input.ArchitectureType,
		Address:              input.Address,
		Telephone:            input.Telephone,
		Email:                input.Email,
		CompanyName:          companyName,
		DeliveryExpectedDate: input.DeliveryExpectedDate,
	}

	if err := s.matterRepo.Create(ctx, matter); err != nil {
		return nil, err
	}

	return matter, nil
}

// List lists matters of a company
func (s *MatterService) List(ctx context.Context, companyName string, offset, limit int) ([]*models.Matter, int64, error) {
	return s.matterRepo.ListByCompany(ctx, companyName, offset, limit)
}

// Get fetches one matter by matter number
func (s *MatterService) Get(ctx context.Context, matterNo string) (*models.Matter, error) {
	matter, err := s.matterRepo.GetByMatterNo(ctx, matterNo)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMatterNotFound
		}
		return nil, err
	}
	return matter, nil
}

// Update updates a matter identified by its original matter number
func (s *MatterService) Update(ctx context.Context, matterNo string, input *UpdateMatterInput) (*models.Matter, error) {
	matter, err := s.Get(ctx, matterNo)
	if err != nil {
		return nil, err
	}

	matter.MatterNo = input.MatterNo
	matter.MatterName = input.MatterName
	matter.OwnerName = input.OwnerName
	matter.ArchitectureType = input.ArchitectureType
	matter.Telephone = input.Telephone
	matter.Email = input.Email
	matter.DeliveryExpectedDate = input.DeliveryExpectedDate
	matter.SixMonths = input.SixMonths
	matter.OneYear = input.OneYear
	matter.ThreeYears = input.ThreeYears
	matter.TenYears = input.TenYears
	matter.Period = input.Period
	matter.ConfirmationNotification = input.ConfirmationNotification

	if err := s.matterRepo.Update(ctx, matter); err != nil {
		return nil, err
	}

	return matter, nil
}

// UpcomingInspection is one scheduled maintenance visit, derived from a
// matter's delivery date and its enabled milestone flags
type UpcomingInspection struct {
	MatterNo   string    `json:"matter_no"`
	MatterName string    `json:"matter_name"`
	OwnerName  string    `json:"owner_name"`
	Email      string    `json:"email"`
	Milestone  string    `json:"milestone"`
	DueDate    time.Time `json:"due_date"`
}

// ListUpcoming derives the inspections falling due inside the window,
// soonest first. Milestones already marked sent are excluded.
func (s *MatterService) ListUpcoming(ctx context.Context, companyName string, window time.Duration) ([]*UpcomingInspection, error) {
	now := time.Now()
	matters, err := s.matterRepo.ListDeliveredBefore(ctx, now)
	if err != nil {
		return nil, err
	}

	horizon := now.Add(window)
	upcoming := []*UpcomingInspection{}
	for _, m := range matters {
		if companyName != "" && m.CompanyName != companyName {
			continue
		}
		if m.DeliveryExpectedDate == nil {
			continue
		}

		for _, ms := range milestones {
			if !ms.enabled(m) || ms.sentAt(m) != nil {
				continue
			}
			due := ms.due(*m.DeliveryExpectedDate)
			if due.Before(now) || due.After(horizon) {
				continue
			}
			upcoming = append(upcoming, &UpcomingInspection{
				MatterNo:   m.MatterNo,
				MatterName: m.MatterName,
				OwnerName:  m.OwnerName,
				Email:      m.Email,
				Milestone:  ms.label,
				DueDate:    due,
			})
		}
	}

	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].DueDate.Before(upcoming[j].DueDate)
	})
	return upcoming, nil
}

// GetNotificationFlags reads the milestone toggles of a matter
func (s *MatterService) GetNotificationFlags(ctx context.Context, matterNo string) (*NotificationFlags, error) {
	matter, err := s.Get(ctx, matterNo)
	if err != nil {
		return nil, err
	}

	return &NotificationFlags{
		SixMonths:  matter.SixMonths,
		OneYear:    matter.OneYear,
		ThreeYears: matter.ThreeYears,
		TenYears:   matter.TenYears,
	}, nil
}

// SetNotificationFlags updates the milestone toggles of a matter
func (s *MatterService) SetNotificationFlags(ctx context.Context, matterNo string, flags *NotificationFlags) error {
	rows, err := s.matterRepo.UpdateNotificationFlags(ctx, matterNo, map[string]interface{}{
		"six_months":  flags.SixMonths,
		"one_year":    flags.OneYear,
		"three_years": flags.ThreeYears,
		"ten_years":   flags.TenYears,
	})
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrMatterNotFound
	}
	return nil
}
