package services

import (
	"context"
	"time"

	"infrapulse-api/internal/adapters/persistence/repositories"
	"infrapulse-api/internal/core/domain"
)

// DashboardService aggregates counters for the landing dashboard
type DashboardService struct {
	staffRepo  repositories.StaffRepository
	matterRepo repositories.MatterRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(staffRepo repositories.StaffRepository, matterRepo repositories.MatterRepository) *DashboardService {
	return &DashboardService{
		staffRepo:  staffRepo,
		matterRepo: matterRepo,
	}
}

// DashboardSummary represents the aggregated counters
type DashboardSummary struct {
	StaffUsers           int64 `json:"staff_users"`
	CompanyAdmins        int64 `json:"company_admins"`
	Matters              int64 `json:"matters"`
	PendingVerifications int64 `json:"pending_verifications"`
	InspectionsDue30Days int64 `json:"inspections_due_30_days"`
}

// Summary builds the dashboard counters scoped to the caller's company
func (s *DashboardService) Summary(ctx context.Context, companyName string) (*DashboardSummary, error) {
	staffUsers, err := s.staffRepo.CountByRole(ctx, domain.RoleStaffUser.String())
	if err != nil {
		return nil, err
	}

	companyAdmins, err := s.staffRepo.CountByRole(ctx, domain.RoleCompanyAdmin.String())
	if err != nil {
		return nil, err
	}

	matters, err := s.matterRepo.CountByCompany(ctx, companyName)
	if err != nil {
		return nil, err
	}

	pending, err := s.staffRepo.CountPendingVerification(ctx, companyName)
	if err != nil {
		return nil, err
	}

	due, err := s.matterRepo.CountDueWithin(ctx, companyName, 30*24*time.Hour)
	if err != nil {
		return nil, err
	}

	return &DashboardSummary{
		StaffUsers:           staffUsers,
		CompanyAdmins:        companyAdmins,
		Matters:              matters,
		PendingVerifications: pending,
		InspectionsDue30Days: due,
	}, nil
}
