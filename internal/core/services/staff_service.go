package services

import (
	"context"
	"errors"
	"log"

	"infrapulse-api/internal/adapters/persistence/models"
	"infrapulse-api/internal/adapters/persistence/repositories"
	"infrapulse-api/internal/core/domain"
	"infrapulse-api/internal/pkg/password"
)

// Staff management errors
var (
	ErrLoginIDTaken  = errors.New("login id already exists")
	ErrEmailTaken    = errors.New("email already exists")
	ErrRoleNotValid  = errors.New("role is not valid")
	ErrRoleForbidden = errors.New("caller role cannot manage target role")
	ErrWrongCompany  = errors.New("staff belongs to another company")
)

// StaffService handles staff account management
type StaffService struct {
	staffRepo repositories.StaffRepository
}

// NewStaffService creates a new staff service
func NewStaffService(staffRepo repositories.StaffRepository) *StaffService {
	return &StaffService{staffRepo: staffRepo}
}

// CreateCompanyAdminInput represents a system-admin create request
type CreateCompanyAdminInput struct {
	LoginID     string `json:"login_id" validate:"required"`
	Password    string `json:"password" validate:"required,min=8"`
	CompanyName string `json:"company_name" validate:"required"`
	StaffName   string `json:"staff_name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
}

// CreateStaffInput represents a company-admin create request
type CreateStaffInput struct {
	StaffName    string `json:"staff_name" validate:"required"`
	StaffKana    string `json:"staff_kana"`
	EmployeeCode string `json:"employee_code"`
	Email        string `json:"email" validate:"required,email"`
	LoginID      string `json:"login_id" validate:"required"`
	Password     string `json:"password" validate:"required,min=8"`
	Tel1         string `json:"tel_1"`
}

// ListStaffOutput represents a staff listing
type ListStaffOutput struct {
	Staff []*models.StaffResponse `json:"staff"`
	Total int64                   `json:"total"`
}

// CreateCompanyAdmin creates a company admin account. Only a system
// admin may call this; the caller role is re-checked here so the
// invariant does not rest on routing alone.
func (s *StaffService) CreateCompanyAdmin(ctx context.Context, callerRole domain.Role, input *CreateCompanyAdminInput) (*models.Staff, error) {
	if !callerRole.CanManage(domain.RoleCompanyAdmin) {
		return nil, ErrRoleForbidden
	}

	if err := s.checkUnique(ctx, input.LoginID, input.Email); err != nil {
		return nil, err
	}

	hash, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	admin := &models.Staff{
		StaffName:   input.StaffName,
		Email:       input.Email,
		LoginID:     input.LoginID,
		Password:    hash,
		CompanyName: input.CompanyName,
		Role:        domain.RoleCompanyAdmin.String(),
	}

	if err := s.staffRepo.Create(ctx, admin); err != nil {
		return nil, err
	}

	log.Printf("✅ Company admin created: %s (%s)", admin.LoginID, admin.CompanyName)
	return admin, nil
}

// CreateStaff creates a staff_user account scoped to the caller's company
func (s *StaffService) CreateStaff(ctx context.Context, callerRole domain.Role, callerCompany string, input *CreateStaffInput) (*models.Staff, error) {
	if !callerRole.CanManage(domain.RoleStaffUser) {
		return nil, ErrRoleForbidden
	}

	if err := s.checkUnique(ctx, input.LoginID, input.Email); err != nil {
		return nil, err
	}

	hash, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	staff := &models.Staff{
		StaffName:    input.StaffName,
		StaffKana:    input.StaffKana,
		EmployeeCode: input.EmployeeCode,
		Email:        input.Email,
		LoginID:      input.LoginID,
		Password:     hash,
		Tel1:         input.Tel1,
		CompanyName:  callerCompany,
		Role:         domain.RoleStaffUser.String(),
	}

	if err := s.staffRepo.Create(ctx, staff); err != nil {
		return nil, err
	}

	log.Printf("✅ Staff created: %s (%s)", staff.LoginID, staff.CompanyName)
	return staff, nil
}

// ListStaff lists staff of a company, role-ordered
func (s *StaffService) ListStaff(ctx context.Context, companyName string, offset, limit int) (*ListStaffOutput, error) {
	staff, total, err := s.staffRepo.List(ctx, companyName, offset, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.StaffResponse, len(staff))
	for i, st := range staff {
		responses[i] = st.ToResponse()
	}

	return &ListStaffOutput{Staff: responses, Total: total}, nil
}

// AuthorizeEdit checks that the caller may edit the target record and
// that the requested role does not elevate above the caller's tier.
func (s *StaffService) AuthorizeEdit(ctx context.Context, callerRole domain.Role, callerCompany string, input *UpdateStaffInput) error {
	targetRole, ok := domain.ParseRole(input.Role)
	if !ok {
		return ErrRoleNotValid
	}

	target, err := s.staffRepo.GetByID(ctx, input.ID)
	if err != nil {
		return ErrStaffNotFound
	}

	// A system admin may edit any record below its tier. A company
	// admin is confined to staff users of its own company.
	if callerRole == domain.RoleCompanyAdmin {
		if target.CompanyName != callerCompany {
			return ErrWrongCompany
		}
	}

	currentRole, _ := domain.ParseRole(target.Role)
	if !callerRole.CanManage(currentRole) || !callerRole.CanManage(targetRole) {
		return ErrRoleForbidden
	}

	return nil
}

// DeleteStaff soft deletes a staff record of the caller's company
func (s *StaffService) DeleteStaff(ctx context.Context, callerRole domain.Role, callerCompany string, id uint) error {
	target, err := s.staffRepo.GetByID(ctx, id)
	if err != nil {
		return ErrStaffNotFound
	}

	targetRole, _ := domain.ParseRole(target.Role)
	if !callerRole.CanManage(targetRole) {
		return ErrRoleForbidden
	}
	if callerRole == domain.RoleCompanyAdmin && target.CompanyName != callerCompany {
		return ErrWrongCompany
	}

	if err := s.staffRepo.SoftDelete(ctx, id); err != nil {
		return err
	}

	log.Printf("🗑️ Staff soft deleted: id=%d", id)
	return nil
}

func (s *StaffService) checkUnique(ctx context.Context, loginID, email string) error {
	exists, err := s.staffRepo.ExistsByLoginID(ctx, loginID)
	if err != nil {
		return err
	}
	if exists {
		return ErrLoginIDTaken
	}

	exists, err = s.staffRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		return ErrEmailTaken
	}

	return nil
}
