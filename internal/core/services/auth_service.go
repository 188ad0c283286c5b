package services

import (
	"context"
	"errors"
	"log"

	"infrapulse-api/internal/adapters/persistence/models"
	"infrapulse-api/internal/adapters/persistence/repositories"
	"infrapulse-api/internal/pkg/password"
	"infrapulse-api/internal/pkg/token"

	"gorm.io/gorm"
)

// Auth errors
var (
	ErrUserNotFound    = errors.New("user does not exist")
	ErrInvalidPassword = errors.New("invalid password")
)

// AuthService handles authentication business logic
type AuthService struct {
	staffRepo repositories.StaffRepository
	tokenSvc  *token.Service
}

// NewAuthService creates a new auth service
func NewAuthService(staffRepo repositories.StaffRepository, tokenSvc *token.Service) *AuthService {
	return &AuthService{
		staffRepo: staffRepo,
		tokenSvc:  tokenSvc,
	}
}

// LoginInput represents login input
type LoginInput struct {
	LoginID  string `json:"login_id" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResult represents a successful login
type LoginResult struct {
	SessionToken string
	Staff        *models.Staff
}

// Login authenticates a staff member by login ID and issues a session
// token. A missing record and a wrong password are reported as
// distinct errors; the handler maps them to 404 and 401 respectively.
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginResult, error) {
	// 1. Find staff by login ID (not email)
	staff, err := s.staffRepo.GetByLoginID(ctx, input.LoginID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	// 2. Verify password against the committed hash. A staged pending
	// password is not usable until verified.
	if !password.Verify(input.Password, staff.Password) {
		return nil, ErrInvalidPassword
	}

	// 3. Issue session token
	sessionToken, err := s.tokenSvc.IssueSession(staff.ID, staff.LoginID, staff.Role)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Staff logged in: %s (role: %s)", staff.LoginID, staff.Role)

	return &LoginResult{
		SessionToken: sessionToken,
		Staff:        staff,
	}, nil
}

// VerifySession validates a session token
func (s *AuthService) VerifySession(sessionToken string) (*token.SessionClaims, error) {
	return s.tokenSvc.VerifySession(sessionToken)
}
