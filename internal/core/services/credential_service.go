package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"infrapulse-api/internal/adapters/persistence/repositories"
	"infrapulse-api/internal/pkg/password"
	"infrapulse-api/internal/pkg/token"

	"gorm.io/gorm"
)

// Credential workflow errors
var (
	ErrStaffNotFound     = errors.New("staff not found")
	ErrTokenMissing      = errors.New("token is missing")
	ErrVerificationToken = errors.New("invalid or expired token")
	ErrInvalidPayload    = errors.New("token payload is malformed")
)

// CredentialService orchestrates the staged credential-change
// workflow: an admin edit stages a new password hash together with a
// verification token, the staff member confirms via the emailed link,
// and only then does the staged hash become the login password.
type CredentialService struct {
	staffRepo repositories.StaffRepository
	tokenSvc  *token.Service
	mailer    Mailer
	baseURL   string
}

// NewCredentialService creates a new credential service
func NewCredentialService(staffRepo repositories.StaffRepository, tokenSvc *token.Service, mailer Mailer, baseURL string) *CredentialService {
	return &CredentialService{
		staffRepo: staffRepo,
		tokenSvc:  tokenSvc,
		mailer:    mailer,
		baseURL:   baseURL,
	}
}

// UpdateStaffInput represents an admin staff-edit request
type UpdateStaffInput struct {
	ID           uint   `json:"id" validate:"required"`
	StaffName    string `json:"staff_name" validate:"required"`
	StaffKana    string `json:"staff_kana"`
	EmployeeCode string `json:"employee_code"`
	Email        string `json:"email" validate:"required,email"`
	LoginID      string `json:"login_id" validate:"required"`
	Password     string `json:"password"`
	Tel1         string `json:"tel_1"`
	Role         string `json:"role" validate:"required"`
}

// UpdateStaffResult reports whether the edit staged a credential change
type UpdateStaffResult struct {
	PendingVerification bool
}

// StageOrUpdate applies an admin staff edit. When the request carries
// a new password that differs from the committed hash, the change is
// staged behind email verification; otherwise it is a plain field
// update and no email is sent.
func (s *CredentialService) StageOrUpdate(ctx context.Context, input *UpdateStaffInput) (*UpdateStaffResult, error) {
	staff, err := s.staffRepo.GetByID(ctx, input.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, err
	}

	fields := map[string]interface{}{
		"staff_name":    input.StaffName,
		"staff_kana":    input.StaffKana,
		"employee_code": input.EmployeeCode,
		"email":         input.Email,
		"login_id":      input.LoginID,
		"tel_1":         input.Tel1,
		"role":          input.Role,
	}

	// A blank password, or one equal to the committed password, is
	// not a real change: update the plain fields and stop. Repeating
	// the same edit stays idempotent and never re-sends email.
	if input.Password == "" || password.Verify(input.Password, staff.Password) {
		if err := s.staffRepo.UpdateFields(ctx, staff.ID, fields); err != nil {
			return nil, err
		}
		return &UpdateStaffResult{PendingVerification: false}, nil
	}

	// Stage the change. The row is written before the email goes out:
	// a crash in between leaves a recoverable pending record that the
	// admin can retry, while a crash before the write is a clean no-op.
	pendingHash, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	verificationToken, _, err := s.tokenSvc.IssueVerification(input.Email)
	if err != nil {
		return nil, err
	}

	if err := s.staffRepo.StageCredentialChange(ctx, staff.ID, fields, pendingHash, verificationToken); err != nil {
		return nil, err
	}

	link := fmt.Sprintf("%s/verify-email?token=%s", s.baseURL, verificationToken)
	if err := s.mailer.SendVerification(input.Email, link); err != nil {
		// The record is already pending; the admin can re-run the
		// edit to issue a fresh token and email.
		log.Printf("❌ Verification email to %s failed: %v", input.Email, err)
	}

	log.Printf("🔒 Credential change staged for staff id=%d", staff.ID)

	return &UpdateStaffResult{PendingVerification: true}, nil
}

// VerifyEmail consumes a verification token and promotes the staged
// password. The conditional UPDATE matches both the email and the
// stored token value, so a replayed or superseded token fails even
// while its signature is still valid.
func (s *CredentialService) VerifyEmail(ctx context.Context, rawToken string) error {
	if rawToken == "" {
		return ErrTokenMissing
	}

	claims, err := s.tokenSvc.VerifyVerification(rawToken)
	if err != nil {
		// Expired and forged tokens fail the same way; the database
		// is never touched on this path.
		return ErrVerificationToken
	}

	// Guard against token-payload shape mismatches across workflow
	// variants: both fields must be present.
	if claims.Email == "" || claims.TokenID == "" {
		return ErrInvalidPayload
	}

	rows, err := s.staffRepo.ConsumeVerificationToken(ctx, claims.Email, rawToken)
	if err != nil {
		return err
	}
	if rows == 0 {
		// Already consumed, superseded by a newer change request, or
		// never staged. Indistinguishable from an invalid token on
		// purpose.
		return ErrVerificationToken
	}

	staff, err := s.staffRepo.GetByEmail(ctx, claims.Email)
	if err != nil {
		log.Printf("⚠️ Verified %s but could not load record for credentials email: %v", claims.Email, err)
		return nil
	}

	if err := s.mailer.SendCredentials(staff.Email, staff.LoginID); err != nil {
		log.Printf("❌ Credentials email to %s failed: %v", staff.Email, err)
	}

	log.Printf("✅ Email verified, password committed for staff id=%d", staff.ID)
	return nil
}
