package services

import (
	"context"
	"testing"

	"infrapulse-api/internal/adapters/persistence/repositories"
	"infrapulse-api/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginIssuesSessionWithStoredRole(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewStaffRepository(db)
	tokenSvc := newTestTokenService()
	svc := NewAuthService(repo, tokenSvc)

	seedStaff(t, db, "sato", "sato@example.com", "secret123", domain.RoleCompanyAdmin, "Yamato Construction")

	result, err := svc.Login(context.Background(), &LoginInput{LoginID: "sato", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCompanyAdmin.String(), result.Staff.Role)

	claims, err := tokenSvc.VerifySession(result.SessionToken)
	require.NoError(t, err)
	assert.Equal(t, result.Staff.ID, claims.UserID)
	assert.Equal(t, "sato", claims.LoginID)
	assert.Equal(t, domain.RoleCompanyAdmin.String(), claims.Role)
}

func TestLoginUnknownUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(repositories.NewStaffRepository(db), newTestTokenService())

	_, err := svc.Login(context.Background(), &LoginInput{LoginID: "nobody", Password: "whatever1"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestLoginWrongPassword(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewStaffRepository(db)
	svc := NewAuthService(repo, newTestTokenService())

	seedStaff(t, db, "sato", "sato@example.com", "secret123", domain.RoleStaffUser, "Yamato Construction")

	_, err := svc.Login(context.Background(), &LoginInput{LoginID: "sato", Password: "wrongpass"})
	assert.ErrorIs(t, err, ErrInvalidPassword)
}

func TestLoginPendingPasswordNotUsable(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewStaffRepository(db)
	tokenSvc := newTestTokenService()
	authSvc := NewAuthService(repo, tokenSvc)
	credSvc := NewCredentialService(repo, tokenSvc, &fakeMailer{}, "https://infrapulse.net")

	staff := seedStaff(t, db, "sato", "sato@example.com", "secret123", domain.RoleStaffUser, "Yamato Construction")

	_, err := credSvc.StageOrUpdate(context.Background(), editInput(staff, "stagedpass1"))
	require.NoError(t, err)

	// The staged password must not authenticate until verified
	_, err = authSvc.Login(context.Background(), &LoginInput{LoginID: "sato", Password: "stagedpass1"})
	assert.ErrorIs(t, err, ErrInvalidPassword)

	_, err = authSvc.Login(context.Background(), &LoginInput{LoginID: "sato", Password: "secret123"})
	assert.NoError(t, err)
}

func TestPasswordRoundTripAfterVerification(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewStaffRepository(db)
	tokenSvc := newTestTokenService()
	authSvc := NewAuthService(repo, tokenSvc)
	credSvc := NewCredentialService(repo, tokenSvc, &fakeMailer{}, "https://infrapulse.net")
	ctx := context.Background()

	staff := seedStaff(t, db, "sato", "sato@example.com", "oldpass", domain.RoleStaffUser, "Yamato Construction")

	_, err := credSvc.StageOrUpdate(ctx, editInput(staff, "newpass123"))
	require.NoError(t, err)

	staged, err := repo.GetByID(ctx, staff.ID)
	require.NoError(t, err)
	require.NoError(t, credSvc.VerifyEmail(ctx, *staged.VerificationToken))

	// New password logs in, old one no longer does
	_, err = authSvc.Login(ctx, &LoginInput{LoginID: "sato", Password: "newpass123"})
	assert.NoError(t, err)

	_, err = authSvc.Login(ctx, &LoginInput{LoginID: "sato", Password: "oldpass"})
	assert.ErrorIs(t, err, ErrInvalidPassword)
}
