package services

import (
	"context"
	"testing"
	"time"

	"infrapulse-api/internal/adapters/persistence/models"
	"infrapulse-api/internal/adapters/persistence/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMatterFixture(t *testing.T) (*MatterService, context.Context) {
	t.Helper()
	db := newTestDB(t)
	return NewMatterService(repositories.NewMatterRepository(db)), context.Background()
}

func TestRegisterAndGetMatter(t *testing.T) {
	svc, ctx := newMatterFixture(t)

	delivery := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	created, err := svc.Register(ctx, "Yamato Construction", &RegisterMatterInput{
		MatterNo:             "M-0001",
		MatterName:           "Sakura Residence",
		OwnerName:            "Suzuki",
		Email:                "suzuki@example.com",
		DeliveryExpectedDate: &delivery,
	})
	require.NoError(t, err)
	assert.Equal(t, "Yamato Construction", created.CompanyName)

	got, err := svc.Get(ctx, "M-0001")
	require.NoError(t, err)
	assert.Equal(t, "Sakura Residence", got.MatterName)

	_, err = svc.Get(ctx, "M-9999")
	assert.ErrorIs(t, err, ErrMatterNotFound)
}

func TestListMattersScopedByCompany(t *testing.T) {
	svc, ctx := newMatterFixture(t)

	_, err := svc.Register(ctx, "Yamato Construction", &RegisterMatterInput{MatterNo: "M-0001", MatterName: "A"})
	require.NoError(t, err)
	_, err = svc.Register(ctx, "Yamato Construction", &RegisterMatterInput{MatterNo: "M-0002", MatterName: "B"})
	require.NoError(t, err)
	_, err = svc.Register(ctx, "Another Builder", &RegisterMatterInput{MatterNo: "M-0003", MatterName: "C"})
	require.NoError(t, err)

	matters, total, err := svc.List(ctx, "Yamato Construction", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, matters, 2)

	// An empty company name scopes to all (system admin view)
	_, total, err = svc.List(ctx, "", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
}

func TestUpdateMatter(t *testing.T) {
	svc, ctx := newMatterFixture(t)

	_, err := svc.Register(ctx, "Yamato Construction", &RegisterMatterInput{MatterNo: "M-0001", MatterName: "Before"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, "M-0001", &UpdateMatterInput{
		MatterNo:   "M-0001",
		MatterName: "After",
		OneYear:    true,
		Period:     "2026-04",
	})
	require.NoError(t, err)
	assert.Equal(t, "After", updated.MatterName)
	assert.True(t, updated.OneYear)

	_, err = svc.Update(ctx, "M-9999", &UpdateMatterInput{MatterNo: "M-9999", MatterName: "Ghost"})
	assert.ErrorIs(t, err, ErrMatterNotFound)
}

func TestListUpcomingInspections(t *testing.T) {
	db := newTestDB(t)
	svc := NewMatterService(repositories.NewMatterRepository(db))
	ctx := context.Background()

	// 6-month inspection due in one week
	soonDue := time.Now().AddDate(0, -6, 7)
	require.NoError(t, db.Create(&models.Matter{
		MatterNo: "M-0001", MatterName: "Sakura Residence", OwnerName: "Suzuki",
		Email: "suzuki@example.com", CompanyName: "Yamato Construction",
		DeliveryExpectedDate: &soonDue, SixMonths: true, TenYears: true,
	}).Error)

	// 1-year inspection due in three weeks, different company
	laterDue := time.Now().AddDate(-1, 0, 21)
	require.NoError(t, db.Create(&models.Matter{
		MatterNo: "M-0002", MatterName: "Ume House", CompanyName: "Another Builder",
		DeliveryExpectedDate: &laterDue, OneYear: true,
	}).Error)

	// Nothing enabled
	require.NoError(t, db.Create(&models.Matter{
		MatterNo: "M-0003", MatterName: "Take Villa", CompanyName: "Yamato Construction",
		DeliveryExpectedDate: &soonDue,
	}).Error)

	window := 30 * 24 * time.Hour

	upcoming, err := svc.ListUpcoming(ctx, "Yamato Construction", window)
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, "M-0001", upcoming[0].MatterNo)
	assert.Equal(t, "6 months", upcoming[0].Milestone)
	assert.Equal(t, "suzuki@example.com", upcoming[0].Email)

	// The unscoped view sees both companies, soonest first
	upcoming, err = svc.ListUpcoming(ctx, "", window)
	require.NoError(t, err)
	require.Len(t, upcoming, 2)
	assert.Equal(t, "M-0001", upcoming[0].MatterNo)
	assert.Equal(t, "M-0002", upcoming[1].MatterNo)

	// A short window excludes everything
	upcoming, err = svc.ListUpcoming(ctx, "", 24*time.Hour)
	require.NoError(t, err)
	assert.Empty(t, upcoming)
}

func TestNotificationFlagsRoundTrip(t *testing.T) {
	svc, ctx := newMatterFixture(t)

	_, err := svc.Register(ctx, "Yamato Construction", &RegisterMatterInput{MatterNo: "M-0001", MatterName: "A"})
	require.NoError(t, err)

	flags, err := svc.GetNotificationFlags(ctx, "M-0001")
	require.NoError(t, err)
	assert.False(t, flags.SixMonths)

	require.NoError(t, svc.SetNotificationFlags(ctx, "M-0001", &NotificationFlags{
		SixMonths: true,
		TenYears:  true,
	}))

	flags, err = svc.GetNotificationFlags(ctx, "M-0001")
	require.NoError(t, err)
	assert.True(t, flags.SixMonths)
	assert.False(t, flags.OneYear)
	assert.True(t, flags.TenYears)

	err = svc.SetNotificationFlags(ctx, "M-9999", &NotificationFlags{})
	assert.ErrorIs(t, err, ErrMatterNotFound)
}
