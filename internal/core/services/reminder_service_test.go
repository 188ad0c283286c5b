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

func TestReminderSweepSendsDueMilestoneOnce(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewMatterRepository(db)
	mailer := &fakeMailer{}
	svc := NewReminderService(repo, mailer)
	ctx := context.Background()

	// Delivered six months ago: the 6-month inspection is due now
	delivery := time.Now().AddDate(0, -6, 0)
	matter := &models.Matter{
		MatterNo:             "M-0001",
		MatterName:           "Sakura Residence",
		Email:                "owner@example.com",
		CompanyName:          "Yamato Construction",
		DeliveryExpectedDate: &delivery,
		SixMonths:            true,
		TenYears:             true,
	}
	require.NoError(t, db.Create(matter).Error)

	require.NoError(t, svc.Run(ctx))
	require.Len(t, mailer.reminders, 1)
	assert.Equal(t, "owner@example.com", mailer.reminders[0].To)
	assert.Equal(t, "Sakura Residence/6 months", mailer.reminders[0].Payload)

	var got models.Matter
	require.NoError(t, db.First(&got, matter.ID).Error)
	assert.NotNil(t, got.SixMonthsSentAt)
	assert.Nil(t, got.TenYearsSentAt)

	// Rerunning the sweep must not re-send
	require.NoError(t, svc.Run(ctx))
	assert.Len(t, mailer.reminders, 1)
}

func TestReminderSweepSkipsDisabledAndFarFutureMilestones(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewMatterRepository(db)
	mailer := &fakeMailer{}
	svc := NewReminderService(repo, mailer)

	recent := time.Now().AddDate(0, -1, 0)
	sixMonthsAgo := time.Now().AddDate(0, -6, 0)

	// 6-month milestone disabled even though it would be due
	require.NoError(t, db.Create(&models.Matter{
		MatterNo:             "M-0002",
		MatterName:           "Ume House",
		Email:                "ume@example.com",
		DeliveryExpectedDate: &sixMonthsAgo,
		OneYear:              true,
	}).Error)

	// Delivered last month: nothing is inside the look-ahead window
	require.NoError(t, db.Create(&models.Matter{
		MatterNo:             "M-0003",
		MatterName:           "Take Villa",
		Email:                "take@example.com",
		DeliveryExpectedDate: &recent,
		SixMonths:            true,
		OneYear:              true,
	}).Error)

	require.NoError(t, svc.Run(context.Background()))
	assert.Empty(t, mailer.reminders)
}

func TestReminderSweepSkipsMattersWithoutEmailOrDelivery(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewMatterRepository(db)
	mailer := &fakeMailer{}
	svc := NewReminderService(repo, mailer)

	sixMonthsAgo := time.Now().AddDate(0, -6, 0)
	require.NoError(t, db.Create(&models.Matter{
		MatterNo:             "M-0004",
		MatterName:           "No Contact",
		DeliveryExpectedDate: &sixMonthsAgo,
		SixMonths:            true,
	}).Error)
	require.NoError(t, db.Create(&models.Matter{
		MatterNo:   "M-0005",
		MatterName: "No Delivery",
		Email:      "nd@example.com",
		SixMonths:  true,
	}).Error)

	require.NoError(t, svc.Run(context.Background()))
	assert.Empty(t, mailer.reminders)
}
