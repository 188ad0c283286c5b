package services

import (
	"context"
	"log"
	"time"

	"infrapulse-api/internal/adapters/persistence/models"
	"infrapulse-api/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// milestone describes one inspection interval after delivery
type milestone struct {
	label      string
	sentColumn string
	enabled    func(*models.Matter) bool
	sentAt     func(*models.Matter) *time.Time
	due        func(time.Time) time.Time
}

var milestones = []milestone{
	{
		label:      "6 months",
		sentColumn: "six_months_sent_at",
		enabled:    func(m *models.Matter) bool { return m.SixMonths },
		sentAt:     func(m *models.Matter) *time.Time { return m.SixMonthsSentAt },
		due:        func(d time.Time) time.Time { return d.AddDate(0, 6, 0) },
	},
	{
		label:      "1 year",
		sentColumn: "one_year_sent_at",
		enabled:    func(m *models.Matter) bool { return m.OneYear },
		sentAt:     func(m *models.Matter) *time.Time { return m.OneYearSentAt },
		due:        func(d time.Time) time.Time { return d.AddDate(1, 0, 0) },
	},
	{
		label:      "3 years",
		sentColumn: "three_years_sent_at",
		enabled:    func(m *models.Matter) bool { return m.ThreeYears },
		sentAt:     func(m *models.Matter) *time.Time { return m.ThreeYearsSentAt },
		due:        func(d time.Time) time.Time { return d.AddDate(3, 0, 0) },
	},
	{
		label:      "10 years",
		sentColumn: "ten_years_sent_at",
		enabled:    func(m *models.Matter) bool { return m.TenYears },
		sentAt:     func(m *models.Matter) *time.Time { return m.TenYearsSentAt },
		due:        func(d time.Time) time.Time { return d.AddDate(10, 0, 0) },
	},
}

// ReminderService runs the daily maintenance inspection reminder job.
// Matters whose delivery date plus an enabled milestone falls inside
// the look-ahead window get one reminder email; the sent timestamp
// makes reruns idempotent.
type ReminderService struct {
	matterRepo repositories.MatterRepository
	mailer     Mailer
	cron       *cron.Cron
	lookAhead  time.Duration
}

// NewReminderService creates a new reminder service
func NewReminderService(matterRepo repositories.MatterRepository, mailer Mailer) *ReminderService {
	return &ReminderService{
		matterRepo: matterRepo,
		mailer:     mailer,
		cron:       cron.New(),
		lookAhead:  14 * 24 * time.Hour,
	}
}

// Start schedules the daily run (08:30)
func (s *ReminderService) Start() error {
	_, err := s.cron.AddFunc("30 8 * * *", func() {
		if err := s.Run(context.Background()); err != nil {
			log.Printf("❌ Inspection reminder run failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	log.Println("🚀 Inspection reminder scheduler started (daily 08:30)")
	return nil
}

// Stop stops the scheduler and waits for a running job to finish
func (s *ReminderService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("🛑 Inspection reminder scheduler stopped")
}

// Run executes one reminder sweep
func (s *ReminderService) Run(ctx context.Context) error {
	now := time.Now()
	matters, err := s.matterRepo.ListDeliveredBefore(ctx, now)
	if err != nil {
		return err
	}

	sent := 0
	for _, m := range matters {
		if m.DeliveryExpectedDate == nil || m.Email == "" {
			continue
		}
		delivery := *m.DeliveryExpectedDate

		for _, ms := range milestones {
			if !ms.enabled(m) || ms.sentAt(m) != nil {
				continue
			}
			due := ms.due(delivery)
			if due.After(now.Add(s.lookAhead)) {
				// Not close enough yet
				continue
			}

			if err := s.mailer.SendInspectionReminder(m.Email, m.MatterName, ms.label); err != nil {
				log.Printf("❌ Reminder email for matter %s (%s) failed: %v", m.MatterNo, ms.label, err)
				continue
			}

			if err := s.matterRepo.MarkReminderSent(ctx, m.ID, ms.sentColumn, now); err != nil {
				log.Printf("⚠️ Could not mark %s reminder sent for matter %s: %v", ms.label, m.MatterNo, err)
				continue
			}
			sent++
		}
	}

	if sent > 0 {
		log.Printf("📧 Inspection reminder sweep sent %d email(s)", sent)
	}
	return nil
}
