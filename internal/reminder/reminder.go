// Package reminder periodically scans for bookings about to start and hands
// them to the notification worker pool. It never touches booking status;
// completion stays a derived property.
package reminder

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"equipment-booking-backend/config"
	"equipment-booking-backend/internal/notification"
	"equipment-booking-backend/internal/schedule"
	"equipment-booking-backend/internal/store"
)

// Service runs the reminder sweep loop.
type Service struct {
	cfg   *config.Config
	store store.Store
	pool  *notification.WorkerPool
	loc   *time.Location
	log   zerolog.Logger

	nowFunc func() time.Time
}

// NewService creates a reminder service.
func NewService(cfg *config.Config, st store.Store, pool *notification.WorkerPool, logger zerolog.Logger) *Service {
	return &Service{
		cfg:     cfg,
		store:   st,
		pool:    pool,
		loc:     cfg.Location(),
		log:     logger,
		nowFunc: time.Now,
	}
}

// Run starts the sweep loop until ctx is cancelled.
func (s *Service) Run(ctx context.Context) {
	if !s.cfg.Reminder.Enabled {
		s.log.Info().Msg("reminder sweep is disabled")
		return
	}
	s.log.Info().Dur("interval", s.cfg.Reminder.Interval).Msg("starting reminder sweep")

	ticker := time.NewTicker(s.cfg.Reminder.Interval)
	defer ticker.Stop()

	s.Sweep(ctx)
	for {
		select {
		case <-ticker.C:
			s.Sweep(ctx)
		case <-ctx.Done():
			s.log.Info().Msg("reminder sweep stopped")
			return
		}
	}
}

// Sweep dispatches one reminder for every active booking starting within the
// configured lead window. Bookings are marked before dispatch so a reminder
// is sent at most once.
func (s *Service) Sweep(ctx context.Context) {
	now := s.nowFunc().In(s.loc)
	date := now.Format(schedule.DateLayout)
	from := now.Format("15:04")
	to := now.Add(time.Duration(s.cfg.Reminder.LeadMinutes) * time.Minute)

	toTime := to.Format("15:04")
	if to.Day() != now.Day() {
		// Lead window crossing midnight: stop at the end of today,
		// tomorrow's sweep picks up the rest.
		toTime = "23:59"
	}

	due, err := s.store.FindDueReminders(ctx, date, from, toTime)
	if err != nil {
		s.log.Error().Err(err).Msg("reminder sweep query failed")
		return
	}

	for _, b := range due {
		if err := s.store.MarkReminderSent(ctx, b.ID); err != nil {
			s.log.Error().Err(err).Int64("booking", b.ID).Msg("failed to mark reminder")
			continue
		}
		s.pool.Dispatch(b.ID)
	}
}
