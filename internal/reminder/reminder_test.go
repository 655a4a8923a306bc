package reminder

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"equipment-booking-backend/config"
	"equipment-booking-backend/internal/model"
	"equipment-booking-backend/internal/notification"
	"equipment-booking-backend/internal/store"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(
		&model.User{},
		&model.Equipment{},
		&model.Booking{},
		&model.PushSubscription{},
	))
	return store.NewGormStore(gdb)
}

func seedBooking(t *testing.T, st store.Store, date, start, end string) *model.Booking {
	t.Helper()
	ctx := context.Background()

	eq := &model.Equipment{Name: "Projector", IsActive: true, DailyStartHour: 8, DailyEndHour: 22, MinDurationMinutes: 30, MaxDurationMinutes: 240}
	require.NoError(t, st.CreateEquipment(ctx, eq))

	b := &model.Booking{UserID: 1, EquipmentID: eq.ID, BookingDate: date, StartTime: start, EndTime: end, Status: model.BookingActive}
	require.NoError(t, st.CreateBookingChecked(ctx, b))
	return b
}

func TestSweepDispatchesDueBookings(t *testing.T) {
	st := newTestStore(t)
	due := seedBooking(t, st, "2025-03-10", "14:00", "15:00")
	seedBooking(t, st, "2025-03-10", "16:00", "17:00") // outside the lead window

	cfg := &config.Config{
		Reminder: config.ReminderConfig{Enabled: true, Interval: time.Minute, LeadMinutes: 30},
		Timezone: "UTC",
	}
	pool := notification.NewWorkerPool(1, st, &webpush.Options{}, zerolog.Nop())

	svc := NewService(cfg, st, pool, zerolog.Nop())
	svc.nowFunc = func() time.Time {
		return time.Date(2025, 3, 10, 13, 45, 0, 0, time.UTC)
	}

	svc.Sweep(context.Background())

	select {
	case id := <-pool.Jobs():
		assert.Equal(t, due.ID, id)
	case <-time.After(time.Second):
		t.Fatal("expected a reminder job to be dispatched")
	}

	// No second job: the 16:00 booking is beyond the lead window.
	select {
	case id := <-pool.Jobs():
		t.Fatalf("unexpected extra job %d", id)
	default:
	}

	b, err := st.FindBooking(context.Background(), due.ID)
	require.NoError(t, err)
	assert.True(t, b.ReminderSent)

	// A second sweep in the same window stays silent.
	svc.Sweep(context.Background())
	select {
	case id := <-pool.Jobs():
		t.Fatalf("reminder dispatched twice for booking %d", id)
	default:
	}
}

func TestRunRespectsDisabledFlag(t *testing.T) {
	cfg := &config.Config{
		Reminder: config.ReminderConfig{Enabled: false, Interval: time.Minute, LeadMinutes: 30},
		Timezone: "UTC",
	}
	svc := NewService(cfg, newTestStore(t), notification.NewWorkerPool(1, newTestStore(t), &webpush.Options{}, zerolog.Nop()), zerolog.Nop())

	done := make(chan struct{})
	go func() {
		svc.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run should return immediately when the sweep is disabled")
	}
}
