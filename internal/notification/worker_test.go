package notification

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"equipment-booking-backend/internal/model"
	"equipment-booking-backend/internal/store"
)

// mockSender is a mock implementation of the Sender interface.
type mockSender struct {
	SendFunc func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

func (m *mockSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return m.SendFunc(payload, sub, options)
}

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

func seedBookingWithSubscription(t *testing.T, st store.Store) *model.Booking {
	t.Helper()
	ctx := context.Background()

	eq := &model.Equipment{Name: "Pool table", IsActive: true, DailyStartHour: 8, DailyEndHour: 22, MinDurationMinutes: 30, MaxDurationMinutes: 120}
	require.NoError(t, st.CreateEquipment(ctx, eq))

	b := &model.Booking{UserID: 7, EquipmentID: eq.ID, BookingDate: "2025-03-10", StartTime: "14:00", EndTime: "15:00", Status: model.BookingActive}
	require.NoError(t, st.CreateBookingChecked(ctx, b))

	require.NoError(t, st.UpsertSubscription(ctx, &model.PushSubscription{
		Endpoint: "https://push.example/sub", UserID: 7, P256DH: "key", Auth: "auth",
	}))
	return b
}

func TestWorkerPoolDispatch(t *testing.T) {
	wp := NewWorkerPool(1, newTestStore(t), &webpush.Options{}, zerolog.Nop())

	wp.Dispatch(123)

	select {
	case job := <-wp.jobs:
		assert.Equal(t, int64(123), job)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for job to be dispatched")
	}
}

func TestWorkerSendsReminder(t *testing.T) {
	st := newTestStore(t)
	b := seedBookingWithSubscription(t, st)

	wp := NewWorkerPool(1, st, &webpush.Options{}, zerolog.Nop())

	var wg sync.WaitGroup
	wg.Add(1)
	wp.sender = &mockSender{
		SendFunc: func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
			assert.Equal(t, "https://push.example/sub", sub.Endpoint)
			assert.Equal(t, "Your booking for Pool table starts at 14:00.", string(payload))
			wg.Done()
			return &http.Response{
				StatusCode: http.StatusCreated,
				Body:       io.NopCloser(bytes.NewBufferString("")),
			}, nil
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	wp.Start(ctx)

	wp.Dispatch(b.ID)
	wg.Wait()
}

func TestWorkerDeletesExpiredSubscription(t *testing.T) {
	st := newTestStore(t)
	b := seedBookingWithSubscription(t, st)

	wp := NewWorkerPool(1, st, &webpush.Options{}, zerolog.Nop())

	var wg sync.WaitGroup
	wg.Add(1)
	wp.sender = &mockSender{
		SendFunc: func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
			wg.Done()
			return &http.Response{
				StatusCode: http.StatusGone,
				Body:       io.NopCloser(bytes.NewBufferString("")),
			}, nil
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	wp.Start(ctx)

	wp.Dispatch(b.ID)
	wg.Wait()

	// The 410 response removes the subscription; give the worker a moment
	// to finish the delete after the send returns.
	assert.Eventually(t, func() bool {
		subs, err := st.SubscriptionsByUser(context.Background(), 7)
		return err == nil && len(subs) == 0
	}, time.Second, 10*time.Millisecond)
}
