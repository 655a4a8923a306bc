package notification

import (
	"context"
	"fmt"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/rs/zerolog"

	"equipment-booking-backend/internal/store"
)

// Sender defines the interface for sending a web push notification.
type Sender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is the real Sender backed by the webpush library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// WorkerPool fans booking-reminder jobs out to a fixed set of workers. Jobs
// are booking ids; each worker pushes to every subscription of the booking's
// owner.
type WorkerPool struct {
	size    int
	jobs    chan int64
	store   store.Store
	webpush *webpush.Options
	sender  Sender
	log     zerolog.Logger
}

// NewWorkerPool creates a new worker pool.
func NewWorkerPool(size int, st store.Store, webpushOptions *webpush.Options, logger zerolog.Logger) *WorkerPool {
	return &WorkerPool{
		size:    size,
		jobs:    make(chan int64, size),
		store:   st,
		webpush: webpushOptions,
		sender:  &WebPushSender{},
		log:     logger,
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	wp.log.Debug().Int("worker", id).Msg("notification worker started")
	for {
		select {
		case bookingID := <-wp.jobs:
			wp.notifyBooking(ctx, bookingID)
		case <-ctx.Done():
			wp.log.Debug().Int("worker", id).Msg("notification worker shutting down")
			return
		}
	}
}

// Dispatch sends a job to the worker pool.
func (wp *WorkerPool) Dispatch(bookingID int64) {
	wp.jobs <- bookingID
}

// Jobs returns the jobs channel for testing.
func (wp *WorkerPool) Jobs() chan int64 {
	return wp.jobs
}

func (wp *WorkerPool) notifyBooking(ctx context.Context, bookingID int64) {
	b, err := wp.store.FindBooking(ctx, bookingID)
	if err != nil || b == nil {
		wp.log.Error().Err(err).Int64("booking", bookingID).Msg("reminder: booking lookup failed")
		return
	}

	subs, err := wp.store.SubscriptionsByUser(ctx, b.UserID)
	if err != nil {
		wp.log.Error().Err(err).Int64("user", b.UserID).Msg("reminder: subscription lookup failed")
		return
	}
	if len(subs) == 0 {
		return
	}

	label := fmt.Sprintf("equipment %d", b.EquipmentID)
	if eq, err := wp.store.FindEquipment(ctx, b.EquipmentID); err == nil && eq != nil {
		label = eq.Name
	}

	message := fmt.Sprintf("Your booking for %s starts at %s.", label, b.StartTime)
	for _, sub := range subs {
		wp.push(ctx, sub.Endpoint, sub.P256DH, sub.Auth, []byte(message))
	}
}

func (wp *WorkerPool) push(ctx context.Context, endpoint, p256dh, auth string, payload []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: endpoint,
		Keys: webpush.Keys{
			P256dh: p256dh,
			Auth:   auth,
		},
	}

	resp, err := wp.sender.Send(payload, wpSub, wp.webpush)
	if err != nil {
		wp.log.Error().Err(err).Str("endpoint", endpoint).Msg("push send failed")
		return
	}
	defer resp.Body.Close()

	// Expired subscriptions are removed on the spot.
	if resp.StatusCode == http.StatusGone {
		if err := wp.store.DeleteSubscription(ctx, endpoint); err != nil {
			wp.log.Error().Err(err).Str("endpoint", endpoint).Msg("failed to delete expired subscription")
		}
	}
}
