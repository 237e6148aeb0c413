package service

import (
	"context"
	"sync"
	"time"

	"hms/pkg/config"
	"hms/pkg/dates"
	"hms/pkg/kafka"
	"hms/pkg/model"

	"github.com/google/uuid"
)

type ConfirmationSender interface {
	SendReservationConfirmation(ctx context.Context, reservation *model.Reservation) error
}

// AsyncNotifier sends the confirmation on its own goroutine so the booking
// request never waits on SMTP.
type AsyncNotifier struct {
	sender ConfirmationSender
	cfg    *config.Config
	wg     sync.WaitGroup
}

func NewAsyncNotifier(sender ConfirmationSender, cfg *config.Config) *AsyncNotifier {
	return &AsyncNotifier{sender: sender, cfg: cfg}
}

func (n *AsyncNotifier) ReservationCreated(ctx context.Context, reservation *model.Reservation) {
	snapshot := *reservation
	detached := context.WithoutCancel(ctx)

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				n.cfg.Log.Error("Panic while sending reservation email", "reservation_id", snapshot.ID, "panic", r)
			}
		}()

		ctx, cancel := context.WithTimeout(detached, n.cfg.NotificationTimeout)
		defer cancel()

		if err := n.sender.SendReservationConfirmation(ctx, &snapshot); err != nil {
			n.cfg.Log.Error("Reservation email failed",
				"reservation_id", snapshot.ID,
				"booking_code", snapshot.BookingCode,
				"error", err,
			)
		}
	}()
}

// Wait blocks until in-flight sends finish or timeout passes.
func (n *AsyncNotifier) Wait(timeout time.Duration) bool {
	done := make(chan struct{})
	go func() {
		n.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return true
	case <-time.After(timeout):
		return false
	}
}

type Notifier interface {
	ReservationCreated(ctx context.Context, reservation *model.Reservation)
}

// KafkaNotifier hands reservations to cmd/notifier through Kafka, falling
// back to fallback when the broker cannot be reached.
type KafkaNotifier struct {
	publisher kafka.Publisher
	fallback  Notifier
	source    string
	cfg       *config.Config
	wg        sync.WaitGroup
}

func NewKafkaNotifier(publisher kafka.Publisher, fallback Notifier, source string, cfg *config.Config) *KafkaNotifier {
	return &KafkaNotifier{
		publisher: publisher,
		fallback:  fallback,
		source:    source,
		cfg:       cfg,
	}
}

func (n *KafkaNotifier) ReservationCreated(ctx context.Context, reservation *model.Reservation) {
	event := NewReservationEvent(reservation, time.Now())
	detached := context.WithoutCancel(ctx)

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()

		ctx, cancel := context.WithTimeout(detached, n.cfg.NotificationTimeout)
		defer cancel()

		msg, err := kafka.NewMessage().
			WithKey(event.Reservation.ID).
			WithValue(event).
			WithEventID(event.EventID).
			WithEventType(event.Type).
			WithSource(n.source).
			Build()
		if err == nil {
			err = n.publisher.Publish(ctx, msg)
		}
		if err != nil {
			n.cfg.Log.Warn("Failed to publish reservation event, sending email directly",
				"reservation_id", event.Reservation.ID,
				"event_id", event.EventID,
				"error", err,
			)
			n.fallback.ReservationCreated(detached, &event.Reservation)
			return
		}
		n.cfg.Log.Info("Reservation event published", "reservation_id", event.Reservation.ID, "event_id", event.EventID)
	}()
}

func (n *KafkaNotifier) Wait(timeout time.Duration) bool {
	done := make(chan struct{})
	go func() {
		n.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return true
	case <-time.After(timeout):
		return false
	}
}

func NewReservationEvent(reservation *model.Reservation, now time.Time) model.ReservationEvent {
	return model.ReservationEvent{
		EventID:     uuid.NewString(),
		Type:        model.EventReservationCreated,
		OccurredAt:  dates.Timestamp(now),
		Reservation: *reservation,
	}
}
