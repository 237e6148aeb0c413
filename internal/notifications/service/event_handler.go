package service

import (
	"context"
	"errors"

	notificationerrors "hms/internal/notifications/errors"
	"hms/pkg/kafka"
	"hms/pkg/logger"
	"hms/pkg/model"
)

// EventHandler turns reservation events consumed from Kafka into emails.
type EventHandler struct {
	sender ConfirmationSender
	log    *logger.Logger
}

func NewEventHandler(sender ConfirmationSender, log *logger.Logger) *EventHandler {
	return &EventHandler{sender: sender, log: log}
}

// Handle satisfies kafka.MessageHandler. Undecodable events are permanent
// failures and go to the dead-letter topic; send failures are retried.
func (h *EventHandler) Handle(ctx context.Context, msg kafka.Message) error {
	if eventType := msg.GetEventType(); eventType != model.EventReservationCreated {
		h.log.Debug("Skipping unrelated event", "event_type", eventType, "event_id", msg.GetEventID())
		return nil
	}

	var event model.ReservationEvent
	if err := msg.DecodeValue(&event); err != nil {
		return kafka.NewPermanentError("failed to decode reservation event", err)
	}
	if event.Reservation.GuestEmail == "" {
		return kafka.NewPermanentError("reservation event has no guest email", notificationerrors.ErrNoRecipient)
	}

	if err := h.sender.SendReservationConfirmation(ctx, &event.Reservation); err != nil {
		if errors.Is(err, notificationerrors.ErrNoRecipient) {
			return kafka.NewPermanentError("reservation email rejected", err)
		}
		return kafka.NewTransientError("failed to send reservation email", err)
	}

	h.log.Info("Reservation email sent from event",
		"event_id", event.EventID,
		"reservation_id", event.Reservation.ID,
		"booking_code", event.Reservation.BookingCode,
	)
	return nil
}
