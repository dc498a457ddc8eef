// Package notifier consumes booking lifecycle events and notifies the
// affected guest and host. Delivery is log-only for now; the consumer
// wiring, retry classification, and DLQ routing are the real machinery.
package notifier

import (
	"context"
	"fmt"

	"airlock/internal/bookings/events"
	"airlock/pkg/kafka"
	"airlock/pkg/logger"
)

type Notifier struct {
	log *logger.Logger
}

func New(log *logger.Logger) *Notifier {
	return &Notifier{log: log}
}

// HandleBookingCreated processes one booking.created event. A payload
// that cannot be decoded is permanent: retrying will never fix it, so it
// goes straight to the DLQ.
func (n *Notifier) HandleBookingCreated(ctx context.Context, msg kafka.Message) error {
	event, err := decodeEvent(msg)
	if err != nil {
		return err
	}

	n.log.Info("Booking confirmation notification",
		"booking_id", event.BookingID,
		"guest_id", event.GuestID,
		"listing_id", event.ListingID,
		"check_in", event.CheckIn,
		"check_out", event.CheckOut,
		"total_cost", event.TotalCost,
	)
	return nil
}

func (n *Notifier) HandleBookingCancelled(ctx context.Context, msg kafka.Message) error {
	event, err := decodeEvent(msg)
	if err != nil {
		return err
	}

	n.log.Info("Booking cancellation notification",
		"booking_id", event.BookingID,
		"guest_id", event.GuestID,
		"listing_id", event.ListingID,
	)
	return nil
}

func decodeEvent(msg kafka.Message) (*events.BookingEvent, error) {
	var event events.BookingEvent
	if err := msg.DecodeValue(&event); err != nil {
		return nil, kafka.NewPermanentError(fmt.Sprintf("undecodable booking event on %s", msg.Topic), err)
	}
	if event.BookingID == "" {
		return nil, kafka.NewPermanentError("booking event without booking_id", nil)
	}
	return &event, nil
}
