package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"airlock/internal/bookings/events"
	"airlock/pkg/kafka"
	"airlock/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "test",
	})
}

func eventMessage(t *testing.T, event events.BookingEvent) kafka.Message {
	t.Helper()
	payload, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("failed to marshal event: %v", err)
	}
	return kafka.Message{
		Key:   event.ListingID,
		Value: payload,
		Topic: events.TopicBookingCreated,
	}
}

func TestHandleBookingCreated_ValidEvent(t *testing.T) {
	n := New(testLogger())

	msg := eventMessage(t, events.BookingEvent{
		BookingID: "booking-1",
		ListingID: "listing-1",
		GuestID:   "guest-1",
	})

	if err := n.HandleBookingCreated(context.Background(), msg); err != nil {
		t.Fatalf("expected valid event to be handled, got %v", err)
	}
}

func TestHandleBookingCreated_UndecodablePayloadIsPermanent(t *testing.T) {
	n := New(testLogger())

	msg := kafka.Message{Value: []byte("not json"), Topic: events.TopicBookingCreated}

	err := n.HandleBookingCreated(context.Background(), msg)
	if err == nil {
		t.Fatal("expected error for undecodable payload, got nil")
	}

	var procErr *kafka.ProcessingError
	if !errors.As(err, &procErr) {
		t.Fatalf("expected ProcessingError, got %T", err)
	}
	if procErr.Type != kafka.ErrorTypePermanent {
		t.Errorf("expected permanent error, got %v", procErr.Type)
	}
}

func TestHandleBookingCancelled_MissingBookingIDIsPermanent(t *testing.T) {
	n := New(testLogger())

	msg := eventMessage(t, events.BookingEvent{ListingID: "listing-1"})

	err := n.HandleBookingCancelled(context.Background(), msg)
	if err == nil {
		t.Fatal("expected error for event without booking_id, got nil")
	}
	if kafka.ClassifyError(err) != kafka.ErrorTypePermanent {
		t.Errorf("expected permanent classification, got %v", err)
	}
}
