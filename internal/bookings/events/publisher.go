package events

import (
	"context"
	"time"

	"airlock/pkg/kafka"
	kafka_config "airlock/pkg/kafka/config"
	kafka_middleware "airlock/pkg/kafka/middleware"
	"airlock/pkg/logger"
	"airlock/pkg/middleware"
	"airlock/pkg/model"
)

const (
	TopicBookingCreated   = "booking.created"
	TopicBookingCancelled = "booking.cancelled"

	DLQTopicBookingCreated   = "booking.created.dlq"
	DLQTopicBookingCancelled = "booking.cancelled.dlq"

	EventTypeBookingCreated   = "booking.created.v1"
	EventTypeBookingCancelled = "booking.cancelled.v1"

	sourceService = "bookings"
)

// BookingEvent is the payload published for booking lifecycle changes.
type BookingEvent struct {
	BookingID  string              `json:"booking_id"`
	ListingID  string              `json:"listing_id"`
	GuestID    string              `json:"guest_id"`
	CheckIn    time.Time           `json:"check_in"`
	CheckOut   time.Time           `json:"check_out"`
	TotalCost  float64             `json:"total_cost"`
	Status     model.BookingStatus `json:"status"`
	OccurredAt time.Time           `json:"occurred_at"`
}

// Publisher emits booking lifecycle events. Publishing is best effort:
// the saga has already committed when events go out, so failures are
// logged by the caller instead of rolling anything back.
type Publisher interface {
	BookingCreated(ctx context.Context, booking *model.Booking) error
	BookingCancelled(ctx context.Context, booking *model.Booking) error
	Close() error
}

type kafkaPublisher struct {
	created   *kafka.Producer
	cancelled *kafka.Producer
	log       *logger.Logger
}

func NewKafkaPublisher(cfg *kafka_config.Config, log *logger.Logger) (Publisher, error) {
	created, err := kafka.NewProducer(cfg, TopicBookingCreated, DLQTopicBookingCreated, log)
	if err != nil {
		return nil, err
	}
	created.Use(kafka_middleware.LoggingProducerMiddleware(log))

	cancelled, err := kafka.NewProducer(cfg, TopicBookingCancelled, DLQTopicBookingCancelled, log)
	if err != nil {
		if closeErr := created.Close(); closeErr != nil {
			log.Warn("Failed to close producer", "topic", TopicBookingCreated, "error", closeErr)
		}
		return nil, err
	}
	cancelled.Use(kafka_middleware.LoggingProducerMiddleware(log))

	return &kafkaPublisher{
		created:   created,
		cancelled: cancelled,
		log:       log,
	}, nil
}

func (p *kafkaPublisher) BookingCreated(ctx context.Context, booking *model.Booking) error {
	return p.created.Publish(ctx, p.buildMessage(ctx, EventTypeBookingCreated, booking))
}

func (p *kafkaPublisher) BookingCancelled(ctx context.Context, booking *model.Booking) error {
	return p.cancelled.Publish(ctx, p.buildMessage(ctx, EventTypeBookingCancelled, booking))
}

// buildMessage keys events by listing so all events for one listing
// stay ordered on a single partition.
func (p *kafkaPublisher) buildMessage(ctx context.Context, eventType string, booking *model.Booking) kafka.Message {
	event := BookingEvent{
		BookingID:  booking.ID,
		ListingID:  booking.ListingID,
		GuestID:    booking.GuestID,
		CheckIn:    booking.CheckIn,
		CheckOut:   booking.CheckOut,
		TotalCost:  booking.TotalCost,
		Status:     booking.Status,
		OccurredAt: time.Now().UTC(),
	}

	return kafka.NewMessage().
		WithKey(booking.ListingID).
		WithValue(event).
		WithEventType(eventType).
		WithCorrelationID(middleware.RequestIDFromContext(ctx)).
		WithSource(sourceService).
		Build()
}

func (p *kafkaPublisher) Close() error {
	err := p.created.Close()
	if cancelledErr := p.cancelled.Close(); err == nil {
		err = cancelledErr
	}
	return err
}

// NoopPublisher is used when Kafka is not configured, for local runs
// and tests.
type NoopPublisher struct{}

func (NoopPublisher) BookingCreated(ctx context.Context, booking *model.Booking) error   { return nil }
func (NoopPublisher) BookingCancelled(ctx context.Context, booking *model.Booking) error { return nil }
func (NoopPublisher) Close() error                                                       { return nil }
