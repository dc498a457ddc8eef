package main

import (
	"airlock/internal/bookings/events"
	"airlock/internal/bookings/handler"
	"airlock/internal/bookings/repository"
	"airlock/internal/bookings/service"
	"airlock/internal/bookings/validator"
	"airlock/pkg/app"
	"airlock/pkg/config"
	kafka_config "airlock/pkg/kafka/config"
)

const ServiceName = "bookings"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	cfg.Client.SetListings(cfg.ListingsBaseURL)
	cfg.Client.SetPayments(cfg.PaymentsBaseURL)

	cfg.Log.Info("Starting Bookings service")
	bookingService, availabilityService := initServices(cfg)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewBookingHandler(bookingService, availabilityService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) (service.BookingService, service.AvailabilityService) {
	bookingRepo := repository.NewMongoBookingRepository(cfg)
	lockRepo := repository.NewSlotLockRepository(cfg)
	availabilityService := service.NewAvailabilityService(bookingRepo, cfg)

	publisher := initPublisher(cfg)

	bookingService := service.NewBookingService(
		bookingRepo,
		lockRepo,
		availabilityService,
		cfg.Client.Listings,
		cfg.Client.Payments,
		publisher,
		validator.NewBookingValidator(cfg.Log),
		cfg,
	)

	cfg.Log.Info("Booking service initialized", "database", cfg.MongoDatabaseName)
	return bookingService, availabilityService
}

func initPublisher(cfg *config.Config) events.Publisher {
	kafkaCfg := kafka_config.Load()
	kafkaCfg.LogConfiguration(cfg.Log.Info)

	publisher, err := events.NewKafkaPublisher(kafkaCfg, cfg.Log)
	if err != nil {
		cfg.Log.Warn("Kafka publisher unavailable, booking events disabled", "error", err)
		return events.NoopPublisher{}
	}
	return publisher
}
