package main

import (
	"airlock/internal/listings/handler"
	"airlock/internal/listings/repository"
	"airlock/internal/listings/service"
	"airlock/internal/listings/validator"
	"airlock/pkg/app"
	"airlock/pkg/config"
)

const ServiceName = "listings"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Listings service")
	listingService := initServices(cfg)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewListingHandler(listingService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.ListingService {
	listingRepo := repository.NewMongoListingRepository(cfg)
	listingService := service.NewListingService(
		listingRepo,
		validator.NewListingValidator(cfg.Log),
		cfg,
	)

	cfg.Log.Info("Listing service initialized", "database", cfg.MongoDatabaseName)
	return listingService
}
