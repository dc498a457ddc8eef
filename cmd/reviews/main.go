package main

import (
	"airlock/internal/reviews/handler"
	"airlock/internal/reviews/repository"
	"airlock/internal/reviews/service"
	"airlock/internal/reviews/validator"
	"airlock/pkg/app"
	"airlock/pkg/config"
)

const ServiceName = "reviews"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Reviews service")
	reviewService := initServices(cfg)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewReviewHandler(reviewService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.ReviewService {
	reviewRepo := repository.NewMongoReviewRepository(cfg)
	reviewService := service.NewReviewService(
		reviewRepo,
		validator.NewReviewValidator(cfg.Log),
		cfg,
	)

	cfg.Log.Info("Review service initialized", "database", cfg.MongoDatabaseName)
	return reviewService
}
