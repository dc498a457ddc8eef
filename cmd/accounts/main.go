package main

import (
	"airlock/internal/accounts/handler"
	"airlock/internal/accounts/repository"
	"airlock/internal/accounts/service"
	"airlock/internal/accounts/validator"
	"airlock/pkg/app"
	"airlock/pkg/config"
)

const ServiceName = "accounts"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Accounts service")
	userService := initServices(cfg)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewUserHandler(userService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.UserService {
	userRepo := repository.NewMongoUserRepository(cfg)
	userService := service.NewUserService(
		userRepo,
		validator.NewUserValidator(cfg.Log),
		cfg,
	)

	cfg.Log.Info("User service initialized", "database", cfg.MongoDatabaseName)
	return userService
}
