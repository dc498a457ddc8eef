package main

import (
	"airlock/internal/payments/handler"
	"airlock/internal/payments/repository"
	"airlock/internal/payments/service"
	"airlock/pkg/app"
	"airlock/pkg/config"
)

const ServiceName = "payments"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Payments service")
	walletService := initServices(cfg)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewWalletHandler(walletService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.WalletService {
	walletRepo := repository.NewMongoWalletRepository(cfg)
	walletService := service.NewWalletService(walletRepo, cfg)

	cfg.Log.Info("Wallet service initialized", "database", cfg.MongoDatabaseName)
	return walletService
}
