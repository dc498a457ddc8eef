package main

import (
	"airlock/internal/gateway/handler"
	"airlock/internal/gateway/service"
	"airlock/pkg/app"
	"airlock/pkg/config"
)

const ServiceName = "gateway"

func main() {
	cfg := config.Load(ServiceName)
	cfg.Client.SetListings(cfg.ListingsBaseURL)
	cfg.Client.SetBookings(cfg.BookingsBaseURL)
	cfg.Client.SetPayments(cfg.PaymentsBaseURL)
	cfg.Client.SetReviews(cfg.ReviewsBaseURL)
	cfg.Client.SetAccounts(cfg.AccountsBaseURL)

	cfg.Log.Info("Starting Gateway service")
	gatewayService := service.NewGatewayService(cfg.Client, cfg.Log)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewFlowHandler(gatewayService, cfg.Log))
	serverApp.Run()
}
