package service

import (
	"context"

	"airlock/internal/gateway/core"
	"airlock/internal/gateway/flows"
	"airlock/internal/gateway/resolver"
	"airlock/pkg/client"
	"airlock/pkg/logger"
	"airlock/pkg/model"
)

const (
	FlowSearchAvailableListings = "search_available_listings"
	FlowBookingDetails          = "booking_details"
	FlowListingDetails          = "listing_details"
)

// GatewayService runs named composition flows over the service graph and
// exposes stub resolution directly.
type GatewayService struct {
	client   *client.Client
	engine   *core.Engine
	resolver *resolver.Resolver
	log      *logger.Logger
}

func NewGatewayService(c *client.Client, log *logger.Logger) *GatewayService {
	res := resolver.New(c)
	engine := core.NewEngine(map[string]core.FlowFunc{
		FlowSearchAvailableListings: flows.SearchAvailableListings,
		FlowBookingDetails:          flows.BookingDetailsFlow(res),
		FlowListingDetails:          flows.ListingDetailsFlow(res),
	})
	return &GatewayService{
		client:   c,
		engine:   engine,
		resolver: res,
		log:      log,
	}
}

func (s *GatewayService) ExecuteFlow(ctx context.Context, flowName string, input map[string]any) (map[string]any, error) {
	fc := core.NewFlowContext(input, s.client, s.log)
	if err := s.engine.Run(ctx, flowName, fc); err != nil {
		return nil, err
	}
	return fc.Output, nil
}

func (s *GatewayService) Flows() []string {
	return s.engine.FlowNames()
}

func (s *GatewayService) Resolve(ctx context.Context, stub model.EntityStub) (any, error) {
	return s.resolver.Resolve(ctx, stub)
}
