package client

import (
	"context"
	"time"

	"airlock/pkg/logger"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Client holds every external connection a service owns: the Mongo handle
// plus typed HTTP clients for the sibling services. It is constructed once
// and injected, never reached for as ambient state.
type Client struct {
	Mongo *mongo.Client

	Listings *ListingsClient
	Bookings *BookingsClient
	Payments *PaymentsClient
	Reviews  *ReviewsClient
	Accounts *AccountsClient
}

func New() *Client {
	return &Client{}
}

func (c *Client) SetMongo(log *logger.Logger, mongoURI string, connTimeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), connTimeout)
	defer cancel()

	mc, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	if err := mc.Ping(ctx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB", "error", err)
	}

	log.Info("Successfully connected to MongoDB")
	c.Mongo = mc
}

// Typed HTTP clients for the sibling services; each service wires only the
// ones it actually calls.

func (c *Client) SetListings(baseURL string) { c.Listings = NewListingsClient(baseURL) }
func (c *Client) SetBookings(baseURL string) { c.Bookings = NewBookingsClient(baseURL) }
func (c *Client) SetPayments(baseURL string) { c.Payments = NewPaymentsClient(baseURL) }
func (c *Client) SetReviews(baseURL string)  { c.Reviews = NewReviewsClient(baseURL) }
func (c *Client) SetAccounts(baseURL string) { c.Accounts = NewAccountsClient(baseURL) }

func (c *Client) GracefulShutdown() {
	if c.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = c.Mongo.Disconnect(ctx)
	}
}
