package integrationtests

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"airlock/pkg/client"
	"airlock/pkg/model"
)

// These tests drive the booking saga end to end against running services.
// They are skipped unless the service URLs are provided:
//
//	LISTINGS_URL=http://localhost:8081 \
//	BOOKINGS_URL=http://localhost:8082 \
//	PAYMENTS_URL=http://localhost:8083 go test ./test/integration/
type env struct {
	listings *client.ListingsClient
	bookings *client.BookingsClient
	payments *client.PaymentsClient
}

func newEnv(t *testing.T) *env {
	t.Helper()

	listingsURL := os.Getenv("LISTINGS_URL")
	bookingsURL := os.Getenv("BOOKINGS_URL")
	paymentsURL := os.Getenv("PAYMENTS_URL")
	if listingsURL == "" || bookingsURL == "" || paymentsURL == "" {
		t.Skip("integration environment not configured")
	}

	return &env{
		listings: client.NewListingsClient(listingsURL),
		bookings: client.NewBookingsClient(bookingsURL),
		payments: client.NewPaymentsClient(paymentsURL),
	}
}

func (e *env) createListing(t *testing.T, ctx context.Context, costPerNight float64) *model.Listing {
	t.Helper()
	listing, err := e.listings.Create(ctx, &model.Listing{
		Title:        "Integration test cabin",
		HostID:       uuid.New().String(),
		CostPerNight: costPerNight,
		NumOfBeds:    2,
	})
	require.NoError(t, err)
	return listing
}

func (e *env) fundGuest(t *testing.T, ctx context.Context, amount float64) string {
	t.Helper()
	guestID := uuid.New().String()
	_, err := e.payments.AddFunds(ctx, guestID, amount)
	require.NoError(t, err)
	return guestID
}

func day(d int) time.Time {
	return time.Date(2027, 6, d, 0, 0, 0, 0, time.UTC)
}

func TestBookingSaga_CreateDebitsWallet(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	listing := e.createListing(t, ctx, 100)
	guestID := e.fundGuest(t, ctx, 1000)

	booking, err := e.bookings.Create(ctx, &model.BookingRequest{
		ListingID: listing.ID,
		GuestID:   guestID,
		CheckIn:   day(1),
		CheckOut:  day(5),
	})
	require.NoError(t, err)

	assert.Equal(t, model.StatusUpcoming, booking.Status)
	assert.Equal(t, 400.0, booking.TotalCost)

	wallet, err := e.payments.GetWallet(ctx, guestID)
	require.NoError(t, err)
	assert.Equal(t, 600.0, wallet.Amount)
}

func TestBookingSaga_OverlapRejectedWalletUntouched(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	listing := e.createListing(t, ctx, 100)
	firstGuest := e.fundGuest(t, ctx, 1000)
	secondGuest := e.fundGuest(t, ctx, 1000)

	_, err := e.bookings.Create(ctx, &model.BookingRequest{
		ListingID: listing.ID,
		GuestID:   firstGuest,
		CheckIn:   day(1),
		CheckOut:  day(5),
	})
	require.NoError(t, err)

	_, err = e.bookings.Create(ctx, &model.BookingRequest{
		ListingID: listing.ID,
		GuestID:   secondGuest,
		CheckIn:   day(4),
		CheckOut:  day(8),
	})
	require.Error(t, err, "overlapping range must be rejected")

	wallet, err := e.payments.GetWallet(ctx, secondGuest)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, wallet.Amount, "rejected booking must not debit the guest")
}

func TestBookingSaga_BackToBackStaysAllowed(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	listing := e.createListing(t, ctx, 100)
	firstGuest := e.fundGuest(t, ctx, 1000)
	secondGuest := e.fundGuest(t, ctx, 1000)

	_, err := e.bookings.Create(ctx, &model.BookingRequest{
		ListingID: listing.ID,
		GuestID:   firstGuest,
		CheckIn:   day(1),
		CheckOut:  day(5),
	})
	require.NoError(t, err)

	// Check-in on the previous guest's check-out day.
	_, err = e.bookings.Create(ctx, &model.BookingRequest{
		ListingID: listing.ID,
		GuestID:   secondGuest,
		CheckIn:   day(5),
		CheckOut:  day(8),
	})
	require.NoError(t, err, "half-open ranges make back-to-back stays legal")
}

func TestBookingSaga_InsufficientFunds(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	listing := e.createListing(t, ctx, 500)
	guestID := e.fundGuest(t, ctx, 100)

	_, err := e.bookings.Create(ctx, &model.BookingRequest{
		ListingID: listing.ID,
		GuestID:   guestID,
		CheckIn:   day(1),
		CheckOut:  day(5),
	})
	require.Error(t, err)

	wallet, err := e.payments.GetWallet(ctx, guestID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, wallet.Amount, "failed booking must leave the wallet unchanged")

	available, err := e.bookings.IsAvailable(ctx, listing.ID, day(1), day(5))
	require.NoError(t, err)
	assert.True(t, available, "no booking row may exist after a failed saga")
}

func TestBookingSaga_CancelFreesDates(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	listing := e.createListing(t, ctx, 100)
	guestID := e.fundGuest(t, ctx, 1000)

	booking, err := e.bookings.Create(ctx, &model.BookingRequest{
		ListingID: listing.ID,
		GuestID:   guestID,
		CheckIn:   day(1),
		CheckOut:  day(5),
	})
	require.NoError(t, err)

	cancelled, err := e.bookings.Cancel(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCancelled, cancelled.Status)

	available, err := e.bookings.IsAvailable(ctx, listing.ID, day(1), day(5))
	require.NoError(t, err)
	assert.True(t, available, "cancelled bookings do not block the dates")
}
