package flows

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"airlock/internal/gateway/core"
	"airlock/pkg/client"
	"airlock/pkg/logger"
	"airlock/pkg/model"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "test",
	})
}

func listingsServer(t *testing.T, listings []*model.Listing) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/listings", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data":        listings,
			"total_count": len(listings),
			"limit":       20,
			"offset":      0,
		})
	}))
}

// bookingsServer reports every listing as available except those in busy.
func bookingsServer(t *testing.T, busy map[string]bool) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(r.URL.Path, "/")
		require.GreaterOrEqual(t, len(parts), 5, "unexpected path %s", r.URL.Path)
		listingID := parts[4]

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]bool{"available": !busy[listingID]},
		})
	}))
}

func TestSearchAvailableListings_FiltersBookedListings(t *testing.T) {
	listings := []*model.Listing{
		{ID: "listing-1", Title: "Cabin", CostPerNight: 100, NumOfBeds: 2},
		{ID: "listing-2", Title: "Loft", CostPerNight: 150, NumOfBeds: 2},
		{ID: "listing-3", Title: "Spaceship", CostPerNight: 900, NumOfBeds: 4},
	}
	ls := listingsServer(t, listings)
	defer ls.Close()
	bs := bookingsServer(t, map[string]bool{"listing-2": true})
	defer bs.Close()

	c := client.New()
	c.SetListings(ls.URL)
	c.SetBookings(bs.URL)

	fc := core.NewFlowContext(map[string]any{
		"check_in":  "2026-03-01T00:00:00Z",
		"check_out": "2026-03-05T00:00:00Z",
	}, c, testLogger())

	require.NoError(t, SearchAvailableListings(context.Background(), fc))

	results, ok := fc.Output["result"].([]*AvailableListing)
	require.True(t, ok, "expected []*AvailableListing, got %T", fc.Output["result"])
	require.Len(t, results, 2)

	ids := []string{results[0].Listing.ID, results[1].Listing.ID}
	assert.ElementsMatch(t, []string{"listing-1", "listing-3"}, ids)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), results[0].CheckIn)
}

func TestSearchAvailableListings_AvailabilityFailureDropsListing(t *testing.T) {
	listings := []*model.Listing{
		{ID: "listing-1", Title: "Cabin", CostPerNight: 100, NumOfBeds: 2},
	}
	ls := listingsServer(t, listings)
	defer ls.Close()
	bs := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer bs.Close()

	c := client.New()
	c.SetListings(ls.URL)
	c.SetBookings(bs.URL)

	fc := core.NewFlowContext(map[string]any{
		"check_in":  "2026-03-01T00:00:00Z",
		"check_out": "2026-03-05T00:00:00Z",
	}, c, testLogger())

	require.NoError(t, SearchAvailableListings(context.Background(), fc))

	results, ok := fc.Output["result"].([]*AvailableListing)
	require.True(t, ok)
	assert.Empty(t, results)
}

func TestSearchAvailableListings_MissingDates(t *testing.T) {
	fc := core.NewFlowContext(map[string]any{}, client.New(), testLogger())

	err := SearchAvailableListings(context.Background(), fc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "check_in")
}
