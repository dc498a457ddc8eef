package flows

import (
	"context"
	"sync"
	"time"

	"airlock/internal/gateway/core"
	"airlock/pkg/model"
)

const (
	maxSearchResults      = 20
	maxConcurrentAPICalls = 40
)

var searchLimiter = core.NewLimiter(maxConcurrentAPICalls)

// AvailableListing pairs a listing with the date range it was checked for.
type AvailableListing struct {
	Listing  *model.Listing `json:"listing"`
	CheckIn  time.Time      `json:"check_in"`
	CheckOut time.Time      `json:"check_out"`
}

// SearchAvailableListings finds listings matching the bed count that are
// free for the requested dates. Availability checks fan out concurrently,
// bounded by the shared limiter; a listing whose check fails is dropped
// rather than failing the whole search.
func SearchAvailableListings(ctx context.Context, fc *core.FlowContext) error {
	checkIn, err := fc.ExtractTime("check_in")
	if err != nil {
		return err
	}
	checkOut, err := fc.ExtractTime("check_out")
	if err != nil {
		return err
	}
	numOfBeds := fc.ExtractInt("num_of_beds", 0)
	limit := fc.ExtractInt("limit", maxSearchResults)
	if limit > maxSearchResults {
		limit = maxSearchResults
	}

	listings, _, err := fc.Client.Listings.Search(ctx, numOfBeds, limit, 0)
	if err != nil {
		return err
	}

	available := make([]bool, len(listings))
	var wg sync.WaitGroup
	for i, listing := range listings {
		wg.Add(1)
		go func(i int, listing *model.Listing) {
			defer wg.Done()
			searchLimiter.Run(func() {
				ok, err := fc.Client.Bookings.IsAvailable(ctx, listing.ID, checkIn, checkOut)
				if err != nil {
					fc.Log.Warn("Availability check failed during search",
						"listing_id", listing.ID, "error", err)
					return
				}
				available[i] = ok
			})
		}(i, listing)
	}
	wg.Wait()

	results := []*AvailableListing{}
	for i, listing := range listings {
		if available[i] {
			results = append(results, &AvailableListing{
				Listing:  listing,
				CheckIn:  checkIn,
				CheckOut: checkOut,
			})
		}
	}

	fc.Output["result"] = results
	return nil
}
