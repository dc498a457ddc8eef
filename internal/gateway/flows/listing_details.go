package flows

import (
	"context"
	"sync"

	"airlock/internal/gateway/core"
	"airlock/internal/gateway/resolver"
	"airlock/pkg/model"
)

// ListingDetails is the composed graph for one listing: the listing, its
// host, its rating, reviews with expanded authors, and the date ranges
// already booked.
type ListingDetails struct {
	Listing     *model.Listing    `json:"listing"`
	Host        *model.User       `json:"host,omitempty"`
	Rating      *float64          `json:"rating,omitempty"`
	Reviews     []*ReviewView     `json:"reviews"`
	BookedDates []model.DateRange `json:"booked_dates"`
}

func ListingDetailsFlow(res *resolver.Resolver) core.FlowFunc {
	return func(ctx context.Context, fc *core.FlowContext) error {
		listingID, err := fc.ExtractString("listing_id")
		if err != nil {
			return err
		}

		listing, err := fc.Client.Listings.GetByID(ctx, listingID)
		if err != nil {
			return err
		}

		details := &ListingDetails{
			Listing:     listing,
			Reviews:     []*ReviewView{},
			BookedDates: []model.DateRange{},
		}

		var mu sync.Mutex
		var wg sync.WaitGroup

		wg.Add(1)
		go func() {
			defer wg.Done()
			entity, err := res.Resolve(ctx, model.EntityStub{TypeName: model.TypeHost, ID: listing.HostID})
			if err != nil {
				fc.Log.Warn("Host resolution failed", "listing_id", listingID, "error", err)
				return
			}
			mu.Lock()
			details.Host = entity.(*model.User)
			mu.Unlock()
		}()

		wg.Add(1)
		go func() {
			defer wg.Done()
			rating, err := fc.Client.Reviews.OverallRating(ctx, model.TargetListing, listingID)
			if err != nil {
				fc.Log.Warn("Rating lookup failed", "listing_id", listingID, "error", err)
				return
			}
			mu.Lock()
			details.Rating = rating
			mu.Unlock()
		}()

		wg.Add(1)
		go func() {
			defer wg.Done()
			reviews, err := fc.Client.Reviews.ForTarget(ctx, model.TargetListing, listingID)
			if err != nil {
				fc.Log.Warn("Review lookup failed", "listing_id", listingID, "error", err)
				return
			}
			views := expandAuthors(ctx, fc, res, reviews)
			mu.Lock()
			details.Reviews = views
			mu.Unlock()
		}()

		wg.Add(1)
		go func() {
			defer wg.Done()
			ranges, err := fc.Client.Bookings.BookedDates(ctx, listingID)
			if err != nil {
				fc.Log.Warn("Booked dates lookup failed", "listing_id", listingID, "error", err)
				return
			}
			mu.Lock()
			details.BookedDates = ranges
			mu.Unlock()
		}()

		wg.Wait()

		fc.Output["result"] = details
		return nil
	}
}
