package flows

import (
	"context"
	"sync"

	"airlock/internal/gateway/core"
	"airlock/internal/gateway/resolver"
	"airlock/pkg/model"
)

// BookingDetails is the composed graph for one booking: the booking itself
// plus the entities its stubs point at and the reviews written about it.
type BookingDetails struct {
	Booking       *model.Booking `json:"booking"`
	Listing       *model.Listing `json:"listing,omitempty"`
	Guest         *model.User    `json:"guest,omitempty"`
	Reviews       []*ReviewView  `json:"reviews"`
	ListingRating *float64       `json:"listing_rating,omitempty"`
}

// ReviewView is a review with its author stub expanded.
type ReviewView struct {
	Review *model.Review `json:"review"`
	Author *model.User   `json:"author,omitempty"`
}

// BookingDetailsFlow composes the booking graph. The booking fetch gates
// everything else; the remaining lookups fan out in parallel and degrade
// to partial results when a branch fails.
func BookingDetailsFlow(res *resolver.Resolver) core.FlowFunc {
	return func(ctx context.Context, fc *core.FlowContext) error {
		bookingID, err := fc.ExtractString("booking_id")
		if err != nil {
			return err
		}

		booking, err := fc.Client.Bookings.GetByID(ctx, bookingID)
		if err != nil {
			return err
		}

		details := &BookingDetails{
			Booking: booking,
			Reviews: []*ReviewView{},
		}

		var mu sync.Mutex
		var wg sync.WaitGroup

		wg.Add(1)
		go func() {
			defer wg.Done()
			entity, err := res.Resolve(ctx, model.EntityStub{TypeName: model.TypeListing, ID: booking.ListingID})
			if err != nil {
				fc.Log.Warn("Listing resolution failed", "booking_id", bookingID, "error", err)
				return
			}
			mu.Lock()
			details.Listing = entity.(*model.Listing)
			mu.Unlock()
		}()

		wg.Add(1)
		go func() {
			defer wg.Done()
			entity, err := res.Resolve(ctx, model.EntityStub{TypeName: model.TypeGuest, ID: booking.GuestID})
			if err != nil {
				fc.Log.Warn("Guest resolution failed", "booking_id", bookingID, "error", err)
				return
			}
			mu.Lock()
			details.Guest = entity.(*model.User)
			mu.Unlock()
		}()

		wg.Add(1)
		go func() {
			defer wg.Done()
			reviews, err := fc.Client.Reviews.ForBooking(ctx, bookingID)
			if err != nil {
				fc.Log.Warn("Review lookup failed", "booking_id", bookingID, "error", err)
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
			rating, err := fc.Client.Reviews.OverallRating(ctx, model.TargetListing, booking.ListingID)
			if err != nil {
				fc.Log.Warn("Rating lookup failed", "listing_id", booking.ListingID, "error", err)
				return
			}
			mu.Lock()
			details.ListingRating = rating
			mu.Unlock()
		}()

		wg.Wait()

		fc.Output["result"] = details
		return nil
	}
}

func expandAuthors(ctx context.Context, fc *core.FlowContext, res *resolver.Resolver, reviews []*model.Review) []*ReviewView {
	views := make([]*ReviewView, len(reviews))
	var wg sync.WaitGroup
	for i, review := range reviews {
		views[i] = &ReviewView{Review: review}
		wg.Add(1)
		go func(i int, review *model.Review) {
			defer wg.Done()
			searchLimiter.Run(func() {
				author, err := res.ResolveAuthor(ctx, review)
				if err != nil {
					fc.Log.Warn("Author resolution failed", "review_id", review.ID, "error", err)
					return
				}
				views[i].Author = author
			})
		}(i, review)
	}
	wg.Wait()
	return views
}
