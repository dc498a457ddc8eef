package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"airlock/internal/bookings/repository"
	"airlock/pkg/config"
	apperrors "airlock/pkg/errors"
	"airlock/pkg/model"
)

// AvailabilityService answers the single question the whole platform
// hinges on: is a listing free for a date range. Two bookings conflict
// when their half-open [check_in, check_out) ranges intersect, so a
// back-to-back checkout and check-in on the same day is allowed.
type AvailabilityService interface {
	IsAvailable(ctx context.Context, listingID string, checkIn, checkOut time.Time) (bool, error)
	BookedRanges(ctx context.Context, listingID string) ([]model.DateRange, error)
}

type availabilityService struct {
	repo repository.BookingRepository
	cfg  *config.Config
}

func NewAvailabilityService(repo repository.BookingRepository, cfg *config.Config) AvailabilityService {
	return &availabilityService{
		repo: repo,
		cfg:  cfg,
	}
}

func (s *availabilityService) IsAvailable(ctx context.Context, listingID string, checkIn, checkOut time.Time) (bool, error) {
	if listingID == "" {
		return false, apperrors.InvalidInput("Listing ID cannot be empty")
	}
	if !checkOut.After(checkIn) {
		return false, apperrors.InvalidRange("check_out must be after check_in")
	}

	overlapping, err := s.repo.FindOverlapping(ctx, listingID, checkIn, checkOut)
	if err != nil {
		s.cfg.Log.Error("Failed to check availability", "listing_id", listingID, "error", err)
		return false, apperrors.Internal("Failed to check availability", err)
	}

	return len(overlapping) == 0, nil
}

// BookedRanges returns the date ranges blocked by upcoming and current
// bookings, sorted by check-in. Completed and cancelled stays no longer
// block anything.
func (s *availabilityService) BookedRanges(ctx context.Context, listingID string) ([]model.DateRange, error) {
	if listingID == "" {
		return nil, apperrors.InvalidInput("Listing ID cannot be empty")
	}

	var upcoming, current []*model.Booking
	var errUpcoming, errCurrent error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		upcoming, errUpcoming = s.repo.FindByListing(ctx, listingID, model.StatusUpcoming)
	}()

	go func() {
		defer wg.Done()
		current, errCurrent = s.repo.FindByListing(ctx, listingID, model.StatusCurrent)
	}()

	wg.Wait()
	if errUpcoming != nil {
		s.cfg.Log.Error("Failed to list upcoming bookings", "listing_id", listingID, "error", errUpcoming)
		return nil, apperrors.Internal("Failed to retrieve booked dates", errUpcoming)
	}
	if errCurrent != nil {
		s.cfg.Log.Error("Failed to list current bookings", "listing_id", listingID, "error", errCurrent)
		return nil, apperrors.Internal("Failed to retrieve booked dates", errCurrent)
	}

	ranges := make([]model.DateRange, 0, len(upcoming)+len(current))
	for _, b := range append(current, upcoming...) {
		ranges = append(ranges, model.DateRange{CheckIn: b.CheckIn, CheckOut: b.CheckOut})
	}

	sort.Slice(ranges, func(i, j int) bool {
		return ranges[i].CheckIn.Before(ranges[j].CheckIn)
	})

	return ranges, nil
}
