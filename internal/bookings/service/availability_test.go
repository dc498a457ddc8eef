package service

import (
	"context"
	"testing"
	"time"

	apperrors "airlock/pkg/errors"
	"airlock/pkg/model"
)

func TestIsAvailable_InvalidRange(t *testing.T) {
	svc := NewAvailabilityService(&mockBookingRepository{}, testConfig())

	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
	}{
		{"check_out before check_in", day(5), day(1)},
		{"zero-length stay", day(3), day(3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.IsAvailable(context.Background(), "listing-1", tt.checkIn, tt.checkOut)
			if !apperrors.HasCode(err, apperrors.CodeInvalidRange) {
				t.Fatalf("expected INVALID_RANGE, got %v", err)
			}
		})
	}
}

func TestIsAvailable_OverlapDecision(t *testing.T) {
	repo := &mockBookingRepository{
		findOverlappingFunc: func(ctx context.Context, listingID string, checkIn, checkOut time.Time) ([]*model.Booking, error) {
			existing := &model.Booking{CheckIn: day(10), CheckOut: day(15)}
			if existing.CheckIn.Before(checkOut) && existing.CheckOut.After(checkIn) {
				return []*model.Booking{existing}, nil
			}
			return nil, nil
		},
	}
	svc := NewAvailabilityService(repo, testConfig())

	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		want     bool
	}{
		{"fully inside existing stay", day(11), day(13), false},
		{"straddles the start", day(8), day(12), false},
		{"straddles the end", day(14), day(18), false},
		{"ends on existing check-in", day(5), day(10), true},
		{"starts on existing check-out", day(15), day(20), true},
		{"disjoint range", day(20), day(25), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.IsAvailable(context.Background(), "listing-1", tt.checkIn, tt.checkOut)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("IsAvailable(%s, %s) = %v, want %v", tt.checkIn.Format("2006-01-02"), tt.checkOut.Format("2006-01-02"), got, tt.want)
			}
		})
	}
}

func TestBookedRanges_OnlyActiveStatusesSorted(t *testing.T) {
	repo := &mockBookingRepository{
		findByListingFunc: func(ctx context.Context, listingID string, status model.BookingStatus) ([]*model.Booking, error) {
			switch status {
			case model.StatusUpcoming:
				return []*model.Booking{
					{CheckIn: day(20), CheckOut: day(25)},
					{CheckIn: day(10), CheckOut: day(12)},
				}, nil
			case model.StatusCurrent:
				return []*model.Booking{
					{CheckIn: day(1), CheckOut: day(5)},
				}, nil
			default:
				t.Errorf("unexpected status query: %s", status)
				return nil, nil
			}
		},
	}
	svc := NewAvailabilityService(repo, testConfig())

	ranges, err := svc.BookedRanges(context.Background(), "listing-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ranges) != 3 {
		t.Fatalf("expected 3 ranges, got %d", len(ranges))
	}

	want := []time.Time{day(1), day(10), day(20)}
	for i, r := range ranges {
		if !r.CheckIn.Equal(want[i]) {
			t.Errorf("range %d: expected check_in %s, got %s", i, want[i], r.CheckIn)
		}
	}
}

func TestBookedRanges_EmptyListingID(t *testing.T) {
	svc := NewAvailabilityService(&mockBookingRepository{}, testConfig())

	_, err := svc.BookedRanges(context.Background(), "")
	if !apperrors.HasCode(err, apperrors.CodeInvalidInput) {
		t.Fatalf("expected INVALID_INPUT, got %v", err)
	}
}
