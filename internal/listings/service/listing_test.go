package service

import (
	"context"
	"testing"
	"time"

	listingserrors "airlock/internal/listings/errors"
	"airlock/internal/listings/validator"
	"airlock/pkg/config"
	apperrors "airlock/pkg/errors"
	"airlock/pkg/logger"
	"airlock/pkg/model"
)

type mockListingRepository struct {
	insertFunc       func(ctx context.Context, listing *model.Listing) error
	findByIDFunc     func(ctx context.Context, id string) (*model.Listing, error)
	searchFunc       func(ctx context.Context, numOfBeds int, limit int, offset int64) ([]*model.Listing, error)
	countSearchFunc  func(ctx context.Context, numOfBeds int) (int64, error)
	findFeaturedFunc func(ctx context.Context, limit int) ([]*model.Listing, error)
}

func (m *mockListingRepository) Insert(ctx context.Context, listing *model.Listing) error {
	if m.insertFunc != nil {
		return m.insertFunc(ctx, listing)
	}
	listing.ID = "55555555-5555-4555-8555-555555555555"
	return nil
}

func (m *mockListingRepository) FindByID(ctx context.Context, id string) (*model.Listing, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, listingserrors.ErrNotFound
}

func (m *mockListingRepository) Search(ctx context.Context, numOfBeds int, limit int, offset int64) ([]*model.Listing, error) {
	if m.searchFunc != nil {
		return m.searchFunc(ctx, numOfBeds, limit, offset)
	}
	return nil, nil
}

func (m *mockListingRepository) CountSearch(ctx context.Context, numOfBeds int) (int64, error) {
	if m.countSearchFunc != nil {
		return m.countSearchFunc(ctx, numOfBeds)
	}
	return 0, nil
}

func (m *mockListingRepository) FindFeatured(ctx context.Context, limit int) ([]*model.Listing, error) {
	if m.findFeaturedFunc != nil {
		return m.findFeaturedFunc(ctx, limit)
	}
	return nil, nil
}

func testService(repo *mockListingRepository) ListingService {
	log := logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "test",
	})
	cfg := &config.Config{
		Log:          log,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
	return NewListingService(repo, validator.NewListingValidator(log), cfg)
}

func day(d int) time.Time {
	return time.Date(2026, time.March, d, 0, 0, 0, 0, time.UTC)
}

func TestQuote_CostIsNightsTimesRate(t *testing.T) {
	repo := &mockListingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Listing, error) {
			return &model.Listing{ID: id, CostPerNight: 125}, nil
		},
	}
	svc := testService(repo)

	quote, err := svc.Quote(context.Background(), "55555555-5555-4555-8555-555555555555", day(1), day(5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.NumberOfNights != 4 {
		t.Errorf("expected 4 nights, got %d", quote.NumberOfNights)
	}
	if quote.TotalCost != 500 {
		t.Errorf("expected total cost 500, got %f", quote.TotalCost)
	}
}

func TestQuote_InvalidRange(t *testing.T) {
	svc := testService(&mockListingRepository{})

	_, err := svc.Quote(context.Background(), "55555555-5555-4555-8555-555555555555", day(5), day(1))
	if !apperrors.HasCode(err, apperrors.CodeInvalidRange) {
		t.Fatalf("expected INVALID_RANGE, got %v", err)
	}
}

func TestQuote_UnknownListing(t *testing.T) {
	svc := testService(&mockListingRepository{})

	_, err := svc.Quote(context.Background(), "55555555-5555-4555-8555-555555555555", day(1), day(5))
	if !apperrors.HasCode(err, apperrors.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestCreate_ValidationRejectsBadListing(t *testing.T) {
	svc := testService(&mockListingRepository{})

	listing := &model.Listing{
		Title:        "x", // below min length
		HostID:       "host-1",
		CostPerNight: 100,
		NumOfBeds:    2,
	}

	err := svc.Create(context.Background(), listing)
	if !apperrors.HasCode(err, apperrors.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}

func TestCreate_SanitizesInput(t *testing.T) {
	var inserted *model.Listing
	repo := &mockListingRepository{
		insertFunc: func(ctx context.Context, listing *model.Listing) error {
			inserted = listing
			return nil
		},
	}
	svc := testService(repo)

	listing := &model.Listing{
		Title:        "  Cozy   Cabin  ",
		HostID:       "host-1",
		CostPerNight: 80,
		NumOfBeds:    3,
		Amenities:    []string{" wifi ", ""},
	}

	if err := svc.Create(context.Background(), listing); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inserted.Title != "Cozy Cabin" {
		t.Errorf("expected collapsed title, got %q", inserted.Title)
	}
	if len(inserted.Amenities) != 1 || inserted.Amenities[0] != "wifi" {
		t.Errorf("expected trimmed amenities [wifi], got %v", inserted.Amenities)
	}
}

func TestSearch_FanOut(t *testing.T) {
	repo := &mockListingRepository{
		countSearchFunc: func(ctx context.Context, numOfBeds int) (int64, error) {
			time.Sleep(5 * time.Millisecond)
			return 12, nil
		},
		searchFunc: func(ctx context.Context, numOfBeds int, limit int, offset int64) ([]*model.Listing, error) {
			time.Sleep(5 * time.Millisecond)
			return []*model.Listing{{Title: "Cozy Cabin"}}, nil
		},
	}
	svc := testService(repo)

	listings, total, err := svc.Search(context.Background(), 2, 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 12 {
		t.Errorf("expected total 12, got %d", total)
	}
	if len(listings) != 1 {
		t.Errorf("expected 1 listing, got %d", len(listings))
	}
}
