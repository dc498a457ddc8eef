package service

import (
	"context"
	"errors"
	"sync"
	"time"

	listingserrors "airlock/internal/listings/errors"
	"airlock/internal/listings/repository"
	"airlock/internal/listings/validator"
	"airlock/pkg/config"
	apperrors "airlock/pkg/errors"
	"airlock/pkg/model"
	"airlock/pkg/sanitizer"
)

type ListingService interface {
	Create(ctx context.Context, listing *model.Listing) error
	GetByID(ctx context.Context, id string) (*model.Listing, error)
	Quote(ctx context.Context, listingID string, checkIn, checkOut time.Time) (*model.CostQuote, error)
	Search(ctx context.Context, numOfBeds int, limit int, offset int64) ([]*model.Listing, int64, error)
	Featured(ctx context.Context, limit int) ([]*model.Listing, error)
}

type listingService struct {
	repo      repository.ListingRepository
	validator *validator.ListingValidator
	cfg       *config.Config
}

func NewListingService(repo repository.ListingRepository, validator *validator.ListingValidator, cfg *config.Config) ListingService {
	return &listingService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *listingService) Create(ctx context.Context, listing *model.Listing) error {
	s.sanitize(listing)
	if err := s.validator.Validate(listing); err != nil {
		s.cfg.Log.Warn("Listing validation failed", "error", err)
		return apperrors.Validation("Listing validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Insert(ctx, listing); err != nil {
		s.cfg.Log.Error("Failed to create listing", "error", err)
		return apperrors.Internal("Failed to create listing", err)
	}

	s.cfg.Log.Info("Listing created successfully", "id", listing.ID, "host_id", listing.HostID)
	return nil
}

func (s *listingService) GetByID(ctx context.Context, id string) (*model.Listing, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Listing ID cannot be empty")
	}

	listing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, listingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Listing", id)
		}
		if errors.Is(err, listingserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid listing ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve listing", err)
	}

	return listing, nil
}

// Quote prices a stay as cost per night times the number of nights in
// the half-open [check_in, check_out) range.
func (s *listingService) Quote(ctx context.Context, listingID string, checkIn, checkOut time.Time) (*model.CostQuote, error) {
	if !checkOut.After(checkIn) {
		return nil, apperrors.InvalidRange("check_out must be after check_in")
	}

	listing, err := s.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}

	nights := int(checkOut.Sub(checkIn).Hours() / 24)
	if nights < 1 {
		nights = 1
	}

	return &model.CostQuote{
		TotalCost:      listing.CostPerNight * float64(nights),
		NumberOfNights: nights,
	}, nil
}

func (s *listingService) Search(ctx context.Context, numOfBeds int, limit int, offset int64) ([]*model.Listing, int64, error) {
	var count int64
	var listings []*model.Listing
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.CountSearch(ctx, numOfBeds)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count listings", "num_of_beds", numOfBeds, "error", errCount)
			errCount = apperrors.Internal("Failed to count listings", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		listings, errFind = s.repo.Search(ctx, numOfBeds, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to search listings", "num_of_beds", numOfBeds, "error", errFind)
			errFind = apperrors.Internal("Failed to search listings", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return listings, count, nil
}

func (s *listingService) Featured(ctx context.Context, limit int) ([]*model.Listing, error) {
	if limit <= 0 {
		limit = config.DefaultFeaturedListings
	}

	listings, err := s.repo.FindFeatured(ctx, limit)
	if err != nil {
		s.cfg.Log.Error("Failed to retrieve featured listings", "error", err)
		return nil, apperrors.Internal("Failed to retrieve featured listings", err)
	}

	return listings, nil
}

func (s *listingService) sanitize(l *model.Listing) {
	l.Title = sanitizer.SanitizeTitle(l.Title)
	l.Description = sanitizer.SanitizeText(l.Description)
	l.PhotoThumbnail = sanitizer.SanitizeURL(l.PhotoThumbnail)
	l.Amenities = sanitizer.SanitizeSlice(l.Amenities, sanitizer.SanitizeTitle)
}
