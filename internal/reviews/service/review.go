package service

import (
	"context"
	"fmt"

	"airlock/internal/reviews/repository"
	"airlock/internal/reviews/validator"
	"airlock/pkg/config"
	apperrors "airlock/pkg/errors"
	"airlock/pkg/model"
	"airlock/pkg/sanitizer"
)

type ReviewService interface {
	SubmitGuestReview(ctx context.Context, review *model.Review) error
	SubmitStayReviews(ctx context.Context, hostReview, listingReview *model.Review) error
	ForTarget(ctx context.Context, targetType model.TargetType, targetID string) ([]*model.Review, error)
	ForBooking(ctx context.Context, bookingID string) ([]*model.Review, error)
	OverallRating(ctx context.Context, targetType model.TargetType, targetID string) (*repository.RatingSummary, error)
}

type reviewService struct {
	repo      repository.ReviewRepository
	validator *validator.ReviewValidator
	cfg       *config.Config
}

func NewReviewService(repo repository.ReviewRepository, validator *validator.ReviewValidator, cfg *config.Config) ReviewService {
	return &reviewService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

// SubmitGuestReview records the host's review of the guest who stayed.
func (s *reviewService) SubmitGuestReview(ctx context.Context, review *model.Review) error {
	review.TargetType = model.TargetGuest
	return s.submit(ctx, review)
}

// SubmitStayReviews records the guest's pair of reviews after a stay:
// one about the host, one about the listing. The host review goes in
// first; a duplicate on either target rejects that review alone.
func (s *reviewService) SubmitStayReviews(ctx context.Context, hostReview, listingReview *model.Review) error {
	hostReview.TargetType = model.TargetHost
	if err := s.submit(ctx, hostReview); err != nil {
		return err
	}

	listingReview.TargetType = model.TargetListing
	return s.submit(ctx, listingReview)
}

func (s *reviewService) submit(ctx context.Context, review *model.Review) error {
	review.Text = sanitizer.SanitizeText(review.Text)

	if err := s.validator.Validate(review); err != nil {
		s.cfg.Log.Warn("Review validation failed", "booking_id", review.BookingID, "error", err)
		return apperrors.Validation("Review validation failed", map[string]any{"error": err.Error()})
	}

	exists, err := s.repo.ExistsForBookingTarget(ctx, review.BookingID, review.TargetType)
	if err != nil {
		s.cfg.Log.Error("Failed to check existing reviews", "booking_id", review.BookingID, "error", err)
		return apperrors.Internal("Failed to check existing reviews", err)
	}
	if exists {
		return apperrors.Conflict(fmt.Sprintf("Booking %s already has a %s review", review.BookingID, review.TargetType))
	}

	if err := s.repo.Insert(ctx, review); err != nil {
		s.cfg.Log.Error("Failed to save review", "booking_id", review.BookingID, "error", err)
		return apperrors.Internal("Failed to save review", err)
	}

	s.cfg.Log.Info("Review submitted",
		"id", review.ID,
		"booking_id", review.BookingID,
		"target_type", review.TargetType,
		"rating", review.Rating,
	)
	return nil
}

func (s *reviewService) ForTarget(ctx context.Context, targetType model.TargetType, targetID string) ([]*model.Review, error) {
	if err := validateTarget(targetType, targetID); err != nil {
		return nil, err
	}

	reviews, err := s.repo.FindByTarget(ctx, targetType, targetID)
	if err != nil {
		s.cfg.Log.Error("Failed to list reviews for target", "target_type", targetType, "target_id", targetID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve reviews", err)
	}

	return reviews, nil
}

func (s *reviewService) ForBooking(ctx context.Context, bookingID string) ([]*model.Review, error) {
	if bookingID == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	reviews, err := s.repo.FindByBooking(ctx, bookingID)
	if err != nil {
		s.cfg.Log.Error("Failed to list reviews for booking", "booking_id", bookingID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve reviews", err)
	}

	return reviews, nil
}

// OverallRating averages all ratings for a target. A target without
// reviews gets a nil rating, never zero.
func (s *reviewService) OverallRating(ctx context.Context, targetType model.TargetType, targetID string) (*repository.RatingSummary, error) {
	if err := validateTarget(targetType, targetID); err != nil {
		return nil, err
	}

	summary, err := s.repo.AggregateRating(ctx, targetType, targetID)
	if err != nil {
		s.cfg.Log.Error("Failed to aggregate rating", "target_type", targetType, "target_id", targetID, "error", err)
		return nil, apperrors.Internal("Failed to compute rating", err)
	}

	return summary, nil
}

func validateTarget(targetType model.TargetType, targetID string) error {
	switch targetType {
	case model.TargetGuest, model.TargetHost, model.TargetListing:
	default:
		return apperrors.InvalidInput("invalid target type: " + string(targetType))
	}
	if targetID == "" {
		return apperrors.InvalidInput("Target ID cannot be empty")
	}
	return nil
}
