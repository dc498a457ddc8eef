package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"airlock/internal/reviews/repository"
	"airlock/internal/reviews/validator"
	"airlock/pkg/config"
	apperrors "airlock/pkg/errors"
	"airlock/pkg/logger"
	"airlock/pkg/model"
)

type mockReviewRepository struct {
	insertFunc          func(ctx context.Context, review *model.Review) error
	findByTargetFunc    func(ctx context.Context, targetType model.TargetType, targetID string) ([]*model.Review, error)
	findByBookingFunc   func(ctx context.Context, bookingID string) ([]*model.Review, error)
	existsFunc          func(ctx context.Context, bookingID string, targetType model.TargetType) (bool, error)
	aggregateRatingFunc func(ctx context.Context, targetType model.TargetType, targetID string) (*repository.RatingSummary, error)

	inserted []*model.Review
}

func (m *mockReviewRepository) Insert(ctx context.Context, review *model.Review) error {
	if m.insertFunc != nil {
		return m.insertFunc(ctx, review)
	}
	review.ID = "11111111-1111-4111-8111-111111111111"
	m.inserted = append(m.inserted, review)
	return nil
}

func (m *mockReviewRepository) FindByTarget(ctx context.Context, targetType model.TargetType, targetID string) ([]*model.Review, error) {
	if m.findByTargetFunc != nil {
		return m.findByTargetFunc(ctx, targetType, targetID)
	}
	return nil, nil
}

func (m *mockReviewRepository) FindByBooking(ctx context.Context, bookingID string) ([]*model.Review, error) {
	if m.findByBookingFunc != nil {
		return m.findByBookingFunc(ctx, bookingID)
	}
	return nil, nil
}

func (m *mockReviewRepository) ExistsForBookingTarget(ctx context.Context, bookingID string, targetType model.TargetType) (bool, error) {
	if m.existsFunc != nil {
		return m.existsFunc(ctx, bookingID, targetType)
	}
	return false, nil
}

func (m *mockReviewRepository) AggregateRating(ctx context.Context, targetType model.TargetType, targetID string) (*repository.RatingSummary, error) {
	if m.aggregateRatingFunc != nil {
		return m.aggregateRatingFunc(ctx, targetType, targetID)
	}
	return &repository.RatingSummary{}, nil
}

func testConfig() *config.Config {
	log := logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "test",
	})
	return &config.Config{
		Log:          log,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
}

func newTestReviewService(repo *mockReviewRepository) ReviewService {
	cfg := testConfig()
	return NewReviewService(repo, validator.NewReviewValidator(cfg.Log), cfg)
}

func hostReview() *model.Review {
	return &model.Review{
		BookingID: "booking-1",
		TargetID:  "host-1",
		AuthorID:  "guest-1",
		Rating:    5,
		Text:      "Great host, very responsive.",
	}
}

func listingReview() *model.Review {
	return &model.Review{
		BookingID: "booking-1",
		TargetID:  "listing-1",
		AuthorID:  "guest-1",
		Rating:    4,
		Text:      "Cozy cabin, a bit far from town.",
	}
}

func TestSubmitGuestReview_SetsTargetType(t *testing.T) {
	repo := &mockReviewRepository{}
	svc := newTestReviewService(repo)

	review := &model.Review{
		BookingID: "booking-1",
		TargetID:  "guest-1",
		AuthorID:  "host-1",
		Rating:    5,
		Text:      "Left the place spotless.",
	}

	if err := svc.SubmitGuestReview(context.Background(), review); err != nil {
		t.Fatalf("SubmitGuestReview failed: %v", err)
	}

	if review.TargetType != model.TargetGuest {
		t.Errorf("expected target type %s, got %s", model.TargetGuest, review.TargetType)
	}
	if review.ID == "" {
		t.Error("expected review ID to be assigned")
	}
}

func TestSubmitStayReviews_HostThenListing(t *testing.T) {
	repo := &mockReviewRepository{}
	svc := newTestReviewService(repo)

	host := hostReview()
	listing := listingReview()

	if err := svc.SubmitStayReviews(context.Background(), host, listing); err != nil {
		t.Fatalf("SubmitStayReviews failed: %v", err)
	}

	if len(repo.inserted) != 2 {
		t.Fatalf("expected 2 inserted reviews, got %d", len(repo.inserted))
	}
	if repo.inserted[0].TargetType != model.TargetHost {
		t.Errorf("expected host review first, got %s", repo.inserted[0].TargetType)
	}
	if repo.inserted[1].TargetType != model.TargetListing {
		t.Errorf("expected listing review second, got %s", repo.inserted[1].TargetType)
	}
}

func TestSubmit_DuplicateReviewRejected(t *testing.T) {
	repo := &mockReviewRepository{
		existsFunc: func(ctx context.Context, bookingID string, targetType model.TargetType) (bool, error) {
			return targetType == model.TargetHost, nil
		},
	}
	svc := newTestReviewService(repo)

	err := svc.SubmitStayReviews(context.Background(), hostReview(), listingReview())
	if err == nil {
		t.Fatal("expected conflict for duplicate host review, got nil")
	}
	if !apperrors.HasCode(err, apperrors.CodeConflict) {
		t.Errorf("expected conflict error, got %v", err)
	}
	if len(repo.inserted) != 0 {
		t.Errorf("expected no inserts after duplicate rejection, got %d", len(repo.inserted))
	}
}

func TestSubmit_ValidationRejectsBadRating(t *testing.T) {
	repo := &mockReviewRepository{}
	svc := newTestReviewService(repo)

	review := hostReview()
	review.Rating = 6

	err := svc.SubmitGuestReview(context.Background(), review)
	if err == nil {
		t.Fatal("expected validation error for rating above 5, got nil")
	}
	if !apperrors.HasCode(err, apperrors.CodeValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestSubmit_SanitizesText(t *testing.T) {
	repo := &mockReviewRepository{}
	svc := newTestReviewService(repo)

	review := hostReview()
	review.Text = "  Great   host,\tvery responsive.  "

	if err := svc.SubmitGuestReview(context.Background(), review); err != nil {
		t.Fatalf("SubmitGuestReview failed: %v", err)
	}
	if review.Text != "Great host, very responsive." {
		t.Errorf("expected sanitized text, got %q", review.Text)
	}
}

func TestOverallRating_MeanOfRatings(t *testing.T) {
	mean := 4.5
	repo := &mockReviewRepository{
		aggregateRatingFunc: func(ctx context.Context, targetType model.TargetType, targetID string) (*repository.RatingSummary, error) {
			return &repository.RatingSummary{Rating: &mean, Count: 2}, nil
		},
	}
	svc := newTestReviewService(repo)

	summary, err := svc.OverallRating(context.Background(), model.TargetListing, "listing-1")
	if err != nil {
		t.Fatalf("OverallRating failed: %v", err)
	}
	if summary.Rating == nil || *summary.Rating != 4.5 {
		t.Errorf("expected rating 4.5, got %v", summary.Rating)
	}
	if summary.Count != 2 {
		t.Errorf("expected count 2, got %d", summary.Count)
	}
}

func TestOverallRating_NoReviewsIsNilNotZero(t *testing.T) {
	repo := &mockReviewRepository{
		aggregateRatingFunc: func(ctx context.Context, targetType model.TargetType, targetID string) (*repository.RatingSummary, error) {
			return &repository.RatingSummary{}, nil
		},
	}
	svc := newTestReviewService(repo)

	summary, err := svc.OverallRating(context.Background(), model.TargetHost, "host-1")
	if err != nil {
		t.Fatalf("OverallRating failed: %v", err)
	}
	if summary.Rating != nil {
		t.Errorf("expected nil rating for target without reviews, got %v", *summary.Rating)
	}
	if summary.Count != 0 {
		t.Errorf("expected count 0, got %d", summary.Count)
	}
}

func TestOverallRating_InvalidTargetType(t *testing.T) {
	svc := newTestReviewService(&mockReviewRepository{})

	_, err := svc.OverallRating(context.Background(), model.TargetType("ROBOT"), "robot-1")
	if err == nil {
		t.Fatal("expected error for unknown target type, got nil")
	}
	if !apperrors.HasCode(err, apperrors.CodeInvalidInput) {
		t.Errorf("expected invalid input error, got %v", err)
	}
}

func TestForTarget_RepositoryFailure(t *testing.T) {
	repo := &mockReviewRepository{
		findByTargetFunc: func(ctx context.Context, targetType model.TargetType, targetID string) ([]*model.Review, error) {
			return nil, errors.New("connection reset")
		},
	}
	svc := newTestReviewService(repo)

	_, err := svc.ForTarget(context.Background(), model.TargetListing, "listing-1")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !apperrors.HasCode(err, apperrors.CodeInternal) {
		t.Errorf("expected internal error, got %v", err)
	}
}

func TestForBooking_EmptyID(t *testing.T) {
	svc := newTestReviewService(&mockReviewRepository{})

	_, err := svc.ForBooking(context.Background(), "")
	if err == nil {
		t.Fatal("expected error for empty booking ID, got nil")
	}
	if !apperrors.HasCode(err, apperrors.CodeInvalidInput) {
		t.Errorf("expected invalid input error, got %v", err)
	}
}
