package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	bookingserrors "airlock/internal/bookings/errors"
	"airlock/internal/bookings/events"
	"airlock/internal/bookings/repository"
	"airlock/internal/bookings/validator"
	"airlock/pkg/config"
	apperrors "airlock/pkg/errors"
	"airlock/pkg/model"
)

// PricingSource quotes the total cost of a stay. Backed by the
// listings service in production.
type PricingSource interface {
	TotalCost(ctx context.Context, listingID string, checkIn, checkOut time.Time) (float64, error)
}

// WalletStore debits and credits guest wallets. Backed by the payments
// service in production.
type WalletStore interface {
	Debit(ctx context.Context, userID string, amount float64) error
	Credit(ctx context.Context, userID string, amount float64) error
}

type BookingService interface {
	Create(ctx context.Context, req *model.BookingRequest) (*model.Booking, error)
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	Cancel(ctx context.Context, id string) (*model.Booking, error)
	ForListing(ctx context.Context, listingID string, status model.BookingStatus) ([]*model.Booking, error)
	ForGuest(ctx context.Context, guestID string, status model.BookingStatus) ([]*model.Booking, error)
}

type bookingService struct {
	repo         repository.BookingRepository
	lockRepo     repository.SlotLockRepository
	availability AvailabilityService
	pricing      PricingSource
	wallets      WalletStore
	publisher    events.Publisher
	validator    *validator.BookingValidator
	cfg          *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	lockRepo repository.SlotLockRepository,
	availability AvailabilityService,
	pricing PricingSource,
	wallets WalletStore,
	publisher events.Publisher,
	validator *validator.BookingValidator,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:         repo,
		lockRepo:     lockRepo,
		availability: availability,
		pricing:      pricing,
		wallets:      wallets,
		publisher:    publisher,
		validator:    validator,
		cfg:          cfg,
	}
}

// Create runs the booking saga: quote the price, verify availability,
// debit the guest, then persist. The debit happens before the insert,
// so a failed insert triggers a compensating credit. A failed
// compensation outranks the persistence error in the response because
// the guest's money is now wrong, not just the booking.
func (s *bookingService) Create(ctx context.Context, req *model.BookingRequest) (*model.Booking, error) {
	if err := s.validator.ValidateRequest(req); err != nil {
		s.cfg.Log.Warn("Booking request validation failed", "error", err)
		return nil, apperrors.Validation("Invalid booking request", map[string]any{"error": err.Error()})
	}

	totalCost, err := s.pricing.TotalCost(ctx, req.ListingID, req.CheckIn, req.CheckOut)
	if err != nil {
		if apperrors.IsAppError(err) {
			return nil, err
		}
		s.cfg.Log.Error("Failed to quote booking cost", "listing_id", req.ListingID, "error", err)
		return nil, apperrors.PricingUnavailable(req.ListingID, err)
	}

	// Advisory lock narrows the race between the availability check
	// and the insert for concurrent requests on the same slot.
	lockID, err := s.acquireSlotLock(ctx, req.ListingID, req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, err
	}
	defer func() {
		if releaseErr := s.releaseSlotLock(ctx, lockID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release slot lock", "lock_id", lockID, "error", releaseErr)
		}
	}()

	available, err := s.availability.IsAvailable(ctx, req.ListingID, req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, apperrors.ListingUnavailable(req.ListingID)
	}

	if err := s.wallets.Debit(ctx, req.GuestID, totalCost); err != nil {
		if apperrors.IsAppError(err) {
			return nil, err
		}
		s.cfg.Log.Error("Failed to debit guest wallet", "guest_id", req.GuestID, "amount", totalCost, "error", err)
		return nil, apperrors.Internal("Failed to debit guest wallet", err)
	}

	booking := &model.Booking{
		ListingID: req.ListingID,
		GuestID:   req.GuestID,
		CheckIn:   req.CheckIn,
		CheckOut:  req.CheckOut,
		TotalCost: totalCost,
		Status:    model.StatusUpcoming,
	}

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		return s.repo.Insert(sessCtx, booking)
	})
	if err != nil {
		s.cfg.Log.Error("Failed to persist booking, refunding guest",
			"guest_id", req.GuestID,
			"listing_id", req.ListingID,
			"amount", totalCost,
			"error", err,
		)
		if creditErr := s.wallets.Credit(ctx, req.GuestID, totalCost); creditErr != nil {
			s.cfg.Log.Error("Compensating credit failed, wallet balance is inconsistent",
				"guest_id", req.GuestID,
				"amount", totalCost,
				"error", creditErr,
			)
			return nil, apperrors.CompensationFailed(req.GuestID, totalCost, creditErr)
		}
		return nil, apperrors.BookingPersistenceFailed(err)
	}

	if pubErr := s.publisher.BookingCreated(ctx, booking); pubErr != nil {
		s.cfg.Log.Warn("Failed to publish booking created event", "booking_id", booking.ID, "error", pubErr)
	}

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"listing_id", booking.ListingID,
		"guest_id", booking.GuestID,
		"total_cost", booking.TotalCost,
	)
	return booking, nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid booking ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}

	return booking, nil
}

// Cancel transitions an upcoming booking to CANCELLED. Current and
// completed stays cannot be cancelled, and cancelling twice conflicts.
func (s *bookingService) Cancel(ctx context.Context, id string) (*model.Booking, error) {
	booking, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !booking.Cancellable() {
		return nil, apperrors.Conflict(fmt.Sprintf("Booking in status %s cannot be cancelled", booking.Status))
	}

	if err := s.repo.UpdateStatus(ctx, id, model.StatusCancelled); err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		s.cfg.Log.Error("Failed to cancel booking", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to cancel booking", err)
	}
	booking.Status = model.StatusCancelled

	if pubErr := s.publisher.BookingCancelled(ctx, booking); pubErr != nil {
		s.cfg.Log.Warn("Failed to publish booking cancelled event", "booking_id", booking.ID, "error", pubErr)
	}

	s.cfg.Log.Info("Booking cancelled", "id", id)
	return booking, nil
}

func (s *bookingService) ForListing(ctx context.Context, listingID string, status model.BookingStatus) ([]*model.Booking, error) {
	if listingID == "" {
		return nil, apperrors.InvalidInput("Listing ID cannot be empty")
	}

	bookings, err := s.repo.FindByListing(ctx, listingID, status)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings for listing", "listing_id", listingID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}

	return bookings, nil
}

func (s *bookingService) ForGuest(ctx context.Context, guestID string, status model.BookingStatus) ([]*model.Booking, error) {
	if guestID == "" {
		return nil, apperrors.InvalidInput("Guest ID cannot be empty")
	}

	bookings, err := s.repo.FindByGuest(ctx, guestID, status)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings for guest", "guest_id", guestID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}

	return bookings, nil
}

// acquireSlotLock creates an advisory lock for the slot coordinates.
// A duplicate key error means another request holds the slot.
func (s *bookingService) acquireSlotLock(ctx context.Context, listingID string, checkIn, checkOut time.Time) (string, error) {
	lockID := fmt.Sprintf("slot_%s_%d_%d", listingID, checkIn.Unix(), checkOut.Unix())

	lock := &model.SlotLock{
		ID:        lockID,
		ExpiresAt: time.Now().Add(s.cfg.SlotLockTTL),
	}

	_, err := s.lockRepo.Create(ctx, lock)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", apperrors.Conflict("This date range is currently being booked by another request. Please try again.")
		}
		return "", apperrors.Internal("Failed to acquire slot lock", err)
	}

	return lockID, nil
}

func (s *bookingService) releaseSlotLock(ctx context.Context, lockID string) error {
	return s.lockRepo.Delete(ctx, lockID)
}
