package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"airlock/internal/bookings/events"
	"airlock/internal/bookings/repository"
	"airlock/internal/bookings/validator"
	"airlock/pkg/config"
	mongotx "airlock/pkg/db/mongo"
	apperrors "airlock/pkg/errors"
	"airlock/pkg/logger"
	"airlock/pkg/model"
)

// Mock repository for testing
type mockBookingRepository struct {
	insertFunc          func(ctx context.Context, booking *model.Booking) error
	findByIDFunc        func(ctx context.Context, id string) (*model.Booking, error)
	findOverlappingFunc func(ctx context.Context, listingID string, checkIn, checkOut time.Time) ([]*model.Booking, error)
	findByListingFunc   func(ctx context.Context, listingID string, status model.BookingStatus) ([]*model.Booking, error)
	findByGuestFunc     func(ctx context.Context, guestID string, status model.BookingStatus) ([]*model.Booking, error)
	updateStatusFunc    func(ctx context.Context, id string, status model.BookingStatus) error
}

func (m *mockBookingRepository) Insert(ctx context.Context, booking *model.Booking) error {
	if m.insertFunc != nil {
		return m.insertFunc(ctx, booking)
	}
	booking.ID = "11111111-1111-4111-8111-111111111111"
	return nil
}

func (m *mockBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, errors.New("not configured")
}

func (m *mockBookingRepository) FindOverlapping(ctx context.Context, listingID string, checkIn, checkOut time.Time) ([]*model.Booking, error) {
	if m.findOverlappingFunc != nil {
		return m.findOverlappingFunc(ctx, listingID, checkIn, checkOut)
	}
	return nil, nil
}

func (m *mockBookingRepository) FindByListing(ctx context.Context, listingID string, status model.BookingStatus) ([]*model.Booking, error) {
	if m.findByListingFunc != nil {
		return m.findByListingFunc(ctx, listingID, status)
	}
	return nil, nil
}

func (m *mockBookingRepository) FindByGuest(ctx context.Context, guestID string, status model.BookingStatus) ([]*model.Booking, error) {
	if m.findByGuestFunc != nil {
		return m.findByGuestFunc(ctx, guestID, status)
	}
	return nil, nil
}

func (m *mockBookingRepository) UpdateStatus(ctx context.Context, id string, status model.BookingStatus) error {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status)
	}
	return nil
}

func (m *mockBookingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

type mockSlotLockRepository struct {
	createFunc func(ctx context.Context, lock *model.SlotLock) (*model.SlotLock, error)
	deleteFunc func(ctx context.Context, lockID string) error
}

func (m *mockSlotLockRepository) Create(ctx context.Context, lock *model.SlotLock) (*model.SlotLock, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, lock)
	}
	return lock, nil
}

func (m *mockSlotLockRepository) Delete(ctx context.Context, lockID string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, lockID)
	}
	return nil
}

type mockPricing struct {
	totalCostFunc func(ctx context.Context, listingID string, checkIn, checkOut time.Time) (float64, error)
}

func (m *mockPricing) TotalCost(ctx context.Context, listingID string, checkIn, checkOut time.Time) (float64, error) {
	if m.totalCostFunc != nil {
		return m.totalCostFunc(ctx, listingID, checkIn, checkOut)
	}
	return 100, nil
}

type mockWallets struct {
	debitFunc  func(ctx context.Context, userID string, amount float64) error
	creditFunc func(ctx context.Context, userID string, amount float64) error

	debits  []float64
	credits []float64
}

func (m *mockWallets) Debit(ctx context.Context, userID string, amount float64) error {
	m.debits = append(m.debits, amount)
	if m.debitFunc != nil {
		return m.debitFunc(ctx, userID, amount)
	}
	return nil
}

func (m *mockWallets) Credit(ctx context.Context, userID string, amount float64) error {
	m.credits = append(m.credits, amount)
	if m.creditFunc != nil {
		return m.creditFunc(ctx, userID, amount)
	}
	return nil
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
		SlotLockTTL:  10 * time.Second,
	}
}

func newTestBookingService(repo *mockBookingRepository, locks repository.SlotLockRepository, pricing PricingSource, wallets WalletStore) *bookingService {
	cfg := testConfig()
	return &bookingService{
		repo:         repo,
		lockRepo:     locks,
		availability: NewAvailabilityService(repo, cfg),
		pricing:      pricing,
		wallets:      wallets,
		publisher:    events.NoopPublisher{},
		validator:    validator.NewBookingValidator(cfg.Log),
		cfg:          cfg,
	}
}

func day(d int) time.Time {
	return time.Date(2026, time.March, d, 0, 0, 0, 0, time.UTC)
}

func validRequest(checkIn, checkOut time.Time) *model.BookingRequest {
	return &model.BookingRequest{
		ListingID: "listing-1",
		GuestID:   "guest-1",
		CheckIn:   checkIn,
		CheckOut:  checkOut,
	}
}

func TestCreate_OverlappingRangeRejected(t *testing.T) {
	existing := &model.Booking{
		ID:        "22222222-2222-4222-8222-222222222222",
		ListingID: "listing-1",
		CheckIn:   day(1),
		CheckOut:  day(5),
		Status:    model.StatusUpcoming,
	}

	repo := &mockBookingRepository{
		findOverlappingFunc: func(ctx context.Context, listingID string, checkIn, checkOut time.Time) ([]*model.Booking, error) {
			// Half-open overlap: existing Mar 1-5 intersects Mar 4-8.
			if existing.CheckIn.Before(checkOut) && existing.CheckOut.After(checkIn) {
				return []*model.Booking{existing}, nil
			}
			return nil, nil
		},
	}
	wallets := &mockWallets{}
	svc := newTestBookingService(repo, &mockSlotLockRepository{}, &mockPricing{}, wallets)

	_, err := svc.Create(context.Background(), validRequest(day(4), day(8)))
	if !apperrors.HasCode(err, apperrors.CodeListingUnavailable) {
		t.Fatalf("expected LISTING_UNAVAILABLE, got %v", err)
	}
	if len(wallets.debits) != 0 {
		t.Errorf("wallet must not be debited when the listing is unavailable, got %d debits", len(wallets.debits))
	}
}

func TestCreate_BackToBackStayAllowed(t *testing.T) {
	existing := &model.Booking{
		ID:        "22222222-2222-4222-8222-222222222222",
		ListingID: "listing-1",
		CheckIn:   day(1),
		CheckOut:  day(5),
		Status:    model.StatusUpcoming,
	}

	var inserted *model.Booking
	repo := &mockBookingRepository{
		findOverlappingFunc: func(ctx context.Context, listingID string, checkIn, checkOut time.Time) ([]*model.Booking, error) {
			if existing.CheckIn.Before(checkOut) && existing.CheckOut.After(checkIn) {
				return []*model.Booking{existing}, nil
			}
			return nil, nil
		},
		insertFunc: func(ctx context.Context, booking *model.Booking) error {
			booking.ID = "33333333-3333-4333-8333-333333333333"
			inserted = booking
			return nil
		},
	}
	pricing := &mockPricing{
		totalCostFunc: func(ctx context.Context, listingID string, checkIn, checkOut time.Time) (float64, error) {
			return 375, nil
		},
	}
	wallets := &mockWallets{}
	svc := newTestBookingService(repo, &mockSlotLockRepository{}, pricing, wallets)

	// Checkout day and check-in day may coincide: [1,5) and [5,8) do not overlap.
	booking, err := svc.Create(context.Background(), validRequest(day(5), day(8)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inserted == nil {
		t.Fatal("expected booking to be persisted")
	}
	if booking.Status != model.StatusUpcoming {
		t.Errorf("expected status UPCOMING, got %s", booking.Status)
	}
	if booking.TotalCost != 375 {
		t.Errorf("expected total cost 375, got %f", booking.TotalCost)
	}
	if len(wallets.debits) != 1 || wallets.debits[0] != 375 {
		t.Errorf("expected one debit of 375, got %v", wallets.debits)
	}
	if len(wallets.credits) != 0 {
		t.Errorf("expected no compensating credit, got %v", wallets.credits)
	}
}

func TestCreate_InsufficientFundsStopsSaga(t *testing.T) {
	var inserted bool
	repo := &mockBookingRepository{
		insertFunc: func(ctx context.Context, booking *model.Booking) error {
			inserted = true
			return nil
		},
	}
	wallets := &mockWallets{
		debitFunc: func(ctx context.Context, userID string, amount float64) error {
			return apperrors.InsufficientFunds(userID)
		},
	}
	svc := newTestBookingService(repo, &mockSlotLockRepository{}, &mockPricing{}, wallets)

	_, err := svc.Create(context.Background(), validRequest(day(1), day(5)))
	if !apperrors.HasCode(err, apperrors.CodeInsufficientFunds) {
		t.Fatalf("expected INSUFFICIENT_FUNDS, got %v", err)
	}
	if inserted {
		t.Error("booking must not be persisted when the debit fails")
	}
}

func TestCreate_PersistFailureRefundsGuest(t *testing.T) {
	repo := &mockBookingRepository{
		insertFunc: func(ctx context.Context, booking *model.Booking) error {
			return errors.New("write conflict")
		},
	}
	pricing := &mockPricing{
		totalCostFunc: func(ctx context.Context, listingID string, checkIn, checkOut time.Time) (float64, error) {
			return 250, nil
		},
	}
	wallets := &mockWallets{}
	svc := newTestBookingService(repo, &mockSlotLockRepository{}, pricing, wallets)

	_, err := svc.Create(context.Background(), validRequest(day(1), day(5)))
	if !apperrors.HasCode(err, apperrors.CodeBookingPersistenceFailed) {
		t.Fatalf("expected BOOKING_PERSISTENCE_FAILED, got %v", err)
	}
	if len(wallets.credits) != 1 || wallets.credits[0] != 250 {
		t.Errorf("expected compensating credit of 250, got %v", wallets.credits)
	}
	if len(wallets.debits) != 1 || wallets.debits[0] != 250 {
		t.Errorf("expected debit of 250, got %v", wallets.debits)
	}
}

func TestCreate_CompensationFailureIsNotMasked(t *testing.T) {
	repo := &mockBookingRepository{
		insertFunc: func(ctx context.Context, booking *model.Booking) error {
			return errors.New("write conflict")
		},
	}
	wallets := &mockWallets{
		creditFunc: func(ctx context.Context, userID string, amount float64) error {
			return errors.New("payments unreachable")
		},
	}
	svc := newTestBookingService(repo, &mockSlotLockRepository{}, &mockPricing{}, wallets)

	_, err := svc.Create(context.Background(), validRequest(day(1), day(5)))
	if !apperrors.HasCode(err, apperrors.CodeCompensationFailed) {
		t.Fatalf("expected COMPENSATION_FAILED, got %v", err)
	}

	appErr := apperrors.AsAppError(err)
	if appErr == nil {
		t.Fatal("expected an AppError")
	}
	if appErr.Details["guest_id"] != "guest-1" {
		t.Errorf("expected guest_id detail, got %v", appErr.Details)
	}
}

func TestCreate_PricingFailureStopsSagaEarly(t *testing.T) {
	var lockAcquired bool
	locks := &mockSlotLockRepository{
		createFunc: func(ctx context.Context, lock *model.SlotLock) (*model.SlotLock, error) {
			lockAcquired = true
			return lock, nil
		},
	}
	pricing := &mockPricing{
		totalCostFunc: func(ctx context.Context, listingID string, checkIn, checkOut time.Time) (float64, error) {
			return 0, errors.New("connection refused")
		},
	}
	wallets := &mockWallets{}
	svc := newTestBookingService(&mockBookingRepository{}, locks, pricing, wallets)

	_, err := svc.Create(context.Background(), validRequest(day(1), day(5)))
	if !apperrors.HasCode(err, apperrors.CodePricingUnavailable) {
		t.Fatalf("expected PRICING_UNAVAILABLE, got %v", err)
	}
	if lockAcquired {
		t.Error("slot lock must not be acquired when pricing fails")
	}
	if len(wallets.debits) != 0 {
		t.Errorf("wallet must not be debited when pricing fails, got %v", wallets.debits)
	}
}

func TestCreate_InvalidRangeRejected(t *testing.T) {
	svc := newTestBookingService(&mockBookingRepository{}, &mockSlotLockRepository{}, &mockPricing{}, &mockWallets{})

	_, err := svc.Create(context.Background(), validRequest(day(5), day(1)))
	if !apperrors.HasCode(err, apperrors.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}

func TestCreate_SlotLockContention(t *testing.T) {
	locks := &mockSlotLockRepository{
		createFunc: func(ctx context.Context, lock *model.SlotLock) (*model.SlotLock, error) {
			return nil, duplicateKeyError()
		},
	}
	wallets := &mockWallets{}
	svc := newTestBookingService(&mockBookingRepository{}, locks, &mockPricing{}, wallets)

	_, err := svc.Create(context.Background(), validRequest(day(1), day(5)))
	if !apperrors.HasCode(err, apperrors.CodeConflict) {
		t.Fatalf("expected CONFLICT, got %v", err)
	}
	if len(wallets.debits) != 0 {
		t.Errorf("wallet must not be debited under lock contention, got %v", wallets.debits)
	}
}

func TestCancel_OnlyUpcomingBookings(t *testing.T) {
	tests := []struct {
		name     string
		status   model.BookingStatus
		wantCode string
	}{
		{"upcoming is cancellable", model.StatusUpcoming, ""},
		{"current cannot be cancelled", model.StatusCurrent, apperrors.CodeConflict},
		{"completed cannot be cancelled", model.StatusCompleted, apperrors.CodeConflict},
		{"cancelled twice conflicts", model.StatusCancelled, apperrors.CodeConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockBookingRepository{
				findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
					return &model.Booking{ID: id, Status: tt.status}, nil
				},
			}
			svc := newTestBookingService(repo, &mockSlotLockRepository{}, &mockPricing{}, &mockWallets{})

			booking, err := svc.Cancel(context.Background(), "44444444-4444-4444-8444-444444444444")
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if booking.Status != model.StatusCancelled {
					t.Errorf("expected status CANCELLED, got %s", booking.Status)
				}
				return
			}
			if !apperrors.HasCode(err, tt.wantCode) {
				t.Fatalf("expected %s, got %v", tt.wantCode, err)
			}
		})
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo := &mockBookingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			return nil, bookingNotFound()
		},
	}
	svc := newTestBookingService(repo, &mockSlotLockRepository{}, &mockPricing{}, &mockWallets{})

	_, err := svc.GetByID(context.Background(), "44444444-4444-4444-8444-444444444444")
	if !apperrors.HasCode(err, apperrors.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}
