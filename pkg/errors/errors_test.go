package errors

import (
	"errors"
	"net/http"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(CodeValidation, "validation failed", http.StatusUnprocessableEntity)

	if err.Code != CodeValidation {
		t.Errorf("expected code %s, got %s", CodeValidation, err.Code)
	}
	if err.Message != "validation failed" {
		t.Errorf("expected message 'validation failed', got %s", err.Message)
	}
	if err.HTTPStatus != http.StatusUnprocessableEntity {
		t.Errorf("expected status %d, got %d", http.StatusUnprocessableEntity, err.HTTPStatus)
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name: "without underlying error",
			appErr: &AppError{
				Code:    CodeNotFound,
				Message: "resource not found",
			},
			expected: "NOT_FOUND: resource not found",
		},
		{
			name: "with underlying error",
			appErr: &AppError{
				Code:    CodeInternal,
				Message: "internal error",
				Err:     errors.New("database connection failed"),
			},
			expected: "INTERNAL_ERROR: internal error (caused by: database connection failed)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.appErr.Error()
			if got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	originalErr := errors.New("original error")
	appErr := Wrap(originalErr, CodeInternal, "wrapped", http.StatusInternalServerError)

	unwrapped := errors.Unwrap(appErr)
	if unwrapped != originalErr {
		t.Errorf("Unwrap() should return original error")
	}
}

func TestSagaErrorStatuses(t *testing.T) {
	tests := []struct {
		name       string
		appErr     *AppError
		wantCode   string
		wantStatus int
	}{
		{"invalid range", InvalidRange("check-in must be before check-out"), CodeInvalidRange, http.StatusBadRequest},
		{"listing unavailable", ListingUnavailable("listing-1"), CodeListingUnavailable, http.StatusConflict},
		{"insufficient funds", InsufficientFunds("guest-1"), CodeInsufficientFunds, http.StatusPaymentRequired},
		{"pricing unavailable", PricingUnavailable("listing-1", errors.New("timeout")), CodePricingUnavailable, http.StatusServiceUnavailable},
		{"persistence failed", BookingPersistenceFailed(errors.New("insert failed")), CodeBookingPersistenceFailed, http.StatusInternalServerError},
		{"compensation failed", CompensationFailed("guest-1", 500, errors.New("credit failed")), CodeCompensationFailed, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.appErr.Code != tt.wantCode {
				t.Errorf("expected code %s, got %s", tt.wantCode, tt.appErr.Code)
			}
			if tt.appErr.HTTPStatus != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, tt.appErr.HTTPStatus)
			}
		})
	}
}

func TestHasCode(t *testing.T) {
	err := ListingUnavailable("listing-1")

	if !HasCode(err, CodeListingUnavailable) {
		t.Error("expected HasCode to match LISTING_UNAVAILABLE")
	}
	if HasCode(err, CodeInsufficientFunds) {
		t.Error("HasCode matched the wrong code")
	}
	if HasCode(errors.New("plain"), CodeInternal) {
		t.Error("HasCode matched a non-AppError")
	}
}

func TestCompensationFailedDetails(t *testing.T) {
	err := CompensationFailed("guest-9", 350.5, errors.New("wallet service down"))

	if err.Details["guest_id"] != "guest-9" {
		t.Errorf("expected guest_id detail, got %v", err.Details["guest_id"])
	}
	if err.Details["amount"] != 350.5 {
		t.Errorf("expected amount detail, got %v", err.Details["amount"])
	}
	if errors.Unwrap(err) == nil {
		t.Error("expected the credit failure to stay attached as the cause")
	}
}
