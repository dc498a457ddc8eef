package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
)

const (
	CodeNotFound     = "NOT_FOUND"
	CodeValidation   = "VALIDATION_ERROR"
	CodeConflict     = "CONFLICT"
	CodeInternal     = "INTERNAL_ERROR"
	CodeTimeout      = "TIMEOUT"
	CodeUnavailable  = "SERVICE_UNAVAILABLE"
	CodeInvalidInput = "INVALID_INPUT"

	// Booking saga error codes. Terminal domain outcomes and the
	// infrastructure failures that trigger (or follow) compensation.
	CodeInvalidRange             = "INVALID_RANGE"
	CodeListingUnavailable       = "LISTING_UNAVAILABLE"
	CodeInsufficientFunds        = "INSUFFICIENT_FUNDS"
	CodePricingUnavailable       = "PRICING_UNAVAILABLE"
	CodeBookingPersistenceFailed = "BOOKING_PERSISTENCE_FAILED"
	CodeCompensationFailed       = "COMPENSATION_FAILED"
)

type AppError struct {
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Err        error          `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) StatusCode() int {
	return e.HTTPStatus
}

func (e *AppError) ToJSON() []byte {
	response := ErrorResponse{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	}
	data, _ := json.Marshal(response)
	return data
}

type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

func Wrap(err error, code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

func (e *AppError) WithDetails(details map[string]any) *AppError {
	e.Details = details
	return e
}

func NotFound(resource string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
	}
}

func NotFoundWithID(resource, id string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details: map[string]any{
			"resource": resource,
			"id":       id,
		},
	}
}

func Validation(message string, details map[string]any) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    message,
		HTTPStatus: http.StatusUnprocessableEntity,
		Details:    details,
	}
}

func InvalidInput(message string) *AppError {
	return &AppError{
		Code:       CodeInvalidInput,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

func Conflict(message string) *AppError {
	return &AppError{
		Code:       CodeConflict,
		Message:    message,
		HTTPStatus: http.StatusConflict,
	}
}

func Internal(message string, err error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func Timeout(message string) *AppError {
	return &AppError{
		Code:       CodeTimeout,
		Message:    message,
		HTTPStatus: http.StatusGatewayTimeout,
	}
}

func Unavailable(service string) *AppError {
	return &AppError{
		Code:       CodeUnavailable,
		Message:    fmt.Sprintf("%s is temporarily unavailable", service),
		HTTPStatus: http.StatusServiceUnavailable,
	}
}

// InvalidRange rejects a malformed date interval before any I/O happens.
func InvalidRange(message string) *AppError {
	return &AppError{
		Code:       CodeInvalidRange,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// ListingUnavailable is the terminal outcome when the requested dates overlap
// an existing non-cancelled booking. Nothing was debited, nothing to undo.
func ListingUnavailable(listingID string) *AppError {
	return &AppError{
		Code:       CodeListingUnavailable,
		Message:    "listing is unavailable for the requested dates",
		HTTPStatus: http.StatusConflict,
		Details: map[string]any{
			"listing_id": listingID,
		},
	}
}

// InsufficientFunds is the terminal outcome when the wallet debit is refused.
// The wallet is untouched, nothing to undo.
func InsufficientFunds(guestID string) *AppError {
	return &AppError{
		Code:       CodeInsufficientFunds,
		Message:    "wallet funds are insufficient for this booking",
		HTTPStatus: http.StatusPaymentRequired,
		Details: map[string]any{
			"guest_id": guestID,
		},
	}
}

func PricingUnavailable(listingID string, err error) *AppError {
	return &AppError{
		Code:       CodePricingUnavailable,
		Message:    "could not price the requested stay",
		HTTPStatus: http.StatusServiceUnavailable,
		Details: map[string]any{
			"listing_id": listingID,
		},
		Err: err,
	}
}

// BookingPersistenceFailed reports an insert failure for which the
// compensating wallet credit has already run successfully.
func BookingPersistenceFailed(err error) *AppError {
	return &AppError{
		Code:       CodeBookingPersistenceFailed,
		Message:    "booking could not be persisted; payment was refunded",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// CompensationFailed means the compensating credit itself failed after a
// successful debit: funds may be stuck. It must never be masked by the
// original persistence error.
func CompensationFailed(guestID string, amount float64, err error) *AppError {
	return &AppError{
		Code:       CodeCompensationFailed,
		Message:    "booking failed and the refund could not be issued",
		HTTPStatus: http.StatusInternalServerError,
		Details: map[string]any{
			"guest_id": guestID,
			"amount":   amount,
		},
		Err: err,
	}
}

func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

func AsAppError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return Internal("An unexpected error occurred", err)
}

// HasCode reports whether err is an AppError carrying the given code.
func HasCode(err error, code string) bool {
	appErr, ok := err.(*AppError)
	return ok && appErr.Code == code
}
