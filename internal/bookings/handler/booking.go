package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"airlock/internal/bookings/service"
	apperrors "airlock/pkg/errors"
	httputil "airlock/pkg/http"
	"airlock/pkg/logger"
	"airlock/pkg/model"
)

type BookingHandler struct {
	bookings     service.BookingService
	availability service.AvailabilityService
	log          *logger.Logger
}

func NewBookingHandler(bookings service.BookingService, availability service.AvailabilityService, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		bookings:     bookings,
		availability: availability,
		log:          log,
	}
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	booking, err := h.bookings.Create(r.Context(), &req)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, booking); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *BookingHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	booking, err := h.bookings.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	booking, err := h.bookings.Cancel(r.Context(), ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Cancel", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.log.Error("failed to write success response", "handler", "Cancel", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) ForListing(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	status, err := parseStatus(r.URL.Query().Get("status"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ForListing", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	bookings, err := h.bookings.ForListing(r.Context(), ps.ByName("id"), status)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ForListing", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, bookings); err != nil {
		h.log.Error("failed to write success response", "handler", "ForListing", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) ForGuest(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	status, err := parseStatus(r.URL.Query().Get("status"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ForGuest", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	bookings, err := h.bookings.ForGuest(r.Context(), ps.ByName("id"), status)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ForGuest", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, bookings); err != nil {
		h.log.Error("failed to write success response", "handler", "ForGuest", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) Availability(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	checkIn, checkOut, err := httputil.ExtractDateRange(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Availability", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	available, err := h.availability.IsAvailable(r.Context(), ps.ByName("id"), checkIn, checkOut)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Availability", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, map[string]bool{"available": available}); err != nil {
		h.log.Error("failed to write success response", "handler", "Availability", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) BookedDates(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ranges, err := h.availability.BookedRanges(r.Context(), ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "BookedDates", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, ranges); err != nil {
		h.log.Error("failed to write success response", "handler", "BookedDates", "operation", "WriteSuccess", "error", err)
	}
}

func parseStatus(s string) (model.BookingStatus, error) {
	switch model.BookingStatus(s) {
	case "", model.StatusUpcoming, model.StatusCurrent, model.StatusCompleted, model.StatusCancelled:
		return model.BookingStatus(s), nil
	default:
		return "", apperrors.InvalidInput("invalid status parameter: " + s)
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/bookings", h.Create)
	router.GET("/api/v1/bookings/id/:id", h.GetByID)
	router.POST("/api/v1/bookings/id/:id/cancel", h.Cancel)
	router.GET("/api/v1/listings/:id/bookings", h.ForListing)
	router.GET("/api/v1/guests/:id/bookings", h.ForGuest)
	router.GET("/api/v1/listings/:id/availability", h.Availability)
	router.GET("/api/v1/listings/:id/booked-dates", h.BookedDates)
}
