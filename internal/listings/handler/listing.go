package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"airlock/internal/listings/service"
	apperrors "airlock/pkg/errors"
	httputil "airlock/pkg/http"
	"airlock/pkg/logger"
	"airlock/pkg/model"
)

type ListingHandler struct {
	service service.ListingService
	log     *logger.Logger
}

func NewListingHandler(service service.ListingService, log *logger.Logger) *ListingHandler {
	return &ListingHandler{
		service: service,
		log:     log,
	}
}

func (h *ListingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var listing model.Listing
	if err := json.NewDecoder(r.Body).Decode(&listing); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := h.service.Create(r.Context(), &listing); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, listing); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *ListingHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	listing, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, listing); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ListingHandler) Cost(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	checkIn, checkOut, err := httputil.ExtractDateRange(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Cost", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	quote, err := h.service.Quote(r.Context(), ps.ByName("id"), checkIn, checkOut)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Cost", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, quote); err != nil {
		h.log.Error("failed to write success response", "handler", "Cost", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ListingHandler) Search(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Search", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	numOfBeds := 0
	if s := r.URL.Query().Get("num_of_beds"); s != "" {
		numOfBeds, err = strconv.Atoi(s)
		if err != nil || numOfBeds < 0 {
			if writeErr := httputil.WriteError(w, apperrors.InvalidInput("invalid num_of_beds parameter: "+s)); writeErr != nil {
				h.log.Error("failed to write error response", "handler", "Search", "operation", "WriteError", "error", writeErr)
			}
			return
		}
	}

	listings, total, err := h.service.Search(r.Context(), numOfBeds, limit, offset)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Search", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WritePaginated(w, listings, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "Search", "operation", "WritePaginated", "error", err)
	}
}

func (h *ListingHandler) Featured(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		var err error
		limit, err = strconv.Atoi(s)
		if err != nil || limit < 0 {
			if writeErr := httputil.WriteError(w, apperrors.InvalidInput("invalid limit parameter: "+s)); writeErr != nil {
				h.log.Error("failed to write error response", "handler", "Featured", "operation", "WriteError", "error", writeErr)
			}
			return
		}
	}

	listings, err := h.service.Featured(r.Context(), limit)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Featured", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, listings); err != nil {
		h.log.Error("failed to write success response", "handler", "Featured", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ListingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/listings", h.Create)
	router.GET("/api/v1/listings", h.Search)
	router.GET("/api/v1/listings/featured", h.Featured)
	router.GET("/api/v1/listings/id/:id", h.GetByID)
	router.GET("/api/v1/listings/id/:id/cost", h.Cost)
}
