package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"airlock/internal/reviews/service"
	httputil "airlock/pkg/http"
	"airlock/pkg/logger"
	"airlock/pkg/model"
)

type ReviewHandler struct {
	service service.ReviewService
	log     *logger.Logger
}

func NewReviewHandler(service service.ReviewService, log *logger.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		log:     log,
	}
}

// reviewInput is the caller-supplied part of a review; booking id and
// target type come from the route.
type reviewInput struct {
	TargetID string `json:"target_id"`
	AuthorID string `json:"author_id"`
	Rating   int    `json:"rating"`
	Text     string `json:"text"`
}

func (in *reviewInput) toReview(bookingID string) *model.Review {
	return &model.Review{
		BookingID: bookingID,
		TargetID:  in.TargetID,
		AuthorID:  in.AuthorID,
		Rating:    in.Rating,
		Text:      in.Text,
	}
}

type stayReviewsInput struct {
	HostReview    reviewInput `json:"host_review"`
	ListingReview reviewInput `json:"listing_review"`
}

func (h *ReviewHandler) SubmitGuestReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var input reviewInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "SubmitGuestReview", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	review := input.toReview(ps.ByName("id"))
	if err := h.service.SubmitGuestReview(r.Context(), review); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "SubmitGuestReview", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, review); err != nil {
		h.log.Error("failed to write created response", "handler", "SubmitGuestReview", "operation", "WriteCreated", "error", err)
	}
}

func (h *ReviewHandler) SubmitStayReviews(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var input stayReviewsInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "SubmitStayReviews", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	bookingID := ps.ByName("id")
	hostReview := input.HostReview.toReview(bookingID)
	listingReview := input.ListingReview.toReview(bookingID)

	if err := h.service.SubmitStayReviews(r.Context(), hostReview, listingReview); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "SubmitStayReviews", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, []*model.Review{hostReview, listingReview}); err != nil {
		h.log.Error("failed to write created response", "handler", "SubmitStayReviews", "operation", "WriteCreated", "error", err)
	}
}

func (h *ReviewHandler) ForTarget(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	reviews, err := h.service.ForTarget(r.Context(), model.TargetType(ps.ByName("type")), ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ForTarget", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, reviews); err != nil {
		h.log.Error("failed to write success response", "handler", "ForTarget", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ReviewHandler) ForBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	reviews, err := h.service.ForBooking(r.Context(), ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ForBooking", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, reviews); err != nil {
		h.log.Error("failed to write success response", "handler", "ForBooking", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ReviewHandler) Rating(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	summary, err := h.service.OverallRating(r.Context(), model.TargetType(ps.ByName("type")), ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Rating", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	body := map[string]any{
		"rating": summary.Rating,
		"count":  summary.Count,
	}
	if err := httputil.WriteSuccess(w, body); err != nil {
		h.log.Error("failed to write success response", "handler", "Rating", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ReviewHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/bookings/:id/reviews/guest", h.SubmitGuestReview)
	router.POST("/api/v1/bookings/:id/reviews/stay", h.SubmitStayReviews)
	router.GET("/api/v1/bookings/:id/reviews", h.ForBooking)
	router.GET("/api/v1/targets/:type/:id/reviews", h.ForTarget)
	router.GET("/api/v1/targets/:type/:id/rating", h.Rating)
}
