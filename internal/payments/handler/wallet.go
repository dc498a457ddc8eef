package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"airlock/internal/payments/service"
	httputil "airlock/pkg/http"
	"airlock/pkg/logger"
)

type WalletHandler struct {
	service service.WalletService
	log     *logger.Logger
}

func NewWalletHandler(service service.WalletService, log *logger.Logger) *WalletHandler {
	return &WalletHandler{
		service: service,
		log:     log,
	}
}

type fundsChangeRequest struct {
	Amount float64 `json:"amount"`
}

func (h *WalletHandler) Get(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	wallet, err := h.service.GetWallet(r.Context(), ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Get", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, wallet); err != nil {
		h.log.Error("failed to write success response", "handler", "Get", "operation", "WriteSuccess", "error", err)
	}
}

func (h *WalletHandler) Add(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req fundsChangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Add", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	wallet, err := h.service.AddFunds(r.Context(), ps.ByName("id"), req.Amount)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Add", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, wallet); err != nil {
		h.log.Error("failed to write success response", "handler", "Add", "operation", "WriteSuccess", "error", err)
	}
}

func (h *WalletHandler) Subtract(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req fundsChangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Subtract", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	wallet, err := h.service.SubtractFunds(r.Context(), ps.ByName("id"), req.Amount)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Subtract", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, wallet); err != nil {
		h.log.Error("failed to write success response", "handler", "Subtract", "operation", "WriteSuccess", "error", err)
	}
}

func (h *WalletHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/wallet/:id", h.Get)
	router.PATCH("/api/v1/wallet/:id/add", h.Add)
	router.PATCH("/api/v1/wallet/:id/subtract", h.Subtract)
}
