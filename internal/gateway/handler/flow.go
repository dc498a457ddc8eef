package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"airlock/internal/gateway/service"
	apperrors "airlock/pkg/errors"
	httputil "airlock/pkg/http"
	"airlock/pkg/logger"
	"airlock/pkg/model"
)

type FlowHandler struct {
	service *service.GatewayService
	log     *logger.Logger
}

func NewFlowHandler(service *service.GatewayService, log *logger.Logger) *FlowHandler {
	return &FlowHandler{
		service: service,
		log:     log,
	}
}

type executeFlowRequest struct {
	Flow  string         `json:"flow"`
	Input map[string]any `json:"input"`
}

func (h *FlowHandler) Execute(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req executeFlowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Execute", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if req.Flow == "" {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput("flow name is required")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Execute", "operation", "WriteError", "error", writeErr)
		}
		return
	}
	if req.Input == nil {
		req.Input = make(map[string]any)
	}

	h.log.Info("executing flow", "flow", req.Flow)

	output, err := h.service.ExecuteFlow(r.Context(), req.Flow, req.Input)
	if err != nil {
		if !apperrors.IsAppError(err) {
			err = apperrors.InvalidInput(err.Error())
		}
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Execute", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, output); err != nil {
		h.log.Error("failed to write success response", "handler", "Execute", "operation", "WriteSuccess", "error", err)
	}
}

func (h *FlowHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteSuccess(w, map[string]any{"flows": h.service.Flows()}); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "operation", "WriteSuccess", "error", err)
	}
}

func (h *FlowHandler) ResolveEntity(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	stub := model.EntityStub{
		TypeName: ps.ByName("type"),
		ID:       ps.ByName("id"),
	}

	entity, err := h.service.Resolve(r.Context(), stub)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ResolveEntity", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, entity); err != nil {
		h.log.Error("failed to write success response", "handler", "ResolveEntity", "operation", "WriteSuccess", "error", err)
	}
}

func (h *FlowHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/flows/execute", h.Execute)
	router.GET("/api/v1/flows", h.List)
	router.GET("/api/v1/entities/:type/:id", h.ResolveEntity)
}
