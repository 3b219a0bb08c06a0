package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/mindgrate/mindgrate-engine/pkg/apperrors"
	"github.com/mindgrate/mindgrate-engine/pkg/auth"
	"github.com/mindgrate/mindgrate-engine/pkg/models"
	"github.com/mindgrate/mindgrate-engine/pkg/services"
)

// MindOpHandler handles MindOp configuration HTTP requests.
type MindOpHandler struct {
	mindopService services.MindOpService
	logger        *zap.Logger
}

// NewMindOpHandler creates a new MindOp handler.
func NewMindOpHandler(mindopService services.MindOpService, logger *zap.Logger) *MindOpHandler {
	return &MindOpHandler{
		mindopService: mindopService,
		logger:        logger,
	}
}

// RegisterRoutes registers the MindOp handler's routes on the given mux.
func (h *MindOpHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("GET /api/mindop", authMiddleware.RequireAuth(h.Get))
	mux.HandleFunc("PUT /api/mindop", authMiddleware.RequireAuth(h.Save))
	mux.HandleFunc("GET /api/mindop/defaults", authMiddleware.RequireAuth(h.Defaults))
}

// Get handles GET /api/mindop
// Returns the authenticated user's MindOp configuration.
func (h *MindOpHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := auth.GetUserIDFromContext(r.Context())

	mindop, err := h.mindopService.Get(r.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			if err := ErrorResponse(w, http.StatusNotFound, "mindop_not_found", "No MindOp configured yet"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		h.logger.Error("Failed to get mindop",
			zap.String("user_id", userID),
			zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "internal_error", "Failed to get MindOp"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, mindop); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Save handles PUT /api/mindop
// Inserts when the body carries no ID, updates the identified row otherwise.
func (h *MindOpHandler) Save(w http.ResponseWriter, r *http.Request) {
	userID := auth.GetUserIDFromContext(r.Context())

	var req models.MindOp
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	saved, err := h.mindopService.Save(r.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			if err := ErrorResponse(w, http.StatusBadRequest, "invalid_mindop", err.Error()); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		if errors.Is(err, apperrors.ErrMissingBaseURL) {
			h.logger.Error("MindOp save rejected: no base URL configured",
				zap.String("user_id", userID))
			if err := ErrorResponse(w, http.StatusInternalServerError, "config_error", "Server base URL is not configured"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		if errors.Is(err, apperrors.ErrNotFound) {
			if err := ErrorResponse(w, http.StatusNotFound, "mindop_not_found", "No MindOp with that ID was found"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		if errors.Is(err, apperrors.ErrAgentCardConflict) {
			if err := ErrorResponse(w, http.StatusConflict, "agent_card_conflict", "Agent card URL is already in use"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		if errors.Is(err, apperrors.ErrConflict) {
			if err := ErrorResponse(w, http.StatusConflict, "conflict", "MindOp conflicts with an existing record"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		h.logger.Error("Failed to save mindop",
			zap.String("user_id", userID),
			zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "save_failed", "Failed to save MindOp"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, saved); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Defaults handles GET /api/mindop/defaults
// Returns the configuration used to seed and reset the profile form.
func (h *MindOpHandler) Defaults(w http.ResponseWriter, r *http.Request) {
	if err := WriteJSON(w, http.StatusOK, h.mindopService.Defaults()); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
