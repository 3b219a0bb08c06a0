package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/mindgrate/mindgrate-engine/pkg/apperrors"
	"github.com/mindgrate/mindgrate-engine/pkg/auth"
	"github.com/mindgrate/mindgrate-engine/pkg/services"
)

// ListDataSourcesResponse wraps the array for frontend compatibility.
type ListDataSourcesResponse struct {
	DataSources []*services.DataSourceView `json:"data_sources"`
}

// DataSourcesHandler handles data source HTTP requests.
type DataSourcesHandler struct {
	datasourceService services.DataSourceService
	logger            *zap.Logger
}

// NewDataSourcesHandler creates a new data sources handler.
func NewDataSourcesHandler(datasourceService services.DataSourceService, logger *zap.Logger) *DataSourcesHandler {
	return &DataSourcesHandler{
		datasourceService: datasourceService,
		logger:            logger,
	}
}

// RegisterRoutes registers the data sources handler's routes on the given mux.
func (h *DataSourcesHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("GET /api/datasources", authMiddleware.RequireAuth(h.List))
	mux.HandleFunc("POST /api/datasources", authMiddleware.RequireAuth(h.Connect))
}

// List handles GET /api/datasources
// Returns the user's data sources, newest first, with recency labels.
func (h *DataSourcesHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := auth.GetUserIDFromContext(r.Context())

	sources, err := h.datasourceService.List(r.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to list data sources",
			zap.String("user_id", userID),
			zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "internal_error", "Failed to list data sources"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, ListDataSourcesResponse{DataSources: sources}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Connect handles POST /api/datasources
// Records a new data source against the user's MindOp.
func (h *DataSourcesHandler) Connect(w http.ResponseWriter, r *http.Request) {
	userID := auth.GetUserIDFromContext(r.Context())

	var req services.ConnectDataSourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	ds, err := h.datasourceService.Connect(r.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			if err := ErrorResponse(w, http.StatusBadRequest, "invalid_datasource", err.Error()); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		if errors.Is(err, apperrors.ErrNoMindOp) {
			if err := ErrorResponse(w, http.StatusConflict, "no_mindop", "Save your MindOp before connecting data sources"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		h.logger.Error("Failed to connect data source",
			zap.String("user_id", userID),
			zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "connect_failed", "Failed to connect data source"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusCreated, ds); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
