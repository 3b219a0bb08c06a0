package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/mindgrate/mindgrate-engine/pkg/apperrors"
	"github.com/mindgrate/mindgrate-engine/pkg/auth"
	"github.com/mindgrate/mindgrate-engine/pkg/models"
	"github.com/mindgrate/mindgrate-engine/pkg/services"
)

// SendMessageRequest for POST /api/hub/messages body.
type SendMessageRequest struct {
	Text string `json:"text"`
}

// MessagesResponse wraps a chat transcript.
type MessagesResponse struct {
	Messages []models.ChatMessage `json:"messages"`
}

// SearchRequest for POST /api/hub/search body.
type SearchRequest struct {
	Query string `json:"query"`
}

// SearchResponse wraps discovery results.
type SearchResponse struct {
	Results []models.MindOpProfile `json:"results"`
}

// ConnectionRequest for POST /api/hub/connections body.
type ConnectionRequest struct {
	MindOpID string `json:"mindop_id"`
}

// ConnectionResponse returns the directory after a connection request.
type ConnectionResponse struct {
	Results []models.MindOpProfile `json:"results"`
}

// HubHandler handles hub chat and discovery HTTP requests.
type HubHandler struct {
	hubService services.HubService
	logger     *zap.Logger
}

// NewHubHandler creates a new hub handler.
func NewHubHandler(hubService services.HubService, logger *zap.Logger) *HubHandler {
	return &HubHandler{
		hubService: hubService,
		logger:     logger,
	}
}

// RegisterRoutes registers the hub handler's routes on the given mux.
func (h *HubHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("GET /api/hub/messages", authMiddleware.RequireAuth(h.GetMessages))
	mux.HandleFunc("POST /api/hub/messages", authMiddleware.RequireAuth(h.SendMessage))
	mux.HandleFunc("POST /api/hub/search", authMiddleware.RequireAuth(h.Search))
	mux.HandleFunc("POST /api/hub/connections", authMiddleware.RequireAuth(h.RequestConnection))
}

// GetMessages handles GET /api/hub/messages
// Returns the user's chat transcript.
func (h *HubHandler) GetMessages(w http.ResponseWriter, r *http.Request) {
	userID := auth.GetUserIDFromContext(r.Context())

	msgs, err := h.hubService.GetMessages(r.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to get hub messages",
			zap.String("user_id", userID),
			zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "internal_error", "Failed to get messages"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, MessagesResponse{Messages: msgs}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// SendMessage handles POST /api/hub/messages
// Appends the message and returns the transcript including the agent reply.
func (h *HubHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	userID := auth.GetUserIDFromContext(r.Context())

	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	msgs, err := h.hubService.SendMessage(r.Context(), userID, req.Text)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			if err := ErrorResponse(w, http.StatusBadRequest, "empty_message", "Message text is required"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			// A server-side deadline during the simulated reply delay still
			// has a live connection; the write is a no-op when the client
			// is already gone.
			h.writeTimeout(w)
			return
		}
		h.logger.Error("Failed to send hub message",
			zap.String("user_id", userID),
			zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "send_failed", "Failed to send message"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, MessagesResponse{Messages: msgs}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Search handles POST /api/hub/search
// Filters the discovery directory by name, description, or tags.
func (h *HubHandler) Search(w http.ResponseWriter, r *http.Request) {
	userID := auth.GetUserIDFromContext(r.Context())

	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	results, err := h.hubService.Search(r.Context(), userID, req.Query)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			if err := ErrorResponse(w, http.StatusBadRequest, "empty_query", "Search query is required"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			h.writeTimeout(w)
			return
		}
		h.logger.Error("Failed to search mindops",
			zap.String("user_id", userID),
			zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "search_failed", "Failed to search MindOps"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, SearchResponse{Results: results}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// writeTimeout reports a request cancelled during a simulated delay.
func (h *HubHandler) writeTimeout(w http.ResponseWriter) {
	if err := ErrorResponse(w, http.StatusGatewayTimeout, "request_cancelled", "Request was cancelled before the reply was ready"); err != nil {
		h.logger.Error("Failed to write error response", zap.Error(err))
	}
}

// RequestConnection handles POST /api/hub/connections
// Marks the target profile pending and returns the updated directory.
func (h *HubHandler) RequestConnection(w http.ResponseWriter, r *http.Request) {
	userID := auth.GetUserIDFromContext(r.Context())

	var req ConnectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if req.MindOpID == "" {
		if err := ErrorResponse(w, http.StatusBadRequest, "missing_mindop_id", "MindOp ID is required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	directory, err := h.hubService.RequestConnection(r.Context(), userID, req.MindOpID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			if err := ErrorResponse(w, http.StatusNotFound, "mindop_not_found", "No MindOp with that ID was found"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		h.logger.Error("Failed to request connection",
			zap.String("user_id", userID),
			zap.String("target_id", req.MindOpID),
			zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "connection_failed", "Failed to request connection"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, ConnectionResponse{Results: directory}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
