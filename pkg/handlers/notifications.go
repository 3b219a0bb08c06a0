package handlers

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/mindgrate/mindgrate-engine/pkg/apperrors"
	"github.com/mindgrate/mindgrate-engine/pkg/auth"
	"github.com/mindgrate/mindgrate-engine/pkg/models"
	"github.com/mindgrate/mindgrate-engine/pkg/services"
)

// ListNotificationsResponse wraps the array for frontend compatibility.
type ListNotificationsResponse struct {
	Notifications []models.Notification `json:"notifications"`
}

// NotificationsHandler handles connection request notifications.
type NotificationsHandler struct {
	notificationService services.NotificationService
	logger              *zap.Logger
}

// NewNotificationsHandler creates a new notifications handler.
func NewNotificationsHandler(notificationService services.NotificationService, logger *zap.Logger) *NotificationsHandler {
	return &NotificationsHandler{
		notificationService: notificationService,
		logger:              logger,
	}
}

// RegisterRoutes registers the notifications handler's routes on the given mux.
func (h *NotificationsHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("GET /api/notifications", authMiddleware.RequireAuth(h.List))
	mux.HandleFunc("POST /api/notifications/{id}/accept", authMiddleware.RequireAuth(h.Accept))
	mux.HandleFunc("POST /api/notifications/{id}/reject", authMiddleware.RequireAuth(h.Reject))
}

// List handles GET /api/notifications?tab=incoming|sent|connected
// Defaults to the incoming tab.
func (h *NotificationsHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := auth.GetUserIDFromContext(r.Context())
	tab := services.NotificationTab(r.URL.Query().Get("tab"))

	items, err := h.notificationService.List(r.Context(), userID, tab)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			if err := ErrorResponse(w, http.StatusBadRequest, "invalid_tab", "Unknown notifications tab"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		h.logger.Error("Failed to list notifications",
			zap.String("user_id", userID),
			zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "internal_error", "Failed to list notifications"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, ListNotificationsResponse{Notifications: items}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Accept handles POST /api/notifications/{id}/accept
func (h *NotificationsHandler) Accept(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, h.notificationService.Accept)
}

// Reject handles POST /api/notifications/{id}/reject
func (h *NotificationsHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, h.notificationService.Reject)
}

func (h *NotificationsHandler) resolve(
	w http.ResponseWriter,
	r *http.Request,
	fn func(ctx context.Context, userID, id string) (*models.Notification, error),
) {
	userID := auth.GetUserIDFromContext(r.Context())
	id := r.PathValue("id")

	n, err := fn(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			if err := ErrorResponse(w, http.StatusNotFound, "notification_not_found", "No notification with that ID was found"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		if errors.Is(err, apperrors.ErrConflict) {
			if err := ErrorResponse(w, http.StatusConflict, "already_resolved", "Notification was already accepted or rejected"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		h.logger.Error("Failed to resolve notification",
			zap.String("user_id", userID),
			zap.String("notification_id", id),
			zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "resolve_failed", "Failed to update notification"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, n); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
