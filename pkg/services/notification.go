package services

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mindgrate/mindgrate-engine/pkg/apperrors"
	"github.com/mindgrate/mindgrate-engine/pkg/models"
)

// NotificationTab selects which slice of notifications to list.
type NotificationTab string

const (
	TabIncoming  NotificationTab = "incoming"
	TabSent      NotificationTab = "sent"
	TabConnected NotificationTab = "connected"
)

// NotificationService manages incoming connection requests. State is held in
// memory per user, seeded with the demo requests, and resets on restart.
type NotificationService interface {
	// List returns the notifications for a tab. The sent and connected tabs
	// are empty until outgoing requests and accepted connections are tracked.
	List(ctx context.Context, userID string, tab NotificationTab) ([]models.Notification, error)

	// Accept marks a pending notification accepted. Only the targeted
	// notification changes. Returns apperrors.ErrNotFound for an unknown ID
	// and apperrors.ErrConflict when it was already resolved.
	Accept(ctx context.Context, userID, id string) (*models.Notification, error)

	// Reject marks a pending notification rejected, with the same rules
	// as Accept.
	Reject(ctx context.Context, userID, id string) (*models.Notification, error)
}

// notificationService implements NotificationService.
type notificationService struct {
	mu     sync.Mutex
	users  map[string][]models.Notification
	clock  Clock
	logger *zap.Logger
}

// NewNotificationService creates a new notification service.
func NewNotificationService(clock Clock, logger *zap.Logger) NotificationService {
	return &notificationService{
		users:  make(map[string][]models.Notification),
		clock:  clock,
		logger: logger,
	}
}

// seedNotifications returns the pending requests every user starts with,
// timestamped relative to first access.
func seedNotifications(now time.Time) []models.Notification {
	return []models.Notification{
		{
			ID:          "1",
			FromMindOp:  "Finance Expert",
			Description: "Specialized in financial analysis and budgeting",
			Timestamp:   now.Add(-30 * time.Minute),
			Status:      models.NotificationPending,
		},
		{
			ID:          "2",
			FromMindOp:  "Legal Advisor",
			Description: "Provides guidance on legal documents and compliance",
			Timestamp:   now.Add(-2 * time.Hour),
			Status:      models.NotificationPending,
		},
		{
			ID:          "3",
			FromMindOp:  "Creative Writer",
			Description: "Helps with content creation and creative writing",
			Timestamp:   now.Add(-5 * time.Hour),
			Status:      models.NotificationPending,
		},
	}
}

// state returns the user's notifications, seeding them on first access.
// Caller must hold s.mu.
func (s *notificationService) state(userID string) []models.Notification {
	items, ok := s.users[userID]
	if !ok {
		items = seedNotifications(s.clock.Now())
		s.users[userID] = items
	}
	return items
}

// List returns the notifications for a tab.
func (s *notificationService) List(ctx context.Context, userID string, tab NotificationTab) ([]models.Notification, error) {
	switch tab {
	case TabIncoming, "":
	case TabSent, TabConnected:
		return []models.Notification{}, nil
	default:
		return nil, apperrors.ErrValidation
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.state(userID)
	out := make([]models.Notification, len(items))
	copy(out, items)
	return out, nil
}

// Accept marks a pending notification accepted.
func (s *notificationService) Accept(ctx context.Context, userID, id string) (*models.Notification, error) {
	return s.resolve(userID, id, models.NotificationAccepted)
}

// Reject marks a pending notification rejected.
func (s *notificationService) Reject(ctx context.Context, userID, id string) (*models.Notification, error) {
	return s.resolve(userID, id, models.NotificationRejected)
}

func (s *notificationService) resolve(userID, id string, status models.NotificationStatus) (*models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.state(userID)

	for i := range items {
		if items[i].ID != id {
			continue
		}
		if items[i].Status != models.NotificationPending {
			return nil, apperrors.ErrConflict
		}
		items[i].Status = status
		s.logger.Info("Resolved notification",
			zap.String("user_id", userID),
			zap.String("notification_id", id),
			zap.String("status", string(status)))
		n := items[i]
		return &n, nil
	}

	return nil, apperrors.ErrNotFound
}

// Ensure notificationService implements NotificationService at compile time.
var _ NotificationService = (*notificationService)(nil)
