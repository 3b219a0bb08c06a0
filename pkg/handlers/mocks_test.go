package handlers

import (
	"context"
	"net/http"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mindgrate/mindgrate-engine/pkg/auth"
	"github.com/mindgrate/mindgrate-engine/pkg/models"
	"github.com/mindgrate/mindgrate-engine/pkg/services"
)

// withUser attaches authenticated claims to the request, as the auth
// middleware would.
func withUser(req *http.Request, userID string) *http.Request {
	claims := &auth.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: userID}}
	ctx := context.WithValue(req.Context(), auth.ClaimsKey, claims)
	return req.WithContext(ctx)
}

// mockMindOpService implements services.MindOpService.
type mockMindOpService struct {
	getFunc  func(ctx context.Context, userID string) (*models.MindOp, error)
	saveFunc func(ctx context.Context, userID string, m *models.MindOp) (*models.MindOp, error)
}

func (m *mockMindOpService) Get(ctx context.Context, userID string) (*models.MindOp, error) {
	return m.getFunc(ctx, userID)
}

func (m *mockMindOpService) Save(ctx context.Context, userID string, mo *models.MindOp) (*models.MindOp, error) {
	return m.saveFunc(ctx, userID, mo)
}

func (m *mockMindOpService) Defaults() *models.MindOp {
	return models.DefaultMindOp()
}

// mockDataSourceService implements services.DataSourceService.
type mockDataSourceService struct {
	connectFunc func(ctx context.Context, userID string, req *services.ConnectDataSourceRequest) (*models.DataSource, error)
	listFunc    func(ctx context.Context, userID string) ([]*services.DataSourceView, error)
}

func (m *mockDataSourceService) Connect(ctx context.Context, userID string, req *services.ConnectDataSourceRequest) (*models.DataSource, error) {
	return m.connectFunc(ctx, userID, req)
}

func (m *mockDataSourceService) List(ctx context.Context, userID string) ([]*services.DataSourceView, error) {
	return m.listFunc(ctx, userID)
}

// mockHubService implements services.HubService.
type mockHubService struct {
	getMessagesFunc func(ctx context.Context, userID string) ([]models.ChatMessage, error)
	sendFunc        func(ctx context.Context, userID, text string) ([]models.ChatMessage, error)
	searchFunc      func(ctx context.Context, userID, query string) ([]models.MindOpProfile, error)
	connectFunc     func(ctx context.Context, userID, profileID string) ([]models.MindOpProfile, error)
}

func (m *mockHubService) GetMessages(ctx context.Context, userID string) ([]models.ChatMessage, error) {
	return m.getMessagesFunc(ctx, userID)
}

func (m *mockHubService) SendMessage(ctx context.Context, userID, text string) ([]models.ChatMessage, error) {
	return m.sendFunc(ctx, userID, text)
}

func (m *mockHubService) Search(ctx context.Context, userID, query string) ([]models.MindOpProfile, error) {
	return m.searchFunc(ctx, userID, query)
}

func (m *mockHubService) RequestConnection(ctx context.Context, userID, profileID string) ([]models.MindOpProfile, error) {
	return m.connectFunc(ctx, userID, profileID)
}

// mockNotificationService implements services.NotificationService.
type mockNotificationService struct {
	listFunc   func(ctx context.Context, userID string, tab services.NotificationTab) ([]models.Notification, error)
	acceptFunc func(ctx context.Context, userID, id string) (*models.Notification, error)
	rejectFunc func(ctx context.Context, userID, id string) (*models.Notification, error)
}

func (m *mockNotificationService) List(ctx context.Context, userID string, tab services.NotificationTab) ([]models.Notification, error) {
	return m.listFunc(ctx, userID, tab)
}

func (m *mockNotificationService) Accept(ctx context.Context, userID, id string) (*models.Notification, error) {
	return m.acceptFunc(ctx, userID, id)
}

func (m *mockNotificationService) Reject(ctx context.Context, userID, id string) (*models.Notification, error) {
	return m.rejectFunc(ctx, userID, id)
}
