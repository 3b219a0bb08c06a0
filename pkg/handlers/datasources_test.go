package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mindgrate/mindgrate-engine/pkg/apperrors"
	"github.com/mindgrate/mindgrate-engine/pkg/models"
	"github.com/mindgrate/mindgrate-engine/pkg/services"
)

func TestDataSourcesHandler_List_Success(t *testing.T) {
	dsID := uuid.New()
	service := &mockDataSourceService{
		listFunc: func(ctx context.Context, userID string) ([]*services.DataSourceView, error) {
			return []*services.DataSourceView{
				{
					DataSource: &models.DataSource{
						ID:        dsID,
						Name:      "Budget Sheet",
						Type:      models.SourceTypeSheets,
						Status:    models.StatusConnected,
						CreatedAt: time.Now(),
					},
					LastSync: "Just now",
				},
			}, nil
		},
	}
	handler := NewDataSourcesHandler(service, zap.NewNop())

	req := withUser(httptest.NewRequest(http.MethodGet, "/api/datasources", nil), "user-1")
	rec := httptest.NewRecorder()
	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp ListDataSourcesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if len(resp.DataSources) != 1 {
		t.Fatalf("expected 1 data source, got %d", len(resp.DataSources))
	}
	if resp.DataSources[0].LastSync != "Just now" {
		t.Errorf("expected last_sync label, got %q", resp.DataSources[0].LastSync)
	}
}

func TestDataSourcesHandler_List_Empty(t *testing.T) {
	service := &mockDataSourceService{
		listFunc: func(ctx context.Context, userID string) ([]*services.DataSourceView, error) {
			return []*services.DataSourceView{}, nil
		},
	}
	handler := NewDataSourcesHandler(service, zap.NewNop())

	req := withUser(httptest.NewRequest(http.MethodGet, "/api/datasources", nil), "user-1")
	rec := httptest.NewRecorder()
	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte(`"data_sources":[]`)) {
		t.Errorf("expected empty array, got %s", rec.Body.String())
	}
}

func TestDataSourcesHandler_Connect_Success(t *testing.T) {
	service := &mockDataSourceService{
		connectFunc: func(ctx context.Context, userID string, req *services.ConnectDataSourceRequest) (*models.DataSource, error) {
			return &models.DataSource{
				ID:       uuid.New(),
				Name:     req.Name,
				Type:     req.Type,
				Status:   req.Type.InitialStatus(),
				Metadata: models.SourceMetadata{HasHeaders: req.HasHeaders},
			}, nil
		},
	}
	handler := NewDataSourcesHandler(service, zap.NewNop())

	body, _ := json.Marshal(services.ConnectDataSourceRequest{
		Name:       "expenses.csv",
		Type:       models.SourceTypeCSV,
		HasHeaders: true,
	})
	req := withUser(httptest.NewRequest(http.MethodPost, "/api/datasources", bytes.NewReader(body)), "user-1")
	rec := httptest.NewRecorder()
	handler.Connect(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp models.DataSource
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Status != models.StatusPending {
		t.Errorf("expected pending status for CSV, got %q", resp.Status)
	}
}

func TestDataSourcesHandler_Connect_Validation(t *testing.T) {
	service := &mockDataSourceService{
		connectFunc: func(ctx context.Context, userID string, req *services.ConnectDataSourceRequest) (*models.DataSource, error) {
			return nil, apperrors.ErrValidation
		},
	}
	handler := NewDataSourcesHandler(service, zap.NewNop())

	body, _ := json.Marshal(services.ConnectDataSourceRequest{Type: models.SourceTypeCSV})
	req := withUser(httptest.NewRequest(http.MethodPost, "/api/datasources", bytes.NewReader(body)), "user-1")
	rec := httptest.NewRecorder()
	handler.Connect(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
}

func TestDataSourcesHandler_Connect_NoMindOp(t *testing.T) {
	service := &mockDataSourceService{
		connectFunc: func(ctx context.Context, userID string, req *services.ConnectDataSourceRequest) (*models.DataSource, error) {
			return nil, apperrors.ErrNoMindOp
		},
	}
	handler := NewDataSourcesHandler(service, zap.NewNop())

	body, _ := json.Marshal(services.ConnectDataSourceRequest{Name: "x", Type: models.SourceTypeCSV})
	req := withUser(httptest.NewRequest(http.MethodPost, "/api/datasources", bytes.NewReader(body)), "user-1")
	rec := httptest.NewRecorder()
	handler.Connect(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("expected status 409, got %d", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp["error"] != "no_mindop" {
		t.Errorf("expected error code no_mindop, got %q", resp["error"])
	}
}

func TestDataSourcesHandler_Connect_InvalidBody(t *testing.T) {
	handler := NewDataSourcesHandler(&mockDataSourceService{}, zap.NewNop())

	req := withUser(httptest.NewRequest(http.MethodPost, "/api/datasources", bytes.NewReader([]byte("nope"))), "user-1")
	rec := httptest.NewRecorder()
	handler.Connect(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
}
