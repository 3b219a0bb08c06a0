package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mindgrate/mindgrate-engine/pkg/apperrors"
	"github.com/mindgrate/mindgrate-engine/pkg/models"
	"github.com/mindgrate/mindgrate-engine/pkg/repositories"
)

// ConnectDataSourceRequest carries the fields of the connect form.
type ConnectDataSourceRequest struct {
	Name       string            `json:"name"`
	Type       models.SourceType `json:"type"`
	URL        string            `json:"url"`
	SheetName  string            `json:"sheet_name"`
	HasHeaders bool              `json:"has_headers"`
}

// DataSourceView is a data source enriched with the derived recency label
// shown in the list.
type DataSourceView struct {
	*models.DataSource
	LastSync string `json:"last_sync"`
}

// DataSourceService manages external data connections for a user's MindOp.
type DataSourceService interface {
	// Connect validates the request and records a new data source against
	// the user's MindOp. Returns apperrors.ErrNoMindOp when the user has no
	// MindOp to attach it to.
	Connect(ctx context.Context, userID string, req *ConnectDataSourceRequest) (*models.DataSource, error)

	// List returns the user's data sources, newest first, with recency
	// labels. A user without a MindOp gets an empty list.
	List(ctx context.Context, userID string) ([]*DataSourceView, error)
}

// datasourceService implements DataSourceService.
type datasourceService struct {
	repo       repositories.DataSourceRepository
	mindopRepo repositories.MindOpRepository
	clock      Clock
	logger     *zap.Logger
}

// NewDataSourceService creates a new data source service.
func NewDataSourceService(
	repo repositories.DataSourceRepository,
	mindopRepo repositories.MindOpRepository,
	clock Clock,
	logger *zap.Logger,
) DataSourceService {
	return &datasourceService{
		repo:       repo,
		mindopRepo: mindopRepo,
		clock:      clock,
		logger:     logger,
	}
}

// Connect validates the request and records a new data source.
func (s *datasourceService) Connect(ctx context.Context, userID string, req *ConnectDataSourceRequest) (*models.DataSource, error) {
	if err := validateConnectRequest(req); err != nil {
		return nil, err
	}

	mindop, err := s.mindopRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNoMindOp
		}
		return nil, err
	}

	ds := &models.DataSource{
		ID:       uuid.New(),
		MindOpID: mindop.ID,
		Name:     strings.TrimSpace(req.Name),
		Type:     req.Type,
		Status:   req.Type.InitialStatus(),
		Metadata: models.SourceMetadata{HasHeaders: req.HasHeaders},
	}
	if req.Type == models.SourceTypeSheets {
		ds.URL = req.URL
		ds.Metadata.SheetName = req.SheetName
	}

	if err := s.repo.Create(ctx, ds); err != nil {
		return nil, err
	}

	s.logger.Info("Connected data source",
		zap.String("datasource_id", ds.ID.String()),
		zap.String("mindop_id", mindop.ID.String()),
		zap.String("type", string(ds.Type)))
	return ds, nil
}

// List returns the user's data sources with recency labels.
func (s *datasourceService) List(ctx context.Context, userID string) ([]*DataSourceView, error) {
	mindop, err := s.mindopRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return []*DataSourceView{}, nil
		}
		return nil, err
	}

	sources, err := s.repo.ListByMindOp(ctx, mindop.ID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	views := make([]*DataSourceView, 0, len(sources))
	for _, ds := range sources {
		views = append(views, &DataSourceView{
			DataSource: ds,
			LastSync:   ds.LastSyncLabel(now),
		})
	}
	return views, nil
}

// validateConnectRequest checks the connect form fields.
func validateConnectRequest(req *ConnectDataSourceRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name is required", apperrors.ErrValidation)
	}
	switch req.Type {
	case models.SourceTypeCSV:
	case models.SourceTypeSheets:
		if strings.TrimSpace(req.URL) == "" {
			return fmt.Errorf("%w: url is required for Google Sheets sources", apperrors.ErrValidation)
		}
	default:
		return fmt.Errorf("%w: unsupported source type %q", apperrors.ErrValidation, req.Type)
	}
	return nil
}

// Ensure datasourceService implements DataSourceService at compile time.
var _ DataSourceService = (*datasourceService)(nil)
