package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mindgrate/mindgrate-engine/pkg/apperrors"
	"github.com/mindgrate/mindgrate-engine/pkg/database"
	"github.com/mindgrate/mindgrate-engine/pkg/models"
)

// DataSourceRepository defines the interface for data source persistence.
// Data sources are append-only: rows are created and listed, never updated.
type DataSourceRepository interface {
	// Create inserts a new data source. Returns apperrors.ErrNoMindOp when
	// the referenced MindOp does not exist.
	Create(ctx context.Context, ds *models.DataSource) error

	// ListByMindOp retrieves all data sources for a MindOp, newest first.
	ListByMindOp(ctx context.Context, mindopID uuid.UUID) ([]*models.DataSource, error)
}

// datasourceRepository implements DataSourceRepository using PostgreSQL.
type datasourceRepository struct {
	db *database.DB
}

// NewDataSourceRepository creates a new data source repository.
func NewDataSourceRepository(db *database.DB) DataSourceRepository {
	return &datasourceRepository{db: db}
}

// Create inserts a new data source.
func (r *datasourceRepository) Create(ctx context.Context, ds *models.DataSource) error {
	ds.CreatedAt = time.Now()

	query := `
		INSERT INTO data_sources (id, mindop_id, name, source_type, status, url, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Pool.Exec(ctx, query,
		ds.ID,
		ds.MindOpID,
		ds.Name,
		ds.Type,
		ds.Status,
		ds.URL,
		ds.Metadata,
		ds.CreatedAt,
	)
	if err != nil {
		// Foreign key violation (PostgreSQL error code 23503) means the
		// MindOp was deleted between lookup and insert.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return apperrors.ErrNoMindOp
		}
		return fmt.Errorf("failed to create data source: %w", err)
	}

	return nil
}

// ListByMindOp retrieves all data sources for a MindOp, newest first.
func (r *datasourceRepository) ListByMindOp(ctx context.Context, mindopID uuid.UUID) ([]*models.DataSource, error) {
	query := `
		SELECT id, mindop_id, name, source_type, status, url, metadata, created_at
		FROM data_sources
		WHERE mindop_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Pool.Query(ctx, query, mindopID)
	if err != nil {
		return nil, fmt.Errorf("failed to list data sources: %w", err)
	}
	defer rows.Close()

	var sources []*models.DataSource
	for rows.Next() {
		var ds models.DataSource
		err := rows.Scan(
			&ds.ID,
			&ds.MindOpID,
			&ds.Name,
			&ds.Type,
			&ds.Status,
			&ds.URL,
			&ds.Metadata,
			&ds.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan data source: %w", err)
		}
		sources = append(sources, &ds)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating data sources: %w", err)
	}

	return sources, nil
}

// Ensure datasourceRepository implements DataSourceRepository at compile time.
var _ DataSourceRepository = (*datasourceRepository)(nil)
