package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mindgrate/mindgrate-engine/pkg/apperrors"
	"github.com/mindgrate/mindgrate-engine/pkg/database"
	"github.com/mindgrate/mindgrate-engine/pkg/models"
)

// MindOpRepository defines the interface for MindOp data access.
type MindOpRepository interface {
	// GetByUserID retrieves the user's MindOp. Each user has at most one by
	// application convention; the first row by creation time wins if more
	// exist. Returns apperrors.ErrNotFound when the user has none.
	GetByUserID(ctx context.Context, userID string) (*models.MindOp, error)

	// Create inserts a new MindOp. Returns apperrors.ErrAgentCardConflict
	// when the agent card URL is already taken.
	Create(ctx context.Context, m *models.MindOp) error

	// Update modifies an existing MindOp and refreshes m's agent card URL and
	// creation time from the stored row. Returns apperrors.ErrNotFound when
	// no row matches the ID and user.
	Update(ctx context.Context, m *models.MindOp) error
}

// mindopRepository implements MindOpRepository using PostgreSQL.
type mindopRepository struct {
	db *database.DB
}

// NewMindOpRepository creates a new MindOp repository.
func NewMindOpRepository(db *database.DB) MindOpRepository {
	return &mindopRepository{db: db}
}

const mindopColumns = `id, user_id, name, role, description, prompt_template,
	temperature, max_tokens, verbosity_level, enabled, tags, data_sources,
	retry_on_fail, rate_limit_per_minute, model, discoverability,
	connection_policy, agent_card_url, created_at, updated_at`

// GetByUserID retrieves the user's MindOp.
func (r *mindopRepository) GetByUserID(ctx context.Context, userID string) (*models.MindOp, error) {
	query := `
		SELECT ` + mindopColumns + `
		FROM mindops
		WHERE user_id = $1
		ORDER BY created_at
		LIMIT 1`

	m, err := scanMindOp(r.db.Pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get mindop: %w", err)
	}

	return m, nil
}

// Create inserts a new MindOp.
func (r *mindopRepository) Create(ctx context.Context, m *models.MindOp) error {
	now := time.Now()
	m.CreatedAt = now
	m.UpdatedAt = now

	query := `
		INSERT INTO mindops (id, user_id, name, role, description, prompt_template,
			temperature, max_tokens, verbosity_level, enabled, tags, data_sources,
			retry_on_fail, rate_limit_per_minute, model, discoverability,
			connection_policy, agent_card_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`

	_, err := r.db.Pool.Exec(ctx, query,
		m.ID,
		m.UserID,
		m.Name,
		m.Role,
		m.Description,
		m.PromptTemplate,
		m.Temperature,
		m.MaxTokens,
		m.VerbosityLevel,
		m.Enabled,
		m.Tags,
		m.DataSources,
		m.RetryOnFail,
		m.RateLimitPerMinute,
		m.Model,
		m.Discoverability,
		m.ConnectionPolicy,
		m.AgentCardURL,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		// Check for unique constraint violation (PostgreSQL error code 23505)
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if pgErr.ConstraintName == "mindops_agent_card_url_key" {
				return apperrors.ErrAgentCardConflict
			}
			return apperrors.ErrConflict
		}
		return fmt.Errorf("failed to create mindop: %w", err)
	}

	return nil
}

// Update modifies an existing MindOp. The row must belong to the user; the
// agent card URL is never rewritten on update, and the stored value is
// scanned back so callers return what the database holds.
func (r *mindopRepository) Update(ctx context.Context, m *models.MindOp) error {
	m.UpdatedAt = time.Now()

	query := `
		UPDATE mindops
		SET name = $3, role = $4, description = $5, prompt_template = $6,
			temperature = $7, max_tokens = $8, verbosity_level = $9, enabled = $10,
			tags = $11, data_sources = $12, retry_on_fail = $13,
			rate_limit_per_minute = $14, model = $15, discoverability = $16,
			connection_policy = $17, updated_at = $18
		WHERE id = $1 AND user_id = $2
		RETURNING agent_card_url, created_at`

	err := r.db.Pool.QueryRow(ctx, query,
		m.ID,
		m.UserID,
		m.Name,
		m.Role,
		m.Description,
		m.PromptTemplate,
		m.Temperature,
		m.MaxTokens,
		m.VerbosityLevel,
		m.Enabled,
		m.Tags,
		m.DataSources,
		m.RetryOnFail,
		m.RateLimitPerMinute,
		m.Model,
		m.Discoverability,
		m.ConnectionPolicy,
		m.UpdatedAt,
	).Scan(&m.AgentCardURL, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to update mindop: %w", err)
	}

	return nil
}

// scanMindOp scans a single mindop row in mindopColumns order.
func scanMindOp(row pgx.Row) (*models.MindOp, error) {
	var m models.MindOp
	err := row.Scan(
		&m.ID,
		&m.UserID,
		&m.Name,
		&m.Role,
		&m.Description,
		&m.PromptTemplate,
		&m.Temperature,
		&m.MaxTokens,
		&m.VerbosityLevel,
		&m.Enabled,
		&m.Tags,
		&m.DataSources,
		&m.RetryOnFail,
		&m.RateLimitPerMinute,
		&m.Model,
		&m.Discoverability,
		&m.ConnectionPolicy,
		&m.AgentCardURL,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Ensure mindopRepository implements MindOpRepository at compile time.
var _ MindOpRepository = (*mindopRepository)(nil)
