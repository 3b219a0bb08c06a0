package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mindgrate/mindgrate-engine/pkg/apperrors"
	"github.com/mindgrate/mindgrate-engine/pkg/models"
	"github.com/mindgrate/mindgrate-engine/pkg/repositories"
)

// agentCardPath is the path prefix under which every MindOp publishes its
// agent card. The full URL is the configured base URL plus this prefix plus
// the MindOp ID.
const agentCardPath = "/functions/v1/a2a-service-endpoint/"

// MindOpService manages the user's MindOp configuration.
type MindOpService interface {
	// Get retrieves the user's MindOp. Returns apperrors.ErrNotFound when
	// the user has not saved one yet.
	Get(ctx context.Context, userID string) (*models.MindOp, error)

	// Save validates and persists the configuration. A zero ID inserts a new
	// MindOp with a freshly derived agent card URL; a non-zero ID updates that
	// row. Resetting the form to defaults clears the ID, so the save after a
	// reset inserts again. The agent card URL is never rewritten once assigned.
	Save(ctx context.Context, userID string, m *models.MindOp) (*models.MindOp, error)

	// Defaults returns the configuration used to seed and reset the profile.
	Defaults() *models.MindOp
}

// mindopService implements MindOpService.
type mindopService struct {
	repo    repositories.MindOpRepository
	baseURL string
	logger  *zap.Logger
}

// NewMindOpService creates a new MindOp service. baseURL is the public base
// URL agent card URLs are derived from; it may be empty, in which case first
// saves fail with apperrors.ErrMissingBaseURL.
func NewMindOpService(repo repositories.MindOpRepository, baseURL string, logger *zap.Logger) MindOpService {
	return &mindopService{
		repo:    repo,
		baseURL: baseURL,
		logger:  logger,
	}
}

// Get retrieves the user's MindOp.
func (s *mindopService) Get(ctx context.Context, userID string) (*models.MindOp, error) {
	return s.repo.GetByUserID(ctx, userID)
}

// Save validates and persists the configuration.
func (s *mindopService) Save(ctx context.Context, userID string, m *models.MindOp) (*models.MindOp, error) {
	if err := validateMindOp(m); err != nil {
		return nil, err
	}

	m.UserID = userID

	// A submitted ID means the client is editing a known row. Resetting the
	// form clears the ID, so the save after a reset takes the insert path.
	if m.ID != uuid.Nil {
		if err := s.repo.Update(ctx, m); err != nil {
			return nil, err
		}
		s.logger.Info("Updated MindOp",
			zap.String("mindop_id", m.ID.String()),
			zap.String("user_id", userID))
		return m, nil
	}

	// Insert: the agent card URL is derived before touching the database,
	// so a missing base URL never leaves a partial row behind.
	if s.baseURL == "" {
		return nil, apperrors.ErrMissingBaseURL
	}

	m.ID = uuid.New()
	m.AgentCardURL = s.baseURL + agentCardPath + m.ID.String()

	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	s.logger.Info("Created MindOp",
		zap.String("mindop_id", m.ID.String()),
		zap.String("user_id", userID))
	return m, nil
}

// Defaults returns the configuration used to seed and reset the profile.
func (s *mindopService) Defaults() *models.MindOp {
	return models.DefaultMindOp()
}

// validateMindOp checks the fields the profile form constrains.
func validateMindOp(m *models.MindOp) error {
	if m.Name == "" {
		return fmt.Errorf("%w: name is required", apperrors.ErrValidation)
	}
	if m.Temperature < 0 || m.Temperature > 1 {
		return fmt.Errorf("%w: temperature must be between 0 and 1", apperrors.ErrValidation)
	}
	if m.MaxTokens <= 0 {
		return fmt.Errorf("%w: max_tokens must be positive", apperrors.ErrValidation)
	}
	switch m.VerbosityLevel {
	case models.VerbosityLow, models.VerbosityMedium, models.VerbosityHigh:
	default:
		return fmt.Errorf("%w: invalid verbosity level %q", apperrors.ErrValidation, m.VerbosityLevel)
	}
	switch m.Discoverability {
	case models.DiscoverabilityPublic, models.DiscoverabilityPrivateLink, models.DiscoverabilityInviteOnly:
	default:
		return fmt.Errorf("%w: invalid discoverability %q", apperrors.ErrValidation, m.Discoverability)
	}
	switch m.ConnectionPolicy {
	case models.ConnectionPolicyAutoAccept, models.ConnectionPolicyManualApproval:
	default:
		return fmt.Errorf("%w: invalid connection policy %q", apperrors.ErrValidation, m.ConnectionPolicy)
	}
	return nil
}

// Ensure mindopService implements MindOpService at compile time.
var _ MindOpService = (*mindopService)(nil)
