package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mindgrate/mindgrate-engine/pkg/apperrors"
	"github.com/mindgrate/mindgrate-engine/pkg/models"
)

// Hub copy. The greeting opens every fresh transcript; the replies are keyed
// off simple keyword matching until real agent routing exists.
const (
	hubGreeting     = "Hello! I'm your personal MindOp. How can I help you today?"
	hubDefaultReply = "I'm processing your request as your personal MindOp."
	hubConnectReply = "I can help you find and connect with other MindOps. Use the search button above to discover specialized MindOps."
	hubDataReply    = "If you need to work with data, you can add data sources in the Data Sources section. Currently, I support CSV files and Google Sheets."
	hubHelpReply    = "As your personal MindOp, I can help you analyze information, connect with other specialized MindOps, and work with your data sources. How can I assist you today?"
)

// HubService provides the hub chat and MindOp discovery. All state is held
// in memory per user and resets on restart.
type HubService interface {
	// GetMessages returns the user's transcript, seeding the greeting on
	// first access.
	GetMessages(ctx context.Context, userID string) ([]models.ChatMessage, error)

	// SendMessage appends the user's message, waits the simulated reply
	// delay, appends the agent reply, and returns the full transcript.
	SendMessage(ctx context.Context, userID, text string) ([]models.ChatMessage, error)

	// Search filters the discovery directory by name, description, or tags
	// after the simulated search delay. Matching is case-insensitive.
	Search(ctx context.Context, userID, query string) ([]models.MindOpProfile, error)

	// RequestConnection marks the target profile pending and records a
	// confirmation message in the transcript. Returns apperrors.ErrNotFound
	// for an unknown profile ID.
	RequestConnection(ctx context.Context, userID, profileID string) ([]models.MindOpProfile, error)
}

// hubState is one user's in-memory hub view.
type hubState struct {
	transcript []models.ChatMessage
	directory  []models.MindOpProfile
}

// hubService implements HubService.
type hubService struct {
	mu          sync.Mutex
	users       map[string]*hubState
	clock       Clock
	replyDelay  time.Duration
	searchDelay time.Duration
	logger      *zap.Logger
}

// NewHubService creates a new hub service with the given simulated delays.
func NewHubService(clock Clock, replyDelay, searchDelay time.Duration, logger *zap.Logger) HubService {
	return &hubService{
		users:       make(map[string]*hubState),
		clock:       clock,
		replyDelay:  replyDelay,
		searchDelay: searchDelay,
		logger:      logger,
	}
}

// seedDirectory returns the discovery directory every user starts with.
func seedDirectory() []models.MindOpProfile {
	return []models.MindOpProfile{
		{
			ID:               "1",
			Name:             "Finance Expert",
			Description:      "Specialized in financial analysis and budgeting",
			Tags:             []string{"Finance", "Budget", "Analysis"},
			ConnectionStatus: models.ConnectionNone,
		},
		{
			ID:               "2",
			Name:             "Code Helper",
			Description:      "Assists with programming and debugging tasks",
			Tags:             []string{"Programming", "Debugging", "Development"},
			ConnectionStatus: models.ConnectionConnected,
		},
		{
			ID:               "3",
			Name:             "Marketing Strategist",
			Description:      "Helps with marketing plans and campaign analysis",
			Tags:             []string{"Marketing", "Campaigns", "Analytics"},
			ConnectionStatus: models.ConnectionPending,
		},
		{
			ID:               "4",
			Name:             "Legal Advisor",
			Description:      "Provides guidance on legal documents and compliance",
			Tags:             []string{"Legal", "Compliance", "Documents"},
			ConnectionStatus: models.ConnectionNone,
		},
	}
}

// state returns the user's hub state, seeding it on first access.
// Caller must hold s.mu.
func (s *hubService) state(userID string) *hubState {
	st, ok := s.users[userID]
	if !ok {
		st = &hubState{
			transcript: []models.ChatMessage{{From: models.SenderAgent, Text: hubGreeting}},
			directory:  seedDirectory(),
		}
		s.users[userID] = st
	}
	return st
}

// GetMessages returns the user's transcript.
func (s *hubService) GetMessages(ctx context.Context, userID string) ([]models.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyTranscript(s.state(userID)), nil
}

// SendMessage appends the user's message and the delayed agent reply.
func (s *hubService) SendMessage(ctx context.Context, userID, text string) ([]models.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: message text is required", apperrors.ErrValidation)
	}

	s.mu.Lock()
	st := s.state(userID)
	st.transcript = append(st.transcript, models.ChatMessage{
		From:      models.SenderUser,
		Text:      text,
		Timestamp: s.clock.Now(),
	})
	s.mu.Unlock()

	// The reply delay simulates agent latency; the lock is not held so
	// other requests for the same user still see the transcript.
	if err := s.clock.Sleep(ctx, s.replyDelay); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	st = s.state(userID)
	st.transcript = append(st.transcript, models.ChatMessage{
		From:      models.SenderAgent,
		Text:      replyFor(text),
		Timestamp: s.clock.Now(),
	})
	return copyTranscript(st), nil
}

// Search filters the directory after the simulated search delay.
func (s *hubService) Search(ctx context.Context, userID, query string) ([]models.MindOpProfile, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: query is required", apperrors.ErrValidation)
	}

	if err := s.clock.Sleep(ctx, s.searchDelay); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state(userID)

	q := strings.ToLower(query)
	results := []models.MindOpProfile{}
	for _, p := range st.directory {
		if profileMatches(p, q) {
			results = append(results, p)
		}
	}
	return results, nil
}

// RequestConnection marks the target pending and records the confirmation.
func (s *hubService) RequestConnection(ctx context.Context, userID, profileID string) ([]models.MindOpProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state(userID)

	for i := range st.directory {
		if st.directory[i].ID != profileID {
			continue
		}
		st.directory[i].ConnectionStatus = models.ConnectionPending
		st.transcript = append(st.transcript, models.ChatMessage{
			From:      models.SenderAgent,
			Text:      fmt.Sprintf("I've sent a connection request to %q. You'll be notified when they respond.", st.directory[i].Name),
			Timestamp: s.clock.Now(),
		})
		s.logger.Info("Connection requested",
			zap.String("user_id", userID),
			zap.String("target_id", profileID))

		out := make([]models.MindOpProfile, len(st.directory))
		copy(out, st.directory)
		return out, nil
	}

	return nil, apperrors.ErrNotFound
}

// replyFor picks the canned agent reply for a user message.
func replyFor(text string) string {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "connect") || strings.Contains(lower, "find"):
		return hubConnectReply
	case strings.Contains(lower, "data") || strings.Contains(lower, "source"):
		return hubDataReply
	case strings.Contains(lower, "help") || strings.Contains(lower, "what can you do"):
		return hubHelpReply
	default:
		return hubDefaultReply
	}
}

// profileMatches reports whether a profile matches the lowercased query.
func profileMatches(p models.MindOpProfile, q string) bool {
	if strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Description), q) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

func copyTranscript(st *hubState) []models.ChatMessage {
	out := make([]models.ChatMessage, len(st.transcript))
	copy(out, st.transcript)
	return out
}

// Ensure hubService implements HubService at compile time.
var _ HubService = (*hubService)(nil)
