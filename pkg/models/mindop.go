package models

import (
	"time"

	"github.com/google/uuid"
)

// Verbosity controls how talkative a MindOp's responses are.
type Verbosity string

const (
	VerbosityLow    Verbosity = "Low"
	VerbosityMedium Verbosity = "Medium"
	VerbosityHigh   Verbosity = "High"
)

// Discoverability controls who may find a MindOp in search.
type Discoverability string

const (
	DiscoverabilityPublic      Discoverability = "public"
	DiscoverabilityPrivateLink Discoverability = "private_link"
	DiscoverabilityInviteOnly  Discoverability = "private_invite_only"
)

// ConnectionPolicy controls how incoming connection requests are handled.
type ConnectionPolicy string

const (
	ConnectionPolicyAutoAccept     ConnectionPolicy = "auto_accept_all"
	ConnectionPolicyManualApproval ConnectionPolicy = "manual_approval_all"
)

// MindOp is a user's configured personal-assistant entity. Each user owns at
// most one MindOp by application convention; the convention is enforced by
// the query pattern (first row per user), not by a database constraint.
type MindOp struct {
	ID                 uuid.UUID        `json:"id"`
	UserID             string           `json:"user_id"`
	Name               string           `json:"name"`
	Role               string           `json:"role"`
	Description        string           `json:"description"`
	PromptTemplate     string           `json:"prompt_template"`
	Temperature        float64          `json:"temperature"`
	MaxTokens          int              `json:"max_tokens"`
	VerbosityLevel     Verbosity        `json:"verbosity_level"`
	Enabled            bool             `json:"enabled"`
	Tags               []string         `json:"tags"`
	DataSources        []string         `json:"data_sources"`
	RetryOnFail        bool             `json:"retry_on_fail"`
	RateLimitPerMinute int              `json:"rate_limit_per_minute"`
	Model              string           `json:"model"`
	Discoverability    Discoverability  `json:"discoverability"`
	ConnectionPolicy   ConnectionPolicy `json:"connection_policy"`
	AgentCardURL       string           `json:"agent_card_url"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

// DefaultMindOp returns the fixed default configuration used to seed the
// profile form and to reset it. Resetting always restores exactly these
// values; the ID is left zero so a subsequent save inserts rather than updates.
func DefaultMindOp() *MindOp {
	return &MindOp{
		Name:               "My MindOp",
		Role:               "Personal Assistant",
		Description:        "My personal AI agent that helps me with daily tasks and connects with other specialized MindOps.",
		PromptTemplate:     "{{input}} - Process this request as a personal MindOp.",
		Temperature:        0.7,
		MaxTokens:          512,
		VerbosityLevel:     VerbosityMedium,
		Enabled:            true,
		Tags:               []string{"Personal", "Assistant"},
		DataSources:        []string{"MyData"},
		RetryOnFail:        true,
		RateLimitPerMinute: 60,
		Model:              "gpt-4",
		Discoverability:    DiscoverabilityPublic,
		ConnectionPolicy:   ConnectionPolicyManualApproval,
	}
}
