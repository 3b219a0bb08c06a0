package models

import "time"

// ChatSender identifies who authored a chat message.
type ChatSender string

const (
	SenderUser  ChatSender = "user"
	SenderAgent ChatSender = "agent"
)

// ChatMessage is a single message in a hub conversation. Messages are held
// in memory per user and never persisted.
type ChatMessage struct {
	From      ChatSender `json:"from"`
	Text      string     `json:"text"`
	Timestamp time.Time  `json:"timestamp,omitzero"`
}

// ConnectionStatus is a discovered MindOp's connection state relative to the
// viewing user.
type ConnectionStatus string

const (
	ConnectionNone      ConnectionStatus = "none"
	ConnectionPending   ConnectionStatus = "pending"
	ConnectionConnected ConnectionStatus = "connected"
)

// MindOpProfile is a discovery search result.
type MindOpProfile struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	Description      string           `json:"description"`
	Tags             []string         `json:"tags"`
	ConnectionStatus ConnectionStatus `json:"connection_status"`
}
