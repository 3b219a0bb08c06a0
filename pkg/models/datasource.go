package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SourceType identifies the kind of external data connection.
type SourceType string

const (
	SourceTypeCSV    SourceType = "CSV"
	SourceTypeSheets SourceType = "Google Sheets"
)

// SourceStatus is the connection state of a data source.
type SourceStatus string

const (
	StatusConnected SourceStatus = "Connected"
	StatusPending   SourceStatus = "Pending"
	StatusError     SourceStatus = "Error"
)

// SourceMetadata carries the kind-specific details persisted alongside a
// data source. No file content is ever stored; CSV connections persist
// metadata only.
type SourceMetadata struct {
	HasHeaders bool   `json:"has_headers"`
	SheetName  string `json:"sheet_name,omitempty"`
}

// DataSource is a named external data connection attached to a MindOp.
// Status and metadata shape are fixed by the source type at creation time;
// rows are never updated or deleted afterwards.
type DataSource struct {
	ID        uuid.UUID      `json:"id"`
	MindOpID  uuid.UUID      `json:"mindop_id"`
	Name      string         `json:"name"`
	Type      SourceType     `json:"type"`
	Status    SourceStatus   `json:"status"`
	URL       string         `json:"url,omitempty"` // Spreadsheet link; empty for CSV
	Metadata  SourceMetadata `json:"metadata"`
	CreatedAt time.Time      `json:"created_at"`
}

// InitialStatus returns the status assigned at creation: spreadsheet
// connections are considered live immediately, CSV connections wait for an
// upload that is out of scope, so they start pending.
func (t SourceType) InitialStatus() SourceStatus {
	if t == SourceTypeSheets {
		return StatusConnected
	}
	return StatusPending
}

// LastSyncLabel derives the human-readable recency string shown in the data
// source list. Creation time stands in for last sync since no real sync runs.
func (d *DataSource) LastSyncLabel(now time.Time) string {
	minutes := int(now.Sub(d.CreatedAt).Minutes())

	if minutes < 1 {
		return "Just now"
	}
	if minutes < 60 {
		return fmt.Sprintf("%d minutes ago", minutes)
	}

	hours := minutes / 60
	if hours < 24 {
		return fmt.Sprintf("%d hours ago", hours)
	}

	return fmt.Sprintf("%d days ago", hours/24)
}
