package models

import "time"

// NotificationStatus is the state of an incoming connection request.
type NotificationStatus string

const (
	NotificationPending  NotificationStatus = "pending"
	NotificationAccepted NotificationStatus = "accepted"
	NotificationRejected NotificationStatus = "rejected"
)

// Notification is an incoming connection request from another MindOp.
// Status transitions (pending to accepted or rejected) happen in memory only
// and are irreversible within a session.
type Notification struct {
	ID          string             `json:"id"`
	FromMindOp  string             `json:"from_mindop"`
	Description string             `json:"description"`
	Timestamp   time.Time          `json:"timestamp"`
	Status      NotificationStatus `json:"status"`
}
