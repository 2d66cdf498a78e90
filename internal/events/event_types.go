package events

import (
	"time"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered         EventType = "user_registered"
	EventComplaintCreated       EventType = "complaint_created"
	EventComplaintStatusChanged EventType = "complaint_status_changed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

// ComplaintCreatedPayload payload.
type ComplaintCreatedPayload struct {
	Complaint domain.Complaint `json:"complaint"`
}

// ComplaintStatusChangedPayload payload. OldStatus is whatever the handler
// read before writing; concurrent updates can leave it stale, which the
// notification deliberately tolerates.
type ComplaintStatusChangedPayload struct {
	Complaint domain.Complaint       `json:"complaint"`
	OldStatus domain.ComplaintStatus `json:"old_status"`
}
