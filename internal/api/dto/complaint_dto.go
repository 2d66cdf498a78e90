package dto

import (
	"time"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// CreateComplaintRequest payload. Status is accepted but ignored; a new
// complaint always starts at Pending.
type CreateComplaintRequest struct {
	Title       string                   `json:"title"`
	Description string                   `json:"description"`
	Category    domain.ComplaintCategory `json:"category"`
	Priority    domain.ComplaintPriority `json:"priority"`
	Status      string                   `json:"status,omitempty"`
}

// UpdateStatusRequest payload for the admin status change.
type UpdateStatusRequest struct {
	Status domain.ComplaintStatus `json:"status"`
}

// ComplaintResponse is the wire form of a complaint.
type ComplaintResponse struct {
	ID            string                   `json:"id"`
	UserID        string                   `json:"userId"`
	Title         string                   `json:"title"`
	Description   string                   `json:"description"`
	Category      domain.ComplaintCategory `json:"category"`
	Priority      domain.ComplaintPriority `json:"priority"`
	Status        domain.ComplaintStatus   `json:"status"`
	DateSubmitted time.Time                `json:"dateSubmitted"`
}

// NewComplaintResponse maps a domain complaint.
func NewComplaintResponse(complaint *domain.Complaint) ComplaintResponse {
	return ComplaintResponse{
		ID:            complaint.ID,
		UserID:        complaint.UserID,
		Title:         complaint.Title,
		Description:   complaint.Description,
		Category:      complaint.Category,
		Priority:      complaint.Priority,
		Status:        complaint.Status,
		DateSubmitted: complaint.DateSubmitted,
	}
}

// NewComplaintListResponse maps a slice of domain complaints.
func NewComplaintListResponse(complaints []domain.Complaint) []ComplaintResponse {
	result := make([]ComplaintResponse, 0, len(complaints))
	for i := range complaints {
		result = append(result, NewComplaintResponse(&complaints[i]))
	}
	return result
}
