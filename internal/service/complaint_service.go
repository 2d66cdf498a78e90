package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/events"
	"github.com/spec-kit/complaint-service/internal/repository"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

// ComplaintService coordinates complaint workflows.
type ComplaintService struct {
	complaints repository.ComplaintRepository
	dispatcher events.Dispatcher
}

// NewComplaintService constructs the service.
func NewComplaintService(complaints repository.ComplaintRepository, dispatcher events.Dispatcher) *ComplaintService {
	return &ComplaintService{complaints: complaints, dispatcher: dispatcher}
}

// ComplaintCreateInput describes the complaint submission payload. Any
// status supplied by the caller is ignored; creation always starts at
// Pending.
type ComplaintCreateInput struct {
	Title       string
	Description string
	Category    domain.ComplaintCategory
	Priority    domain.ComplaintPriority
}

// Create validates and persists a new complaint owned by userID.
func (s *ComplaintService) Create(ctx context.Context, userID string, input ComplaintCreateInput) (*domain.Complaint, error) {
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)

	if title == "" || description == "" || input.Category == "" || input.Priority == "" {
		return nil, apperrors.NewValidationError("All fields are required", nil)
	}
	// Bounds count characters, matching the VARCHAR limits in the schema.
	if utf8.RuneCountInString(title) > domain.TitleMaxLen {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("Title cannot be more than %d characters", domain.TitleMaxLen), nil)
	}
	if utf8.RuneCountInString(description) > domain.DescriptionMaxLen {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("Description cannot be more than %d characters", domain.DescriptionMaxLen), nil)
	}
	if !domain.ValidCategory(input.Category) {
		return nil, apperrors.NewValidationError("Please provide a valid category", nil)
	}
	if !domain.ValidPriority(input.Priority) {
		return nil, apperrors.NewValidationError("Please provide a valid priority level", nil)
	}

	complaint := &domain.Complaint{
		UserID:        userID,
		Title:         title,
		Description:   description,
		Category:      input.Category,
		Priority:      input.Priority,
		Status:        domain.StatusPending,
		DateSubmitted: time.Now().UTC(),
	}
	if err := s.complaints.Create(ctx, complaint); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:    events.EventComplaintCreated,
		Payload: events.ComplaintCreatedPayload{Complaint: *complaint},
	})
	return complaint, nil
}

// ListAll returns complaints matching the filter conjunction, newest first.
// Admin-only at the gate; the store itself does not re-check.
func (s *ComplaintService) ListAll(ctx context.Context, filter repository.ComplaintFilter) ([]domain.Complaint, error) {
	return s.complaints.ListWithFilter(ctx, filter)
}

// ListOwnedBy returns one owner's complaints, newest first.
func (s *ComplaintService) ListOwnedBy(ctx context.Context, userID string) ([]domain.Complaint, error) {
	return s.complaints.ListByOwner(ctx, userID)
}

// UpdateStatus moves a complaint to newStatus. The old status is read
// once at the start; under concurrent updates the value carried into the
// notification can be stale, and the last write wins.
func (s *ComplaintService) UpdateStatus(ctx context.Context, id string, newStatus domain.ComplaintStatus) (*domain.Complaint, error) {
	if !domain.ValidStatus(newStatus) {
		return nil, apperrors.NewValidationError("Valid status is required", nil)
	}

	complaint, err := s.complaints.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Complaint not found")
		}
		return nil, err
	}

	oldStatus := complaint.Status
	if !domain.CanTransition(oldStatus, newStatus) {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("Cannot move complaint from %s to %s", oldStatus, newStatus), nil)
	}

	if err := s.complaints.UpdateStatus(ctx, id, newStatus); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Complaint not found")
		}
		return nil, err
	}
	complaint.Status = newStatus

	s.publish(ctx, events.Event{
		Type: events.EventComplaintStatusChanged,
		Payload: events.ComplaintStatusChangedPayload{
			Complaint: *complaint,
			OldStatus: oldStatus,
		},
	})
	return complaint, nil
}

// Delete removes a complaint by id.
func (s *ComplaintService) Delete(ctx context.Context, id string) error {
	if err := s.complaints.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("Complaint not found")
		}
		return err
	}
	return nil
}

func (s *ComplaintService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	_ = s.dispatcher.Publish(ctx, event)
}
