package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/complaint-service/internal/config"
	"github.com/spec-kit/complaint-service/internal/events"
	"github.com/spec-kit/complaint-service/internal/mailer"
	"github.com/spec-kit/complaint-service/internal/queue"
)

// NotificationService turns domain events into queued email jobs. Every
// step is best-effort: an enqueue failure is logged and discarded, never
// surfaced to the request that produced the event.
type NotificationService struct {
	dispatcher events.Dispatcher
	jobs       queue.Queue
	logger     *zap.Logger
	cfg        config.MailConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, jobs queue.Queue, logger *zap.Logger, cfg config.MailConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		jobs:       jobs,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventUserRegistered, n.handleUserRegistered)
	n.dispatcher.Subscribe(events.EventComplaintCreated, n.handleComplaintCreated)
	n.dispatcher.Subscribe(events.EventComplaintStatusChanged, n.handleComplaintStatusChanged)
}

func (n *NotificationService) handleUserRegistered(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.UserRegisteredPayload)
	if !ok {
		return nil
	}
	n.enqueue(ctx, mailer.WelcomeEmail(payload.Email, payload.Name))
	return nil
}

func (n *NotificationService) handleComplaintCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ComplaintCreatedPayload)
	if !ok {
		return nil
	}
	n.enqueue(ctx, mailer.NewComplaintEmail(payload.Complaint, n.cfg.AdminEmail))
	return nil
}

func (n *NotificationService) handleComplaintStatusChanged(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ComplaintStatusChangedPayload)
	if !ok {
		return nil
	}
	n.enqueue(ctx, mailer.StatusUpdateEmail(payload.Complaint, n.cfg.AdminEmail, payload.OldStatus))
	return nil
}

func (n *NotificationService) enqueue(ctx context.Context, msg mailer.Message) {
	if n.jobs == nil {
		return
	}
	job := queue.Job{ID: uuid.NewString(), Message: msg}
	if err := n.jobs.Enqueue(ctx, job); err != nil {
		n.logger.Error("failed to enqueue notification",
			zap.String("job_id", job.ID),
			zap.String("subject", msg.Subject),
			zap.Error(err),
		)
	}
}
