package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/complaint-service/internal/mailer"
	"github.com/spec-kit/complaint-service/internal/queue"
)

// NotificationWorker drains the notification queue and sends email.
// Delivery failures are logged and dropped; nothing retries and nothing
// blocks the request that queued the job.
type NotificationWorker struct {
	jobs   queue.Queue
	mail   mailer.Mailer
	logger *zap.Logger
}

// NewNotificationWorker constructs the worker.
func NewNotificationWorker(jobs queue.Queue, mail mailer.Mailer, logger *zap.Logger) *NotificationWorker {
	return &NotificationWorker{jobs: jobs, mail: mail, logger: logger}
}

// Run consumes jobs until ctx is cancelled.
func (w *NotificationWorker) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		job, err := w.jobs.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			w.logger.Warn("notification dequeue failed", zap.Error(err))
			continue
		}
		if job == nil {
			continue
		}
		w.process(ctx, job)
	}
}

func (w *NotificationWorker) process(ctx context.Context, job *queue.Job) {
	if err := w.mail.Send(ctx, job.Message); err != nil {
		w.logger.Error("failed to send notification email",
			zap.String("job_id", job.ID),
			zap.String("to", job.Message.To),
			zap.String("subject", job.Message.Subject),
			zap.Error(err),
		)
		return
	}
	w.logger.Info("notification email sent",
		zap.String("job_id", job.ID),
		zap.String("subject", job.Message.Subject),
	)
}
