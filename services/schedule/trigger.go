package schedule

import (
	"context"

	"shiftdesk/models"
	"shiftdesk/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Enqueuer is the part of *asynq.Client the queue trigger needs.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// QueueTrigger turns store notifications into queued regeneration tasks instead of
// regenerating in line with the mutation.
type QueueTrigger struct {
	client Enqueuer
	logger *zap.Logger
}

func NewQueueTrigger(client Enqueuer, logger *zap.Logger) *QueueTrigger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QueueTrigger{client: client, logger: logger}
}

func (q *QueueTrigger) RosterChanged(ctx context.Context) {
	q.enqueue(ctx, models.RegeneratePayload{Reason: "roster"})
}

func (q *QueueTrigger) DemandChanged(ctx context.Context, date string) {
	q.enqueue(ctx, models.RegeneratePayload{Reason: "demand", Date: date})
}

func (q *QueueTrigger) SettingsChanged(ctx context.Context) {
	q.enqueue(ctx, models.RegeneratePayload{Reason: "settings"})
}

func (q *QueueTrigger) enqueue(ctx context.Context, payload models.RegeneratePayload) {
	task, opts, err := tasks.NewRegenerateTask(payload)
	if err != nil {
		q.logger.Error("build regeneration task", zap.Error(err))
		return
	}
	info, err := q.client.EnqueueContext(ctx, task, opts...)
	if err != nil {
		q.logger.Warn("enqueue regeneration failed",
			zap.String("reason", payload.Reason),
			zap.String("date", payload.Date),
			zap.Error(err),
		)
		return
	}
	q.logger.Debug("regeneration queued", zap.String("taskId", info.ID), zap.String("reason", payload.Reason))
}
