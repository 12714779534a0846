package tasks

import (
	"encoding/json"
	"time"

	"shiftdesk/models"

	"github.com/hibiken/asynq"
)

const TypeScheduleRegenerate = "schedule:regenerate"

// NewRegenerateTask builds a regeneration task. Failed regenerations are surfaced, not retried.
func NewRegenerateTask(payload models.RegeneratePayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeScheduleRegenerate, b)
	opts := []asynq.Option{asynq.MaxRetry(0), asynq.Timeout(2 * time.Minute)}

	return task, opts, nil
}

// ParseRegeneratePayload decodes a task produced by NewRegenerateTask.
func ParseRegeneratePayload(task *asynq.Task) (models.RegeneratePayload, error) {
	var p models.RegeneratePayload
	err := json.Unmarshal(task.Payload(), &p)
	return p, err
}
