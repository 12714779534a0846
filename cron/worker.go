package cron

import (
	"context"
	"fmt"
	"time"

	"shiftdesk/config"
	"shiftdesk/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Regenerator runs one regeneration request; an empty date means every tracked date.
type Regenerator interface {
	Regenerate(ctx context.Context, date string) error
}

// RedisOpt returns the asynq connection for the regeneration queue.
func RedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// InitRegenerationWorker runs the regeneration worker in background.
func InitRegenerationWorker(regen Regenerator, logger *zap.Logger) *asynq.Server {
	srv := asynq.NewServer(
		RedisOpt(),
		asynq.Config{
			// One at a time keeps regenerations in enqueue order.
			Concurrency: 1,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeScheduleRegenerate, handleRegenerateTask(regen, logger))

	go func() {
		logger.Info("[RegenerationWorker] starting async worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				logger.Warn("[RegenerationWorker] failed to start worker",
					zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))

				if attempts == maxAttempts {
					logger.Error("[RegenerationWorker] max retry attempts reached; queued regeneration disabled")
					return
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
	return srv
}

func handleRegenerateTask(regen Regenerator, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		p, err := tasks.ParseRegeneratePayload(task)
		if err != nil {
			logger.Error("[RegenerationHandler] invalid payload", zap.Error(err))
			return fmt.Errorf("invalid payload: %v: %w", err, asynq.SkipRetry)
		}

		logger.Info("[RegenerationHandler] regenerating", zap.String("reason", p.Reason), zap.String("date", p.Date))
		if err := regen.Regenerate(ctx, p.Date); err != nil {
			logger.Warn("[RegenerationHandler] regeneration failed", zap.String("date", p.Date), zap.Error(err))
			return fmt.Errorf("regenerate %q: %v: %w", p.Date, err, asynq.SkipRetry)
		}
		return nil
	}
}
