package cron

import (
	"context"
	"fmt"

	"termcompass/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// NewReviewWorker builds the asynq server and mux that consume queued reviews.
func NewReviewWorker(redisOpt asynq.RedisClientOpt, logger *zap.Logger) (*asynq.Server, *asynq.ServeMux) {
	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
			Logger: logger.Sugar(),
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeTermsReview, handleReviewTask(logger))
	return srv, mux
}

// StartReviewWorker runs the worker in the background until ctx is done.
func StartReviewWorker(ctx context.Context, redisOpt asynq.RedisClientOpt, logger *zap.Logger) error {
	srv, mux := NewReviewWorker(redisOpt, logger)
	if err := srv.Start(mux); err != nil {
		return fmt.Errorf("failed to start review worker: %w", err)
	}
	logger.Info("[ReviewWorker] started")
	go func() {
		<-ctx.Done()
		srv.Shutdown()
		logger.Info("[ReviewWorker] stopped")
	}()
	return nil
}

func handleReviewTask(logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		p, err := tasks.ParseTermsReviewTask(task)
		if err != nil {
			logger.Warn("[ReviewHandler] dropping invalid review task", zap.Error(err))
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}

		logger.Info("[ReviewHandler] review received",
			zap.String("reviewID", p.ReviewID),
			zap.String("ownerID", p.OwnerID),
			zap.String("domain", p.Domain),
			zap.Int("standardTermsLength", len(p.StandardTerms)),
			zap.Int("clauses", len(p.Clauses)),
		)
		return nil
	}
}
