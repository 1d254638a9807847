package review

import (
	"context"
	"fmt"
	"time"

	"termcompass/services/tasks"
	"termcompass/services/workflow"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *DefaultReviewService) Submit(ctx context.Context, ownerID string, req workflow.ReviewRequest) (string, error) {
	payload := tasks.ReviewPayload{
		ReviewID:      uuid.New().String(),
		OwnerID:       ownerID,
		Domain:        string(req.Domain),
		StandardTerms: req.StandardTerms,
		Clauses:       req.Clauses,
		RequestedAt:   time.Now().UTC(),
	}
	logger := s.Logger.With(zap.String("reviewID", payload.ReviewID), zap.String("domain", payload.Domain))

	if s.Queue == nil {
		logger.Info("Review queue disabled, review recorded in log only", zap.Int("clauses", len(payload.Clauses)))
		return payload.ReviewID, nil
	}

	task, opts, err := tasks.NewTermsReviewTask(payload)
	if err != nil {
		return "", fmt.Errorf("failed to build review task: %w", err)
	}
	info, err := s.Queue.EnqueueContext(ctx, task, opts...)
	if err != nil {
		logger.Error("Failed to enqueue review", zap.Error(err))
		return "", fmt.Errorf("failed to enqueue review: %w", err)
	}
	logger.Info("Review enqueued", zap.String("queue", info.Queue))
	return payload.ReviewID, nil
}
