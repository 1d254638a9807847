package review

import (
	"context"

	"termcompass/services/workflow"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// ReviewService is the review collaborator a completed draft is handed to.
type ReviewService interface {
	// Submit queues req on behalf of ownerID and returns the review id.
	Submit(ctx context.Context, ownerID string, req workflow.ReviewRequest) (string, error)
}

// Enqueuer is the part of *asynq.Client the service uses.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// DefaultReviewService queues reviews on asynq. With a nil Queue reviews are only logged.
type DefaultReviewService struct {
	Queue  Enqueuer
	Logger *zap.Logger
}

func NewDefaultReviewService(queue Enqueuer, logger *zap.Logger) *DefaultReviewService {
	return &DefaultReviewService{Queue: queue, Logger: logger}
}
