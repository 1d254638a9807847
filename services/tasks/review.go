package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

const TypeTermsReview = "terms:review"

// ReviewPayload is a completed draft queued for review.
type ReviewPayload struct {
	ReviewID      string    `json:"reviewId"`
	OwnerID       string    `json:"ownerId"`
	Domain        string    `json:"domain"`
	StandardTerms string    `json:"standardTerms"`
	Clauses       []string  `json:"clauses"`
	RequestedAt   time.Time `json:"requestedAt"`
}

func NewTermsReviewTask(payload ReviewPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeTermsReview, b)
	opts := []asynq.Option{asynq.TaskID(payload.ReviewID), asynq.MaxRetry(5), asynq.Timeout(2 * time.Minute)}

	return task, opts, nil
}

// ParseTermsReviewTask decodes and checks a queued review.
func ParseTermsReviewTask(task *asynq.Task) (ReviewPayload, error) {
	var p ReviewPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return p, fmt.Errorf("invalid review payload: %w", err)
	}
	if p.ReviewID == "" || p.Domain == "" {
		return p, fmt.Errorf("review payload is missing id or domain")
	}
	return p, nil
}
