package authoring

import (
	"context"
	"time"

	sessionRepo "termcompass/database/repository/session"
	"termcompass/models"
	"termcompass/services/catalog"
	"termcompass/services/review"
	"termcompass/services/workflow"
	"termcompass/utils"

	"go.uber.org/zap"
)

// Owner is the signed-in user driving a session. An empty AccountID is an anonymous visitor.
type Owner struct {
	AccountID string
	Category  models.UserCategory
}

// AuthoringService hosts terms authoring workflows, one per session.
type AuthoringService interface {
	Start(ctx context.Context, owner Owner) (string, workflow.Snapshot, error)
	Get(ctx context.Context, owner Owner, sessionID string) (workflow.Snapshot, error)
	SelectDomain(ctx context.Context, owner Owner, sessionID, domain string) (workflow.Snapshot, error)
	SubmitStandardTerms(ctx context.Context, owner Owner, sessionID, text string) (workflow.Snapshot, error)
	SetPendingClause(ctx context.Context, owner Owner, sessionID, text string) (workflow.Snapshot, error)
	AddClause(ctx context.Context, owner Owner, sessionID, text string) (workflow.Snapshot, error)
	FinishClauses(ctx context.Context, owner Owner, sessionID string) (workflow.Snapshot, error)
	GoBack(ctx context.Context, owner Owner, sessionID string) (workflow.Snapshot, error)
	// RequestReview hands the finished draft to the review collaborator and returns the review id.
	RequestReview(ctx context.Context, owner Owner, sessionID string) (string, error)
	Close(ctx context.Context, owner Owner, sessionID string) error
}

// DefaultAuthoringService is the production implementation.
type DefaultAuthoringService struct {
	Sessions    sessionRepo.SessionRepository
	Catalog     *catalog.Catalog
	Review      review.ReviewService
	Locks       utils.Locker
	TTL         time.Duration
	StepAdvance bool
	Logger      *zap.Logger
}

// termsSession is the parked form of a workflow.
type termsSession struct {
	OwnerID  string            `json:"ownerId"`
	Snapshot workflow.Snapshot `json:"snapshot"`
	ReviewID string            `json:"reviewId,omitempty"`
}
