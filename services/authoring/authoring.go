package authoring

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sessionRepo "termcompass/database/repository/session"
	"termcompass/services/apperr"
	"termcompass/services/workflow"
	"termcompass/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *DefaultAuthoringService) options() []workflow.Option {
	return []workflow.Option{workflow.WithStepAdvance(s.StepAdvance)}
}

func (s *DefaultAuthoringService) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return utils.DefaultSessionTTL
}

// Start opens a workflow for a business user.
func (s *DefaultAuthoringService) Start(ctx context.Context, owner Owner) (string, workflow.Snapshot, error) {
	c, err := workflow.Start(owner.Category, s.options()...)
	utils.RecordEvent(sessionRepo.KindTerms, "start", err)
	if err != nil {
		s.Logger.Info("Authoring start refused", zap.String("accountID", owner.AccountID), zap.String("category", string(owner.Category)))
		return "", workflow.Snapshot{}, err
	}

	id := uuid.New().String()
	rec := termsSession{OwnerID: owner.AccountID, Snapshot: c.Snapshot()}
	if err := s.Sessions.Save(ctx, sessionRepo.KindTerms, id, rec, s.ttl()); err != nil {
		return "", workflow.Snapshot{}, fmt.Errorf("failed to store authoring session: %w", err)
	}
	s.Logger.Info("Authoring session started", zap.String("sessionID", id), zap.String("accountID", owner.AccountID))
	return id, rec.Snapshot, nil
}

func (s *DefaultAuthoringService) load(ctx context.Context, owner Owner, id string) (termsSession, error) {
	var rec termsSession
	if err := s.Sessions.Load(ctx, sessionRepo.KindTerms, id, &rec); err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return rec, apperr.NotFound("authoring session not found or expired")
		}
		return rec, err
	}
	// Another user's session is reported as missing.
	if rec.OwnerID != owner.AccountID {
		return termsSession{}, apperr.NotFound("authoring session not found or expired")
	}
	return rec, nil
}

// apply runs one event against the session under its lock. A failed event leaves the stored
// session untouched.
func (s *DefaultAuthoringService) apply(ctx context.Context, owner Owner, id, op string, event func(*workflow.Controller) (workflow.Snapshot, error)) (workflow.Snapshot, error) {
	unlock, err := s.Locks.Lock(ctx, id)
	if err != nil {
		return workflow.Snapshot{}, err
	}
	defer unlock()

	rec, err := s.load(ctx, owner, id)
	if err != nil {
		return workflow.Snapshot{}, err
	}
	c, err := workflow.Restore(rec.Snapshot, s.options()...)
	if err != nil {
		return workflow.Snapshot{}, fmt.Errorf("stored authoring session %s is corrupt: %w", id, err)
	}

	snap, err := event(c)
	utils.RecordEvent(sessionRepo.KindTerms, op, err)
	if err != nil {
		s.Logger.Debug("Authoring event rejected", zap.String("sessionID", id), zap.String("op", op), zap.Error(err))
		return snap, err
	}

	rec.Snapshot = snap
	if err := s.Sessions.Save(ctx, sessionRepo.KindTerms, id, rec, s.ttl()); err != nil {
		return workflow.Snapshot{}, fmt.Errorf("failed to store authoring session: %w", err)
	}
	return snap, nil
}

func (s *DefaultAuthoringService) Get(ctx context.Context, owner Owner, id string) (workflow.Snapshot, error) {
	rec, err := s.load(ctx, owner, id)
	if err != nil {
		return workflow.Snapshot{}, err
	}
	return rec.Snapshot, nil
}

// SelectDomain accepts catalog domains only and stores the catalog spelling.
func (s *DefaultAuthoringService) SelectDomain(ctx context.Context, owner Owner, id, domain string) (workflow.Snapshot, error) {
	return s.apply(ctx, owner, id, "selectDomain", func(c *workflow.Controller) (workflow.Snapshot, error) {
		if c.Step() == workflow.StepDomainSelection && s.Catalog != nil && strings.TrimSpace(domain) != "" {
			d, ok := s.Catalog.Domain(domain)
			if !ok {
				return c.Snapshot(), apperr.Validation(apperr.FieldError{Field: "domain", Message: "is not a known domain"})
			}
			domain = d.Name
		}
		return c.SelectDomain(workflow.Domain(domain))
	})
}

func (s *DefaultAuthoringService) SubmitStandardTerms(ctx context.Context, owner Owner, id, text string) (workflow.Snapshot, error) {
	return s.apply(ctx, owner, id, "submitStandardTerms", func(c *workflow.Controller) (workflow.Snapshot, error) {
		return c.SubmitStandardTerms(text)
	})
}

func (s *DefaultAuthoringService) SetPendingClause(ctx context.Context, owner Owner, id, text string) (workflow.Snapshot, error) {
	return s.apply(ctx, owner, id, "setPendingClause", func(c *workflow.Controller) (workflow.Snapshot, error) {
		return c.SetPendingClause(text)
	})
}

func (s *DefaultAuthoringService) AddClause(ctx context.Context, owner Owner, id, text string) (workflow.Snapshot, error) {
	return s.apply(ctx, owner, id, "addClause", func(c *workflow.Controller) (workflow.Snapshot, error) {
		// Without text the clause being typed is committed.
		if strings.TrimSpace(text) == "" {
			return c.AddPendingClause()
		}
		return c.AddClause(text)
	})
}

func (s *DefaultAuthoringService) FinishClauses(ctx context.Context, owner Owner, id string) (workflow.Snapshot, error) {
	return s.apply(ctx, owner, id, "finishClauses", func(c *workflow.Controller) (workflow.Snapshot, error) {
		return c.FinishClauses()
	})
}

func (s *DefaultAuthoringService) GoBack(ctx context.Context, owner Owner, id string) (workflow.Snapshot, error) {
	return s.apply(ctx, owner, id, "goBack", func(c *workflow.Controller) (workflow.Snapshot, error) {
		return c.GoBack()
	})
}

func (s *DefaultAuthoringService) RequestReview(ctx context.Context, owner Owner, id string) (string, error) {
	unlock, err := s.Locks.Lock(ctx, id)
	if err != nil {
		return "", err
	}
	defer unlock()

	rec, err := s.load(ctx, owner, id)
	if err != nil {
		return "", err
	}
	c, err := workflow.Restore(rec.Snapshot, s.options()...)
	if err != nil {
		return "", fmt.Errorf("stored authoring session %s is corrupt: %w", id, err)
	}

	req, err := c.Review()
	utils.RecordEvent(sessionRepo.KindTerms, "review", err)
	if err != nil {
		return "", err
	}
	reviewID, err := s.Review.Submit(ctx, owner.AccountID, req)
	if err != nil {
		return "", err
	}

	rec.ReviewID = reviewID
	if err := s.Sessions.Save(ctx, sessionRepo.KindTerms, id, rec, s.ttl()); err != nil {
		return "", fmt.Errorf("failed to store authoring session: %w", err)
	}
	s.Logger.Info("Draft sent for review", zap.String("sessionID", id), zap.String("reviewID", reviewID))
	return reviewID, nil
}

func (s *DefaultAuthoringService) Close(ctx context.Context, owner Owner, id string) error {
	unlock, err := s.Locks.Lock(ctx, id)
	if err != nil {
		return err
	}
	defer unlock()

	if _, err := s.load(ctx, owner, id); err != nil {
		return err
	}
	return s.Sessions.Delete(ctx, sessionRepo.KindTerms, id)
}
