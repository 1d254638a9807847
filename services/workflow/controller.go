// Package workflow drives the multi-step terms authoring flow:
// domain selection, standard terms, custom clauses and review.
//
// Only business users may start a flow. The forward transitions out of the standard terms and
// custom clauses steps are not wired yet; they run only when the controller is built with
// WithStepAdvance(true).
package workflow

import (
	"strings"

	"termcompass/models"
	"termcompass/services/apperr"
	"termcompass/services/clauses"
	"termcompass/services/validation"
)

// Domain identifies the business domain a terms document is written for.
type Domain string

// Snapshot is an immutable view of the controller state handed to renderers.
type Snapshot struct {
	Step          Step     `json:"step"`
	Domain        Domain   `json:"domain,omitempty"`
	StandardTerms string   `json:"standardTerms,omitempty"`
	Clauses       []string `json:"clauses"`
	PendingClause string   `json:"pendingClause,omitempty"`
	ClausesDone   bool     `json:"clausesDone"`
}

// ReviewRequest is what the review collaborator receives once the draft is complete.
type ReviewRequest struct {
	Domain        Domain   `json:"domain"`
	StandardTerms string   `json:"standardTerms"`
	Clauses       []string `json:"clauses"`
}

// Option configures a Controller.
type Option func(*Controller)

// WithStepAdvance enables the standard terms → custom clauses → review transitions.
func WithStepAdvance(enabled bool) Option {
	return func(c *Controller) {
		c.advance = enabled
	}
}

type Controller struct {
	step          Step
	domain        Domain
	standardTerms string
	clauses       *clauses.Collector
	clausesDone   bool
	advance       bool
}

// Start opens a flow for a user of the given category. Anything but a business user is refused
// with apperr.ErrUnauthorized and no controller is created.
func Start(category models.UserCategory, opts ...Option) (*Controller, error) {
	if !category.IsBusiness() {
		return nil, apperr.Unauthorized("terms authoring is available to business users only")
	}
	c := &Controller{step: StepDomainSelection, clauses: clauses.New()}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Restore rebuilds a controller from a snapshot taken earlier in the same session.
func Restore(s Snapshot, opts ...Option) (*Controller, error) {
	if !s.Step.Valid() {
		return nil, apperr.Validation(apperr.FieldError{Field: "step", Message: "is invalid"})
	}
	if s.Step != StepDomainSelection && s.Domain == "" {
		return nil, apperr.Validation(apperr.FieldError{Field: "domain", Message: "is required past domain selection"})
	}
	c := &Controller{
		step:          s.Step,
		domain:        s.Domain,
		standardTerms: s.StandardTerms,
		clauses:       clauses.New(s.Clauses...),
		clausesDone:   s.ClausesDone,
	}
	c.clauses.SetPending(s.PendingClause)
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Controller) Step() Step {
	return c.step
}

func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		Step:          c.step,
		Domain:        c.domain,
		StandardTerms: c.standardTerms,
		Clauses:       c.clauses.List(),
		PendingClause: c.clauses.Pending(),
		ClausesDone:   c.clausesDone,
	}
}

func (c *Controller) expect(op string, step Step) error {
	if c.step != step {
		return apperr.OutOfTurn(op, c.step.String())
	}
	return nil
}

// SelectDomain stores the domain and moves on to the standard terms step.
func (c *Controller) SelectDomain(d Domain) (Snapshot, error) {
	if err := c.expect("selectDomain", StepDomainSelection); err != nil {
		return c.Snapshot(), err
	}
	d = Domain(strings.TrimSpace(string(d)))
	if d == "" {
		return c.Snapshot(), apperr.Validation(apperr.FieldError{Field: "domain", Message: "is required"})
	}
	c.domain = d
	c.step = StepStandardTerms
	return c.Snapshot(), nil
}

// SubmitStandardTerms stores the standard terms text. The step only advances when step advance is
// enabled.
func (c *Controller) SubmitStandardTerms(text string) (Snapshot, error) {
	if err := c.expect("submitStandardTerms", StepStandardTerms); err != nil {
		return c.Snapshot(), err
	}
	if !validation.NonEmptyTrimmed(text) {
		return c.Snapshot(), apperr.Validation(apperr.FieldError{Field: "standardTerms", Message: "is required"})
	}
	c.standardTerms = text
	if c.advance {
		c.step = StepCustomClauses
	}
	return c.Snapshot(), nil
}

// SetPendingClause records the clause text being typed.
func (c *Controller) SetPendingClause(text string) (Snapshot, error) {
	if err := c.expect("setPendingClause", StepCustomClauses); err != nil {
		return c.Snapshot(), err
	}
	c.clauses.SetPending(text)
	return c.Snapshot(), nil
}

// AddClause appends a clause. Blank text leaves the state unchanged without an error.
func (c *Controller) AddClause(text string) (Snapshot, error) {
	if err := c.expect("addClause", StepCustomClauses); err != nil {
		return c.Snapshot(), err
	}
	if c.clauses.Add(text) {
		c.clausesDone = false
	}
	return c.Snapshot(), nil
}

// AddPendingClause commits the clause text being typed. An empty buffer leaves the state unchanged.
func (c *Controller) AddPendingClause() (Snapshot, error) {
	if err := c.expect("addClause", StepCustomClauses); err != nil {
		return c.Snapshot(), err
	}
	if c.clauses.AddPending() {
		c.clausesDone = false
	}
	return c.Snapshot(), nil
}

// FinishClauses marks clause collection complete and, with step advance enabled, opens the review.
func (c *Controller) FinishClauses() (Snapshot, error) {
	if err := c.expect("finishClauses", StepCustomClauses); err != nil {
		return c.Snapshot(), err
	}
	c.clausesDone = true
	if c.advance {
		c.step = StepReview
	}
	return c.Snapshot(), nil
}

// Review returns the completed draft for the review collaborator.
func (c *Controller) Review() (ReviewRequest, error) {
	if err := c.expect("review", StepReview); err != nil {
		return ReviewRequest{}, err
	}
	return ReviewRequest{
		Domain:        c.domain,
		StandardTerms: c.standardTerms,
		Clauses:       c.clauses.Finish(),
	}, nil
}

// GoBack returns to the previous step and discards the input owned by the step being left.
func (c *Controller) GoBack() (Snapshot, error) {
	switch c.step {
	case StepStandardTerms:
		c.domain = ""
		c.standardTerms = ""
		c.step = StepDomainSelection
	case StepCustomClauses:
		c.clauses.Reset()
		c.clausesDone = false
		c.step = StepStandardTerms
	case StepReview:
		c.clausesDone = false
		c.step = StepCustomClauses
	default:
		return c.Snapshot(), apperr.OutOfTurn("goBack", c.step.String())
	}
	return c.Snapshot(), nil
}
