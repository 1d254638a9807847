package workflow

import (
	"encoding/json"
	"errors"
	"testing"

	"termcompass/models"
	"termcompass/services/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startBusiness(t *testing.T, opts ...Option) *Controller {
	t.Helper()
	c, err := Start(models.CategoryBusiness, opts...)
	require.NoError(t, err)
	return c
}

func TestStartRefusesNonBusinessCategories(t *testing.T) {
	for _, cat := range []models.UserCategory{models.CategoryIndividual, "", "admin"} {
		c, err := Start(cat)
		assert.Nil(t, c, "category %q", cat)
		assert.True(t, errors.Is(err, apperr.ErrUnauthorized), "category %q", cat)
	}
}

func TestStartBeginsAtDomainSelection(t *testing.T) {
	c := startBusiness(t)
	snap := c.Snapshot()
	assert.Equal(t, StepDomainSelection, snap.Step)
	assert.Empty(t, snap.Domain)
	assert.Empty(t, snap.Clauses)
}

func TestSelectDomainAdvancesToStandardTerms(t *testing.T) {
	for _, d := range []Domain{"Employment", "E-commerce", "SaaS"} {
		c := startBusiness(t)
		snap, err := c.SelectDomain(d)
		require.NoError(t, err)
		assert.Equal(t, StepStandardTerms, snap.Step)
		assert.Equal(t, d, snap.Domain)
	}
}

func TestSelectDomainRequiresValue(t *testing.T) {
	c := startBusiness(t)
	snap, err := c.SelectDomain("  ")
	assert.True(t, errors.Is(err, apperr.ErrValidation))
	assert.Equal(t, StepDomainSelection, snap.Step)
}

func TestSelectDomainOutOfTurnLeavesStateUnchanged(t *testing.T) {
	c := startBusiness(t)
	_, err := c.SelectDomain("Employment")
	require.NoError(t, err)

	snap, err := c.SelectDomain("Finance")
	assert.True(t, errors.Is(err, apperr.ErrOutOfTurn))
	assert.Equal(t, StepStandardTerms, snap.Step)
	assert.Equal(t, Domain("Employment"), snap.Domain)
}

func TestGoBackFromStandardTermsClearsDomain(t *testing.T) {
	c := startBusiness(t)
	_, err := c.SelectDomain("Employment")
	require.NoError(t, err)
	_, err = c.SubmitStandardTerms("Standard text")
	require.NoError(t, err)

	snap, err := c.GoBack()
	require.NoError(t, err)
	assert.Equal(t, StepDomainSelection, snap.Step)
	assert.Empty(t, snap.Domain)
	assert.Empty(t, snap.StandardTerms)
}

func TestGoBackAtDomainSelectionIsOutOfTurn(t *testing.T) {
	c := startBusiness(t)
	_, err := c.GoBack()
	assert.True(t, errors.Is(err, apperr.ErrOutOfTurn))
}

func TestSubmitStandardTermsStaysOnStepWhenAdvanceDisabled(t *testing.T) {
	c := startBusiness(t)
	_, err := c.SelectDomain("Employment")
	require.NoError(t, err)

	snap, err := c.SubmitStandardTerms("Standard text")
	require.NoError(t, err)
	assert.Equal(t, StepStandardTerms, snap.Step)
	assert.Equal(t, "Standard text", snap.StandardTerms)
}

func TestSubmitStandardTermsRejectsBlankText(t *testing.T) {
	c := startBusiness(t)
	_, err := c.SelectDomain("Employment")
	require.NoError(t, err)

	_, err = c.SubmitStandardTerms("   ")
	require.Error(t, err)
	assert.Equal(t, apperr.CodeValidation, apperr.CodeOf(err))
	assert.Equal(t, "standardTerms", apperr.FieldsOf(err)[0].Field)
}

func TestClauseOperationsAreOutOfTurnBeforeCustomClauses(t *testing.T) {
	c := startBusiness(t)
	_, err := c.AddClause("Clause A")
	assert.True(t, errors.Is(err, apperr.ErrOutOfTurn))
	_, err = c.AddPendingClause()
	assert.True(t, errors.Is(err, apperr.ErrOutOfTurn))
	_, err = c.FinishClauses()
	assert.True(t, errors.Is(err, apperr.ErrOutOfTurn))
	_, err = c.Review()
	assert.True(t, errors.Is(err, apperr.ErrOutOfTurn))
}

func TestFullFlowWithStepAdvance(t *testing.T) {
	c := startBusiness(t, WithStepAdvance(true))

	_, err := c.SelectDomain("Employment")
	require.NoError(t, err)
	snap, err := c.SubmitStandardTerms("Standard text")
	require.NoError(t, err)
	assert.Equal(t, StepCustomClauses, snap.Step)

	_, err = c.AddClause("")
	require.NoError(t, err)
	_, err = c.AddClause("   ")
	require.NoError(t, err)
	_, err = c.AddClause("Clause A")
	require.NoError(t, err)
	snap, err = c.AddPendingClause()
	require.NoError(t, err)
	assert.Equal(t, []string{"Clause A"}, snap.Clauses, "empty buffer adds nothing")
	_, err = c.SetPendingClause("  Clause B ")
	require.NoError(t, err)
	snap, err = c.AddPendingClause()
	require.NoError(t, err)
	assert.Equal(t, []string{"Clause A", "Clause B"}, snap.Clauses)
	assert.Empty(t, snap.PendingClause)

	snap, err = c.FinishClauses()
	require.NoError(t, err)
	assert.Equal(t, StepReview, snap.Step)
	assert.True(t, snap.ClausesDone)

	req, err := c.Review()
	require.NoError(t, err)
	assert.Equal(t, ReviewRequest{Domain: "Employment", StandardTerms: "Standard text", Clauses: []string{"Clause A", "Clause B"}}, req)
}

func TestFinishClausesWithoutAdvanceStaysOnStep(t *testing.T) {
	c, err := Restore(Snapshot{Step: StepCustomClauses, Domain: "Employment", StandardTerms: "x"})
	require.NoError(t, err)

	snap, err := c.FinishClauses()
	require.NoError(t, err)
	assert.Equal(t, StepCustomClauses, snap.Step)
	assert.True(t, snap.ClausesDone)
}

func TestGoBackDiscardsOwnedInputAtEachStep(t *testing.T) {
	c, err := Restore(Snapshot{
		Step:          StepReview,
		Domain:        "Employment",
		StandardTerms: "Standard text",
		Clauses:       []string{"Clause A"},
		ClausesDone:   true,
	})
	require.NoError(t, err)

	snap, err := c.GoBack()
	require.NoError(t, err)
	assert.Equal(t, StepCustomClauses, snap.Step)
	assert.False(t, snap.ClausesDone)
	assert.Equal(t, []string{"Clause A"}, snap.Clauses)

	snap, err = c.GoBack()
	require.NoError(t, err)
	assert.Equal(t, StepStandardTerms, snap.Step)
	assert.Empty(t, snap.Clauses)
	assert.Equal(t, "Standard text", snap.StandardTerms)

	snap, err = c.GoBack()
	require.NoError(t, err)
	assert.Equal(t, StepDomainSelection, snap.Step)
	assert.Empty(t, snap.Domain)
}

func TestSnapshotsAreIndependent(t *testing.T) {
	c, err := Restore(Snapshot{Step: StepCustomClauses, Domain: "Employment"})
	require.NoError(t, err)
	before, err := c.AddClause("Clause A")
	require.NoError(t, err)
	before.Clauses[0] = "mutated"

	after, err := c.AddClause("Clause B")
	require.NoError(t, err)
	assert.Equal(t, []string{"Clause A", "Clause B"}, after.Clauses)
}

func TestRestoreRejectsInconsistentSnapshots(t *testing.T) {
	_, err := Restore(Snapshot{Step: Step(9)})
	assert.True(t, errors.Is(err, apperr.ErrValidation))
	_, err = Restore(Snapshot{Step: StepStandardTerms})
	assert.True(t, errors.Is(err, apperr.ErrValidation))
}

func TestSnapshotJSONUsesStepNames(t *testing.T) {
	c := startBusiness(t)
	_, err := c.SelectDomain("Employment")
	require.NoError(t, err)

	b, err := json.Marshal(c.Snapshot())
	require.NoError(t, err)
	assert.JSONEq(t, `{"step":"standardTerms","domain":"Employment","clauses":[],"clausesDone":false}`, string(b))

	var decoded Snapshot
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, c.Snapshot(), decoded)
}

// Business user picks a domain and submits standard terms; the forward transition is not wired,
// so the flow stays on the standard terms step with the text stored.
func TestScenarioStandardTermsSubmitIsNotWired(t *testing.T) {
	c := startBusiness(t)
	_, err := c.SelectDomain("Employment")
	require.NoError(t, err)
	snap, err := c.SubmitStandardTerms("Standard text")
	require.NoError(t, err)

	assert.Equal(t, StepStandardTerms, snap.Step)
	assert.Equal(t, "Standard text", snap.StandardTerms)
}
