package clauses

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddIgnoresBlankInput(t *testing.T) {
	c := New()
	assert.False(t, c.Add(""))
	assert.False(t, c.Add("   "))
	assert.Empty(t, c.List())
}

func TestAddKeepsInsertionOrder(t *testing.T) {
	c := New()
	assert.True(t, c.Add("Clause A"))
	assert.True(t, c.Add("Clause B"))
	assert.Equal(t, []string{"Clause A", "Clause B"}, c.List())
}

func TestAddTrimsAndAllowsDuplicates(t *testing.T) {
	c := New()
	c.Add("  Clause A ")
	c.Add("Clause A")
	assert.Equal(t, []string{"Clause A", "Clause A"}, c.List())
}

func TestPendingBufferClearedOnlyOnSuccessfulAdd(t *testing.T) {
	c := New()
	c.SetPending("   ")
	assert.False(t, c.AddPending())
	assert.Equal(t, "   ", c.Pending())

	c.SetPending("Refunds within 7 days")
	assert.True(t, c.AddPending())
	assert.Equal(t, "", c.Pending())
	assert.Equal(t, []string{"Refunds within 7 days"}, c.List())
}

func TestListIsACopy(t *testing.T) {
	c := New("Clause A")
	got := c.List()
	got[0] = "mutated"
	assert.Equal(t, []string{"Clause A"}, c.List())
}

func TestNewSkipsBlankSeeds(t *testing.T) {
	c := New("a", " ", "b")
	assert.Equal(t, 2, c.Len())
}

func TestReset(t *testing.T) {
	c := New("a")
	c.SetPending("b")
	c.Reset()
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, "", c.Pending())
}
