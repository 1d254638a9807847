// Package clauses collects the user-authored clauses appended to a terms draft.
package clauses

import "strings"

// Collector holds an ordered list of clauses plus the text currently being typed.
// Duplicates are allowed; empty-after-trim clauses are never stored.
type Collector struct {
	clauses []string
	pending string
}

// New returns a collector seeded with existing clauses, skipping blank ones.
func New(existing ...string) *Collector {
	c := &Collector{}
	for _, text := range existing {
		c.Add(text)
	}
	return c
}

// SetPending replaces the input buffer.
func (c *Collector) SetPending(text string) {
	c.pending = text
}

func (c *Collector) Pending() string {
	return c.pending
}

// Add trims text and appends it. Blank input is ignored and reported as false.
// A successful add clears the input buffer.
func (c *Collector) Add(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}
	c.clauses = append(c.clauses, trimmed)
	c.pending = ""
	return true
}

// AddPending submits the input buffer.
func (c *Collector) AddPending() bool {
	return c.Add(c.pending)
}

// List returns a copy of the clauses in insertion order.
func (c *Collector) List() []string {
	out := make([]string, len(c.clauses))
	copy(out, c.clauses)
	return out
}

func (c *Collector) Len() int {
	return len(c.clauses)
}

// Finish returns the final clause list. The collector stays usable.
func (c *Collector) Finish() []string {
	return c.List()
}

// Reset drops every clause and the input buffer.
func (c *Collector) Reset() {
	c.clauses = nil
	c.pending = ""
}
