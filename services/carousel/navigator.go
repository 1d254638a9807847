// Package carousel pages a window of items across a catalog with wraparound.
//
// Positions live on a virtual track three catalogs long, the layout the front end scrolls
// through, but nothing is duplicated: the item shown at any track position is its index modulo
// the catalog size.
package carousel

import (
	"fmt"
	"strings"
)

const (
	DefaultSlidesToShow = 3
	DefaultOverlap      = 4
	trackRepeats        = 3
)

// Config fixes the geometry of a carousel.
type Config struct {
	CatalogSize  int `json:"catalogSize"`
	SlidesToShow int `json:"slidesToShow"`
	// Overlap trims the end of the track so the last window still renders a full set of items.
	Overlap int `json:"overlap"`
}

func (c Config) withDefaults() Config {
	if c.SlidesToShow == 0 {
		c.SlidesToShow = DefaultSlidesToShow
	}
	if c.Overlap == 0 {
		c.Overlap = DefaultOverlap
	}
	return c
}

// WrapBoundary is the first track position that is never reached.
func (c Config) WrapBoundary() int {
	return c.CatalogSize*trackRepeats - c.Overlap
}

func (c Config) validate() error {
	if c.CatalogSize <= 0 {
		return fmt.Errorf("carousel: catalog size must be positive, got %d", c.CatalogSize)
	}
	if c.SlidesToShow <= 0 {
		return fmt.Errorf("carousel: slides to show must be positive, got %d", c.SlidesToShow)
	}
	// Below one window of overlap, a retreat from 0 would land past 3N-SlidesToShow.
	if c.Overlap < c.SlidesToShow {
		return fmt.Errorf("carousel: overlap %d must be at least slides to show %d", c.Overlap, c.SlidesToShow)
	}
	if c.WrapBoundary() <= 0 {
		return fmt.Errorf("carousel: catalog of %d items is too small for overlap %d", c.CatalogSize, c.Overlap)
	}
	return nil
}

// Direction is the direction of a recognised swipe gesture.
type Direction string

const (
	SwipeLeft  Direction = "left"
	SwipeRight Direction = "right"
)

func ParseDirection(s string) (Direction, error) {
	switch d := Direction(strings.ToLower(strings.TrimSpace(s))); d {
	case SwipeLeft, SwipeRight:
		return d, nil
	}
	return "", fmt.Errorf("carousel: unknown swipe direction %q", s)
}

// Snapshot is the render state of a navigator.
type Snapshot struct {
	Position      int     `json:"position"`
	SlidesToShow  int     `json:"slidesToShow"`
	CatalogSize   int     `json:"catalogSize"`
	Window        []int   `json:"window"`
	OffsetPercent float64 `json:"offsetPercent"`
}

// Navigator holds the current track position. Every position is a multiple of SlidesToShow in
// [0, WrapBoundary), which lies within [0, 3N-SlidesToShow).
type Navigator struct {
	cfg      Config
	position int
}

// New returns a navigator at position 0. Zero SlidesToShow and Overlap take the defaults.
func New(cfg Config) (*Navigator, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Navigator{cfg: cfg}, nil
}

// Restore returns a navigator at a previously reported position.
func Restore(cfg Config, position int) (*Navigator, error) {
	n, err := New(cfg)
	if err != nil {
		return nil, err
	}
	if position < 0 || position >= n.cfg.WrapBoundary() || position%n.cfg.SlidesToShow != 0 {
		return nil, fmt.Errorf("carousel: position %d is not a valid window start", position)
	}
	n.position = position
	return n, nil
}

func (n *Navigator) Config() Config {
	return n.cfg
}

func (n *Navigator) Position() int {
	return n.position
}

// LastPosition is the highest multiple of SlidesToShow below the wrap boundary.
func (n *Navigator) LastPosition() int {
	return ((n.cfg.WrapBoundary() - 1) / n.cfg.SlidesToShow) * n.cfg.SlidesToShow
}

// Advance moves one window forward, wrapping to 0 at the boundary.
func (n *Navigator) Advance() int {
	next := n.position + n.cfg.SlidesToShow
	if next >= n.cfg.WrapBoundary() {
		next = 0
	}
	n.position = next
	return n.position
}

// Retreat moves one window back, wrapping to LastPosition below 0.
func (n *Navigator) Retreat() int {
	prev := n.position - n.cfg.SlidesToShow
	if prev < 0 {
		prev = n.LastPosition()
	}
	n.position = prev
	return n.position
}

// Swipe maps a recognised gesture to exactly one move: left advances, right retreats.
func (n *Navigator) Swipe(d Direction) (int, error) {
	switch d {
	case SwipeLeft:
		return n.Advance(), nil
	case SwipeRight:
		return n.Retreat(), nil
	}
	return n.position, fmt.Errorf("carousel: unknown swipe direction %q", d)
}

// Window returns the catalog indices visible at the current position.
func (n *Navigator) Window() []int {
	out := make([]int, n.cfg.SlidesToShow)
	for i := range out {
		out[i] = (n.position + i) % n.cfg.CatalogSize
	}
	return out
}

// OffsetPercent is the horizontal translation the renderer applies to the track.
func (n *Navigator) OffsetPercent() float64 {
	return float64(n.position) / float64(n.cfg.CatalogSize) * 100
}

func (n *Navigator) Snapshot() Snapshot {
	return Snapshot{
		Position:      n.position,
		SlidesToShow:  n.cfg.SlidesToShow,
		CatalogSize:   n.cfg.CatalogSize,
		Window:        n.Window(),
		OffsetPercent: n.OffsetPercent(),
	}
}
