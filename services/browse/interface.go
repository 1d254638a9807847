package browse

import (
	"context"
	"time"

	sessionRepo "termcompass/database/repository/session"
	"termcompass/services/carousel"
	"termcompass/services/catalog"
	"termcompass/utils"

	"go.uber.org/zap"
)

// BrowseService hosts carousels over the catalog's graded sites.
type BrowseService interface {
	Open(ctx context.Context) (string, View, error)
	Get(ctx context.Context, sessionID string) (View, error)
	Advance(ctx context.Context, sessionID string) (View, error)
	Retreat(ctx context.Context, sessionID string) (View, error)
	Swipe(ctx context.Context, sessionID, direction string) (View, error)
	Close(ctx context.Context, sessionID string) error
}

// View is the carousel position together with the sites in the visible window.
type View struct {
	carousel.Snapshot
	Sites []catalog.Site `json:"sites"`
}

// DefaultBrowseService is the production implementation. Zero SlidesToShow and Overlap take the
// carousel defaults.
type DefaultBrowseService struct {
	Sessions     sessionRepo.SessionRepository
	Catalog      *catalog.Catalog
	Locks        utils.Locker
	TTL          time.Duration
	SlidesToShow int
	Overlap      int
	Logger       *zap.Logger
}

type carouselSession struct {
	Position int `json:"position"`
}
