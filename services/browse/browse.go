package browse

import (
	"context"
	"errors"
	"fmt"
	"time"

	sessionRepo "termcompass/database/repository/session"
	"termcompass/services/apperr"
	"termcompass/services/carousel"
	"termcompass/services/catalog"
	"termcompass/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *DefaultBrowseService) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return utils.DefaultSessionTTL
}

func (s *DefaultBrowseService) config() carousel.Config {
	return carousel.Config{
		CatalogSize:  len(s.Catalog.Sites),
		SlidesToShow: s.SlidesToShow,
		Overlap:      s.Overlap,
	}
}

// CheckConfig rejects a carousel geometry the catalog cannot support.
func (s *DefaultBrowseService) CheckConfig() error {
	if _, err := carousel.New(s.config()); err != nil {
		return fmt.Errorf("carousel is misconfigured: %w", err)
	}
	return nil
}

func (s *DefaultBrowseService) view(n *carousel.Navigator) View {
	snap := n.Snapshot()
	sites := make([]catalog.Site, 0, len(snap.Window))
	for _, i := range snap.Window {
		sites = append(sites, s.Catalog.Sites[i])
	}
	return View{Snapshot: snap, Sites: sites}
}

func (s *DefaultBrowseService) Open(ctx context.Context) (string, View, error) {
	n, err := carousel.New(s.config())
	if err != nil {
		return "", View{}, fmt.Errorf("carousel is misconfigured: %w", err)
	}
	id := uuid.New().String()
	if err := s.Sessions.Save(ctx, sessionRepo.KindCarousel, id, carouselSession{}, s.ttl()); err != nil {
		return "", View{}, fmt.Errorf("failed to store carousel session: %w", err)
	}
	utils.RecordEvent(sessionRepo.KindCarousel, "open", nil)
	return id, s.view(n), nil
}

func (s *DefaultBrowseService) load(ctx context.Context, id string) (*carousel.Navigator, error) {
	var rec carouselSession
	if err := s.Sessions.Load(ctx, sessionRepo.KindCarousel, id, &rec); err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, apperr.NotFound("carousel session not found or expired")
		}
		return nil, err
	}
	n, err := carousel.Restore(s.config(), rec.Position)
	if err != nil {
		// The catalog or geometry changed under a live session; start it over.
		s.Logger.Warn("Carousel position no longer valid, resetting", zap.String("sessionID", id), zap.Error(err))
		return carousel.New(s.config())
	}
	return n, nil
}

func (s *DefaultBrowseService) apply(ctx context.Context, id, op string, move func(*carousel.Navigator) error) (View, error) {
	unlock, err := s.Locks.Lock(ctx, id)
	if err != nil {
		return View{}, err
	}
	defer unlock()

	n, err := s.load(ctx, id)
	if err != nil {
		return View{}, err
	}
	err = move(n)
	utils.RecordEvent(sessionRepo.KindCarousel, op, err)
	if err != nil {
		return s.view(n), err
	}
	if err := s.Sessions.Save(ctx, sessionRepo.KindCarousel, id, carouselSession{Position: n.Position()}, s.ttl()); err != nil {
		return View{}, fmt.Errorf("failed to store carousel session: %w", err)
	}
	return s.view(n), nil
}

func (s *DefaultBrowseService) Get(ctx context.Context, id string) (View, error) {
	n, err := s.load(ctx, id)
	if err != nil {
		return View{}, err
	}
	return s.view(n), nil
}

func (s *DefaultBrowseService) Advance(ctx context.Context, id string) (View, error) {
	return s.apply(ctx, id, "advance", func(n *carousel.Navigator) error {
		n.Advance()
		return nil
	})
}

func (s *DefaultBrowseService) Retreat(ctx context.Context, id string) (View, error) {
	return s.apply(ctx, id, "retreat", func(n *carousel.Navigator) error {
		n.Retreat()
		return nil
	})
}

func (s *DefaultBrowseService) Swipe(ctx context.Context, id, direction string) (View, error) {
	return s.apply(ctx, id, "swipe", func(n *carousel.Navigator) error {
		d, err := carousel.ParseDirection(direction)
		if err != nil {
			return apperr.Validation(apperr.FieldError{Field: "direction", Message: "must be left or right"})
		}
		_, err = n.Swipe(d)
		return err
	})
}

func (s *DefaultBrowseService) Close(ctx context.Context, id string) error {
	unlock, err := s.Locks.Lock(ctx, id)
	if err != nil {
		return err
	}
	defer unlock()
	return s.Sessions.Delete(ctx, sessionRepo.KindCarousel, id)
}
