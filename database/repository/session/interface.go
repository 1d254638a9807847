package sessionRepo

import (
	"context"
	"errors"
	"time"
)

// Session kinds share one store and are kept apart by key.
const (
	KindTerms    = "terms"
	KindAuthForm = "authform"
	KindCarousel = "carousel"
)

// ErrSessionNotFound is returned when a session was never saved, was deleted, or expired.
var ErrSessionNotFound = errors.New("session not found or expired")

// SessionRepository parks interaction state between events. Values are stored as JSON.
type SessionRepository interface {
	// Save stores v under (kind, id) for ttl, replacing any earlier value.
	Save(ctx context.Context, kind, id string, v any, ttl time.Duration) error
	// Load decodes the value stored under (kind, id) into v.
	Load(ctx context.Context, kind, id string, v any) error
	// Delete removes a session. Deleting a missing session is not an error.
	Delete(ctx context.Context, kind, id string) error
}

func sessionKey(kind, id string) string {
	return "session:" + kind + ":" + id
}
