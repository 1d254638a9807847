package sessionRepo

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

type memoryEntry struct {
	data    []byte
	expires time.Time
}

// MemorySessionRepo keeps sessions in process. Expired entries are invisible to Load and are
// reclaimed by Sweep.
type MemorySessionRepo struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemorySessionRepo() *MemorySessionRepo {
	return &MemorySessionRepo{entries: make(map[string]memoryEntry), now: time.Now}
}

func (r *MemorySessionRepo) Save(_ context.Context, kind, id string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s session: %w", kind, err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[sessionKey(kind, id)] = memoryEntry{data: data, expires: r.now().Add(ttl)}
	return nil
}

func (r *MemorySessionRepo) Load(_ context.Context, kind, id string, v any) error {
	r.mu.Lock()
	e, ok := r.entries[sessionKey(kind, id)]
	r.mu.Unlock()
	if !ok || !r.now().Before(e.expires) {
		return ErrSessionNotFound
	}
	if err := json.Unmarshal(e.data, v); err != nil {
		return fmt.Errorf("failed to unmarshal %s session: %w", kind, err)
	}
	return nil
}

func (r *MemorySessionRepo) Delete(_ context.Context, kind, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, sessionKey(kind, id))
	return nil
}

// Sweep drops every entry expired at now and returns how many were dropped.
func (r *MemorySessionRepo) Sweep(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for k, e := range r.entries {
		if !now.Before(e.expires) {
			delete(r.entries, k)
			n++
		}
	}
	return n
}

// Len is the number of stored entries, expired or not.
func (r *MemorySessionRepo) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
