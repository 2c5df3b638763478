package editor

import (
	"context"
	"sync"
	"time"

	"github.com/angelofallars/hyperinvoice/internal/metrics"
)

type entry struct {
	editor   *Editor
	lastSeen time.Time
}

// Registry maps session ids to editors and forgets sessions that stay idle
// longer than its ttl.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*entry
	ttl     time.Duration
	now     func() time.Time
}

func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		entries: map[string]*entry{},
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the editor of a session, creating an empty one on first use.
func (r *Registry) Get(sessionID string) *Editor {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[sessionID]
	if !ok {
		e = &entry{editor: New()}
		r.entries[sessionID] = e
		metrics.Sessions.Set(float64(len(r.entries)))
	}
	e.lastSeen = r.now()

	return e.editor
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Prune drops idle sessions and returns how many were dropped.
func (r *Registry) Prune() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.ttl)
	dropped := 0
	for id, e := range r.entries {
		if e.lastSeen.Before(cutoff) {
			delete(r.entries, id)
			dropped++
		}
	}
	metrics.Sessions.Set(float64(len(r.entries)))

	return dropped
}

// Run prunes the registry every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration, onPrune func(dropped int)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Prune(); n > 0 && onPrune != nil {
				onPrune(n)
			}
		}
	}
}
