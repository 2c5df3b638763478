// Package editor owns the editing state of each browser session: one
// invoice Collection and one Filter per session, seeded by a single fetch.
package editor

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/angelofallars/hyperinvoice/internal/invoice"
	"github.com/angelofallars/hyperinvoice/internal/metrics"
)

var (
	// ErrNotReady is returned by mutations before the invoices are loaded
	// or after loading failed.
	ErrNotReady = errors.New("invoices are not loaded")

	// ErrLoadFailed is returned by every Load after the first fetch failed.
	ErrLoadFailed = errors.New("invoices could not be loaded")
)

type State int

const (
	StateLoading State = iota
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Loader produces the invoices a session starts from.
type Loader interface {
	Load(ctx context.Context) ([]invoice.Invoice, error)
}

// Editor holds the state of one editing session. A session has a single
// logical writer; the mutex only serializes overlapping requests from the
// same browser.
type Editor struct {
	mu         sync.Mutex
	state      State
	collection invoice.Collection
	filter     invoice.Filter
}

func New() *Editor {
	return &Editor{}
}

// Load seeds the editor from loader the first time it is called. A failed
// load is final until ResetFailed: later calls return ErrLoadFailed without
// fetching again. When ctx is cancelled the editor stays in StateLoading.
func (e *Editor) Load(ctx context.Context, loader Loader) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.state {
	case StateReady:
		return nil
	case StateFailed:
		return ErrLoadFailed
	}

	invoices, err := loader.Load(ctx)
	if err != nil {
		// An abandoned request leaves the session loading.
		if ctx.Err() != nil {
			return ctx.Err()
		}
		e.state = StateFailed
		return errors.Join(ErrLoadFailed, err)
	}

	e.collection = invoice.NewCollection(invoices)
	e.state = StateReady
	return nil
}

// ResetFailed returns a failed editor to the loading state so the next
// Load fetches again. It reports whether a reset happened.
func (e *Editor) ResetFailed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateFailed {
		return false
	}
	e.state = StateLoading
	return true
}

func (e *Editor) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

func (e *Editor) Collection() invoice.Collection {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.collection
}

func (e *Editor) Filter() invoice.Filter {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.filter
}

func (e *Editor) SetFilter(f invoice.Filter) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.filter = f
}

// Update replaces the collection with the result of fn. When fn fails the
// collection is left as it was.
func (e *Editor) Update(op string, fn func(invoice.Collection) (invoice.Collection, error)) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateReady {
		metrics.Mutations.WithLabelValues(op, metrics.ResultError).Inc()
		return ErrNotReady
	}

	next, err := fn(e.collection)
	metrics.Mutations.WithLabelValues(op, metrics.Result(err)).Inc()
	if err != nil {
		return err
	}

	e.collection = next
	return nil
}

// View returns the rows that pass the current filter together with that
// filter.
func (e *Editor) View(now time.Time) ([]invoice.Row, invoice.Filter) {
	e.mu.Lock()
	defer e.mu.Unlock()

	visible := invoice.Visible(e.collection, e.filter, now)
	return invoice.Rows(visible, now), e.filter
}
