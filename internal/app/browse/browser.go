// Package browse implements the paginated list/search flow shared by the
// store, item and inventory pages: one fetch state machine plus per-resource
// filter handling and endpoint routing.
package browse

import (
	"context"
	"sync"

	"github.com/vtnguyen/storeboard/internal/api"
)

// State is the fetch lifecycle of a browser.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateLoaded
	StateErrored
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateErrored:
		return "errored"
	default:
		return "unknown"
	}
}

// FetchFunc loads one page of results.
type FetchFunc[T any] func(ctx context.Context) (*api.Page[T], error)

// Browser drives the fetch lifecycle for one paginated resource. Each load
// bumps a generation counter and only the newest in-flight response is
// applied, so a stale slow response can never overwrite fresher results.
type Browser[T any] struct {
	mu         sync.Mutex
	state      State
	page       *api.Page[T]
	err        error
	generation uint64
	lastFetch  FetchFunc[T]
}

// Load runs fetch and applies its outcome unless a newer Load started in
// the meantime. The fetch is remembered so Retry can replay it.
func (b *Browser[T]) Load(ctx context.Context, fetch FetchFunc[T]) error {
	b.mu.Lock()
	b.generation++
	gen := b.generation
	b.state = StateLoading
	b.err = nil
	b.lastFetch = fetch
	b.mu.Unlock()

	page, err := fetch(ctx)

	b.mu.Lock()
	defer b.mu.Unlock()
	if gen != b.generation {
		// A newer load superseded this one; drop the response.
		return nil
	}
	if err != nil {
		b.state = StateErrored
		b.err = err
		return err
	}
	b.state = StateLoaded
	b.page = page
	return nil
}

// Retry replays the last fetch. It is a no-op before the first Load.
func (b *Browser[T]) Retry(ctx context.Context) error {
	b.mu.Lock()
	fetch := b.lastFetch
	b.mu.Unlock()
	if fetch == nil {
		return nil
	}
	return b.Load(ctx, fetch)
}

// State returns the current lifecycle state.
func (b *Browser[T]) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Err returns the error of the last failed load, nil otherwise.
func (b *Browser[T]) Err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.err
}

// Page returns the last successfully loaded page, which survives a later
// failed load so the previous results stay on screen behind the error.
func (b *Browser[T]) Page() *api.Page[T] {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.page
}

// Results returns the rows of the current page, nil when nothing loaded.
func (b *Browser[T]) Results() []T {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.page == nil {
		return nil
	}
	return b.page.Results
}

// Count returns the total result count reported by the backend.
func (b *Browser[T]) Count() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.page == nil {
		return 0
	}
	return b.page.Count
}

// HasNext reports whether the backend advertised a next page.
func (b *Browser[T]) HasNext() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.page != nil && b.page.HasNext()
}

// HasPrevious reports whether the backend advertised a previous page.
func (b *Browser[T]) HasPrevious() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.page != nil && b.page.HasPrevious()
}
