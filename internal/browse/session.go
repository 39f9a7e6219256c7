package browse

import (
	"context"
	"errors"
	"sync"

	"github.com/apper-canvas/homescout-pixel-alarm/internal/models"
)

// ErrSuperseded is returned by Refresh when a newer refresh started before
// this one completed. Its result is discarded.
var ErrSuperseded = errors.New("listing fetch superseded by a newer request")

// ListingSource provides the full listing collection.
type ListingSource interface {
	GetAll(ctx context.Context) ([]models.Listing, error)
}

// Session holds one user's browse state: the fetched listings, the filter
// spec, and the sort key. Every setter recomputes the derived view before
// returning and then notifies subscribers.
type Session struct {
	source ListingSource

	mu          sync.Mutex
	listings    []models.Listing
	spec        models.FilterSpec
	sortKey     models.SortKey
	view        []models.Listing
	generation  uint64
	cancel      context.CancelFunc
	loading     bool
	err         error
	subscribers []func([]models.Listing)
}

// NewSession creates a session with default filters and sort order.
func NewSession(source ListingSource) *Session {
	return &Session{
		source:  source,
		spec:    DefaultFilterSpec(),
		sortKey: DefaultSortKey,
		view:    []models.Listing{},
	}
}

// Subscribe registers fn to receive the view after every recomputation.
func (s *Session) Subscribe(fn func([]models.Listing)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Refresh fetches listings from the source. Starting a refresh cancels any
// refresh still in flight; a refresh whose result arrives after a newer one
// started returns ErrSuperseded and leaves the session untouched.
func (s *Session) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	if s.cancel != nil {
		s.cancel()
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.loading = true
	s.mu.Unlock()

	defer cancel()
	listings, err := s.source.GetAll(fetchCtx)

	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		return ErrSuperseded
	}
	s.loading = false
	s.cancel = nil
	if err != nil {
		s.err = err
		s.mu.Unlock()
		return err
	}
	s.err = nil
	s.listings = listings
	view, subs := s.recomputeLocked()
	s.mu.Unlock()

	notify(subs, view)
	return nil
}

// SetFilters replaces the filter spec and recomputes the view.
func (s *Session) SetFilters(spec models.FilterSpec) []models.Listing {
	s.mu.Lock()
	s.spec = spec
	view, subs := s.recomputeLocked()
	s.mu.Unlock()

	notify(subs, view)
	return view
}

// ClearFilters restores the default filter spec and recomputes the view.
func (s *Session) ClearFilters() []models.Listing {
	return s.SetFilters(DefaultFilterSpec())
}

// SetSortKey replaces the sort key and recomputes the view.
func (s *Session) SetSortKey(key models.SortKey) []models.Listing {
	s.mu.Lock()
	s.sortKey = key
	view, subs := s.recomputeLocked()
	s.mu.Unlock()

	notify(subs, view)
	return view
}

// View returns the current filtered and sorted listings.
func (s *Session) View() []models.Listing {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Listing(nil), s.view...)
}

// Filters returns the active filter spec.
func (s *Session) Filters() models.FilterSpec {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.spec
}

// SortKey returns the active sort key.
func (s *Session) SortKey() models.SortKey {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortKey
}

// Loading reports whether a refresh is in flight.
func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the error from the most recent completed refresh, if any.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Session) recomputeLocked() ([]models.Listing, []func([]models.Listing)) {
	s.view = SortListings(ApplyFilters(s.listings, s.spec), s.sortKey)
	subs := append([]func([]models.Listing){}, s.subscribers...)
	return append([]models.Listing(nil), s.view...), subs
}

func notify(subs []func([]models.Listing), view []models.Listing) {
	for _, fn := range subs {
		fn(view)
	}
}
