// Package favorites maintains the set of listings the user has saved.
package favorites

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/apper-canvas/homescout-pixel-alarm/internal/logger"
	"github.com/apper-canvas/homescout-pixel-alarm/internal/models"
)

// Store is the single authoritative favorites set. Every mutation is
// persisted before it returns; if persisting fails the mutation is undone.
// Subscribers are notified synchronously after each successful mutation.
type Store struct {
	storage Storage
	log     *logger.Logger
	now     func() time.Time

	mu          sync.Mutex
	favorites   []models.Favorite
	index       map[int]struct{}
	subscribers []func([]models.Favorite)
}

// NewStore loads the persisted list from storage. Missing, unreadable or
// undecodable content starts an empty store with a warning. Any other load
// failure, such as an unreachable Redis, is returned.
func NewStore(ctx context.Context, storage Storage, log *logger.Logger) (*Store, error) {
	s := &Store{
		storage:   storage,
		log:       log,
		now:       time.Now,
		favorites: []models.Favorite{},
		index:     make(map[int]struct{}),
	}

	data, err := storage.Load(ctx)
	if errors.Is(err, ErrUnreadable) {
		log.Warn("Starting with no favorites, saved list could not be read", map[string]interface{}{
			"error": err.Error(),
		})
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load favorites: %w", err)
	}
	if len(data) == 0 {
		return s, nil
	}

	var saved []models.Favorite
	if err := json.Unmarshal(data, &saved); err != nil {
		log.Warn("Discarding unreadable favorites list", map[string]interface{}{
			"error": err.Error(),
			"bytes": len(data),
		})
		return s, nil
	}

	for _, f := range saved {
		if _, dup := s.index[f.ListingID]; dup {
			continue
		}
		s.index[f.ListingID] = struct{}{}
		s.favorites = append(s.favorites, f)
	}

	log.Info("Favorites loaded", map[string]interface{}{
		"count": len(s.favorites),
	})
	return s, nil
}

// Subscribe registers fn to receive the favorites list after each mutation.
func (s *Store) Subscribe(fn func([]models.Favorite)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Toggle removes listingID if it is saved, otherwise saves it with the
// current time. It returns the affected record and whether it was added.
func (s *Store) Toggle(ctx context.Context, listingID int) (models.Favorite, bool, error) {
	s.mu.Lock()

	previous := s.favorites
	var record models.Favorite
	added := false

	if _, ok := s.index[listingID]; ok {
		next := make([]models.Favorite, 0, len(s.favorites)-1)
		for _, f := range s.favorites {
			if f.ListingID == listingID {
				record = f
				continue
			}
			next = append(next, f)
		}
		s.favorites = next
		delete(s.index, listingID)
	} else {
		record = models.Favorite{ListingID: listingID, SavedAt: s.now().UTC()}
		next := make([]models.Favorite, len(s.favorites), len(s.favorites)+1)
		copy(next, s.favorites)
		s.favorites = append(next, record)
		s.index[listingID] = struct{}{}
		added = true
	}

	if err := s.persistLocked(ctx); err != nil {
		s.favorites = previous
		s.rebuildIndexLocked()
		s.mu.Unlock()
		s.log.Error("Failed to persist favorite toggle", err, map[string]interface{}{
			"listing_id": listingID,
		})
		return models.Favorite{}, false, err
	}

	list, subs := s.snapshotLocked()
	s.mu.Unlock()

	if added {
		s.log.Info("Property added to favorites", map[string]interface{}{"listing_id": listingID})
	} else {
		s.log.Info("Property removed from favorites", map[string]interface{}{"listing_id": listingID})
	}
	notify(subs, list)
	return record, added, nil
}

// ClearAll removes every favorite and persists the empty list.
func (s *Store) ClearAll(ctx context.Context) error {
	s.mu.Lock()

	previous := s.favorites
	s.favorites = []models.Favorite{}
	s.index = make(map[int]struct{})

	if err := s.persistLocked(ctx); err != nil {
		s.favorites = previous
		s.rebuildIndexLocked()
		s.mu.Unlock()
		s.log.Error("Failed to persist cleared favorites", err, nil)
		return err
	}

	list, subs := s.snapshotLocked()
	s.mu.Unlock()

	s.log.Info("All favorites cleared", map[string]interface{}{"removed": len(previous)})
	notify(subs, list)
	return nil
}

// IsFavorite reports whether listingID is saved.
func (s *Store) IsFavorite(listingID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.index[listingID]
	return ok
}

// Get returns the saved record for listingID.
func (s *Store) Get(listingID int) (models.Favorite, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.favorites {
		if f.ListingID == listingID {
			return f, true
		}
	}
	return models.Favorite{}, false
}

// List returns the favorites in the order they were saved.
func (s *Store) List() []models.Favorite {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Favorite{}, s.favorites...)
}

// IDs returns the saved listing ids in the order they were saved.
func (s *Store) IDs() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]int, len(s.favorites))
	for i, f := range s.favorites {
		ids[i] = f.ListingID
	}
	return ids
}

// Count returns the number of saved listings.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.favorites)
}

func (s *Store) persistLocked(ctx context.Context) error {
	data, err := json.Marshal(s.favorites)
	if err != nil {
		return fmt.Errorf("failed to encode favorites: %w", err)
	}
	if err := s.storage.Save(ctx, data); err != nil {
		return fmt.Errorf("failed to persist favorites: %w", err)
	}
	return nil
}

func (s *Store) rebuildIndexLocked() {
	s.index = make(map[int]struct{}, len(s.favorites))
	for _, f := range s.favorites {
		s.index[f.ListingID] = struct{}{}
	}
}

func (s *Store) snapshotLocked() ([]models.Favorite, []func([]models.Favorite)) {
	list := append([]models.Favorite{}, s.favorites...)
	subs := append([]func([]models.Favorite){}, s.subscribers...)
	return list, subs
}

func notify(subs []func([]models.Favorite), list []models.Favorite) {
	for _, fn := range subs {
		fn(list)
	}
}
