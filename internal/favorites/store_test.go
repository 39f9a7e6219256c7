package favorites

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/apper-canvas/homescout-pixel-alarm/internal/logger"
	"github.com/apper-canvas/homescout-pixel-alarm/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockStorage is a mock implementation of Storage for testing
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Load(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

func (m *MockStorage) Save(ctx context.Context, data []byte) error {
	args := m.Called(ctx, data)
	return args.Error(0)
}

func newFileStore(t *testing.T) (*Store, *FileStorage) {
	t.Helper()
	storage := NewFileStorage(t.TempDir(), DefaultKey)
	store, err := NewStore(context.Background(), storage, logger.New("test"))
	require.NoError(t, err)
	return store, storage
}

func TestNewStore_EmptyWhenNothingPersisted(t *testing.T) {
	store, _ := newFileStore(t)

	assert.Equal(t, 0, store.Count())
	assert.NotNil(t, store.List())
	assert.Empty(t, store.List())
}

func TestNewStore_UnreadableContentStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultKey+".json"), []byte("{not json"), 0o644))

	store, err := NewStore(context.Background(), NewFileStorage(dir, DefaultKey), logger.New("test"))
	require.NoError(t, err)
	assert.Equal(t, 0, store.Count())
}

func TestNewStore_UnreadableFileStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	// A directory where the file should be fails the read on every platform.
	require.NoError(t, os.Mkdir(filepath.Join(dir, DefaultKey+".json"), 0o755))

	store, err := NewStore(context.Background(), NewFileStorage(dir, DefaultKey), logger.New("test"))
	require.NoError(t, err)
	assert.Equal(t, 0, store.Count())
	assert.Empty(t, store.List())
}

func TestNewStore_LoadFailure(t *testing.T) {
	storage := new(MockStorage)
	loadErr := errors.New("redis unavailable")
	storage.On("Load", mock.Anything).Return(nil, loadErr)

	store, err := NewStore(context.Background(), storage, logger.New("test"))
	assert.Nil(t, store)
	assert.ErrorIs(t, err, loadErr)
}

func TestNewStore_DropsDuplicateIDs(t *testing.T) {
	storage := new(MockStorage)
	storage.On("Load", mock.Anything).Return(
		[]byte(`[{"Id":3,"savedAt":"2024-05-01T12:00:00Z"},{"Id":3,"savedAt":"2024-05-02T12:00:00Z"},{"Id":9,"savedAt":"2024-05-03T12:00:00Z"}]`),
		nil,
	)

	store, err := NewStore(context.Background(), storage, logger.New("test"))
	require.NoError(t, err)
	assert.Equal(t, []int{3, 9}, store.IDs())

	f, ok := store.Get(3)
	require.True(t, ok)
	assert.True(t, f.SavedAt.Equal(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)))
}

func TestToggle_AddThenRemove(t *testing.T) {
	store, _ := newFileStore(t)
	ctx := context.Background()
	fixed := time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)
	store.now = func() time.Time { return fixed }

	added, ok, err := store.Toggle(ctx, 42)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, models.Favorite{ListingID: 42, SavedAt: fixed}, added)
	assert.True(t, store.IsFavorite(42))

	removed, ok, err := store.Toggle(ctx, 42)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, added, removed)
	assert.False(t, store.IsFavorite(42))
	assert.Equal(t, 0, store.Count())
}

func TestToggle_PersistsAndReloads(t *testing.T) {
	store, storage := newFileStore(t)
	ctx := context.Background()

	_, _, err := store.Toggle(ctx, 1)
	require.NoError(t, err)
	_, _, err = store.Toggle(ctx, 2)
	require.NoError(t, err)

	reloaded, err := NewStore(ctx, storage, logger.New("test"))
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2}, reloaded.IDs())
	original := store.List()
	for i, f := range reloaded.List() {
		assert.Equal(t, original[i].ListingID, f.ListingID)
		assert.True(t, original[i].SavedAt.Equal(f.SavedAt), "savedAt must round-trip")
	}
}

func TestToggle_PersistFailureRollsBack(t *testing.T) {
	storage := new(MockStorage)
	storage.On("Load", mock.Anything).Return(nil, nil)
	storage.On("Save", mock.Anything, mock.Anything).Return(nil).Once()
	storage.On("Save", mock.Anything, mock.Anything).Return(errors.New("disk full")).Once()

	store, err := NewStore(context.Background(), storage, logger.New("test"))
	require.NoError(t, err)

	_, _, err = store.Toggle(context.Background(), 5)
	require.NoError(t, err)

	_, _, err = store.Toggle(context.Background(), 6)
	assert.Error(t, err)
	assert.Equal(t, []int{5}, store.IDs())
	assert.False(t, store.IsFavorite(6))
	storage.AssertExpectations(t)
}

func TestClearAll(t *testing.T) {
	store, storage := newFileStore(t)
	ctx := context.Background()

	for _, id := range []int{4, 5, 6} {
		_, _, err := store.Toggle(ctx, id)
		require.NoError(t, err)
	}

	require.NoError(t, store.ClearAll(ctx))
	assert.Equal(t, 0, store.Count())

	data, err := storage.Load(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))
}

func TestSubscribersNotifiedSynchronously(t *testing.T) {
	store, _ := newFileStore(t)
	ctx := context.Background()

	var seen [][]int
	store.Subscribe(func(list []models.Favorite) {
		ids := make([]int, len(list))
		for i, f := range list {
			ids[i] = f.ListingID
		}
		seen = append(seen, ids)
	})

	_, _, _ = store.Toggle(ctx, 1)
	assert.Len(t, seen, 1, "subscriber must run before Toggle returns")
	_, _, _ = store.Toggle(ctx, 2)
	_, _, _ = store.Toggle(ctx, 1)
	_ = store.ClearAll(ctx)

	assert.Equal(t, [][]int{{1}, {1, 2}, {2}, {}}, seen)
}

func TestConcurrentTogglesAreNotLost(t *testing.T) {
	store, storage := newFileStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for id := 1; id <= 50; id++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			_, _, err := store.Toggle(ctx, id)
			assert.NoError(t, err)
		}(id)
	}
	wg.Wait()

	assert.Equal(t, 50, store.Count())
	for id := 1; id <= 50; id++ {
		assert.True(t, store.IsFavorite(id))
	}

	reloaded, err := NewStore(ctx, storage, logger.New("test"))
	require.NoError(t, err)
	assert.Equal(t, 50, reloaded.Count())
}

func TestListReturnsCopy(t *testing.T) {
	store, _ := newFileStore(t)
	_, _, err := store.Toggle(context.Background(), 8)
	require.NoError(t, err)

	list := store.List()
	list[0].ListingID = 999
	assert.True(t, store.IsFavorite(8))
	assert.Equal(t, []int{8}, store.IDs())
}
