package favorites

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStorage_MissingFile(t *testing.T) {
	storage := NewFileStorage(t.TempDir(), DefaultKey)

	data, err := storage.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestFileStorage_SaveCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "state")
	storage := NewFileStorage(dir, "favs")
	ctx := context.Background()

	require.NoError(t, storage.Save(ctx, []byte(`[{"Id":1,"savedAt":"2024-01-01T00:00:00Z"}]`)))
	assert.Equal(t, filepath.Join(dir, "favs.json"), storage.Path())

	data, err := storage.Load(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"Id":1,"savedAt":"2024-01-01T00:00:00Z"}]`, string(data))

	// No temp files left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

// TestRedisStorage runs against a live Redis when REDIS_ADDR is set.
func TestRedisStorage(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if testing.Short() || addr == "" {
		t.Skip("Skipping Redis integration test (set REDIS_ADDR to run)")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()

	ctx := context.Background()
	key := "homescout:test:savedProperties"
	defer client.Del(ctx, key)
	client.Del(ctx, key)

	storage := NewRedisStorage(client, key)

	data, err := storage.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, data)

	require.NoError(t, storage.Save(ctx, []byte(`[{"Id":2,"savedAt":"2024-01-01T00:00:00Z"}]`)))
	data, err = storage.Load(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"Id":2,"savedAt":"2024-01-01T00:00:00Z"}]`, string(data))
}

func TestFileStorage_Ping(t *testing.T) {
	storage := NewFileStorage(filepath.Join(t.TempDir(), "nested"), DefaultKey)
	require.NoError(t, storage.Ping(context.Background()))
}

func TestFileStorage_ReadErrorIsUnreadable(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, DefaultKey+".json"), 0o755))

	_, err := NewFileStorage(dir, DefaultKey).Load(context.Background())
	assert.ErrorIs(t, err, ErrUnreadable)
}
