package favorites

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-redis/redis/v8"
)

// DefaultKey is the well-known key the favorites list is stored under.
const DefaultKey = "savedProperties"

// Storage persists the serialized favorites list under a single key.
// Load returns nil data and no error when nothing has been stored yet.
type Storage interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}

// ErrUnreadable marks persisted favorites that exist but cannot be read.
// The store treats it like a missing list.
var ErrUnreadable = errors.New("favorites storage unreadable")

// FileStorage keeps the favorites list in a JSON file named after the key
// inside a directory.
type FileStorage struct {
	path string
}

// NewFileStorage creates a file-backed storage at dir/key.json.
func NewFileStorage(dir, key string) *FileStorage {
	return &FileStorage{path: filepath.Join(dir, key+".json")}
}

// Path returns the file location.
func (s *FileStorage) Path() string {
	return s.path
}

func (s *FileStorage) Load(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrUnreadable, s.path, err)
	}
	return data, nil
}

// Ping reports whether the favorites directory is reachable.
func (s *FileStorage) Ping(ctx context.Context) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("favorites directory %s unavailable: %w", dir, err)
	}
	return nil
}

// Save writes to a temporary file and renames it over the target so a crash
// never leaves a half-written list behind.
func (s *FileStorage) Save(ctx context.Context, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create favorites directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".favorites-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp favorites file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write favorites: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp favorites file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace favorites file: %w", err)
	}
	return nil
}

// RedisStorage keeps the favorites list in a single Redis string key.
type RedisStorage struct {
	client *redis.Client
	key    string
}

// NewRedisStorage creates a Redis-backed storage using key.
func NewRedisStorage(client *redis.Client, key string) *RedisStorage {
	return &RedisStorage{client: client, key: key}
}

func (s *RedisStorage) Load(ctx context.Context) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read favorites key %s: %w", s.key, err)
	}
	return data, nil
}

func (s *RedisStorage) Save(ctx context.Context, data []byte) error {
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write favorites key %s: %w", s.key, err)
	}
	return nil
}

// Ping checks the Redis connection.
func (s *RedisStorage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
