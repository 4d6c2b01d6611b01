package prefs

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Themes the dashboard understands.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

const themeKey = "crypto_dashboard:prefs:theme"

// ErrInvalidTheme is returned for anything other than "light" or "dark".
var ErrInvalidTheme = fmt.Errorf("theme must be %q or %q", ThemeLight, ThemeDark)

// ThemeStore persists the dashboard theme preference across sessions.
type ThemeStore interface {
	GetTheme(ctx context.Context) (string, error)
	SetTheme(ctx context.Context, theme string) error
	Close() error
}

// ValidTheme reports whether the value is an accepted theme name.
func ValidTheme(theme string) bool {
	return theme == ThemeLight || theme == ThemeDark
}

// MemoryStore keeps the preference for the process lifetime only.
type MemoryStore struct {
	mu    sync.RWMutex
	theme string
}

// NewMemoryStore creates a store defaulting to the light theme.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{theme: ThemeLight}
}

// GetTheme returns the stored theme.
func (s *MemoryStore) GetTheme(ctx context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme, nil
}

// SetTheme stores the theme after validation.
func (s *MemoryStore) SetTheme(ctx context.Context, theme string) error {
	if !ValidTheme(theme) {
		return ErrInvalidTheme
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = theme
	return nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}

// RedisStore persists the preference across restarts.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a redis-backed store.
func NewRedisStore(addr, password string, db int) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{client: rdb}, nil
}

// GetTheme returns the stored theme, defaulting to light when unset.
func (s *RedisStore) GetTheme(ctx context.Context) (string, error) {
	val, err := s.client.Get(ctx, themeKey).Result()
	if err == redis.Nil {
		return ThemeLight, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get theme: %w", err)
	}
	return val, nil
}

// SetTheme stores the theme after validation. No expiry: the preference
// survives until changed.
func (s *RedisStore) SetTheme(ctx context.Context, theme string) error {
	if !ValidTheme(theme) {
		return ErrInvalidTheme
	}
	return s.client.Set(ctx, themeKey, theme, 0).Err()
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// NewStoreFromConfig selects the store backend by name.
func NewStoreFromConfig(backend, redisAddr, redisPassword string, redisDB int) (ThemeStore, error) {
	switch strings.ToLower(backend) {
	case "memory", "":
		return NewMemoryStore(), nil
	case "redis":
		return NewRedisStore(redisAddr, redisPassword, redisDB)
	default:
		return nil, fmt.Errorf("unsupported preferences backend: %s", backend)
	}
}
