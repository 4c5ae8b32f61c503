package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"saathi/internal/observability"

	"github.com/redis/go-redis/v9"
)

const (
	CommunityKeyPrefix = "community:%s"
	UserKeyPrefix      = "user:%s"
)

const (
	CommunityTTL = 10 * time.Minute
	UserTTL      = 5 * time.Minute
)

// CommunityKey is the cache key of a community by hex id.
func CommunityKey(id string) string {
	return fmt.Sprintf(CommunityKeyPrefix, id)
}

// UserKey is the cache key of a user by username.
func UserKey(username string) string {
	return fmt.Sprintf(UserKeyPrefix, username)
}

// Store is a JSON cache on Redis. A nil Store, or one without a client,
// behaves as an always-empty cache.
type Store struct {
	client *redis.Client
}

// New wraps client. client may be nil.
func New(client *redis.Client) *Store {
	return &Store{client: client}
}

// Client returns the underlying Redis client, or nil when caching is off.
func (s *Store) Client() *redis.Client {
	if s == nil {
		return nil
	}
	return s.client
}

func (s *Store) enabled() bool {
	return s != nil && s.client != nil
}

// GetJSON attempts to get the key from Redis and unmarshal into dest.
// Returns (true, nil) if found and unmarshaled, (false, nil) if not found.
func (s *Store) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if !s.enabled() {
		return false, nil
	}
	raw, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON marshals v and sets the key with TTL.
func (s *Store) SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	if !s.enabled() {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, b, ttl).Err()
}

// Invalidate deletes keys, ignoring failures.
func (s *Store) Invalidate(ctx context.Context, keys ...string) {
	if !s.enabled() || len(keys) == 0 {
		return
	}
	s.client.Del(ctx, keys...)
}

// Aside tries Redis first and on a miss calls fetch, which fills dest and
// reports whether the value exists. Only found values are stored. A cache
// failure degrades to a plain fetch.
func (s *Store) Aside(ctx context.Context, family, key string, dest any, ttl time.Duration, fetch func() (bool, error)) (bool, error) {
	hit, err := s.GetJSON(ctx, key, dest)
	if err != nil {
		observability.Logger.WarnContext(ctx, "cache read failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
	if hit {
		observability.CacheLookups.WithLabelValues(family, "hit").Inc()
		return true, nil
	}
	observability.CacheLookups.WithLabelValues(family, "miss").Inc()

	found, err := fetch()
	if err != nil || !found {
		return found, err
	}

	if err := s.SetJSON(ctx, key, dest, ttl); err != nil {
		observability.Logger.WarnContext(ctx, "cache write failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
	return true, nil
}
