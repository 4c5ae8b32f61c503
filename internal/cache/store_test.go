package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedThing struct {
	Name string `json:"name"`
}

func setupStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return New(client), mr
}

func TestStore_NilIsAlwaysEmpty(t *testing.T) {
	var s *Store
	ctx := context.Background()

	found, err := s.GetJSON(ctx, "k", &cachedThing{})
	require.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, s.SetJSON(ctx, "k", cachedThing{Name: "x"}, time.Minute))
	assert.Nil(t, s.Client())
	s.Invalidate(ctx, "k")

	calls := 0
	var dest cachedThing
	found, err = s.Aside(ctx, "thing", "k", &dest, time.Minute, func() (bool, error) {
		calls++
		dest.Name = "fresh"
		return true, nil
	})
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 1, calls)
	assert.Equal(t, "fresh", dest.Name)
}

func TestStore_AsideCachesPositiveHits(t *testing.T) {
	s, mr := setupStore(t)
	ctx := context.Background()

	calls := 0
	fetch := func(dest *cachedThing) func() (bool, error) {
		return func() (bool, error) {
			calls++
			dest.Name = "gophers"
			return true, nil
		}
	}

	var first cachedThing
	found, err := s.Aside(ctx, "community", CommunityKey("abc"), &first, CommunityTTL, fetch(&first))
	require.NoError(t, err)
	assert.True(t, found)
	assert.True(t, mr.Exists("community:abc"))
	assert.Equal(t, CommunityTTL, mr.TTL("community:abc"))

	var second cachedThing
	found, err = s.Aside(ctx, "community", CommunityKey("abc"), &second, CommunityTTL, fetch(&second))
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "gophers", second.Name)
	assert.Equal(t, 1, calls, "second lookup should be served from cache")
}

func TestStore_AsideDoesNotCacheMisses(t *testing.T) {
	s, mr := setupStore(t)
	ctx := context.Background()

	var dest cachedThing
	found, err := s.Aside(ctx, "user", UserKey("ghost"), &dest, UserTTL, func() (bool, error) {
		return false, nil
	})
	require.NoError(t, err)
	assert.False(t, found)
	assert.False(t, mr.Exists("user:ghost"))
}

func TestStore_AsidePropagatesFetchErrors(t *testing.T) {
	s, mr := setupStore(t)
	boom := errors.New("boom")

	var dest cachedThing
	_, err := s.Aside(context.Background(), "user", UserKey("a"), &dest, UserTTL, func() (bool, error) {
		return false, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists("user:a"))
}

func TestStore_AsideFallsBackWhenRedisIsDown(t *testing.T) {
	s, mr := setupStore(t)
	mr.Close()

	var dest cachedThing
	found, err := s.Aside(context.Background(), "user", UserKey("a"), &dest, UserTTL, func() (bool, error) {
		dest.Name = "from-db"
		return true, nil
	})
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "from-db", dest.Name)
}

func TestStore_Invalidate(t *testing.T) {
	s, mr := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetJSON(ctx, UserKey("a"), cachedThing{Name: "a"}, UserTTL))
	require.True(t, mr.Exists("user:a"))

	s.Invalidate(ctx, UserKey("a"))
	assert.False(t, mr.Exists("user:a"))
}

func TestNewClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewClient(context.Background(), mr.Addr())
	require.NoError(t, err)
	_ = client.Close()

	client, err = NewClient(context.Background(), "redis://"+mr.Addr()+"/0")
	require.NoError(t, err)
	_ = client.Close()

	_, err = NewClient(context.Background(), "redis://%zz")
	assert.Error(t, err)
}
