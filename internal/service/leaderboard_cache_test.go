package service

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
)

func newTestCache(t *testing.T) (*LeaderboardCache, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	return NewLeaderboardCache(rdb), mr
}

func TestLeaderboardCacheRoundTrip(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	if _, ok := cache.Get(ctx, 1); ok {
		t.Fatal("cold cache must miss")
	}

	rank := 1
	rows := []LeaderboardRow{{UserID: 7, Score: 9.5, Rank: &rank, TimeTaken: 42, Submitted: true}}
	cache.Set(ctx, 1, rows)

	got, ok := cache.Get(ctx, 1)
	if !ok {
		t.Fatal("warm cache must hit")
	}
	if len(got) != 1 || got[0].UserID != 7 || got[0].Score != 9.5 {
		t.Errorf("got %+v", got)
	}
	if got[0].Rank == nil || *got[0].Rank != 1 {
		t.Errorf("rank = %v, want 1", got[0].Rank)
	}
}

func TestLeaderboardCacheInvalidate(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	cache.Set(ctx, 3, []LeaderboardRow{{UserID: 1}})
	cache.Invalidate(ctx, 3)

	if _, ok := cache.Get(ctx, 3); ok {
		t.Error("invalidated key must miss")
	}
}

func TestLeaderboardCacheExpiry(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	cache.Set(ctx, 5, []LeaderboardRow{{UserID: 1}})
	mr.FastForward(leaderboardCacheTTL * 2)

	if _, ok := cache.Get(ctx, 5); ok {
		t.Error("entry must expire after the TTL")
	}
}

func TestLeaderboardCacheNilIsDisabled(t *testing.T) {
	var cache *LeaderboardCache
	ctx := context.Background()

	cache.Set(ctx, 1, []LeaderboardRow{{UserID: 1}})
	cache.Invalidate(ctx, 1)
	if _, ok := cache.Get(ctx, 1); ok {
		t.Error("nil cache must always miss")
	}
}
