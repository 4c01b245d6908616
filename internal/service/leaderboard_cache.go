package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const leaderboardCacheTTL = 60 * time.Second

// LeaderboardCache keeps rendered leaderboards in Redis so repeated reads
// between submissions skip the database. A nil cache disables caching.
type LeaderboardCache struct {
	Redis *redis.Client
}

func NewLeaderboardCache(rdb *redis.Client) *LeaderboardCache {
	if rdb == nil {
		return nil
	}
	return &LeaderboardCache{Redis: rdb}
}

func leaderboardCacheKey(contestID uint) string {
	return fmt.Sprintf("contest:leaderboard:%d", contestID)
}

func (c *LeaderboardCache) Get(ctx context.Context, contestID uint) ([]LeaderboardRow, bool) {
	if c == nil {
		return nil, false
	}
	val, err := c.Redis.Get(ctx, leaderboardCacheKey(contestID)).Result()
	if err != nil {
		return nil, false
	}
	var rows []LeaderboardRow
	if err := json.Unmarshal([]byte(val), &rows); err != nil {
		return nil, false
	}
	return rows, true
}

func (c *LeaderboardCache) Set(ctx context.Context, contestID uint, rows []LeaderboardRow) {
	if c == nil {
		return
	}
	data, err := json.Marshal(rows)
	if err != nil {
		return
	}
	c.Redis.Set(ctx, leaderboardCacheKey(contestID), data, leaderboardCacheTTL)
}

func (c *LeaderboardCache) Invalidate(ctx context.Context, contestID uint) {
	if c == nil {
		return
	}
	c.Redis.Del(ctx, leaderboardCacheKey(contestID))
}
