package presence

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "typing:"

// RedisTracker is a Tracker backed by a Redis sorted set per conversation,
// scored by the last notification time. Safe across multiple server
// processes, unlike MemoryTracker.
type RedisTracker struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisTracker creates a Redis-backed Tracker with the given TTL
func NewRedisTracker(client *redis.Client, ttl time.Duration) *RedisTracker {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisTracker{client: client, ttl: ttl}
}

func (t *RedisTracker) key(conversationID string) string {
	return keyPrefix + conversationID
}

// RecordTyping upserts the user's score and refreshes the key expiry so
// abandoned conversations clean themselves up.
func (t *RedisTracker) RecordTyping(ctx context.Context, conversationID, userID string) error {
	key := t.key(conversationID)
	now := float64(time.Now().UnixMilli())

	pipe := t.client.Pipeline()
	pipe.ZAdd(ctx, key, redis.Z{Score: now, Member: userID})
	pipe.Expire(ctx, key, t.ttl*2)
	_, err := pipe.Exec(ctx)
	return err
}

// ActiveTypers prunes stale members then returns the rest, excluding the
// viewer.
func (t *RedisTracker) ActiveTypers(ctx context.Context, conversationID, excludingUserID string) ([]string, error) {
	key := t.key(conversationID)
	cutoff := time.Now().Add(-t.ttl).UnixMilli()

	if err := t.client.ZRemRangeByScore(ctx, key, "-inf", strconv.FormatInt(cutoff, 10)).Err(); err != nil {
		return nil, err
	}

	members, err := t.client.ZRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, err
	}

	active := members[:0]
	for _, userID := range members {
		if userID != excludingUserID {
			active = append(active, userID)
		}
	}
	return active, nil
}
