package state

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps one watermark key per feed. Useful when several
// instances share state or the local filesystem is ephemeral.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func watermarkKey(feed string) string {
	return fmt.Sprintf("newswatch:watermark:%s", feed)
}

func (s *RedisStore) Get(ctx context.Context, feed string) (time.Time, bool, error) {
	raw, err := s.rdb.Get(ctx, watermarkKey(feed)).Result()
	if err == redis.Nil {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	t, err := ParseTime(raw)
	if err != nil {
		return time.Time{}, false, nil
	}
	return t, true, nil
}

func (s *RedisStore) Set(ctx context.Context, feed string, t time.Time) error {
	return s.rdb.Set(ctx, watermarkKey(feed), FormatTime(t), 0).Err()
}
