package session

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func sessionKey(sid, key string) string {
	return "sess:" + sid + ":" + key
}

func (s *RedisStore) Get(ctx context.Context, sid, key string) (string, error) {
	val, err := s.rdb.Get(ctx, sessionKey(sid, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNoValue
	}
	return val, err
}

func (s *RedisStore) Set(ctx context.Context, sid, key, value string) error {
	return s.rdb.Set(ctx, sessionKey(sid, key), value, s.ttl).Err()
}

func (s *RedisStore) Clear(ctx context.Context, sid, key string) error {
	return s.rdb.Del(ctx, sessionKey(sid, key)).Err()
}
