package kvstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/epicurean/epicurean/config"
)

// RedisStore persists snapshots in Redis so every API node sees the same
// cart. Values are stored without TTL; carts live until cleared.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore() (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr(),
		Password: config.RedisPassword(),
		DB:       1, // keep cart snapshots out of the cache keyspace
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("kvstore/redis: ping: %w", err)
	}
	return &RedisStore{rdb: rdb}, nil
}

func (s *RedisStore) Get(key string) (string, bool, error) {
	val, err := s.rdb.Get(context.Background(), key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("kvstore/redis: get %s: %w", key, err)
	}
	return val, true, nil
}

func (s *RedisStore) Set(key, value string) error {
	if err := s.rdb.Set(context.Background(), key, value, 0).Err(); err != nil {
		return fmt.Errorf("kvstore/redis: set %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Delete(key string) error {
	if err := s.rdb.Del(context.Background(), key).Err(); err != nil {
		return fmt.Errorf("kvstore/redis: delete %s: %w", key, err)
	}
	return nil
}
