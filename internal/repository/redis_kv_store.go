package repository

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

type redisKVStore struct {
	client *redis.Client
}

// NewRedisKVStore stores records without a redis TTL; expiry is judged from
// the record timestamp on read.
func NewRedisKVStore(client *redis.Client) KVStore {
	return &redisKVStore{client: client}
}

func (s *redisKVStore) Get(ctx context.Context, key string) (string, error) {
	v, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

func (s *redisKVStore) Set(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, key, value, 0).Err()
}

func (s *redisKVStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

func (s *redisKVStore) Close() error {
	return s.client.Close()
}
