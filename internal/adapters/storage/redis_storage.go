package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"

	"github.com/AssiaOU26/Cars-front/internal/config"
	"github.com/AssiaOU26/Cars-front/internal/core/ports"
)

// RedisClient is the subset of *redis.Client the store uses.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Ping(ctx context.Context) *redis.StatusCmd
}

// RedisStorage shares the session between several consoles on one host.
type RedisStorage struct {
	client RedisClient
	prefix string
	cb     *gobreaker.CircuitBreaker
}

var _ ports.LocalStorage = (*RedisStorage)(nil)

func NewRedisClient(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       0,
	})
}

func NewRedisStorage(client RedisClient, prefix string) *RedisStorage {
	return &RedisStorage{
		client: client,
		prefix: prefix,
		cb: config.NewCircuitBreaker(config.BreakerRedis, func(err error) bool {
			return err == nil || errors.Is(err, redis.Nil)
		}),
	}
}

func (s *RedisStorage) key(k string) string {
	return s.prefix + k
}

func (s *RedisStorage) Get(ctx context.Context, key string) (string, bool, error) {
	result, err := s.cb.Execute(func() (interface{}, error) {
		return s.client.Get(ctx, s.key(key)).Result()
	})
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	value, _ := result.(string)
	return value, true, nil
}

// Set stores the value without expiry; tokens carry their own.
func (s *RedisStorage) Set(ctx context.Context, key, value string) error {
	_, err := s.cb.Execute(func() (interface{}, error) {
		return nil, s.client.Set(ctx, s.key(key), value, 0).Err()
	})
	if err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (s *RedisStorage) Remove(ctx context.Context, key string) error {
	_, err := s.cb.Execute(func() (interface{}, error) {
		return nil, s.client.Del(ctx, s.key(key)).Err()
	})
	if err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

func (s *RedisStorage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStorage) BreakerState() gobreaker.State {
	return s.cb.State()
}
