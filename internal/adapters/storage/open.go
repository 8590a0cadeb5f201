package storage

import (
	"context"
	"fmt"

	"github.com/AssiaOU26/Cars-front/internal/config"
	"github.com/AssiaOU26/Cars-front/internal/core/ports"
)

// Open builds the store selected by CARS_STORAGE. The returned closer
// releases any connection it opened.
func Open(ctx context.Context, cfg *config.Config) (ports.LocalStorage, func() error, error) {
	switch cfg.StorageDriver {
	case config.StorageRedis:
		client := NewRedisClient(cfg)
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("connect to redis at %s: %w", cfg.RedisAddress, err)
		}
		return NewRedisStorage(client, cfg.RedisPrefix), client.Close, nil
	case config.StorageFile, "":
		store, err := NewFileStorage(cfg.StoragePath)
		if err != nil {
			return nil, nil, err
		}
		return store, func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
