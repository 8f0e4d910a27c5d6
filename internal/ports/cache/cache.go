package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss ключа нет или истёк TTL
var ErrCacheMiss = errors.New("cache miss")

// Cache интерфейс для работы с кэшем
type Cache interface {
	// Get возвращает ErrCacheMiss (обёрнутый), если ключа нет
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Close() error
}
