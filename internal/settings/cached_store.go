package settings

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"greengrass/internal/logger"

	"github.com/go-redis/redis/v8"
)

const cachePrefix = "settings:"

// CachedStore is a read-through Redis cache in front of another Store.
// Redis failures degrade to the underlying store.
type CachedStore struct {
	next   Store
	rdb    *redis.Client
	ttl    time.Duration
	logger *logger.Logger
}

func NewCachedStore(next Store, rdb *redis.Client, ttl time.Duration, logger *logger.Logger) *CachedStore {
	return &CachedStore{next: next, rdb: rdb, ttl: ttl, logger: logger}
}

func (s *CachedStore) Get(ctx context.Context, key string) (json.RawMessage, error) {
	cached, err := s.rdb.Get(ctx, cachePrefix+key).Bytes()
	if err == nil {
		return json.RawMessage(cached), nil
	}
	if !errors.Is(err, redis.Nil) {
		s.logger.Warn("settings cache read failed for %s: %v", key, err)
	}

	value, err := s.next.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	if err := s.rdb.Set(ctx, cachePrefix+key, []byte(value), s.ttl).Err(); err != nil {
		s.logger.Warn("settings cache write failed for %s: %v", key, err)
	}
	return value, nil
}

func (s *CachedStore) Upsert(ctx context.Context, key string, value json.RawMessage) error {
	if err := s.next.Upsert(ctx, key, value); err != nil {
		return err
	}
	s.Invalidate(ctx, key)
	return nil
}

func (s *CachedStore) List(ctx context.Context) ([]Setting, error) {
	return s.next.List(ctx)
}

// Invalidate drops the cached value for key. The worker calls it when a
// change arrives from another writer.
func (s *CachedStore) Invalidate(ctx context.Context, key string) {
	if err := s.rdb.Del(ctx, cachePrefix+key).Err(); err != nil {
		s.logger.Warn("settings cache invalidate failed for %s: %v", key, err)
	}
}
