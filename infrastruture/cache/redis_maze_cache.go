// Package cache keeps encoded mazes in Redis and serializes seeded generation with redsync.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

const lockExpiry = 10 * time.Second

var (
	_ i.MazeCache = &RedisMazeCache{}
	_ i.Locker    = &RedisMazeCache{}
)

// RedisMazeCache stores encoded maze records in Redis with TTL support.
type RedisMazeCache struct {
	client  *redis.Client
	locker  *redsync.Redsync
	encoder i.MazeEncoder
	ttl     time.Duration
}

// NewRedisMazeCache initializes a RedisMazeCache with the provided Redis client, encoder and TTL.
func NewRedisMazeCache(client *redis.Client, enc i.MazeEncoder, ttlSeconds int) (*RedisMazeCache, error) {
	if client == nil || enc == nil {
		return nil, errors.New("redis client and encoder are required")
	}
	if ttlSeconds < 1 {
		return nil, fmt.Errorf("cache ttl must be positive, got %d", ttlSeconds)
	}

	cache := &RedisMazeCache{
		client:  client,
		encoder: enc,
		ttl:     time.Duration(ttlSeconds) * time.Second,
	}
	pool := goredis.NewPool(client)
	cache.locker = redsync.New(pool)
	return cache, nil
}

// Get implements i.MazeCache. A missing key is not an error.
func (c *RedisMazeCache) Get(ctx context.Context, key string) (*dmn.MazeRecord, bool, error) {
	b, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	record, err := c.encoder.UnmarshalMaze(b)
	if err != nil {
		return nil, false, fmt.Errorf("decoding cached %s: %w", key, err)
	}
	return record, true, nil
}

// Set implements i.MazeCache.
func (c *RedisMazeCache) Set(ctx context.Context, key string, record *dmn.MazeRecord) error {
	b, err := c.encoder.MarshalMaze(record)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, b, c.ttl).Err()
}

// Lock implements i.Locker.
func (c *RedisMazeCache) Lock(ctx context.Context, key string) (func() error, error) {
	mutex := c.locker.NewMutex(key+":lock", redsync.WithExpiry(lockExpiry))
	if err := mutex.LockContext(ctx); err != nil {
		return nil, err
	}

	return func() error {
		_, err := mutex.Unlock()
		return err
	}, nil
}
