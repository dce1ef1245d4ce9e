package cache

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/coursio/streams-ms-go/internal/db"
	"github.com/coursio/streams-ms-go/internal/port"
	"github.com/redis/go-redis/v9"
)

type Cache struct {
	client *redis.Client
}

// compile-time check: *Cache must satisfy port.Cache
var _ port.Cache = (*Cache)(nil)

func NewCache(addr, password string) *Cache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	return &Cache{client: rdb}
}

// GetStreamAccess returns the IP address authorised for this (user, lesson)
// viewing session, or "" when no live entry exists.
func (c *Cache) GetStreamAccess(ctx context.Context, userID, lessonID db.UUID) (string, error) {
	val, err := c.client.Get(ctx, getStreamAccessKey(userID, lessonID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil // cache miss
	}
	if err != nil {
		return "", fmt.Errorf("redis get failed: %w", err)
	}
	return val, nil
}

// SetStreamAccess records the authorising IP for a viewing session. Overwrites
// idempotently; expiry is TTL-only, there is no delete path.
func (c *Cache) SetStreamAccess(ctx context.Context, userID, lessonID db.UUID, ip string, ttl time.Duration) {
	log.Printf("authorising IP %s to stream lesson #%s for %s...", ip, lessonID, ttl)

	if err := c.client.Set(ctx, getStreamAccessKey(userID, lessonID), ip, ttl).Err(); err != nil {
		log.Printf("warning: redis set failed for lesson #%s: %v", lessonID, err)
	}
}

func getStreamAccessKey(userID, lessonID db.UUID) string {
	return fmt.Sprintf("hls_access_%s_%s", userID, lessonID)
}
