package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache TTLs. Handle-to-channel-id mappings are effectively stable;
// identity snapshots (title, thumbnail) change rarely but do change.
const (
	ResolveCacheTTL  = 24 * time.Hour
	IdentityCacheTTL = 15 * time.Minute
)

// CacheService is a Redis cache-aside layer for channel resolution and
// identity lookups, saving round-trips to the analytics API and YouTube.
type CacheService struct {
	rdb *redis.Client
}

// NewCacheService creates a new CacheService. If redisURL is empty or connection
// fails, it returns a CacheService with a nil client (cache operations become no-ops).
func NewCacheService(redisURL string) *CacheService {
	if redisURL == "" {
		log.Println("redis: no URL configured, caching disabled")
		return &CacheService{}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("redis: invalid URL %q, caching disabled: %v", redisURL, err)
		return &CacheService{}
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("redis: connection failed, caching disabled: %v", err)
		return &CacheService{}
	}

	log.Println("redis: connected, caching enabled")
	return &CacheService{rdb: rdb}
}

// Client returns the underlying Redis client (for health checks). May be nil.
func (c *CacheService) Client() *redis.Client {
	return c.rdb
}

// GetResolvedChannel returns the cached channel id for an input string.
// Returns "" if not cached or cache is disabled.
func (c *CacheService) GetResolvedChannel(ctx context.Context, input string) (string, error) {
	if c.rdb == nil {
		return "", nil
	}
	id, err := c.rdb.Get(ctx, resolveKey(input)).Result()
	if err == redis.Nil {
		return "", nil
	}
	return id, err
}

// SetResolvedChannel caches an input-to-channel-id mapping.
func (c *CacheService) SetResolvedChannel(ctx context.Context, input, channelID string) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Set(ctx, resolveKey(input), channelID, ResolveCacheTTL).Err()
}

// GetIdentity retrieves a cached identity snapshot. Returns nil if not cached.
func (c *CacheService) GetIdentity(ctx context.Context, input string) ([]byte, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, identityKey(input)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	return data, err
}

// SetIdentity stores an identity snapshot in cache.
func (c *CacheService) SetIdentity(ctx context.Context, input string, data interface{}) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, identityKey(input), b, IdentityCacheTTL).Err()
}

// Close shuts down the Redis connection.
func (c *CacheService) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

func resolveKey(input string) string {
	return fmt.Sprintf("resolve:%s", strings.ToLower(strings.TrimSpace(input)))
}

func identityKey(input string) string {
	return fmt.Sprintf("identity:%s", strings.ToLower(strings.TrimSpace(input)))
}
