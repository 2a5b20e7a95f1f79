// Package storage provides caching and local persistence for scoutle.
package storage

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/scoutle/internal/config"
)

// RedisClient wraps go-redis client. Without a reachable Redis it keeps
// entries in process memory so callers see the same cache semantics.
type RedisClient struct {
	client  *redis.Client
	enabled bool
	ctx     context.Context
	prefix  string
	log     zerolog.Logger

	mu     sync.Mutex
	memory map[string]memoryEntry
	now    func() time.Time
}

type memoryEntry struct {
	value   string
	expires time.Time // zero means no expiry
}

// NewRedisClient creates a new Redis client using go-redis.
func NewRedisClient(cfg *config.Config, log zerolog.Logger) *RedisClient {
	redisURL := cfg.RedisURL
	if redisURL == "" {
		log.Debug().Msg("redis not configured (REDIS_URL missing), using memory only")
		return newMemoryClient(cfg.RedisKeyPrefix, log)
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Warn().Err(err).Msg("failed to parse REDIS_URL, using memory only")
		return newMemoryClient(cfg.RedisKeyPrefix, log)
	}

	opt.PoolSize = 5
	opt.MinIdleConns = 1
	opt.DialTimeout = 5 * time.Second
	opt.ReadTimeout = 3 * time.Second
	opt.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opt)
	ctx := context.Background()

	// Test connection
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Msg("redis connection failed, using memory only")
		_ = client.Close()
		return newMemoryClient(cfg.RedisKeyPrefix, log)
	}

	log.Info().Str("addr", opt.Addr).Msg("redis connected")
	return &RedisClient{
		client:  client,
		enabled: true,
		ctx:     ctx,
		prefix:  cfg.RedisKeyPrefix,
		log:     log,
	}
}

// NewMemoryClient returns a cache that never touches Redis.
func NewMemoryClient() *RedisClient {
	return newMemoryClient("", zerolog.Nop())
}

func newMemoryClient(prefix string, log zerolog.Logger) *RedisClient {
	return &RedisClient{
		ctx:    context.Background(),
		prefix: prefix,
		log:    log,
		memory: make(map[string]memoryEntry),
		now:    time.Now,
	}
}

// Enabled reports whether values are stored in Redis rather than memory.
func (r *RedisClient) Enabled() bool {
	return r.enabled
}

// Get retrieves a value. A missing or expired key returns "" and no error.
func (r *RedisClient) Get(key string) (string, error) {
	key = r.prefix + key
	if !r.enabled {
		r.mu.Lock()
		defer r.mu.Unlock()
		e, ok := r.memory[key]
		if !ok {
			return "", nil
		}
		if !e.expires.IsZero() && !r.now().Before(e.expires) {
			delete(r.memory, key)
			return "", nil
		}
		return e.value, nil
	}
	val, err := r.client.Get(r.ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	return val, err
}

// Set stores a value (no expiration).
func (r *RedisClient) Set(key string, value string) error {
	return r.SetWithTTL(key, value, 0)
}

// SetWithTTL stores a value that expires after ttl. A zero ttl never expires.
func (r *RedisClient) SetWithTTL(key string, value string, ttl time.Duration) error {
	key = r.prefix + key
	if !r.enabled {
		r.mu.Lock()
		defer r.mu.Unlock()
		e := memoryEntry{value: value}
		if ttl > 0 {
			e.expires = r.now().Add(ttl)
		}
		r.memory[key] = e
		return nil
	}
	return r.client.Set(r.ctx, key, value, ttl).Err()
}

// Delete removes a key.
func (r *RedisClient) Delete(key string) error {
	key = r.prefix + key
	if !r.enabled {
		r.mu.Lock()
		delete(r.memory, key)
		r.mu.Unlock()
		return nil
	}
	return r.client.Del(r.ctx, key).Err()
}

// Close releases the Redis connection pool.
func (r *RedisClient) Close() error {
	if !r.enabled {
		return nil
	}
	return r.client.Close()
}
