package services

import (
	"car_configurator_server/structs"
	"context"
	"crypto/rand"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	redisClient *redis.Client
	redisOnce   sync.Once
)

const (
	catalogKeyPrefix   = "catalog:"
	blacklistKeyPrefix = "blacklist:"
	rateLimitKeyPrefix = "ratelimit:"
)

// CacheService provides Redis caching with connection pooling and retry logic.
// With caching disabled every read misses and every write is a no-op.
type CacheService struct {
	logger *gecho.Logger
	config *structs.Config
	client *redis.Client
}

func NewCacheService(logger *gecho.Logger, cfg *structs.Config) *CacheService {
	cs := &CacheService{logger: logger, config: cfg}
	if cfg.Cache.Enabled {
		cs.client = getRedisClient(cfg.Cache)
	}
	return cs
}

// getRedisClient returns a singleton Redis client with proper connection pooling
func getRedisClient(cfg *structs.CacheConfig) *redis.Client {
	redisOnce.Do(func() {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Address,
			Username: cfg.Username,
			Password: cfg.Password,
			DB:       cfg.DB,

			PoolSize:        cfg.PoolSize,
			MinIdleConns:    cfg.MinIdleConns,
			MaxIdleConns:    cfg.MaxIdleConns,
			PoolTimeout:     cfg.PoolTimeout,
			ConnMaxIdleTime: cfg.IdleTimeout,

			DialTimeout:  cfg.DialTimeout,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,

			MaxRetries:      cfg.MaxRetries,
			MinRetryBackoff: cfg.MinRetryBackoff,
			MaxRetryBackoff: cfg.MaxRetryBackoff,
		})
	})
	return redisClient
}

func (cs *CacheService) Enabled() bool {
	return cs.client != nil
}

// Close closes the Redis connection pool
func (cs *CacheService) Close() error {
	if cs.client != nil {
		return cs.client.Close()
	}
	return nil
}

// withRetry executes a Redis operation with exponential backoff and ±50% jitter
func (cs *CacheService) withRetry(ctx context.Context, operation func() error, maxRetries int) error {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		err := operation()
		if err == nil {
			return nil
		}
		lastErr = err

		if attempt == maxRetries || !isRetryableRedisError(err) {
			break
		}

		backoff := min(100*(1<<attempt), 2000) // ms

		var jitterBytes [4]byte
		jitter := 0
		if _, err := rand.Read(jitterBytes[:]); err == nil {
			jitter = int(binary.BigEndian.Uint32(jitterBytes[:]) % uint32(backoff/2+1))
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(backoff/2+jitter) * time.Millisecond):
		}
	}

	if isRetryableRedisError(lastErr) {
		return fmt.Errorf("redis operation failed after %d retries: %w", maxRetries, lastErr)
	}
	return lastErr
}

// isRetryableRedisError determines if an error is worth retrying
func isRetryableRedisError(err error) bool {
	if err == nil || errors.Is(err, redis.Nil) {
		return false
	}

	errStr := err.Error()
	for _, retryable := range []string{
		"connection refused",
		"connection reset",
		"timeout",
		"broken pipe",
		"no such host",
		"network is unreachable",
	} {
		if strings.Contains(errStr, retryable) {
			return true
		}
	}
	return false
}

// Set sets a key with TTL
func (cs *CacheService) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if !cs.Enabled() {
		return nil
	}
	return cs.withRetry(ctx, func() error {
		return cs.client.Set(ctx, key, value, ttl).Err()
	}, 3)
}

// Get retrieves a key. A missing key returns "" with a nil error.
func (cs *CacheService) Get(ctx context.Context, key string) (string, error) {
	if !cs.Enabled() {
		return "", nil
	}

	var result string
	err := cs.withRetry(ctx, func() error {
		val, err := cs.client.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			result = ""
			return nil
		}
		if err != nil {
			return err
		}
		result = val
		return nil
	}, 3)

	return result, err
}

// Delete removes a key
func (cs *CacheService) Delete(ctx context.Context, key string) error {
	if !cs.Enabled() {
		return nil
	}
	return cs.withRetry(ctx, func() error {
		return cs.client.Del(ctx, key).Err()
	}, 3)
}

// DeletePattern removes all keys matching a pattern using SCAN
func (cs *CacheService) DeletePattern(ctx context.Context, pattern string) error {
	if !cs.Enabled() {
		return nil
	}
	return cs.withRetry(ctx, func() error {
		var cursor uint64
		for {
			keys, next, err := cs.client.Scan(ctx, cursor, pattern, 100).Result()
			if err != nil {
				return fmt.Errorf("scan failed: %w", err)
			}
			if len(keys) > 0 {
				if err := cs.client.Del(ctx, keys...).Err(); err != nil {
					return fmt.Errorf("delete failed: %w", err)
				}
			}
			cursor = next
			if cursor == 0 {
				return nil
			}
		}
	}, 3)
}

// ClearAll flushes the selected Redis database
func (cs *CacheService) ClearAll(ctx context.Context) error {
	if !cs.Enabled() {
		return nil
	}
	return cs.withRetry(ctx, func() error {
		return cs.client.FlushDB(ctx).Err()
	}, 3)
}

// ============================================================================
// Catalog
// ============================================================================

// GetCatalogEntry decodes a cached catalog value into dest and reports whether it was present.
func (cs *CacheService) GetCatalogEntry(ctx context.Context, key string, dest any) (bool, error) {
	val, err := cs.Get(ctx, catalogKeyPrefix+key)
	if err != nil || val == "" {
		return false, err
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, err
	}
	return true, nil
}

func (cs *CacheService) SetCatalogEntry(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return cs.Set(ctx, catalogKeyPrefix+key, data, cs.catalogTTL())
}

// InvalidateCatalog drops every cached catalog read. Called after any admin catalog write.
func (cs *CacheService) InvalidateCatalog(ctx context.Context) error {
	if err := cs.DeletePattern(ctx, catalogKeyPrefix+"*"); err != nil {
		cs.logger.Warn("Failed to invalidate catalog cache", gecho.Field("error", err))
		return err
	}
	cs.logger.Debug("Catalog cache invalidated")
	return nil
}

func (cs *CacheService) catalogTTL() time.Duration {
	if cs.config.Cache.CatalogTTL > 0 {
		return cs.config.Cache.CatalogTTL
	}
	return 5 * time.Minute
}

// ============================================================================
// Token blacklist
// ============================================================================

// BlacklistToken revokes a token's jti until the token would have expired anyway
func (cs *CacheService) BlacklistToken(ctx context.Context, jti uuid.UUID, exp time.Time) error {
	ttl := cs.config.Auth.BlacklistTTL
	if exp.After(time.Now()) {
		ttl = time.Until(exp)
	}
	return cs.Set(ctx, blacklistKeyPrefix+jti.String(), "true", ttl)
}

func (cs *CacheService) IsTokenBlacklisted(ctx context.Context, jti uuid.UUID) (bool, error) {
	val, err := cs.Get(ctx, blacklistKeyPrefix+jti.String())
	if err != nil {
		return false, err
	}
	return val == "true", nil
}

// ============================================================================
// Rate limiting
// ============================================================================

// IncrementRateLimit atomically increments a rate limit counter and starts its window on first use
func (cs *CacheService) IncrementRateLimit(ctx context.Context, ip, endpoint string, window time.Duration) (int, error) {
	if !cs.Enabled() {
		return 0, nil
	}

	key := fmt.Sprintf("%s%s:%s", rateLimitKeyPrefix, ip, endpoint)

	var result int64
	err := cs.withRetry(ctx, func() error {
		val, err := cs.client.Incr(ctx, key).Result()
		if err != nil {
			return err
		}
		result = val
		if val == 1 {
			return cs.client.Expire(ctx, key, window).Err()
		}
		return nil
	}, 3)

	return int(result), err
}

// Ping tests the Redis connection
func (cs *CacheService) Ping(ctx context.Context) error {
	if !cs.Enabled() {
		return errors.New("cache is disabled")
	}
	return cs.withRetry(ctx, func() error {
		return cs.client.Ping(ctx).Err()
	}, 1)
}

// GetConnectionStats returns Redis connection pool statistics
func (cs *CacheService) GetConnectionStats() map[string]any {
	if !cs.Enabled() {
		return map[string]any{"enabled": false}
	}
	stats := cs.client.PoolStats()

	return map[string]any{
		"enabled":     true,
		"hits":        stats.Hits,
		"misses":      stats.Misses,
		"timeouts":    stats.Timeouts,
		"total_conns": stats.TotalConns,
		"idle_conns":  stats.IdleConns,
		"stale_conns": stats.StaleConns,
	}
}
