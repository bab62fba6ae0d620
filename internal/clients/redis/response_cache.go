package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/aicourse-backend/internal/platform/envutil"
	"github.com/yungbote/aicourse-backend/internal/platform/logger"
)

// ResponseCache stores generation results by prompt fingerprint.
type ResponseCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

type CacheConfig struct {
	Addr      string
	Password  string
	DB        int
	TTL       time.Duration
	KeyPrefix string
}

func CacheConfigFromEnv() CacheConfig {
	return CacheConfig{
		Addr:      strings.TrimSpace(envutil.String("REDIS_ADDR", "")),
		Password:  envutil.String("REDIS_PASSWORD", ""),
		DB:        envutil.Int("REDIS_DB", 0),
		TTL:       envutil.Seconds("REDIS_CACHE_TTL_SECONDS", 24*time.Hour),
		KeyPrefix: envutil.String("REDIS_CACHE_PREFIX", "aicourse:gen:"),
	}
}

type responseCache struct {
	log    *logger.Logger
	rdb    *goredis.Client
	ttl    time.Duration
	prefix string
}

func NewResponseCache(log *logger.Logger, cfg CacheConfig) (ResponseCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if cfg.Addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 24 * time.Hour
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	log.Info("Redis response cache enabled", "addr", cfg.Addr, "ttl", cfg.TTL.String())
	return &responseCache{
		log:    log.With("service", "RedisResponseCache"),
		rdb:    rdb,
		ttl:    cfg.TTL,
		prefix: cfg.KeyPrefix,
	}, nil
}

func (c *responseCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := c.rdb.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

func (c *responseCache) Set(ctx context.Context, key string, value []byte) error {
	return c.rdb.Set(ctx, c.prefix+key, value, c.ttl).Err()
}

func (c *responseCache) Close() error {
	return c.rdb.Close()
}
