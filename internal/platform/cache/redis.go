package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sarrafi-backoffice/internal/config"
)

// ErrCacheMiss indicates no cached report exists for the requested key
var ErrCacheMiss = errors.New("cache: key not found")

const netWorthReportKey = "reports:networth:latest"

// ReportCache stores rendered reports so repeated requests avoid a full
// ledger refold. Entries carry a TTL as a backstop against missed
// invalidations.
type ReportCache struct {
	client *redis.Client
	logger *slog.Logger
	ttl    time.Duration
}

func NewReportCache(ctx context.Context, logger *slog.Logger, cfg *config.RedisConfig) (*ReportCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	logger.Info("Connected to Redis")

	return &ReportCache{
		client: client,
		logger: logger,
		ttl:    cfg.ReportTTL,
	}, nil
}

// NewReportCacheWithClient wires an existing client, used by tests
func NewReportCacheWithClient(client *redis.Client, logger *slog.Logger, ttl time.Duration) *ReportCache {
	return &ReportCache{
		client: client,
		logger: logger,
		ttl:    ttl,
	}
}

// GetNetWorthReport returns the cached report, ErrCacheMiss when absent
func (c *ReportCache) GetNetWorthReport(ctx context.Context, dest interface{}) error {
	data, err := c.client.Get(ctx, netWorthReportKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return fmt.Errorf("failed to read cached net worth report: %w", err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to unmarshal cached net worth report: %w", err)
	}
	return nil
}

func (c *ReportCache) SetNetWorthReport(ctx context.Context, report interface{}) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal net worth report for cache: %w", err)
	}
	if err := c.client.Set(ctx, netWorthReportKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache net worth report: %w", err)
	}
	c.logger.Debug("Cached net worth report", "ttl", c.ttl)
	return nil
}

// InvalidateNetWorthReport drops the cached report after a ledger write
func (c *ReportCache) InvalidateNetWorthReport(ctx context.Context) error {
	if err := c.client.Del(ctx, netWorthReportKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate net worth report cache: %w", err)
	}
	return nil
}

func (c *ReportCache) Close() error {
	c.logger.Info("Closing Redis connection")
	return c.client.Close()
}
