package decorators

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/weatherops/weather-automation-api/internal/models"
)

type liveClient interface {
	Fetch(ctx context.Context, city string) (models.WeatherSnapshot, error)
}

type cacheClient[T any] interface {
	Set(ctx context.Context, key string, value T, expiration time.Duration) error
	Get(ctx context.Context, key string, returnValue *T) error
}

// CachedClient memoizes successful live-provider lookups. It wraps the live
// client only, so fallback snapshots are recomputed on every resolution.
type CachedClient struct {
	inner    liveClient
	cache    cacheClient[models.WeatherSnapshot]
	logger   *log.Logger
	liveTime time.Duration
}

func NewCachedClient(
	inner liveClient,
	cache cacheClient[models.WeatherSnapshot],
	logger *log.Logger,
	liveTime time.Duration,
) *CachedClient {
	return &CachedClient{inner: inner, cache: cache, logger: logger, liveTime: liveTime}
}

func (c *CachedClient) Fetch(ctx context.Context, city string) (models.WeatherSnapshot, error) {
	key := fmt.Sprintf("weather:%s", city)

	var snapshot models.WeatherSnapshot
	if err := c.cache.Get(ctx, key, &snapshot); err == nil {
		c.logger.Printf("cache hit for city %s", city)
		return snapshot, nil
	}

	snapshot, err := c.inner.Fetch(ctx, city)
	if err != nil {
		return models.WeatherSnapshot{}, err
	}

	if err := c.cache.Set(ctx, key, snapshot, c.liveTime); err != nil {
		c.logger.Printf("cache set failed for city %s: %v", city, err)
	}

	return snapshot, nil
}
