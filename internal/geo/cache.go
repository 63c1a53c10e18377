package geo

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"matchengine/internal/common/logger"
	"matchengine/internal/common/metrics"

	"github.com/redis/go-redis/v9"
)

// CachedResolver decorates a Resolver with a Redis cache keyed by the
// normalized location string. Unresolved outcomes are cached too, so a
// misspelled location does not hammer the external service. Cache failures
// degrade to a direct lookup.
type CachedResolver struct {
	inner  Resolver
	redis  *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

type cachedCoordinate struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
	Resolved  bool    `json:"resolved"`
}

func NewCachedResolver(inner Resolver, rdb *redis.Client, ttl time.Duration, log logger.Logger) *CachedResolver {
	return &CachedResolver{
		inner:  inner,
		redis:  rdb,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "geocode-cache"}),
	}
}

func (c *CachedResolver) Resolve(ctx context.Context, location string) (Coordinate, bool) {
	if IsUnlocatable(location) {
		return Coordinate{}, false
	}

	key := cacheKey(location)
	if val, err := c.redis.Get(ctx, key).Result(); err == nil {
		var cached cachedCoordinate
		if err := json.Unmarshal([]byte(val), &cached); err == nil {
			metrics.GeocodeLookups.WithLabelValues("cached").Inc()
			return Coordinate{Latitude: cached.Latitude, Longitude: cached.Longitude}, cached.Resolved
		}
	}

	coord, ok := c.inner.Resolve(ctx, location)

	data, err := json.Marshal(cachedCoordinate{
		Latitude:  coord.Latitude,
		Longitude: coord.Longitude,
		Resolved:  ok,
	})
	if err == nil {
		if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.logger.Warn("failed to cache geocode result", map[string]interface{}{
				"location": location,
				"error":    err.Error(),
			})
		}
	}

	return coord, ok
}

func cacheKey(location string) string {
	return "geo:location:" + strings.ToLower(strings.TrimSpace(location))
}
