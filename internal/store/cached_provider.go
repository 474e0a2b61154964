package store

import (
	"context"
	"errors"

	"github.com/i474232898/weather-activity-assistant/internal/observability"
	"github.com/i474232898/weather-activity-assistant/internal/weather"
)

// CachedWeatherProvider serves recent snapshots from a weather.Store and
// falls through to the wrapped provider on a miss. Cache failures never fail
// a fetch.
type CachedWeatherProvider struct {
	next  weather.Provider
	store weather.Store
}

func NewCachedWeatherProvider(next weather.Provider, store weather.Store) *CachedWeatherProvider {
	return &CachedWeatherProvider{next: next, store: store}
}

func (c *CachedWeatherProvider) Name() string {
	return c.next.Name()
}

// CacheKey is the store key for a provider, period and location.
func CacheKey(provider string, period weather.Period, loc weather.Location) string {
	return provider + ":" + string(period) + ":" + loc.Key()
}

func (c *CachedWeatherProvider) Fetch(ctx context.Context, loc weather.Location, period weather.Period) (weather.Snapshot, error) {
	logger := observability.LoggerFromContext(ctx)
	key := CacheKey(c.next.Name(), period, loc)

	snap, err := c.store.GetLatest(ctx, key)
	if err == nil && !snap.Empty() {
		logger.Debug().Str("cache_key", key).Msg("weather cache hit")
		return snap, nil
	}
	if err != nil && !errors.Is(err, ErrNotFound) {
		logger.Warn().Err(err).Str("cache_key", key).Msg("weather cache read failed")
	}

	snap, err = c.next.Fetch(ctx, loc, period)
	if err != nil {
		return weather.Snapshot{}, err
	}
	if snap.Empty() {
		return snap, nil
	}

	if err := c.store.SaveSnapshot(ctx, key, snap); err != nil {
		logger.Warn().Err(err).Str("cache_key", key).Msg("weather cache write failed")
	}
	return snap, nil
}
