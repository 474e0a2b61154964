package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-activity-assistant/internal/weather"
)

type countingProvider struct {
	calls int
	snap  weather.Snapshot
	err   error
}

func (p *countingProvider) Name() string { return "fake" }

func (p *countingProvider) Fetch(ctx context.Context, loc weather.Location, period weather.Period) (weather.Snapshot, error) {
	p.calls++
	return p.snap, p.err
}

type brokenStore struct{}

func (brokenStore) SaveSnapshot(context.Context, string, weather.Snapshot) error {
	return errors.New("connection refused")
}

func (brokenStore) GetLatest(context.Context, string) (weather.Snapshot, error) {
	return weather.Snapshot{}, errors.New("connection refused")
}

func TestCachedWeatherProviderServesFromCache(t *testing.T) {
	ctx := context.Background()
	next := &countingProvider{snap: weather.Snapshot{LocationName: "Paris", Description: "clear sky"}}
	c := NewCachedWeatherProvider(next, NewMemoryStore(10, 0))
	loc := weather.Location{City: "Paris", Region: "France"}

	first, err := c.Fetch(ctx, loc, weather.PeriodToday)
	require.NoError(t, err)
	second, err := c.Fetch(ctx, weather.Location{City: "PARIS", Region: "france"}, weather.PeriodToday)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, next.calls)

	_, err = c.Fetch(ctx, loc, weather.PeriodTomorrow)
	require.NoError(t, err)
	assert.Equal(t, 2, next.calls, "periods are cached separately")
}

func TestCachedWeatherProviderDoesNotCacheErrors(t *testing.T) {
	ctx := context.Background()
	next := &countingProvider{err: weather.ErrNotFound}
	c := NewCachedWeatherProvider(next, NewMemoryStore(10, 0))

	for i := 0; i < 2; i++ {
		_, err := c.Fetch(ctx, weather.Location{City: "Atlantis"}, weather.PeriodToday)
		assert.ErrorIs(t, err, weather.ErrNotFound)
	}
	assert.Equal(t, 2, next.calls)
}

func TestCachedWeatherProviderBypassesBrokenStore(t *testing.T) {
	next := &countingProvider{snap: weather.Snapshot{LocationName: "Oslo", Description: "snow"}}
	c := NewCachedWeatherProvider(next, brokenStore{})

	snap, err := c.Fetch(context.Background(), weather.Location{City: "Oslo"}, weather.PeriodToday)
	require.NoError(t, err)
	assert.Equal(t, "snow", snap.Description)
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "openmeteo:today:austin:texas", CacheKey("openmeteo", weather.PeriodToday, weather.Location{City: "Austin", Region: "Texas"}))
}
