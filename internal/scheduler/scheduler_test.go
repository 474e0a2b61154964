package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-activity-assistant/internal/weather"
)

type recordingProvider struct {
	mu      sync.Mutex
	fetched []weather.Location
	periods []weather.Period
	fail    map[string]bool
}

func (p *recordingProvider) Name() string { return "recording" }

func (p *recordingProvider) Fetch(ctx context.Context, loc weather.Location, period weather.Period) (weather.Snapshot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fetched = append(p.fetched, loc)
	p.periods = append(p.periods, period)
	if p.fail[loc.Key()] {
		return weather.Snapshot{}, weather.ErrUpstream
	}
	return weather.Snapshot{LocationName: loc.City, Description: "clear sky"}, nil
}

func TestRunOnceFetchesEveryLocationForToday(t *testing.T) {
	locs := []weather.Location{
		{City: "Paris", Region: "France"},
		{City: "Austin", Region: "Texas"},
		{City: "Tokyo"},
	}
	p := &recordingProvider{fail: map[string]bool{"tokyo:": true}}
	s := New(locs, time.Minute, p)

	ok := s.RunOnce(context.Background())

	assert.Equal(t, 2, ok)
	assert.ElementsMatch(t, locs, p.fetched)
	for _, period := range p.periods {
		assert.Equal(t, weather.PeriodToday, period)
	}
}

func TestStartWithoutLocationsIsNoop(t *testing.T) {
	p := &recordingProvider{}
	s := New(nil, time.Minute, p)

	require.NoError(t, s.Start())
	s.Stop()
	assert.Empty(t, p.fetched)
}

func TestStartRunsJobImmediately(t *testing.T) {
	p := &recordingProvider{}
	s := New([]weather.Location{{City: "Oslo"}}, time.Hour, p)

	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Eventually(t, func() bool {
		p.mu.Lock()
		defer p.mu.Unlock()
		return len(p.fetched) > 0
	}, 2*time.Second, 10*time.Millisecond)
}
