package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog/log"

	"github.com/i474232898/weather-activity-assistant/internal/weather"
)

const fetchTimeout = 30 * time.Second

// Scheduler periodically fetches today's weather for configured locations so
// a caching provider stays warm for the most common queries.
type Scheduler struct {
	scheduler *gocron.Scheduler
	provider  weather.Provider
	locations []weather.Location
	interval  time.Duration
}

// New creates a new Scheduler.
func New(locations []weather.Location, interval time.Duration, provider weather.Provider) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		provider:  provider,
		locations: locations,
		interval:  interval,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if len(s.locations) == 0 {
		log.Info().Msg("scheduler: no warm locations configured; nothing to schedule")
		return nil
	}

	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 15
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(func() {
		s.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// RunOnce fetches every location concurrently and returns the number of
// successful fetches.
func (s *Scheduler) RunOnce(ctx context.Context) int {
	log.Debug().Int("locations", len(s.locations)).Msg("scheduler: running warm-up job")

	var (
		wg sync.WaitGroup
		mu sync.Mutex
		ok int
	)
	for _, loc := range s.locations {
		wg.Add(1)
		go func() {
			defer wg.Done()

			ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
			defer cancel()

			if _, err := s.provider.Fetch(ctx, loc, weather.PeriodToday); err != nil {
				log.Warn().Err(err).Str("location", loc.Key()).Str("provider", s.provider.Name()).Msg("scheduler: fetch failed")
				return
			}
			mu.Lock()
			ok++
			mu.Unlock()
		}()
	}
	wg.Wait()

	log.Debug().Int("ok", ok).Int("locations", len(s.locations)).Msg("scheduler: completed warm-up job")
	return ok
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
