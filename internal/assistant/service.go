package assistant

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"

	"github.com/i474232898/weather-activity-assistant/internal/activity"
	"github.com/i474232898/weather-activity-assistant/internal/observability"
	"github.com/i474232898/weather-activity-assistant/internal/query"
	"github.com/i474232898/weather-activity-assistant/internal/weather"
)

const (
	instrumentationName = "github.com/i474232898/weather-activity-assistant/internal/assistant"

	// DefaultRadiusMeters is the venue search radius around the location.
	DefaultRadiusMeters = 5000
)

// Options tunes a Service. Zero values fall back to defaults.
type Options struct {
	RadiusMeters int
	// ProviderTimeout bounds each provider call; expiry counts as an upstream error.
	ProviderTimeout time.Duration
}

// Service answers free-text weather queries: it extracts the location and
// period, fetches the weather, picks an activity category and looks up
// venues for it.
type Service struct {
	weather weather.Provider
	places  weather.PlacesProvider

	radius  int
	timeout time.Duration

	tracer   trace.Tracer
	outcomes metric.Int64Counter
}

// NewService creates a new Service.
func NewService(weatherProvider weather.Provider, placesProvider weather.PlacesProvider, opts Options) *Service {
	if opts.RadiusMeters <= 0 {
		opts.RadiusMeters = DefaultRadiusMeters
	}

	counter, err := otel.Meter(instrumentationName).Int64Counter(
		"assistant.queries",
		metric.WithDescription("Weather queries processed, by outcome"),
	)
	if err != nil {
		counter, _ = noop.NewMeterProvider().Meter(instrumentationName).Int64Counter("assistant.queries")
	}

	return &Service{
		weather:  weatherProvider,
		places:   placesProvider,
		radius:   opts.RadiusMeters,
		timeout:  opts.ProviderTimeout,
		tracer:   otel.Tracer(instrumentationName),
		outcomes: counter,
	}
}

// Process runs one query through the pipeline. It never returns an error or
// panics: every failure is folded into the Result's Outcome and Text.
func (s *Service) Process(ctx context.Context, rawQuery string) (res Result) {
	res = Result{ID: observability.RequestID(ctx), Query: rawQuery, Venues: weather.VenueList{}}
	if res.ID == "" {
		res.ID = uuid.NewString()
		ctx = observability.WithRequestID(ctx, res.ID)
	}

	ctx, span := s.tracer.Start(ctx, "assistant.Process")
	logger := observability.LoggerFromContext(ctx)

	defer func() {
		if r := recover(); r != nil {
			logger.Error().Interface("panic", r).Msg("query pipeline panicked")
			res = s.fail(res, OutcomeUpstreamFailure, MsgUpstreamFailure, fmt.Errorf("%w: panic: %v", weather.ErrUpstream, r))
		}

		span.SetAttributes(
			attribute.String("assistant.outcome", string(res.Outcome)),
			attribute.String("assistant.city", res.Location.City),
			attribute.String("assistant.period", string(res.Period)),
			attribute.String("assistant.category", string(res.Category)),
			attribute.Int("assistant.venues", len(res.Venues)),
		)
		span.End()
		s.outcomes.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", string(res.Outcome))))

		logger.Info().
			Str("outcome", string(res.Outcome)).
			Str("location", res.Location.String()).
			Str("period", string(res.Period)).
			Str("category", string(res.Category)).
			Int("venues", len(res.Venues)).
			Msg("query processed")
	}()

	parsed, err := query.Parse(rawQuery)
	res.Period = parsed.Period
	if err != nil {
		logger.Info().Str("filler_version", query.FillerVersion).Msg("no location in query")
		return s.fail(res, OutcomeNoLocation, MsgNoLocation, err)
	}
	res.Location = parsed.Location

	snap, err := s.fetchWeather(ctx, parsed.Location, parsed.Period)
	switch {
	case errors.Is(err, weather.ErrNotFound):
		logger.Info().Err(err).Str("provider", s.weather.Name()).Msg("weather location not found")
		return s.fail(res, OutcomeWeatherUnavailable, fmt.Sprintf(MsgWeatherUnavailable, parsed.Location), err)
	case err != nil:
		logger.Error().Err(err).Str("provider", s.weather.Name()).Msg("weather fetch failed")
		return s.fail(res, OutcomeUpstreamFailure, MsgUpstreamFailure, err)
	case snap.Empty():
		logger.Warn().Str("provider", s.weather.Name()).Msg("weather provider returned an empty snapshot")
		return s.fail(res, OutcomeWeatherUnavailable, fmt.Sprintf(MsgWeatherUnavailable, parsed.Location), weather.ErrNotFound)
	}
	if snap.LocationName == "" {
		snap.LocationName = parsed.Location.City
	}
	res.Weather = &snap

	res.Category = activity.Classify(snap.Description)

	venues, err := s.fetchVenues(ctx, parsed.Location, res.Category)
	res.Outcome = OutcomeComposed
	switch {
	case errors.Is(err, weather.ErrNotFound):
		logger.Warn().Err(err).Str("provider", s.places.Name()).Msg("places location not found; answering without venues")
		res.Outcome = OutcomeDegraded
		res.Err = err
		venues = nil
	case err != nil:
		logger.Error().Err(err).Str("provider", s.places.Name()).Msg("places lookup failed")
		return s.fail(res, OutcomeUpstreamFailure, MsgUpstreamFailure, err)
	}
	res.Venues = venues.Dedup()

	res.Text = Compose(snap, res.Venues)
	return res
}

func (s *Service) fail(res Result, outcome Outcome, text string, err error) Result {
	res.Outcome = outcome
	res.Text = text
	res.Err = err
	return res
}

func (s *Service) withDeadline(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *Service) fetchWeather(ctx context.Context, loc weather.Location, period weather.Period) (weather.Snapshot, error) {
	ctx, cancel := s.withDeadline(ctx)
	defer cancel()

	ctx, span := s.tracer.Start(ctx, "weather.Fetch", trace.WithAttributes(attribute.String("provider", s.weather.Name())))
	defer span.End()

	snap, err := s.weather.Fetch(ctx, loc, period)
	return snap, asUpstream(err)
}

func (s *Service) fetchVenues(ctx context.Context, loc weather.Location, category activity.Category) (weather.VenueList, error) {
	ctx, cancel := s.withDeadline(ctx)
	defer cancel()

	ctx, span := s.tracer.Start(ctx, "places.Fetch", trace.WithAttributes(
		attribute.String("provider", s.places.Name()),
		attribute.String("category", string(category)),
	))
	defer span.End()

	venues, err := s.places.Fetch(ctx, loc, category, s.radius)
	return venues, asUpstream(err)
}

// asUpstream normalizes provider errors so callers only need the two sentinels.
func asUpstream(err error) error {
	if err == nil || errors.Is(err, weather.ErrNotFound) || errors.Is(err, weather.ErrUpstream) {
		return err
	}
	return fmt.Errorf("%w: %w", weather.ErrUpstream, err)
}
