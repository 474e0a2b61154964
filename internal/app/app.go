package app

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/i474232898/weather-activity-assistant/internal/assistant"
	"github.com/i474232898/weather-activity-assistant/internal/config"
	"github.com/i474232898/weather-activity-assistant/internal/store"
	"github.com/i474232898/weather-activity-assistant/internal/weather"
	"github.com/i474232898/weather-activity-assistant/internal/weather/providers"
)

// App holds the wired components shared by the server and the CLI.
type App struct {
	Service *assistant.Service
	// Weather is the (possibly cached) provider the service and the cache
	// warmer use.
	Weather weather.Provider
	Places  weather.PlacesProvider

	closers []func() error
}

// New wires providers, the snapshot cache and the assistant service from cfg.
func New(ctx context.Context, cfg *config.AppConfig) (*App, error) {
	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	a := &App{}

	var wp weather.Provider
	switch cfg.WeatherProvider {
	case config.WeatherOpenWeather:
		wp = providers.NewOpenWeatherProvider(httpClient, cfg.OpenWeatherAPIKey)
	default:
		wp = providers.NewOpenMeteoProvider(httpClient)
	}

	switch cfg.PlacesProvider {
	case config.PlacesGoogle:
		a.Places = providers.NewGooglePlacesProvider(httpClient, cfg.GooglePlacesAPIKey)
	default:
		a.Places = providers.NewOverpassProvider(httpClient)
	}

	switch cfg.CacheDriver {
	case config.CacheRedis:
		client, err := store.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, err
		}
		rs := store.NewRedisStore(client, cfg.CacheTTL)
		a.closers = append(a.closers, rs.Close)
		wp = store.NewCachedWeatherProvider(wp, rs)
	case config.CacheMemory:
		wp = store.NewCachedWeatherProvider(wp, store.NewMemoryStore(cfg.CacheMaxHistory, cfg.CacheTTL))
	}
	a.Weather = wp

	a.Service = assistant.NewService(a.Weather, a.Places, assistant.Options{
		RadiusMeters:    cfg.PlacesRadiusMeters,
		ProviderTimeout: cfg.ProviderTimeout,
	})

	log.Info().
		Str("weather_provider", a.Weather.Name()).
		Str("places_provider", a.Places.Name()).
		Str("cache", cfg.CacheDriver).
		Msg("assistant wired")
	return a, nil
}

// Close releases external connections.
func (a *App) Close() {
	for _, c := range a.closers {
		if err := c(); err != nil {
			log.Warn().Err(err).Msg("close failed")
		}
	}
}
