package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/i474232898/weather-activity-assistant/internal/weather"
)

// Provider and cache driver names accepted in the environment.
const (
	WeatherOpenWeather = "openweather"
	WeatherOpenMeteo   = "openmeteo"

	PlacesGoogle   = "google"
	PlacesOverpass = "overpass"

	CacheMemory = "memory"
	CacheRedis  = "redis"
	CacheNone   = "none"
)

type AppConfig struct {
	ServiceName string
	LogEnv      string
	Port        string

	// Provider credentials; read-only after Load.
	OpenWeatherAPIKey  string
	GooglePlacesAPIKey string

	WeatherProvider string
	PlacesProvider  string

	// HTTPTimeout caps a single outbound HTTP request; ProviderTimeout caps a
	// whole provider call including geocoding and retries.
	HTTPTimeout     time.Duration
	ProviderTimeout time.Duration

	PlacesRadiusMeters int

	CacheDriver     string
	CacheTTL        time.Duration
	CacheMaxHistory int // max number of snapshots per key (0 = unlimited)

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// WarmLocations are fetched every WarmInterval to keep the cache hot.
	WarmLocations []weather.Location
	WarmInterval  time.Duration
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded")
	}
	cfg := &AppConfig{}

	cfg.ServiceName = getenvDefault("SERVICE_NAME", "weather-activity-assistant")
	cfg.LogEnv = getenvDefault("LOG_ENV", "production")
	cfg.Port = getenvDefault("PORT", "8080")

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.GooglePlacesAPIKey = os.Getenv("GOOGLE_PLACES_API_KEY")

	defaultWeather := WeatherOpenMeteo
	if cfg.OpenWeatherAPIKey != "" {
		defaultWeather = WeatherOpenWeather
	}
	cfg.WeatherProvider = strings.ToLower(getenvDefault("WEATHER_PROVIDER", defaultWeather))
	if cfg.WeatherProvider != WeatherOpenWeather && cfg.WeatherProvider != WeatherOpenMeteo {
		return nil, fmt.Errorf("invalid WEATHER_PROVIDER %q", cfg.WeatherProvider)
	}
	if cfg.WeatherProvider == WeatherOpenWeather && cfg.OpenWeatherAPIKey == "" {
		return nil, fmt.Errorf("WEATHER_PROVIDER=openweather requires OPENWEATHER_API_KEY")
	}

	defaultPlaces := PlacesOverpass
	if cfg.GooglePlacesAPIKey != "" {
		defaultPlaces = PlacesGoogle
	}
	cfg.PlacesProvider = strings.ToLower(getenvDefault("PLACES_PROVIDER", defaultPlaces))
	if cfg.PlacesProvider != PlacesGoogle && cfg.PlacesProvider != PlacesOverpass {
		return nil, fmt.Errorf("invalid PLACES_PROVIDER %q", cfg.PlacesProvider)
	}
	if cfg.PlacesProvider == PlacesGoogle && cfg.GooglePlacesAPIKey == "" {
		return nil, fmt.Errorf("PLACES_PROVIDER=google requires GOOGLE_PLACES_API_KEY")
	}

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.ProviderTimeout, err = getenvDuration("PROVIDER_TIMEOUT", "8s"); err != nil {
		return nil, err
	}
	cfg.PlacesRadiusMeters = getenvInt("PLACES_RADIUS_METERS", 5000)

	cfg.CacheDriver = strings.ToLower(getenvDefault("CACHE_DRIVER", CacheMemory))
	switch cfg.CacheDriver {
	case CacheMemory, CacheRedis, CacheNone:
	default:
		return nil, fmt.Errorf("invalid CACHE_DRIVER %q", cfg.CacheDriver)
	}
	if cfg.CacheTTL, err = getenvDuration("CACHE_TTL", "10m"); err != nil {
		return nil, err
	}
	cfg.CacheMaxHistory = getenvInt("CACHE_MAX_HISTORY", 96) // roughly 24h at 15-minute intervals

	cfg.RedisAddr = getenvDefault("REDIS_ADDR", "localhost:6379")
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	cfg.RedisDB = getenvInt("REDIS_DB", 0)

	if cfg.WarmInterval, err = getenvDuration("WARM_INTERVAL", "15m"); err != nil {
		return nil, err
	}
	locs, err := loadWarmLocations()
	if err != nil {
		return nil, err
	}
	cfg.WarmLocations = locs

	return cfg, nil
}

func loadWarmLocations() ([]weather.Location, error) {
	city := os.Getenv("WARM_LOCATION_CITY")
	if strings.TrimSpace(city) == "" {
		return nil, nil
	}
	region := os.Getenv("WARM_LOCATION_REGION")

	cities := strings.Split(city, ",")
	regions := make([]string, len(cities))
	if region != "" {
		regions = strings.Split(region, ",")
	}
	if len(cities) != len(regions) {
		return nil, fmt.Errorf("number of cities and regions must be the same")
	}

	var locs []weather.Location
	for i := range cities {
		c := strings.TrimSpace(cities[i])
		if c == "" {
			continue
		}
		locs = append(locs, weather.Location{
			City:   c,
			Region: strings.TrimSpace(regions[i]),
		})
	}
	return locs, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
