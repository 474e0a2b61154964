package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-activity-assistant/internal/weather"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"OPENWEATHER_API_KEY", "GOOGLE_PLACES_API_KEY", "WEATHER_PROVIDER", "PLACES_PROVIDER",
		"HTTP_TIMEOUT", "PROVIDER_TIMEOUT", "PLACES_RADIUS_METERS", "CACHE_DRIVER", "CACHE_TTL",
		"CACHE_MAX_HISTORY", "WARM_LOCATION_CITY", "WARM_LOCATION_REGION", "WARM_INTERVAL", "PORT",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaultsWithoutKeys(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, WeatherOpenMeteo, cfg.WeatherProvider)
	assert.Equal(t, PlacesOverpass, cfg.PlacesProvider)
	assert.Equal(t, 8*time.Second, cfg.ProviderTimeout)
	assert.Equal(t, 5000, cfg.PlacesRadiusMeters)
	assert.Equal(t, CacheMemory, cfg.CacheDriver)
	assert.Equal(t, "8080", cfg.Port)
	assert.Empty(t, cfg.WarmLocations)
}

func TestLoadPrefersKeyedProviders(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENWEATHER_API_KEY", "ow")
	t.Setenv("GOOGLE_PLACES_API_KEY", "gp")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, WeatherOpenWeather, cfg.WeatherProvider)
	assert.Equal(t, PlacesGoogle, cfg.PlacesProvider)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string][2]string{
		"unknown weather provider": {"WEATHER_PROVIDER", "accuweather"},
		"openweather without key":  {"WEATHER_PROVIDER", "openweather"},
		"google without key":       {"PLACES_PROVIDER", "google"},
		"bad timeout":              {"PROVIDER_TIMEOUT", "soon"},
		"bad cache driver":         {"CACHE_DRIVER", "memcached"},
	}

	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(kv[0], kv[1])
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadWarmLocations(t *testing.T) {
	clearEnv(t)
	t.Setenv("WARM_LOCATION_CITY", "Paris, Austin")
	t.Setenv("WARM_LOCATION_REGION", "France,Texas")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []weather.Location{
		{City: "Paris", Region: "France"},
		{City: "Austin", Region: "Texas"},
	}, cfg.WarmLocations)
}

func TestLoadWarmLocationsMismatch(t *testing.T) {
	clearEnv(t)
	t.Setenv("WARM_LOCATION_CITY", "Paris,Austin")
	t.Setenv("WARM_LOCATION_REGION", "France")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadWarmLocationsWithoutRegions(t *testing.T) {
	clearEnv(t)
	t.Setenv("WARM_LOCATION_CITY", "Tokyo")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []weather.Location{{City: "Tokyo"}}, cfg.WarmLocations)
}
