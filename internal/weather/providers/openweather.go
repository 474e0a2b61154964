package providers

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-activity-assistant/internal/weather"
)

// OpenWeatherProvider implements the weather.Provider interface for OpenWeatherMap.
type OpenWeatherProvider struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
	now     func() time.Time
}

func NewOpenWeatherProvider(client *http.Client, apiKey string) *OpenWeatherProvider {
	return &OpenWeatherProvider{
		name:    "openweathermap",
		apiKey:  apiKey,
		baseURL: "https://api.openweathermap.org/data/2.5",
		httpCfg: newHTTPConfig(client),
		circuit: newCircuitBreaker("openweather"),
		now:     time.Now,
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

type owmMain struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	TempMin   float64 `json:"temp_min"`
	TempMax   float64 `json:"temp_max"`
	Pressure  float64 `json:"pressure"`
	Humidity  int     `json:"humidity"`
}

type owmWind struct {
	Speed float64 `json:"speed"`
	Deg   float64 `json:"deg"`
}

type owmWeather struct {
	Main        string `json:"main"`
	Description string `json:"description"`
}

type owmCurrent struct {
	Name       string       `json:"name"`
	Main       owmMain      `json:"main"`
	Wind       owmWind      `json:"wind"`
	Weather    []owmWeather `json:"weather"`
	Visibility float64      `json:"visibility"`
}

type owmForecast struct {
	List []struct {
		Dt         int64        `json:"dt"`
		Main       owmMain      `json:"main"`
		Wind       owmWind      `json:"wind"`
		Weather    []owmWeather `json:"weather"`
		Visibility float64      `json:"visibility"`
	} `json:"list"`
	City struct {
		Name     string `json:"name"`
		Timezone int    `json:"timezone"`
	} `json:"city"`
}

func (p *OpenWeatherProvider) Fetch(ctx context.Context, loc weather.Location, period weather.Period) (weather.Snapshot, error) {
	if p.apiKey == "" {
		return weather.Snapshot{}, fmt.Errorf("%w: openweather api key is not configured", weather.ErrUpstream)
	}

	if period == weather.PeriodTomorrow {
		return p.fetchTomorrow(ctx, loc)
	}
	return p.fetchCurrent(ctx, loc)
}

func (p *OpenWeatherProvider) request(endpoint string, loc weather.Location) func() (*http.Request, error) {
	return func() (*http.Request, error) {
		values := url.Values{}
		values.Set("appid", p.apiKey)
		values.Set("units", "metric")
		values.Set("q", loc.Query())

		u := fmt.Sprintf("%s/%s?%s", p.baseURL, endpoint, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}
}

func (p *OpenWeatherProvider) fetchCurrent(ctx context.Context, loc weather.Location) (weather.Snapshot, error) {
	var payload owmCurrent
	if err := getJSON(ctx, p.httpCfg, p.circuit, p.request("weather", loc), &payload); err != nil {
		return weather.Snapshot{}, err
	}

	return weather.Snapshot{
		LocationName:     payload.Name,
		Description:      firstDescription(payload.Weather),
		TemperatureC:     payload.Main.Temp,
		HumidityPct:      payload.Main.Humidity,
		FeelsLikeC:       payload.Main.FeelsLike,
		TempMinC:         payload.Main.TempMin,
		TempMaxC:         payload.Main.TempMax,
		Pressure:         payload.Main.Pressure,
		WindSpeed:        payload.Wind.Speed,
		WindDirectionDeg: payload.Wind.Deg,
		VisibilityM:      payload.Visibility,
	}, nil
}

// fetchTomorrow picks the 3-hourly forecast entry closest to local noon tomorrow.
func (p *OpenWeatherProvider) fetchTomorrow(ctx context.Context, loc weather.Location) (weather.Snapshot, error) {
	var payload owmForecast
	if err := getJSON(ctx, p.httpCfg, p.circuit, p.request("forecast", loc), &payload); err != nil {
		return weather.Snapshot{}, err
	}

	zone := time.FixedZone("city", payload.City.Timezone)
	today := p.now().In(zone)
	noon := time.Date(today.Year(), today.Month(), today.Day()+1, 12, 0, 0, 0, zone)

	best := -1
	bestDiff := math.MaxFloat64
	for i, item := range payload.List {
		ts := time.Unix(item.Dt, 0).In(zone)
		if ts.YearDay() != noon.YearDay() || ts.Year() != noon.Year() {
			continue
		}
		if diff := math.Abs(ts.Sub(noon).Hours()); diff < bestDiff {
			best, bestDiff = i, diff
		}
	}
	if best < 0 {
		return weather.Snapshot{}, fmt.Errorf("%w: no forecast entries for tomorrow in %s", weather.ErrUpstream, loc)
	}

	item := payload.List[best]
	return weather.Snapshot{
		LocationName:     payload.City.Name,
		Description:      firstDescription(item.Weather),
		TemperatureC:     item.Main.Temp,
		HumidityPct:      item.Main.Humidity,
		FeelsLikeC:       item.Main.FeelsLike,
		TempMinC:         item.Main.TempMin,
		TempMaxC:         item.Main.TempMax,
		Pressure:         item.Main.Pressure,
		WindSpeed:        item.Wind.Speed,
		WindDirectionDeg: item.Wind.Deg,
		VisibilityM:      item.Visibility,
	}, nil
}

func firstDescription(items []owmWeather) string {
	if len(items) == 0 {
		return ""
	}
	if items[0].Description != "" {
		return items[0].Description
	}
	return items[0].Main
}
