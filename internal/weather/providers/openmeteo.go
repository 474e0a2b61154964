package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-activity-assistant/internal/weather"
)

// OpenMeteoProvider implements the weather.Provider interface for Open-Meteo.
// Open-Meteo needs coordinates, so every fetch geocodes the location first.
type OpenMeteoProvider struct {
	name     string
	baseURL  string
	httpCfg  HTTPClientConfig
	circuit  *gobreaker.CircuitBreaker
	geocoder *openMeteoGeocoder
}

func NewOpenMeteoProvider(client *http.Client) *OpenMeteoProvider {
	return &OpenMeteoProvider{
		name:     "openmeteo",
		baseURL:  "https://api.open-meteo.com/v1/forecast",
		httpCfg:  newHTTPConfig(client),
		circuit:  newCircuitBreaker("openmeteo"),
		geocoder: newOpenMeteoGeocoder(client, ""),
	}
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

type openMeteoResponse struct {
	Current struct {
		Temperature   float64 `json:"temperature_2m"`
		Humidity      int     `json:"relative_humidity_2m"`
		ApparentTemp  float64 `json:"apparent_temperature"`
		WeatherCode   int     `json:"weather_code"`
		Pressure      float64 `json:"surface_pressure"`
		WindSpeed     float64 `json:"wind_speed_10m"`
		WindDirection float64 `json:"wind_direction_10m"`
		Visibility    float64 `json:"visibility"`
	} `json:"current"`
	Daily struct {
		Time            []string  `json:"time"`
		WeatherCode     []int     `json:"weather_code"`
		TempMax         []float64 `json:"temperature_2m_max"`
		TempMin         []float64 `json:"temperature_2m_min"`
		ApparentTempMax []float64 `json:"apparent_temperature_max"`
		Humidity        []float64 `json:"relative_humidity_2m_mean"`
		Pressure        []float64 `json:"pressure_msl_mean"`
		WindSpeed       []float64 `json:"wind_speed_10m_max"`
		WindDirection   []float64 `json:"wind_direction_10m_dominant"`
		Visibility      []float64 `json:"visibility_mean"`
	} `json:"daily"`
}

func (p *OpenMeteoProvider) Fetch(ctx context.Context, loc weather.Location, period weather.Period) (weather.Snapshot, error) {
	coords, err := p.geocoder.Resolve(ctx, loc)
	if err != nil {
		return weather.Snapshot{}, err
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", fmt.Sprintf("%f", coords.Latitude))
		values.Set("longitude", fmt.Sprintf("%f", coords.Longitude))
		values.Set("current", "temperature_2m,relative_humidity_2m,apparent_temperature,weather_code,surface_pressure,wind_speed_10m,wind_direction_10m,visibility")
		values.Set("daily", "weather_code,temperature_2m_max,temperature_2m_min,apparent_temperature_max,relative_humidity_2m_mean,pressure_msl_mean,wind_speed_10m_max,wind_direction_10m_dominant,visibility_mean")
		values.Set("forecast_days", "2")
		values.Set("wind_speed_unit", "ms")
		values.Set("timezone", "auto")

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	var payload openMeteoResponse
	if err := getJSON(ctx, p.httpCfg, p.circuit, buildRequest, &payload); err != nil {
		return weather.Snapshot{}, err
	}

	if period == weather.PeriodTomorrow {
		return tomorrowFromDaily(coords.Name, payload)
	}

	c := payload.Current
	snap := weather.Snapshot{
		LocationName:     coords.Name,
		Description:      describeWMO(c.WeatherCode),
		TemperatureC:     c.Temperature,
		HumidityPct:      c.Humidity,
		FeelsLikeC:       c.ApparentTemp,
		TempMinC:         c.Temperature,
		TempMaxC:         c.Temperature,
		Pressure:         c.Pressure,
		WindSpeed:        c.WindSpeed,
		WindDirectionDeg: c.WindDirection,
		VisibilityM:      c.Visibility,
	}
	if len(payload.Daily.TempMax) > 0 && len(payload.Daily.TempMin) > 0 {
		snap.TempMaxC = payload.Daily.TempMax[0]
		snap.TempMinC = payload.Daily.TempMin[0]
	}
	return snap, nil
}

func tomorrowFromDaily(name string, payload openMeteoResponse) (weather.Snapshot, error) {
	d := payload.Daily
	const i = 1
	if len(d.WeatherCode) <= i || len(d.TempMax) <= i || len(d.TempMin) <= i {
		return weather.Snapshot{}, fmt.Errorf("%w: open-meteo returned no forecast for tomorrow", weather.ErrUpstream)
	}

	snap := weather.Snapshot{
		LocationName: name,
		Description:  describeWMO(d.WeatherCode[i]),
		TemperatureC: (d.TempMax[i] + d.TempMin[i]) / 2,
		TempMinC:     d.TempMin[i],
		TempMaxC:     d.TempMax[i],
	}
	snap.FeelsLikeC = at(d.ApparentTempMax, i, snap.TemperatureC)
	snap.HumidityPct = int(at(d.Humidity, i, 0) + 0.5)
	snap.Pressure = at(d.Pressure, i, 0)
	snap.WindSpeed = at(d.WindSpeed, i, 0)
	snap.WindDirectionDeg = at(d.WindDirection, i, 0)
	snap.VisibilityM = at(d.Visibility, i, 0)
	return snap, nil
}

func at(values []float64, i int, def float64) float64 {
	if i < len(values) {
		return values[i]
	}
	return def
}

// WMO weather interpretation codes (https://open-meteo.com/en/docs).
var wmoDescriptions = map[int]string{
	0:  "clear sky",
	1:  "mainly clear",
	2:  "partly cloudy",
	3:  "overcast",
	45: "fog",
	48: "depositing rime fog",
	51: "light drizzle",
	53: "moderate drizzle",
	55: "dense drizzle",
	56: "light freezing drizzle",
	57: "dense freezing drizzle",
	61: "slight rain",
	63: "moderate rain",
	65: "heavy rain",
	66: "light freezing rain",
	67: "heavy freezing rain",
	71: "slight snow",
	73: "moderate snow",
	75: "heavy snow",
	77: "snow grains",
	80: "slight rain showers",
	81: "moderate rain showers",
	82: "violent rain showers",
	85: "slight snow showers",
	86: "heavy snow showers",
	95: "thunderstorm",
	96: "thunderstorm with slight hail",
	99: "thunderstorm with heavy hail",
}

func describeWMO(code int) string {
	if desc, ok := wmoDescriptions[code]; ok {
		return desc
	}
	return "unknown"
}
