package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-activity-assistant/internal/weather"
)

const openMeteoGeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"

// geoResult is one match from the Open-Meteo geocoding API.
type geoResult struct {
	Name        string  `json:"name"`
	Admin1      string  `json:"admin1"`
	Country     string  `json:"country"`
	CountryCode string  `json:"country_code"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// openMeteoGeocoder resolves a city (and optional region) to coordinates.
// It needs no API key and is shared by the Open-Meteo weather provider and
// the Overpass places provider.
type openMeteoGeocoder struct {
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func newOpenMeteoGeocoder(client *http.Client, baseURL string) *openMeteoGeocoder {
	if baseURL == "" {
		baseURL = openMeteoGeocodingURL
	}
	return &openMeteoGeocoder{
		baseURL: baseURL,
		httpCfg: newHTTPConfig(client),
		circuit: newCircuitBreaker("openmeteo-geocoding"),
	}
}

func (g *openMeteoGeocoder) Resolve(ctx context.Context, loc weather.Location) (geoResult, error) {
	count := 1
	if loc.Region != "" {
		// The API does not filter by region, so fetch a few and match ourselves.
		count = 10
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("name", loc.City)
		values.Set("count", strconv.Itoa(count))
		values.Set("language", "en")
		values.Set("format", "json")
		return http.NewRequest(http.MethodGet, fmt.Sprintf("%s?%s", g.baseURL, values.Encode()), nil)
	}

	var payload struct {
		Results []geoResult `json:"results"`
	}
	if err := getJSON(ctx, g.httpCfg, g.circuit, buildRequest, &payload); err != nil {
		return geoResult{}, err
	}

	if len(payload.Results) == 0 {
		return geoResult{}, fmt.Errorf("%w: %s", weather.ErrNotFound, loc)
	}

	if loc.Region != "" {
		for _, r := range payload.Results {
			if matchesRegion(r, loc.Region) {
				return r, nil
			}
		}
	}
	return payload.Results[0], nil
}

func matchesRegion(r geoResult, region string) bool {
	region = strings.TrimSpace(region)
	return strings.EqualFold(r.Admin1, region) ||
		strings.EqualFold(r.Country, region) ||
		strings.EqualFold(r.CountryCode, region)
}
