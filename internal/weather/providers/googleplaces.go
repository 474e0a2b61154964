package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/kelvins/geocoder"
	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-activity-assistant/internal/activity"
	"github.com/i474232898/weather-activity-assistant/internal/weather"
)

const googleNearbySearchURL = "https://maps.googleapis.com/maps/api/place/nearbysearch/json"

// geocodeFunc resolves a location to latitude/longitude.
type geocodeFunc func(ctx context.Context, loc weather.Location) (lat, lng float64, err error)

// GooglePlacesProvider implements weather.PlacesProvider with the Google
// Geocoding and Places Nearby Search APIs.
type GooglePlacesProvider struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
	geocode geocodeFunc
}

func NewGooglePlacesProvider(client *http.Client, apiKey string) *GooglePlacesProvider {
	p := &GooglePlacesProvider{
		name:    "googleplaces",
		apiKey:  apiKey,
		baseURL: googleNearbySearchURL,
		httpCfg: newHTTPConfig(client),
		circuit: newCircuitBreaker("googleplaces"),
	}
	p.geocode = p.geocodeWithGoogle
	// kelvins/geocoder keeps its key in a package variable.
	if apiKey != "" {
		geocoder.ApiKey = apiKey
	}
	return p
}

func (p *GooglePlacesProvider) Name() string {
	return p.name
}

type geocodeResult struct {
	location geocoder.Location
	err      error
}

// geocodeWithGoogle goes through kelvins/geocoder, which takes no context and
// uses a client without a timeout, so the call runs in its own goroutine and
// ctx bounds how long we wait for it. The breaker still guards it.
func (p *GooglePlacesProvider) geocodeWithGoogle(ctx context.Context, loc weather.Location) (float64, float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, 0, fmt.Errorf("%w: geocode %s: %w", weather.ErrUpstream, loc, err)
	}

	done := make(chan geocodeResult, 1)
	go func() {
		location, err := p.circuit.Execute(func() (result interface{}, err error) {
			// The library indexes the first result even for statuses it does
			// not recognize, which panics on an empty list.
			defer func() {
				if r := recover(); r != nil {
					result, err = nil, fmt.Errorf("geocoder panicked: %v", r)
				}
			}()
			location, err := geocoder.Geocoding(geocoder.Address{City: loc.City, State: loc.Region})
			if err != nil {
				if isNoResults(err) {
					return nil, fmt.Errorf("%w: %s", weather.ErrNotFound, loc)
				}
				return nil, err
			}
			return location, nil
		})
		res := geocodeResult{err: err}
		if l, ok := location.(geocoder.Location); ok {
			res.location = l
		}
		done <- res
	}()

	var res geocodeResult
	select {
	case <-ctx.Done():
		return 0, 0, fmt.Errorf("%w: geocode %s: %w", weather.ErrUpstream, loc, ctx.Err())
	case res = <-done:
	}

	if res.err != nil {
		if errors.Is(res.err, weather.ErrNotFound) {
			return 0, 0, res.err
		}
		return 0, 0, fmt.Errorf("%w: geocode %s: %v", weather.ErrUpstream, loc, res.err)
	}
	if res.location.Latitude == 0 && res.location.Longitude == 0 {
		return 0, 0, fmt.Errorf("%w: %s", weather.ErrNotFound, loc)
	}
	return res.location.Latitude, res.location.Longitude, nil
}

func isNoResults(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "no results") || strings.Contains(msg, "zero_results")
}

type googleNearbyResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message,omitempty"`
	Results      []struct {
		Name string `json:"name"`
	} `json:"results"`
}

func (p *GooglePlacesProvider) Fetch(ctx context.Context, loc weather.Location, category activity.Category, radiusMeters int) (weather.VenueList, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("%w: google places api key is not configured", weather.ErrUpstream)
	}

	lat, lng, err := p.geocode(ctx, loc)
	if err != nil {
		return nil, err
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("location", fmt.Sprintf("%f,%f", lat, lng))
		values.Set("radius", strconv.Itoa(radiusMeters))
		values.Set("type", string(category))
		values.Set("key", p.apiKey)

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	var payload googleNearbyResponse
	if err := getJSON(ctx, p.httpCfg, p.circuit, buildRequest, &payload); err != nil {
		return nil, err
	}

	switch payload.Status {
	case "OK":
	case "ZERO_RESULTS":
		return weather.VenueList{}, nil
	default:
		if payload.ErrorMessage != "" {
			return nil, fmt.Errorf("%w: nearby search failed: %s - %s", weather.ErrUpstream, payload.Status, payload.ErrorMessage)
		}
		return nil, fmt.Errorf("%w: nearby search failed: %s", weather.ErrUpstream, payload.Status)
	}

	venues := make(weather.VenueList, 0, len(payload.Results))
	for _, r := range payload.Results {
		venues = append(venues, r.Name)
	}
	return venues, nil
}
