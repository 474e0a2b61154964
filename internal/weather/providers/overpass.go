package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-activity-assistant/internal/activity"
	"github.com/i474232898/weather-activity-assistant/internal/weather"
)

const (
	overpassURL       = "https://overpass-api.de/api/interpreter"
	overpassMaxVenues = 20
)

// OSM tag filters per category; any of them qualifies a venue.
var overpassFilters = map[activity.Category][]string{
	activity.CategoryMuseum:    {`["tourism"="museum"]`},
	activity.CategorySkiResort: {`["landuse"="winter_sports"]`, `["sport"="skiing"]`},
	activity.CategoryPark:      {`["leisure"="park"]`},
	activity.CategoryCafe:      {`["amenity"="cafe"]`},
}

// OverpassProvider implements weather.PlacesProvider on OpenStreetMap data
// through the Overpass API. It needs no API key.
type OverpassProvider struct {
	name     string
	baseURL  string
	httpCfg  HTTPClientConfig
	circuit  *gobreaker.CircuitBreaker
	geocoder *openMeteoGeocoder
}

func NewOverpassProvider(client *http.Client) *OverpassProvider {
	return &OverpassProvider{
		name:     "overpass",
		baseURL:  overpassURL,
		httpCfg:  newHTTPConfig(client),
		circuit:  newCircuitBreaker("overpass"),
		geocoder: newOpenMeteoGeocoder(client, ""),
	}
}

func (p *OverpassProvider) Name() string {
	return p.name
}

func buildOverpassQuery(category activity.Category, radiusMeters int, lat, lon float64) string {
	filters, ok := overpassFilters[category]
	if !ok {
		filters = overpassFilters[activity.CategoryCafe]
	}

	var b strings.Builder
	b.WriteString("[out:json][timeout:25];(")
	for _, f := range filters {
		fmt.Fprintf(&b, "nwr%s[\"name\"](around:%d,%f,%f);", f, radiusMeters, lat, lon)
	}
	b.WriteString(");out tags;")
	return b.String()
}

func (p *OverpassProvider) Fetch(ctx context.Context, loc weather.Location, category activity.Category, radiusMeters int) (weather.VenueList, error) {
	coords, err := p.geocoder.Resolve(ctx, loc)
	if err != nil {
		return nil, err
	}

	q := buildOverpassQuery(category, radiusMeters, coords.Latitude, coords.Longitude)
	buildRequest := func() (*http.Request, error) {
		form := url.Values{}
		form.Set("data", q)
		req, err := http.NewRequest(http.MethodPost, p.baseURL, strings.NewReader(form.Encode()))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return req, nil
	}

	var payload struct {
		Elements []struct {
			Tags map[string]string `json:"tags"`
		} `json:"elements"`
	}
	if err := getJSON(ctx, p.httpCfg, p.circuit, buildRequest, &payload); err != nil {
		return nil, err
	}

	venues := make(weather.VenueList, 0, len(payload.Elements))
	for _, el := range payload.Elements {
		name := strings.TrimSpace(el.Tags["name"])
		if name == "" {
			continue
		}
		venues = append(venues, name)
		if len(venues) == overpassMaxVenues {
			break
		}
	}
	return venues, nil
}
