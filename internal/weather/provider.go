package weather

import (
	"context"

	"github.com/i474232898/weather-activity-assistant/internal/activity"
)

// Provider abstracts a weather data source (e.g. OpenWeatherMap, Open-Meteo).
// Implementations resolve the location themselves and return ErrNotFound
// when they cannot, or an error wrapping ErrUpstream on any other failure.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, loc Location, period Period) (Snapshot, error)
}

// PlacesProvider abstracts a venue search (e.g. Google Places, OpenStreetMap).
// An empty list is a valid answer; ErrNotFound means the location itself
// could not be geocoded.
type PlacesProvider interface {
	Name() string
	Fetch(ctx context.Context, loc Location, category activity.Category, radiusMeters int) (VenueList, error)
}

// Store is the contract the snapshot caches must satisfy.
type Store interface {
	SaveSnapshot(ctx context.Context, key string, snapshot Snapshot) error
	GetLatest(ctx context.Context, key string) (Snapshot, error)
}
