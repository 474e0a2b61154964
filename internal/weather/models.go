package weather

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned by providers when the location cannot be resolved.
	ErrNotFound = errors.New("location not found")

	// ErrUpstream covers transport failures, non-2xx responses, malformed
	// payloads and expired deadlines.
	ErrUpstream = errors.New("upstream provider error")
)

// Period is the time frame a query asks about.
type Period string

const (
	PeriodToday    Period = "today"
	PeriodTomorrow Period = "tomorrow"
)

// Location is a place extracted from a user query.
// City is always set; Region is only present when the query carried a
// comma-separated qualifier ("Paris, France").
type Location struct {
	City   string `json:"city"`
	Region string `json:"region,omitempty"`
}

// Key returns a canonical lowercase key for indexing this location in stores.
func (l Location) Key() string {
	return strings.ToLower(l.City) + ":" + strings.ToLower(l.Region)
}

// Query renders the location the way upstream APIs accept it ("city,region").
func (l Location) Query() string {
	if l.Region == "" {
		return l.City
	}
	return l.City + "," + l.Region
}

// Equal compares two locations case-insensitively.
func (l Location) Equal(other Location) bool {
	return strings.EqualFold(l.City, other.City) && strings.EqualFold(l.Region, other.Region)
}

func (l Location) String() string {
	if l.Region == "" {
		return l.City
	}
	return l.City + ", " + l.Region
}

// Snapshot is the normalized weather view for one location and period.
// Values are metric: temperatures in °C, visibility in metres.
type Snapshot struct {
	LocationName     string  `json:"locationName"`
	Description      string  `json:"description"`
	TemperatureC     float64 `json:"temperatureC"`
	HumidityPct      int     `json:"humidityPct"`
	FeelsLikeC       float64 `json:"feelsLikeC"`
	TempMinC         float64 `json:"tempMinC"`
	TempMaxC         float64 `json:"tempMaxC"`
	Pressure         float64 `json:"pressure"`
	WindSpeed        float64 `json:"windSpeed"`
	WindDirectionDeg float64 `json:"windDirectionDeg"`
	VisibilityM      float64 `json:"visibilityM"`
}

// Empty reports whether the provider returned nothing usable.
func (s Snapshot) Empty() bool {
	return s.Description == "" && s.LocationName == ""
}

// Fahrenheit converts a Celsius reading for display.
func Fahrenheit(c float64) float64 {
	return c*9/5 + 32
}

// VenueList is an ordered list of distinct venue names.
type VenueList []string

// Dedup returns the distinct, non-blank names in first-seen order.
func (v VenueList) Dedup() VenueList {
	seen := make(map[string]struct{}, len(v))
	out := make(VenueList, 0, len(v))
	for _, name := range v {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
