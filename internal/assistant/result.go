package assistant

import (
	"github.com/i474232898/weather-activity-assistant/internal/activity"
	"github.com/i474232898/weather-activity-assistant/internal/weather"
)

// Outcome classifies how a query was answered.
type Outcome string

const (
	// OutcomeComposed: weather and venue search both succeeded.
	OutcomeComposed Outcome = "composed"
	// OutcomeDegraded: the weather summary was composed without venues
	// because the places provider did not know the location.
	OutcomeDegraded Outcome = "degraded"

	OutcomeNoLocation         Outcome = "no_location"
	OutcomeWeatherUnavailable Outcome = "weather_unavailable"
	OutcomeUpstreamFailure    Outcome = "upstream_failure"
)

// User-facing messages for the terminal outcomes.
const (
	MsgNoLocation         = "no location found, please retry"
	MsgWeatherUnavailable = "I'm sorry, I couldn't find the weather data for %s. Please try again."
	MsgUpstreamFailure    = "I'm sorry, the weather service is unavailable right now. Please try again later."
)

// Result is the single return value of Service.Process. Text is always set:
// either the composed answer or a user-facing error message.
type Result struct {
	ID       string            `json:"id"`
	Query    string            `json:"query"`
	Text     string            `json:"response"`
	Outcome  Outcome           `json:"outcome"`
	Location weather.Location  `json:"location"`
	Period   weather.Period    `json:"period"`
	Category activity.Category `json:"category,omitempty"`
	Venues   weather.VenueList `json:"venues"`
	Weather  *weather.Snapshot `json:"weather,omitempty"`

	// Err is the underlying cause for failed and degraded outcomes.
	Err error `json:"-"`
}

// OK reports whether Text is a composed weather answer.
func (r Result) OK() bool {
	return r.Outcome == OutcomeComposed || r.Outcome == OutcomeDegraded
}
