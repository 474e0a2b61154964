package assistant

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/i474232898/weather-activity-assistant/internal/weather"
)

// Compose renders the final answer for a weather snapshot and its venues.
// Venue order is preserved as given.
func Compose(snap weather.Snapshot, venues weather.VenueList) string {
	var b strings.Builder

	fmt.Fprintf(&b, "The current weather in %s is %s with a temperature of %s°C and humidity of %d%%.",
		snap.LocationName,
		snap.Description,
		formatTemperature(snap.TemperatureC),
		snap.HumidityPct,
	)

	if len(venues) == 0 {
		b.WriteString(" I couldn't find any activities nearby.")
		return b.String()
	}

	fmt.Fprintf(&b, " You might enjoy visiting: %s. ", strings.Join(venues, ", "))
	for _, v := range venues {
		b.WriteString(v)
		b.WriteString("\n")
	}
	return b.String()
}

// formatTemperature prints the shortest exact form: 22, 22.5, -3.25.
func formatTemperature(c float64) string {
	return strconv.FormatFloat(c, 'f', -1, 64)
}
