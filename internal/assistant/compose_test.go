package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/i474232898/weather-activity-assistant/internal/weather"
)

func TestComposeWithVenues(t *testing.T) {
	snap := weather.Snapshot{LocationName: "Austin", Description: "clear sky", TemperatureC: 22, HumidityPct: 40}

	got := Compose(snap, weather.VenueList{"Zilker Park", "Barton Springs"})
	assert.Equal(t, "The current weather in Austin is clear sky with a temperature of 22°C and humidity of 40%. "+
		"You might enjoy visiting: Zilker Park, Barton Springs. Zilker Park\nBarton Springs\n", got)
}

func TestComposeWithoutVenues(t *testing.T) {
	snap := weather.Snapshot{LocationName: "Oslo", Description: "light snow", TemperatureC: -2.5, HumidityPct: 90}

	for _, venues := range []weather.VenueList{nil, {}} {
		got := Compose(snap, venues)
		assert.Equal(t, "The current weather in Oslo is light snow with a temperature of -2.5°C and humidity of 90%. "+
			"I couldn't find any activities nearby.", got)
	}
}

func TestComposeIsDeterministic(t *testing.T) {
	snap := weather.Snapshot{LocationName: "Rome", Description: "overcast", TemperatureC: 18.25, HumidityPct: 70}
	venues := weather.VenueList{"Sant'Eustachio", "Antico Caffè Greco"}
	assert.Equal(t, Compose(snap, venues), Compose(snap, venues))
}

func TestFormatTemperature(t *testing.T) {
	assert.Equal(t, "22", formatTemperature(22))
	assert.Equal(t, "22.5", formatTemperature(22.5))
	assert.Equal(t, "0", formatTemperature(0))
}
