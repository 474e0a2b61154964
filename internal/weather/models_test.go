package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocationRendering(t *testing.T) {
	paris := Location{City: "Paris", Region: "France"}
	tokyo := Location{City: "Tokyo"}

	assert.Equal(t, "paris:france", paris.Key())
	assert.Equal(t, "Paris,France", paris.Query())
	assert.Equal(t, "Paris, France", paris.String())

	assert.Equal(t, "tokyo:", tokyo.Key())
	assert.Equal(t, "Tokyo", tokyo.Query())
	assert.Equal(t, "Tokyo", tokyo.String())

	assert.True(t, paris.Equal(Location{City: "PARIS", Region: "france"}))
	assert.False(t, paris.Equal(tokyo))
}

func TestSnapshotEmpty(t *testing.T) {
	assert.True(t, Snapshot{}.Empty())
	assert.True(t, Snapshot{TemperatureC: 12}.Empty())
	assert.False(t, Snapshot{Description: "fog"}.Empty())
}

func TestFahrenheit(t *testing.T) {
	assert.InDelta(t, 32.0, Fahrenheit(0), 1e-9)
	assert.InDelta(t, 212.0, Fahrenheit(100), 1e-9)
	assert.InDelta(t, -40.0, Fahrenheit(-40), 1e-9)
}

func TestVenueListDedup(t *testing.T) {
	in := VenueList{"Louvre", " Louvre ", "", "Musée d'Orsay", "  ", "Louvre", "louvre"}

	assert.Equal(t, VenueList{"Louvre", "Musée d'Orsay", "louvre"}, in.Dedup())
	assert.NotNil(t, VenueList(nil).Dedup())
	assert.Empty(t, VenueList(nil).Dedup())
}
