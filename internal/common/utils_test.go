package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasAny(t *testing.T) {
	assert.True(t, HasAny("Light Rain", "rain"))
	assert.True(t, HasAny("clear sky", "sunny", "CLEAR"))
	assert.False(t, HasAny("overcast", "rain", "snow"))
	assert.False(t, HasAny("anything"))
}
