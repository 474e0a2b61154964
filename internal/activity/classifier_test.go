package activity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		description string
		want        Category
	}{
		{"light rain", CategoryMuseum},
		{"thunderstorm with heavy hail", CategoryMuseum},
		{"moderate snow", CategorySkiResort},
		{"clear sky", CategoryPark},
		{"Sunny", CategoryPark},
		{"overcast", CategoryCafe},
		{"", CategoryCafe},
	}

	for _, tc := range cases {
		t.Run(tc.description, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.description))
		})
	}
}

func TestClassifyPriority(t *testing.T) {
	// rain beats clear, and snow beats sunny
	assert.Equal(t, CategoryMuseum, Classify("light rain and clear skies"))
	assert.Equal(t, CategorySkiResort, Classify("sunny with snow showers"))
	assert.Equal(t, CategoryMuseum, Classify("RAIN AND SNOW"))
}

func TestCategoryLabel(t *testing.T) {
	assert.Equal(t, "ski resort", CategorySkiResort.Label())
	assert.Equal(t, "cafe", Category("unknown").Label())
}
