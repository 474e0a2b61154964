package activity

import "github.com/i474232898/weather-activity-assistant/internal/common"

// Category is a venue bucket recommended for the current weather.
// Values match Google Places types so providers can pass them through.
type Category string

const (
	CategoryMuseum    Category = "museum"
	CategorySkiResort Category = "ski_resort"
	CategoryPark      Category = "park"
	CategoryCafe      Category = "cafe"
)

// Categories lists every category in classification priority order.
var Categories = []Category{CategoryMuseum, CategorySkiResort, CategoryPark, CategoryCafe}

type rule struct {
	keywords []string
	category Category
}

// Evaluated top to bottom; the first rule that matches wins, so
// "light rain and clear skies" is a museum day.
var rules = []rule{
	{keywords: []string{"rain", "storm"}, category: CategoryMuseum},
	{keywords: []string{"snow"}, category: CategorySkiResort},
	{keywords: []string{"clear", "sunny"}, category: CategoryPark},
}

// Classify maps a free-text weather description to an activity category.
func Classify(description string) Category {
	for _, r := range rules {
		if common.HasAny(description, r.keywords...) {
			return r.category
		}
	}
	return CategoryCafe
}

// Label is the human-readable form of the category.
func (c Category) Label() string {
	switch c {
	case CategoryMuseum:
		return "museum"
	case CategorySkiResort:
		return "ski resort"
	case CategoryPark:
		return "park"
	default:
		return "cafe"
	}
}
