package query

import (
	"errors"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/i474232898/weather-activity-assistant/internal/weather"
)

// ErrNoLocation is returned when nothing usable is left after stripping filler.
var ErrNoLocation = errors.New("no location found in query")

var (
	fillerPattern   = compileFiller(FillerVocabulary)
	separatorRunes  = regexp.MustCompile(`[-_/]+`)
	punctuation     = regexp.MustCompile(`[^\p{L}\p{N}\s,]+`)
	commaRuns       = regexp.MustCompile(`\s*,[\s,]*`)
	whitespaceRuns  = regexp.MustCompile(`\s+`)
	locationPattern = regexp.MustCompile(`^([^,]+), (.+)$`)
)

// compileFiller builds one alternation, longest phrase first so that
// "what's the weather in" wins over "what's". Phrases are bounded by
// non-letter runes rather than \b, which only knows ASCII letters and would
// cut "on" out of "Besançon".
func compileFiller(vocab []string) *regexp.Regexp {
	phrases := make([]string, 0, len(vocab))
	for _, p := range vocab {
		phrases = append(phrases, regexp.QuoteMeta(strings.ToLower(p)))
	}
	sort.SliceStable(phrases, func(i, j int) bool { return len(phrases[i]) > len(phrases[j]) })
	return regexp.MustCompile(`(?i)(^|[^\p{L}\p{N}'])(?:` + strings.Join(phrases, "|") + `)($|[^\p{L}\p{N}'])`)
}

// stripFiller removes filler phrases until none is left. A match consumes its
// delimiters, so adjacent phrases ("weather please") need another pass.
func stripFiller(text string) string {
	for {
		next := fillerPattern.ReplaceAllString(text, "${1} ${2}")
		if next == text {
			return text
		}
		text = next
	}
}

// ExtractLocation isolates the location in a free-text weather query.
//
// The steps run in a fixed order: normalize, drop filler, drop punctuation
// except commas, then split a trailing "city, region" pair.
func ExtractLocation(q string) (weather.Location, error) {
	text := strings.TrimSpace(strings.ToLower(q))
	text = strings.ReplaceAll(text, "’", "'")

	text = stripFiller(text)

	text = separatorRunes.ReplaceAllString(text, " ")
	text = punctuation.ReplaceAllString(text, "")
	text = commaRuns.ReplaceAllString(text, ", ")
	text = whitespaceRuns.ReplaceAllString(text, " ")
	text = strings.Trim(text, " ,")

	if text == "" {
		return weather.Location{}, ErrNoLocation
	}

	// cases.Caser keeps state between calls, so each call gets its own.
	caser := cases.Title(language.English)
	if m := locationPattern.FindStringSubmatch(text); m != nil {
		return weather.Location{
			City:   caser.String(strings.TrimSpace(m[1])),
			Region: caser.String(strings.TrimSpace(m[2])),
		}, nil
	}
	return weather.Location{City: caser.String(text)}, nil
}

// ExtractPeriod reports whether the query is about today or tomorrow.
func ExtractPeriod(q string) weather.Period {
	if strings.Contains(strings.ToLower(q), "tomorrow") {
		return weather.PeriodTomorrow
	}
	return weather.PeriodToday
}

// Parsed is the result of understanding one raw query.
type Parsed struct {
	Location weather.Location
	Period   weather.Period
}

// Parse runs both extractors.
func Parse(q string) (Parsed, error) {
	loc, err := ExtractLocation(q)
	if err != nil {
		return Parsed{Period: ExtractPeriod(q)}, err
	}
	return Parsed{Location: loc, Period: ExtractPeriod(q)}, nil
}
