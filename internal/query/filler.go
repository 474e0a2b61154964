package query

// FillerVersion identifies the filler vocabulary below. Bump it whenever the
// list changes so logs and tests can tell which vocabulary produced a parse.
const FillerVersion = "2026-10.1"

// FillerVocabulary is the closed set of conversational phrases and stop-words
// removed from a query before the location is parsed. Entries are matched as
// whole words, case-insensitively.
//
// Known false negatives: a place whose name contains a filler word loses
// that word ("The Hague" -> "Hague", "Isle of Man" -> "Isle Man").
var FillerVocabulary = []string{
	// greetings
	"hi", "hello", "hey", "good morning", "good afternoon", "good evening",

	// question frames
	"what's the weather like in", "what is the weather like in",
	"what's the weather in", "what is the weather in",
	"how's the weather in", "how is the weather in",
	"what's the forecast for", "what is the forecast for",
	"will it rain in", "will it snow in", "is it raining in", "is it sunny in",
	"tell me", "show me", "give me", "can you", "could you", "would you",
	"i want to know", "i'd like to know", "let me know",

	// weather words
	"weather", "forecast", "temperature", "conditions", "like",

	// temporal words
	"right now", "today", "tonight", "tomorrow", "now", "currently", "current",
	"this morning", "this afternoon", "this evening",

	// politeness
	"please", "thanks", "thank you", "kindly",

	// stop-words
	"what's", "what", "how's", "how", "is", "it", "be", "going", "to", "will",
	"the", "a", "an", "in", "at", "on", "for", "near", "around", "by", "of",
	"me", "my", "i", "you",
}
