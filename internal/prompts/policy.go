package prompts

import "strings"

const (
	// DefaultVibe is used whenever the requested vibe is unknown.
	DefaultVibe = "casual"

	// DefaultLength is used whenever the requested length is unknown.
	DefaultLength = "medium"

	// DefaultLanguage is the local language paired with English.
	DefaultLanguage = "Indonesian"

	MinHashtags = 5
	MaxHashtags = 8
)

// Vibe is a selectable tone.
type Vibe struct {
	Key         string
	Name        string
	Description string
}

var vibes = []Vibe{
	{"casual", "Casual", "relaxed, friendly and conversational, like talking to a friend"},
	{"professional", "Professional", "polished, confident and credible, suitable for a brand account"},
	{"funny", "Funny", "playful and witty, with light humor and wordplay"},
	{"inspirational", "Inspirational", "uplifting and motivating, leaving the reader with something to think about"},
	{"romantic", "Romantic", "warm, tender and heartfelt"},
	{"adventurous", "Adventurous", "energetic and bold, full of curiosity and wanderlust"},
	{"aesthetic", "Aesthetic", "poetic and minimal, focused on mood, light and detail"},
	{"promotional", "Promotional", "persuasive and benefit-driven, ending with a clear call to action"},
}

// Length maps a length key to the sentences written per language.
type Length struct {
	Key       string
	Name      string
	Sentences int
}

var lengths = []Length{
	{"short", "Short", 3},
	{"medium", "Medium", 5},
	{"long", "Long", 10},
}

// Vibes returns the known vibes in display order.
func Vibes() []Vibe {
	out := make([]Vibe, len(vibes))
	copy(out, vibes)
	return out
}

// Lengths returns the known lengths in display order.
func Lengths() []Length {
	out := make([]Length, len(lengths))
	copy(out, lengths)
	return out
}

// ToneFor returns the tone description for key. Unknown keys get the
// DefaultVibe description and ok=false; callers may log it, never fail on it.
func ToneFor(key string) (description string, ok bool) {
	key = strings.ToLower(strings.TrimSpace(key))
	for _, v := range vibes {
		if v.Key == key {
			return v.Description, true
		}
	}
	for _, v := range vibes {
		if v.Key == DefaultVibe {
			return v.Description, false
		}
	}
	return "", false
}

// SentenceCount returns sentences per language for key, falling back to
// DefaultLength with ok=false.
func SentenceCount(key string) (count int, ok bool) {
	key = strings.ToLower(strings.TrimSpace(key))
	for _, l := range lengths {
		if l.Key == key {
			return l.Sentences, true
		}
	}
	for _, l := range lengths {
		if l.Key == DefaultLength {
			return l.Sentences, false
		}
	}
	return 0, false
}
