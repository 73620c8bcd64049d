package caption

import (
	"fmt"
	"strings"
)

const (
	// Delimiter opens every caption block in a model reply.
	Delimiter = "[CAPTION]"

	// BatchSize is how many captions a single call asks for. Anything beyond
	// it is clipped, never surfaced.
	BatchSize = 3
)

// Candidate is one bilingual caption option recovered from a model reply.
// Primary is the local-language line, Secondary the English line; each
// carries its own hashtags.
type Candidate struct {
	Raw       string
	Primary   string
	Secondary string
}

// Text returns the caption body without contract markers.
func (c Candidate) Text() string {
	return joinPair(c.Primary, c.Secondary)
}

// ImprovedCandidate is one labeled rewrite returned by an improvement call.
type ImprovedCandidate struct {
	Version   string
	Label     string
	Raw       string
	Primary   string
	Secondary string
	// Body, when set, is the exact text Text returns. Placeholders use it to
	// hand back the original caption byte for byte.
	Body string
}

// Text returns the caption body without the label header or markers.
func (c ImprovedCandidate) Text() string {
	if c.Body != "" {
		return c.Body
	}
	return joinPair(c.Primary, c.Secondary)
}

// Header renders the bracketed label line the way the prompt contract spells it.
func Header(version, label string) string {
	return fmt.Sprintf("[VERSION %s - %s]", version, label)
}

// Hashtags returns the #tags found in line, in order, without trailing punctuation.
func Hashtags(line string) []string {
	var tags []string
	for _, field := range strings.Fields(line) {
		if !strings.HasPrefix(field, "#") {
			continue
		}
		tag := strings.TrimRight(field, ".,;:!?)\"'")
		if len(tag) > 1 {
			tags = append(tags, tag)
		}
	}
	return tags
}

func joinPair(primary, secondary string) string {
	if secondary == "" {
		return primary
	}
	return primary + "\n" + secondary
}

func reconstruct(primary, secondary string) string {
	return Delimiter + " " + primary + "\n" + secondary
}
