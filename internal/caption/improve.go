package caption

import (
	"strconv"
	"strings"
)

// FallbackLabels name the placeholders offered when an improvement reply
// cannot be parsed at all.
var FallbackLabels = [BatchSize]string{"Option A", "Option B", "Option C"}

// ParseImprovementBlocks recovers up to BatchSize labeled rewrites. A block
// whose nested caption does not hold two lines is skipped rather than
// patched up.
func ParseImprovementBlocks(raw string) []ImprovedCandidate {
	var blocks []labeledBlock
	for _, b := range labeledBlocks(normalize(raw)) {
		if strings.TrimSpace(b.body) == "" {
			continue
		}
		blocks = append(blocks, b)
	}
	if len(blocks) > BatchSize {
		blocks = blocks[:BatchSize]
	}

	improved := make([]ImprovedCandidate, 0, len(blocks))
	for _, b := range blocks {
		nested := segmentsAfter(b.body, Delimiter)
		if len(nested) == 0 {
			continue
		}
		primary, secondary, ok := bilingualPair(nested[0])
		if !ok {
			continue
		}
		improved = append(improved, ImprovedCandidate{
			Version:   b.version,
			Label:     b.label,
			Raw:       Header(b.version, b.label) + "\n" + reconstruct(primary, secondary),
			Primary:   primary,
			Secondary: secondary,
		})
	}
	return improved
}

// FallbackImprovements synthesizes exactly BatchSize placeholders that carry
// the original text, so the workflow always has something to pick.
func FallbackImprovements(original string) []ImprovedCandidate {
	lines := nonEmptyLines(normalize(original))

	var primary, secondary string
	if len(lines) > 0 {
		primary = lines[0]
		secondary = strings.Join(lines[1:], "\n")
	}

	out := make([]ImprovedCandidate, 0, BatchSize)
	for i, label := range FallbackLabels {
		version := strconv.Itoa(i + 1)
		out = append(out, ImprovedCandidate{
			Version:   version,
			Label:     label,
			Raw:       Header(version, label) + "\n" + Delimiter + " " + original,
			Primary:   primary,
			Secondary: secondary,
			Body:      original,
		})
	}
	return out
}

// ImprovementsOrFallback parses raw and falls back to placeholders when no
// block survives. The bool reports whether the fallback was used.
func ImprovementsOrFallback(raw, original string) ([]ImprovedCandidate, bool) {
	if improved := ParseImprovementBlocks(raw); len(improved) > 0 {
		return improved, false
	}
	return FallbackImprovements(original), true
}
