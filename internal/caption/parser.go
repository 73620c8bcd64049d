package caption

import "strings"

// ParseCaptionBlocks recovers up to BatchSize candidates from a generation
// reply. It never fails: malformed blocks are dropped and the caller decides
// whether what is left is enough.
func ParseCaptionBlocks(raw string) []Candidate {
	var segments []string
	for _, seg := range segmentsAfter(normalize(raw), Delimiter) {
		if strings.TrimSpace(seg) == "" {
			continue
		}
		segments = append(segments, seg)
	}
	if len(segments) > BatchSize {
		segments = segments[:BatchSize]
	}

	candidates := make([]Candidate, 0, len(segments))
	for _, seg := range segments {
		c := buildCandidate(seg)
		// A single line cannot hold both languages.
		if !strings.Contains(c.Raw, "\n") {
			continue
		}
		candidates = append(candidates, c)
	}
	return candidates
}

func buildCandidate(segment string) Candidate {
	primary, secondary, ok := bilingualPair(segment)
	if !ok {
		trimmed := strings.TrimSpace(segment)
		return Candidate{
			Raw:     Delimiter + " " + trimmed,
			Primary: trimmed,
		}
	}
	return Candidate{
		Raw:       reconstruct(primary, secondary),
		Primary:   primary,
		Secondary: secondary,
	}
}
