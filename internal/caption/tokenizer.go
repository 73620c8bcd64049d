package caption

import (
	"regexp"
	"strings"
)

// labelPattern matches improvement headers such as "[VERSION 2 - More Engaging]".
var labelPattern = regexp.MustCompile(`(?i)\[VERSION\s*(\d+)\s*-\s*([^\]\n]+)\]`)

type labeledBlock struct {
	version string
	label   string
	body    string
}

// normalize folds line endings so every later step can split on "\n".
func normalize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// segmentsAfter returns the text following each occurrence of token, up to
// the next occurrence. Text before the first occurrence never forms a
// segment, so input without the token yields nothing.
func segmentsAfter(text, token string) []string {
	start := strings.Index(text, token)
	if start < 0 {
		return nil
	}

	var segments []string
	rest := text[start+len(token):]
	for {
		next := strings.Index(rest, token)
		if next < 0 {
			return append(segments, rest)
		}
		segments = append(segments, rest[:next])
		rest = rest[next+len(token):]
	}
}

// labeledBlocks pairs every label header with the text up to the next header.
func labeledBlocks(text string) []labeledBlock {
	matches := labelPattern.FindAllStringSubmatchIndex(text, -1)
	blocks := make([]labeledBlock, 0, len(matches))
	for i, m := range matches {
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		blocks = append(blocks, labeledBlock{
			version: text[m[2]:m[3]],
			label:   strings.TrimSpace(text[m[4]:m[5]]),
			body:    text[m[1]:end],
		})
	}
	return blocks
}

func nonEmptyLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// bilingualPair takes the first two non-empty lines of a segment.
func bilingualPair(segment string) (primary, secondary string, ok bool) {
	lines := nonEmptyLines(segment)
	if len(lines) < 2 {
		return "", "", false
	}
	return lines[0], lines[1], true
}
